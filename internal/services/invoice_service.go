package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// InvoiceService renders a reservation invoice as PDF.
type InvoiceService struct {
	Reservations ReservationService
	Clock        Clock
	RequestID    string
}

func (s InvoiceService) Generate(ctx context.Context, reservationID string) ([]byte, string, error) {
	res, err := s.Reservations.Get(ctx, reservationID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "invoice", "generate", "reservation_id="+res.ID)
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}
	return buildInvoicePDF(res, now)
}

func buildInvoicePDF(r models.Reservation, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : "+invoiceNumber(r))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Tanggal     : "+issuedAt.UTC().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Status      : %s / %s", r.Status, r.Payment))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Ditagihkan kepada:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Nama   : "+safe(r.Guest.Name, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "No HP  : "+safe(r.Guest.Phone, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email  : "+safe(r.Guest.Email, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rincian:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Kamar #%d, %s s/d %s (%d malam)",
		r.RoomID, utils.FormatDate(r.Stay.CheckIn), utils.FormatDate(r.Stay.CheckOut), r.Nights)
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(2)

	pdf.Cell(0, 6, "Subtotal : "+utils.FormatMoney(r.SubtotalMinor, r.Currency))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Diskon   : "+utils.FormatMoney(r.DiscountMinor, r.Currency))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total    : "+utils.FormatMoney(r.TotalMinor, r.Currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	switch {
	case r.Payment == models.PaymentPending && r.PaymentDeadline != nil:
		pdf.MultiCell(0, 6, "Harap lakukan pembayaran sebelum "+utils.FormatDateTime(*r.PaymentDeadline)+" UTC. Reservasi yang belum dibayar akan dibatalkan otomatis.", "", "", false)
	case r.PaymentReference != "":
		pdf.MultiCell(0, 6, "Referensi pembayaran: "+r.PaymentReference, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s_%s.pdf", safeFilenamePart(shortID(r.ID)), safeFilenamePart(r.Guest.Name))
	return buf.Bytes(), filename, nil
}

func invoiceNumber(r models.Reservation) string {
	return fmt.Sprintf("INV-%s-%s", r.CreatedAt.UTC().Format("20060102"), strings.ToUpper(shortID(r.ID)))
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
