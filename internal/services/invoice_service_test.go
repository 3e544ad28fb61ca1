package services

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInvoiceServiceGenerate(t *testing.T) {
	f := newFixture(t)
	res := f.book(t, 101, "2025-03-07", "2025-03-10")

	svc := InvoiceService{Reservations: f.svc, Clock: f.clock}
	pdf, filename, err := svc.Generate(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
	if !strings.HasPrefix(filename, "INVOICE_") || !strings.HasSuffix(filename, ".pdf") {
		t.Fatalf("unexpected filename %q", filename)
	}

	if _, _, err := svc.Generate(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown reservation")
	}
}
