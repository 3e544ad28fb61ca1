package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "hotelbooking/internal/config"
	"hotelbooking/internal/domain/models"
	router "hotelbooking/internal/http"
	"hotelbooking/internal/http/handlers"
	"hotelbooking/internal/lease"
	"hotelbooking/internal/ledger"
	"hotelbooking/internal/repositories"
	"hotelbooking/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type storage struct {
	rates        services.RateSource
	rooms        services.RoomDirectory
	ledger       services.Ledger
	reservations services.ReservationStore
	staff        services.StaffDirectory
	pinger       handlers.Pinger
}

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("Konfigurasi tidak valid: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	var st storage
	switch env.StoreBackend {
	case intconfig.BackendMemory:
		st = memoryStorage(env)
		log.Println("[STORE] memakai backend in-memory (data hilang saat restart)")
	default:
		db, err := intconfig.ConnectDB(env.DBDSN)
		if err != nil {
			log.Fatalf("Gagal konek ke database: %v", err)
		}
		defer intconfig.CloseDB()
		if err := repositories.EnsureSchema(db); err != nil {
			log.Fatalf("Gagal menyiapkan schema: %v", err)
		}
		st = storage{
			rates:        repositories.RatePeriodRepository{DB: db, DefaultCurrency: env.DefaultCurrency},
			rooms:        repositories.RoomRepository{DB: db},
			ledger:       ledger.MySQL{DB: db},
			reservations: repositories.ReservationRepository{DB: db},
			staff:        repositories.StaffRepository{DB: db},
			pinger:       handlers.PingFunc(intconfig.Ping),
		}
	}

	clock := services.SystemClock{}
	quotes := services.QuoteService{Rates: st.rates}
	reservations := services.ReservationService{
		Rooms:         st.rooms,
		Quotes:        quotes,
		Ledger:        st.ledger,
		Store:         st.reservations,
		Clock:         clock,
		PaymentWindow: env.PaymentWindow,
	}

	api := &handlers.API{
		Quotes:       quotes,
		Rooms:        st.rooms,
		Reservations: reservations,
		Invoices:     services.InvoiceService{Clock: clock},
		Auth:         services.AuthService{Staff: st.staff, Secret: []byte(env.JWTSecret), Clock: clock},
		Storage:      st.pinger,
		Backend:      env.StoreBackend,
	}
	r := router.NewRouter(env, api)

	sweeper := services.Sweeper{
		Reservations: reservations,
		Store:        st.reservations,
		Clock:        clock,
		Interval:     env.SweepInterval,
		Batch:        env.SweepBatch,
	}
	if env.RedisURL != "" {
		l, err := lease.NewRedis(env.RedisURL, "")
		if err != nil {
			log.Fatalf("Gagal menyiapkan Redis lease: %v", err)
		}
		defer l.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := l.Ping(pingCtx); err != nil {
			log.Printf("[LEASE] redis belum bisa dihubungi, sweeper tetap berjalan: %v", err)
		}
		cancel()
		sweeper.Lease = l
	}

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		sweeper.Run(sweepCtx)
	}()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown server gagal: %v", err)
	}
	stopSweeper()
	<-sweeperDone

	log.Println("Server berhenti dengan aman.")
}

// memoryStorage seeds a small demo hotel so the in-memory backend is usable out of the box.
func memoryStorage(env intconfig.Env) storage {
	rates := &repositories.MemoryRates{}
	rooms := &repositories.MemoryRooms{}
	staff := &repositories.MemoryStaff{}

	year := time.Now().UTC().Year()
	rates.Add(
		models.RatePeriod{
			ID: 1, RoomTypeID: 1,
			StartDate:         time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:           time.Date(year+1, 12, 31, 0, 0, 0, 0, time.UTC),
			WeekdayPriceMinor: 50000000, WeekendPriceMinor: 65000000,
			Currency: env.DefaultCurrency,
		},
		models.RatePeriod{
			ID: 2, RoomTypeID: 2,
			StartDate:         time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:           time.Date(year+1, 12, 31, 0, 0, 0, 0, time.UTC),
			WeekdayPriceMinor: 90000000, WeekendPriceMinor: 110000000,
			DiscountBasisPoints: 500,
			Currency:            env.DefaultCurrency,
		},
	)
	for _, id := range []int64{101, 102, 103} {
		rooms.Add(id, 1)
	}
	for _, id := range []int64{201, 202} {
		rooms.Add(id, 2)
	}

	if env.AdminEmail != "" && env.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(env.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Gagal hash password admin: %v", err)
		}
		staff.Add(repositories.StaffUser{ID: 1, Email: env.AdminEmail, PasswordHash: string(hash), Role: "admin", Status: "active"})
	}

	return storage{
		rates:        rates,
		rooms:        rooms,
		ledger:       ledger.NewMemory(),
		reservations: repositories.NewMemoryReservations(),
		staff:        staff,
	}
}
