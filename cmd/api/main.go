package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/Waynenyarky/capstone-booking/internal/booking"
	"github.com/Waynenyarky/capstone-booking/internal/directory"
	"github.com/Waynenyarky/capstone-booking/internal/http/handlers"
	"github.com/Waynenyarky/capstone-booking/internal/repo"
	"github.com/Waynenyarky/capstone-booking/internal/repo/memory"
	"github.com/Waynenyarky/capstone-booking/internal/repo/postgres"
	"github.com/Waynenyarky/capstone-booking/pkg/cache"
	"github.com/Waynenyarky/capstone-booking/pkg/config"
	"github.com/Waynenyarky/capstone-booking/pkg/database"
	"github.com/Waynenyarky/capstone-booking/pkg/events"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
	mw "github.com/Waynenyarky/capstone-booking/pkg/middleware"
)

type repos struct {
	providers    repo.ProviderRepo
	services     repo.ServiceRepo
	offerings    repo.OfferingRepo
	addresses    repo.AddressRepo
	appointments repo.AppointmentRepo
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	var rs repos
	if cfg.Database.URL == "" {
		// Dev mode: in-memory storage, no external dependencies needed.
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		store := memory.NewStore()
		rs = repos{
			providers:    store.Providers(),
			services:     store.Services(),
			offerings:    store.Offerings(),
			addresses:    store.Addresses(),
			appointments: store.Appointments(),
		}
	} else {
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		rs = repos{
			providers:    postgres.NewProviderRepo(pool),
			services:     postgres.NewServiceRepo(pool),
			offerings:    postgres.NewOfferingRepo(pool),
			addresses:    postgres.NewAddressRepo(pool),
			appointments: postgres.NewAppointmentRepo(pool),
		}
	}

	store, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	var bus events.EventBus
	if cfg.NATS.URL == "" {
		logger.Warn("NATS_URL not set, events disabled")
		bus = events.NoopBus{}
	} else {
		natsBus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		bus = natsBus
	}
	defer bus.Close()

	bookingSvc := booking.NewService(rs.providers, rs.services, rs.offerings,
		rs.addresses, rs.appointments, bus, cfg.Booking.EnforceUniqueSlots)
	directorySvc := directory.NewService(rs.offerings, store, cfg.Directory.CacheTTL)

	offeringsHandler := handlers.NewOfferingsHandler(directorySvc, bookingSvc, cfg.Auth.JWTSecret)
	appointmentsHandler := handlers.NewAppointmentsHandler(bookingSvc, cfg.Auth.JWTSecret)

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("api"))
	r.Use(mw.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Mount("/offerings", offeringsHandler.Routes())
	r.With(idempotency(store, cfg.Booking.IdempotencyTTL)).Mount("/appointments", appointmentsHandler.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down api...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", "error", err)
		}
	}()

	logger.Info("Starting api", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// idempotency wires the redis-backed store into the middleware; a nil store
// turns the middleware into a pass-through.
func idempotency(store *cache.Store, ttl time.Duration) func(http.Handler) http.Handler {
	if store == nil {
		return mw.IdempotencyMiddleware(nil, ttl)
	}
	return mw.IdempotencyMiddleware(store, ttl)
}
