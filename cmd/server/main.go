package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/AnshRaj112/ojt-journal-backend/internal/config"
	"github.com/AnshRaj112/ojt-journal-backend/internal/database"
	"github.com/AnshRaj112/ojt-journal-backend/internal/handlers"
	"github.com/AnshRaj112/ojt-journal-backend/internal/middleware"
	"github.com/AnshRaj112/ojt-journal-backend/internal/routes"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
	"github.com/AnshRaj112/ojt-journal-backend/internal/storage/mongostore"
	"github.com/AnshRaj112/ojt-journal-backend/internal/storage/pgstore"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	loc := cfg.Location()
	log.Printf("📅 Calendar time zone: %s (workday fail-open: %v)", loc, cfg.WorkdayFailOpen)

	// Connect to PostgreSQL (identity accounts)
	log.Printf("Connecting to PostgreSQL...")
	pg, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres(pg)

	// Connect to Redis (sessions, cache, events)
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis(rdb)

	// Connect to MongoDB (users, journals, workdays)
	log.Printf("Connecting to MongoDB...")
	mongoClient, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect(mongoClient)

	if err := mongostore.EnsureIndexes(context.Background(), db); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	var uploader services.Uploader
	if cfg.UploadsEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Journal attachments will not be available")
		} else {
			uploader = cld
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Journal attachments will not be available")
	}

	users := mongostore.NewUserStore(db)
	journals := mongostore.NewJournalStore(db)
	workdays := mongostore.NewWorkdayStore(db)
	accounts := pgstore.NewAccountStore(pg)
	sessions := services.NewRedisSessions(rdb, cfg.SessionTTL)
	cache := services.NewRedisCache(rdb)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := services.NewEventHub()
	events := services.NewRedisEvents(rdb, hub)
	events.Start(ctx)

	journalService := services.NewJournalService(users, journals, workdays, services.JournalOptions{
		Location: loc,
		FailOpen: cfg.WorkdayFailOpen,
		Cache:    cache,
		Events:   events,
		Uploader: uploader,
	})
	adminService := services.NewAdminService(users, journals, workdays, accounts, services.AdminOptions{
		Cache:    cache,
		StatsTTL: cfg.StatsCacheTTL,
		Events:   events,
	})
	authService := services.NewAuthService(accounts, users, sessions)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := adminService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		switch {
		case err != nil:
			log.Printf("⚠️  WARNING: failed to create admin %s: %v", cfg.AdminEmail, err)
		case created:
			log.Printf("✅ Admin account %s created", cfg.AdminEmail)
		}
	}

	h := handlers.New(authService, journalService, adminService, hub, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: per-IP token buckets. Elsewhere: shared Redis window.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.RedisRateLimit(rdb, middleware.RateLimitMaxRequests, middleware.RateLimitWindow))
	}

	r.Get("/health", handlers.Health)
	routes.SetupRoutes(r, h, authService, cfg.StaticDir)
	if cfg.StaticDir != "" {
		log.Printf("📁 Serving client pages from %s", cfg.StaticDir)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 OJT journal backend running on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server:", err)
	}
}
