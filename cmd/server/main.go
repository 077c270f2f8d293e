package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"agendaja/internal/api"
	"agendaja/internal/auth"
	"agendaja/internal/repository"
	"agendaja/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	catalogRepo := repository.NewCatalogRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifier := service.NewNotifyService()
	bookingSvc := service.NewBookingService(catalogRepo, availabilityRepo, bookingRepo, notifier)
	catalogSvc := service.NewCatalogService(catalogRepo, availabilityRepo)
	adminSvc := service.NewAdminService(bookingRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo)

	publicHandler := api.NewPublicHandler(bookingSvc, catalogSvc)
	adminHandler := api.NewAdminHandler(adminSvc, bookingSvc, catalogSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc, catalogSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/signup", adminAuthHandler.Signup).Methods("POST")
	r.HandleFunc("/api/tenants/{slug}", publicHandler.GetTenantPage).Methods("GET")
	r.HandleFunc("/api/slots", publicHandler.ListSlots).Methods("GET")
	r.HandleFunc("/api/bookings", publicHandler.CreateBooking).Methods("POST")

	// Admin endpoints (protected)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods("GET")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatus).Methods("PUT")
	admin.HandleFunc("/services", adminHandler.ListServices).Methods("GET")
	admin.HandleFunc("/services", adminHandler.CreateService).Methods("POST")
	admin.HandleFunc("/services/{id}", adminHandler.UpdateService).Methods("PUT")
	admin.HandleFunc("/professionals", adminHandler.ListProfessionals).Methods("GET")
	admin.HandleFunc("/professionals", adminHandler.CreateProfessional).Methods("POST")
	admin.HandleFunc("/professionals/{id}", adminHandler.UpdateProfessional).Methods("PUT")
	admin.HandleFunc("/professionals/{id}/availability", adminHandler.GetWeeklySchedule).Methods("GET")
	admin.HandleFunc("/professionals/{id}/availability", adminHandler.ReplaceWeeklySchedule).Methods("PUT")

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.CompleteFinishedBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("30 3 * * *", func() {
		deleted, err := jobSvc.PurgeOldPendingBookings(time.Now().UTC().Add(-24 * time.Hour))
		if err != nil {
			log.Printf("Cron Job error: %v", err)
			return
		}
		if deleted > 0 {
			log.Printf("Cron Job: purged %d old pending bookings", deleted)
		}
	})
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
