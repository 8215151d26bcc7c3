package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skylineestates/leaddesk/internal/infra/database"
	"github.com/skylineestates/leaddesk/internal/infra/http/handlers"
	"github.com/skylineestates/leaddesk/internal/infra/http/middleware"
	"github.com/skylineestates/leaddesk/internal/infra/integration/whatsapp"
	"github.com/skylineestates/leaddesk/internal/infra/mail"
	"github.com/skylineestates/leaddesk/internal/infra/queue"
	"github.com/skylineestates/leaddesk/internal/infra/spreadsheet"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(os.Getenv("RABBITMQ_URL"))
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	propertyRepo := database.NewPropertyRepository(db)

	// Adapters
	producer := queue.NewProducer(rabbitMQ.Ch)
	waClient := whatsapp.NewClient()
	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("AGENT_EMAIL"),
	)

	// Worker: consumes lead.captured and fans out notifications
	worker := queue.NewWorker(rabbitMQ.Ch, waClient, mailSender)
	go worker.Start(queue.QueueName)

	// Use cases
	captureUC := usecase.NewCaptureLeadUseCase(leadRepo, producer)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, spreadsheet.NewParser())

	// Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, captureUC)
	importHandler := handlers.NewImportHandler(importUC)
	exportHandler := handlers.NewExportHandler(leadRepo)
	propertyHandler := handlers.NewPropertyHandler(propertyRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{os.Getenv("SITE_ORIGIN"), "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads/capture", leadHandler.HandleCapture)
		r.Get("/leads", leadHandler.HandleList)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Get("/leads/stats", leadHandler.HandleStats)
		r.Get("/leads/export", exportHandler.Handle)
		r.Post("/leads/import", importHandler.HandlePreview)
		r.Post("/leads/import/commit", importHandler.HandleCommit)
		r.Put("/leads/{id}", leadHandler.HandleUpdate)
		r.Delete("/leads/{id}", leadHandler.HandleDelete)

		r.Get("/properties", propertyHandler.HandleList)
		r.Post("/properties", propertyHandler.HandleCreate)
		r.Get("/properties/{id}", propertyHandler.HandleGet)
		r.Put("/properties/{id}", propertyHandler.HandleUpdate)
		r.Delete("/properties/{id}", propertyHandler.HandleDelete)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("leaddesk API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
