package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/nido-go-api/internal/config"
	"github.com/noah-isme/nido-go-api/internal/database"
	"github.com/noah-isme/nido-go-api/internal/handler"
	"github.com/noah-isme/nido-go-api/internal/middleware"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
	"github.com/noah-isme/nido-go-api/internal/router"
	"github.com/noah-isme/nido-go-api/internal/service"
	"github.com/noah-isme/nido-go-api/pkg/payments"
	"github.com/noah-isme/nido-go-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.School{},
		&models.Lead{},
		&models.WaitlistEntry{},
		&models.WaitlistCounter{},
		&models.Transaction{},
		&models.StudentDocument{},
		&models.Student{},
		&models.CalendarEvent{},
		&models.HealthRecord{},
		&models.MedicationRecord{},
		&models.IncidentReport{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, caching disabled")
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var documentStorage service.DocumentStorage
	if cfg.StorageConfigured() {
		s3Store, err := storage.New(storage.Config{
			Region:    cfg.StorageRegion,
			Bucket:    cfg.StorageBucket,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create s3 client: %v", err)
		}
		documentStorage = s3Store
	} else {
		logger.Warn().Msg("document storage not configured, uploads disabled")
	}

	var provider *payments.Provider
	if cfg.StripeSecretKey != "" {
		provider, err = payments.New(cfg.StripeSecretKey, logger)
		if err != nil {
			log.Fatalf("failed to create stripe client: %v", err)
		}
	} else {
		logger.Warn().Msg("stripe not configured, payment metadata will omit provider")
	}

	var natsConn *nats.Conn
	if cfg.NATSAddr != "" {
		natsConn, err = nats.Connect(cfg.NATSAddr)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, event publishing disabled")
			natsConn = nil
		}
	}
	if natsConn != nil {
		defer natsConn.Drain()
	}
	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubjectBase, logger)

	validate := validator.New(validator.WithRequiredStructEnabled())

	schoolRepo := repository.NewSchoolRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	healthRepo := repository.NewHealthRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)

	schoolService := service.NewSchoolService(schoolRepo, redisClient, cfg.DirectoryCacheTTL, validate, logger)
	registrationService := service.NewRegistrationService(schoolRepo, leadRepo, waitlistRepo, transactionRepo, provider, events, validate, logger)
	documentService := service.NewDocumentService(documentStorage, documentRepo, leadRepo, validate, cfg.MaxUploadSizeMB, logger)
	dashboardService := service.NewDashboardService(leadRepo, waitlistRepo, documentRepo, transactionRepo, redisClient, cfg.DashboardCacheTTL, logger)
	studentService := service.NewStudentService(studentRepo, schoolRepo, validate, logger)
	calendarService := service.NewCalendarService(calendarRepo, schoolRepo, validate, logger)
	healthService := service.NewHealthService(healthRepo, studentRepo, validate, logger)
	incidentService := service.NewIncidentService(incidentRepo, schoolRepo, events, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SchoolHandler:       handler.NewSchoolHandler(schoolService, logger),
		RegistrationHandler: handler.NewRegistrationHandler(registrationService, logger),
		DocumentHandler:     handler.NewDocumentHandler(documentService, logger),
		DashboardHandler:    handler.NewDashboardHandler(dashboardService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		CalendarHandler:     handler.NewCalendarHandler(calendarService, logger),
		HealthRecordHandler: handler.NewHealthRecordHandler(healthService, logger),
		IncidentHandler:     handler.NewIncidentHandler(incidentService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
