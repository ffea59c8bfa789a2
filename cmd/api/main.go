package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"

	"github.com/odiabiz/odiabiz-api/internal/core/analytics"
	"github.com/odiabiz/odiabiz-api/internal/core/dashboard"
	"github.com/odiabiz/odiabiz-api/internal/core/email"
	"github.com/odiabiz/odiabiz-api/internal/core/llm"
	"github.com/odiabiz/odiabiz-api/internal/core/pairing"
	"github.com/odiabiz/odiabiz-api/internal/core/payment"
	"github.com/odiabiz/odiabiz-api/internal/core/registration"
	"github.com/odiabiz/odiabiz-api/internal/core/whatsapp"
	"github.com/odiabiz/odiabiz-api/internal/handlers"
	"github.com/odiabiz/odiabiz-api/internal/jobs"
	"github.com/odiabiz/odiabiz-api/internal/repositories"
	"github.com/odiabiz/odiabiz-api/internal/services"
	"github.com/odiabiz/odiabiz-api/internal/shared/config"
	"github.com/odiabiz/odiabiz-api/internal/shared/database"
	"github.com/odiabiz/odiabiz-api/internal/shared/utils"

	_ "github.com/odiabiz/odiabiz-api/docs"
)

// @title OdiaBiz API
// @version 1.0
// @description WhatsApp AI customer assistant for Nigerian small businesses
// @contact.name OdiaBiz Support
// @contact.email support@odiabiz.ng
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting odiabiz-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL, cfg.Env)
	defer db.Close()

	// Init repositories
	accountRepo := repositories.NewAccountRepo(db.GORM)
	interactionRepo := repositories.NewInteractionRepo(db.GORM)
	paymentRepo := repositories.NewPaymentRepo(db.GORM)
	healthRepo := repositories.NewHealthRepo(db.DB)

	// Init email (optional; registration works without it)
	var mailer registration.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = email.NewService(email.NewResendProvider(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName))
	}

	// Init WhatsApp transport
	waService := whatsapp.NewService(cfg)

	// Init pairing manager; a completed pairing counts as account activity
	pairingMgr := pairing.NewManager(waService, pairing.Options{
		ProbeInterval: time.Duration(cfg.PairingProbeSecs) * time.Second,
		Ceiling:       time.Duration(cfg.PairingCeilSecs) * time.Second,
	}, func(accountID uuid.UUID) {
		if err := accountRepo.TouchLastActive(accountID); err != nil {
			utils.LogWarn("pairing activity update failed", map[string]interface{}{
				"account_id": accountID,
			})
		}
	})

	// Init services
	submitter := registration.NewSubmitter(accountRepo, mailer)
	dashboardAgg := dashboard.NewAggregator(accountRepo, interactionRepo)
	platformAgg := analytics.NewAggregator(db.GORM)
	responder := llm.NewOpenAIResponder(cfg.OpenAIKey)
	verifier := payment.NewVerifier(
		payment.NewFlutterwaveGateway(cfg.FlutterwaveKey, cfg.FlutterwaveURL),
		paymentRepo,
		accountRepo,
	)
	messageService := services.NewMessageService(waService, responder, accountRepo, interactionRepo)

	// Bring the transport online and route its inbound messages through
	// the AI reply path. The simulated provider connects instantly; the
	// real one keeps retrying in the background.
	go func() {
		if err := waService.Connect(); err != nil {
			utils.LogError("WhatsApp connect failed", err, nil)
			return
		}
		if err := waService.StartListening(func(msg whatsapp.InboundMessage) {
			messageService.HandleInbound(cfg.BusinessNumber, msg)
		}); err != nil {
			utils.LogError("WhatsApp listener failed", err, nil)
		}
	}()

	// Init handlers
	registrationHandler := handlers.NewRegistrationHandler(submitter)
	pairingHandler := handlers.NewPairingHandler(pairingMgr, accountRepo)
	dashboardHandler := handlers.NewDashboardHandler(dashboardAgg)
	paymentHandler := handlers.NewPaymentHandler(verifier)
	webhookHandler := handlers.NewWebhookHandler(messageService)
	adminHandler := handlers.NewAdminHandler(accountRepo, platformAgg)
	healthHandler := handlers.NewHealthHandler(healthRepo)

	// Init scheduler
	scheduler := jobs.NewScheduler(pairingMgr, accountRepo, interactionRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "OdiaBiz API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Registration
	app.Post("/api/register", registrationHandler.Register)

	// Pairing
	app.Post("/api/pairing/start", pairingHandler.Start)
	app.Get("/api/pairing/:id/status", pairingHandler.Status)
	app.Get("/api/pairing/:id/qr", pairingHandler.QR)
	app.Post("/api/pairing/:id/regenerate", pairingHandler.Regenerate)

	// Dashboard
	app.Get("/api/dashboard/:accountID", dashboardHandler.Get)

	// Payments
	app.Get("/api/payment/verify/:txRef", paymentHandler.Verify)
	app.Get("/api/payment/callback", paymentHandler.Callback)

	// Inbound message webhook
	app.Post("/api/webhook/message", webhookHandler.InboundMessage)

	// Admin
	admin := app.Group("/api/admin", handlers.RequireKey(cfg.AdminAPIKey))
	admin.Get("/accounts", adminHandler.ListAccounts)
	admin.Get("/stats", adminHandler.Stats)

	// Start server
	log.Printf("✅ odiabiz-api running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
