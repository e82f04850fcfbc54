package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"

	"wknd-backend/config"
	"wknd-backend/handlers"
	"wknd-backend/internal/paystack"
	_ "wknd-backend/migrations"
	"wknd-backend/monitoring"
	"wknd-backend/notify"
	"wknd-backend/realtime"
	"wknd-backend/security"
	"wknd-backend/services"
	"wknd-backend/store"
	"wknd-backend/utils"
)

func main() {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Create context for background tasks
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPoolSize)
	defer redisClient.Close()

	// Initialize the payment gateway client
	gateway := paystack.NewClient(&paystack.ClientConfig{
		BaseURL:   cfg.PaystackBaseURL,
		SecretKey: cfg.PaystackSecretKey,
	})

	// Initialize supporting components
	db := store.New(app)
	mailer := notify.NewMailer(cfg)
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	limiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute)

	// Initialize services
	paymentService := services.NewPaymentService(gateway, db, cfg)
	ticketService := services.NewTicketService(db, mailer, cfg)

	// Realtime hub
	hub := realtime.NewHub(ctx, db, cfg.ChatAckDelay)
	upgrader := realtime.NewUpgrader(cfg.ClientURL, cfg.Environment == "development")

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(paymentService, ticketService)
	messageHandler := handlers.NewMessageHandler(db, hub)
	sponsorHandler := handlers.NewSponsorHandler(db, hub)
	contactHandler := handlers.NewContactHandler(db, hub)
	authHandler := handlers.NewAuthHandler(db, tokens)
	adminHandler := handlers.NewAdminHandler(db, mailer)
	healthHandler := handlers.NewHealthHandler(redisClient)
	wsHandler := handlers.NewWebsocketHandler(hub, upgrader)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Start background tasks
	go hub.Run()
	if cfg.EnableMetrics {
		go monitoring.StartMetricsServer(cfg.MetricsPort)
	}

	// Setup graceful shutdown
	go handleShutdown(cancel)

	// Register routes
	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Payment endpoints
		e.Router.POST("/api/payments/create-payment",
			limiter.Limit(handlers.WithMetrics("POST", "/api/payments/create-payment", paymentHandler.CreatePayment)))
		e.Router.GET("/api/payments/verify-payment/{reference}",
			handlers.WithMetrics("GET", "/api/payments/verify-payment", paymentHandler.VerifyPayment))
		e.Router.POST("/api/payments/generate-ticket",
			limiter.Limit(handlers.WithMetrics("POST", "/api/payments/generate-ticket", paymentHandler.GenerateTicket)))

		// Message endpoints
		e.Router.GET("/api/messages", messageHandler.ListMessages)
		e.Router.POST("/api/messages", limiter.Limit(messageHandler.CreateMessage))
		e.Router.GET("/api/messages/room/{roomId}", messageHandler.ListRoomMessages)
		e.Router.PUT("/api/messages/{id}/read", messageHandler.MarkRead)

		// Sponsor endpoints
		e.Router.GET("/api/sponsors", sponsorHandler.ListInquiries)
		e.Router.POST("/api/sponsors", limiter.Limit(sponsorHandler.CreateInquiry))
		e.Router.GET("/api/sponsors/status/{status}", sponsorHandler.ListInquiriesByStatus)
		e.Router.GET("/api/sponsors/{id}", sponsorHandler.GetInquiry)
		e.Router.PUT("/api/sponsors/{id}/status", sponsorHandler.UpdateInquiryStatus)

		// Contact form
		e.Router.POST("/api/contact/submit", limiter.Limit(contactHandler.Submit))

		// Auth endpoints
		e.Router.POST("/api/auth/register", limiter.Limit(authHandler.Register))
		e.Router.POST("/api/auth/login", limiter.Limit(authHandler.Login))
		e.Router.GET("/api/auth/profile", authHandler.Require(authHandler.Profile))
		e.Router.PUT("/api/auth/profile", authHandler.Require(authHandler.UpdateProfile))
		e.Router.GET("/api/auth/verify", authHandler.Require(authHandler.Verify))

		// Admin endpoints
		e.Router.GET("/api/admin/users", authHandler.Require(adminHandler.ListUsers))
		e.Router.GET("/api/admin/tickets", authHandler.Require(adminHandler.ListTickets))
		e.Router.GET("/api/admin/messages", authHandler.Require(adminHandler.ListMessages))
		e.Router.GET("/api/admin/payments", authHandler.Require(adminHandler.ListPayments))
		e.Router.GET("/api/admin/stats", authHandler.Require(adminHandler.Stats))
		e.Router.POST("/api/admin/messages/{id}/reply", authHandler.Require(adminHandler.ReplyToMessage))
		e.Router.GET("/api/admin/export/{type}", authHandler.Require(adminHandler.Export))

		// Websocket channel
		e.Router.GET("/ws", wsHandler.Connect)

		// Health check
		e.Router.GET("/health", healthHandler.Health)

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
