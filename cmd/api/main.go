package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xavierca1/assistant-flow-hub/internal/config"
	"github.com/xavierca1/assistant-flow-hub/internal/entity"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/auth"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/cache"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/database"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/handlers"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/http/middleware"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/integration"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/mail"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/queue"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/socket"
	"github.com/xavierca1/assistant-flow-hub/internal/infra/worker"
	"github.com/xavierca1/assistant-flow-hub/internal/usecase"
)

// reminderMetrics conta os lembretes que chegaram na fila.
type reminderMetrics struct {
	worker.ReminderPublisher
}

func (r reminderMetrics) PublishReminder(ctx context.Context, a entity.Appointment) error {
	if err := r.ReminderPublisher.PublishReminder(ctx, a); err != nil {
		return err
	}
	middleware.RecordReminderEnqueued()
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env não encontrado, usando variáveis do ambiente")
	}

	cfg := config.Load()
	loc := cfg.Location()
	entity.SetBusinessLocation(loc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Infra
	if cfg.MigrationsEnabled {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("❌ Migrations falharam: %v", err)
		}
	}

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	redisClient, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Redis indisponível: %v", err)
	}
	defer redisClient.Close()

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("❌ RabbitMQ indisponível: %v", err)
	}
	defer rabbitMQ.Close()

	// 2. Repositórios e adapters
	leadRepo := database.NewLeadRepository(db)
	appointmentRepo := database.NewAppointmentRepository(db)

	producer := queue.NewProducer(rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)

	identity := auth.NewGoogleSessionProvider(
		cfg.GoogleClientID,
		cfg.GoogleTokenInfoURL,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryHours)*time.Hour,
		auth.NewTokenBlacklist(redisClient),
	)

	hub := socket.NewHub()
	go hub.Run(ctx)

	// 3. Workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go func() {
		if err := notificationWorker.Start(ctx, queue.QueueName); err != nil {
			log.Printf("❌ Worker de notificações parou: %v", err)
		}
	}()

	reminders := worker.NewReminderWorker(
		appointmentRepo,
		reminderMetrics{producer},
		loc,
		time.Duration(cfg.ReminderWindowHours)*time.Hour,
		cfg.ReminderCron,
	)
	go func() {
		if err := reminders.Start(ctx); err != nil {
			log.Printf("❌ Reminder Worker não iniciou: %v", err)
		}
	}()

	// 4. UseCases
	leadManager := usecase.NewLeadManager(leadRepo, hub)
	appointmentManager := usecase.NewAppointmentManager(appointmentRepo, hub, loc)
	scheduleUC := usecase.NewScheduleAppointmentUseCase(appointmentManager, producer, cfg.MeetingBaseURL, loc)
	integrationSettings := usecase.NewIntegrationSettings(integration.Defaults()...)
	dashboardUC := usecase.NewDashboardUseCase(leadManager, appointmentManager)

	// 5. Handlers + Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Leads:          handlers.NewLeadHandler(leadManager, loc),
		Appointments:   handlers.NewAppointmentHandler(appointmentManager),
		Scheduling:     handlers.NewSchedulingHandler(scheduleUC),
		Integrations:   handlers.NewIntegrationHandler(integrationSettings),
		Dashboard:      handlers.NewDashboardHandler(dashboardUC),
		Auth:           handlers.NewAuthHandler(identity, cfg.SignInRatePerMin),
		Health:         handlers.NewHealthHandler(db, rabbitMQ.Conn, redisClient),
		Socket:         socket.NewHandler(hub, identity, cfg.CORSAllowedOrigins),
		Identity:       identity,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🔥 Assistente rodando na porta %s (fuso %s)", cfg.Port, loc)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown forçado: %v", err)
		os.Exit(1)
	}
	log.Println("Servidor encerrado")
}
