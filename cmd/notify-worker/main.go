package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Waynenyarky/capstone-booking/internal/notify"
	"github.com/Waynenyarky/capstone-booking/internal/platform/mailer"
	"github.com/Waynenyarky/capstone-booking/pkg/config"
	"github.com/Waynenyarky/capstone-booking/pkg/events"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.NATS.URL == "" {
		logger.Error("NATS_URL is required for the notify worker")
		os.Exit(1)
	}
	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	var m mailer.Mailer
	if cfg.Mail.DevMode || cfg.Mail.MailerSendKey == "" {
		logger.Warn("mail dev mode, emails will be logged only")
		m = mailer.DevMailer{}
	} else {
		m = mailer.NewMailerSend(cfg.Mail.MailerSendKey, cfg.Mail.FromName, cfg.Mail.FromEmail)
	}

	consumer := notify.NewConsumer(bus, m)
	if err := consumer.Start(); err != nil {
		logger.Error("Failed to subscribe", "error", err)
		os.Exit(1)
	}

	logger.Info("Notify worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notify worker...")
}
