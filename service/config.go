package service

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/valubaby/valu-store/internal/email"
	"github.com/valubaby/valu-store/internal/jobs"
	"github.com/valubaby/valu-store/internal/payment"
)

type Config struct {
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	Port            string        `env:"PORT" envDefault:"3001"`
	BaseURL         string        `env:"BASE_URL" envDefault:"http://localhost:3001"`
	FrontendURL     string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	DBPath          string        `env:"DB_PATH" envDefault:"./db/valu.db"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	Admin struct {
		Password string `env:"ADMIN_PASSWORD"`
	}

	Email struct {
		Host    string `env:"BREVO_SMTP_HOST" envDefault:"smtp-relay.brevo.com"`
		Port    int    `env:"BREVO_SMTP_PORT" envDefault:"587"`
		Login   string `env:"BREVO_SMTP_LOGIN"`
		Key     string `env:"BREVO_SMTP_KEY"`
		From    string `env:"EMAIL_FROM"`
		AdminTo string `env:"EMAIL_TO_INTERNAL"`
	}

	Notify struct {
		QueueSize   int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`
		Workers     int           `env:"NOTIFY_WORKERS" envDefault:"2"`
		SendTimeout time.Duration `env:"NOTIFY_SEND_TIMEOUT" envDefault:"30s"`
	}

	Payment struct {
		WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"51901440221"`
		YapeNumber     string `env:"YAPE_NUMBER" envDefault:"901 440 221"`
		PlinNumber     string `env:"PLIN_NUMBER" envDefault:"901 440 221"`
		BankName       string `env:"BANK_NAME" envDefault:"BBVA"`
		BankAccount    string `env:"BANK_ACCOUNT" envDefault:"0011-0253-0200-4420-47"`
		BankHolder     string `env:"BANK_HOLDER" envDefault:"VALÚ BABY E.I.R.L."`
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) EmailConfig() email.Config {
	return email.Config{
		Host:         c.Email.Host,
		Port:         c.Email.Port,
		Username:     c.Email.Login,
		Password:     c.Email.Key,
		From:         c.Email.From,
		AdminTo:      c.Email.AdminTo,
		DashboardURL: c.FrontendURL + "/admin",
	}
}

func (c *Config) DispatcherConfig() jobs.DispatcherConfig {
	return jobs.DispatcherConfig{
		QueueSize:   c.Notify.QueueSize,
		Workers:     c.Notify.Workers,
		SendTimeout: c.Notify.SendTimeout,
	}
}

func (c *Config) PaymentConfig() payment.Config {
	return payment.Config{
		WhatsAppNumber: c.Payment.WhatsAppNumber,
		YapeNumber:     c.Payment.YapeNumber,
		PlinNumber:     c.Payment.PlinNumber,
		BankName:       c.Payment.BankName,
		BankAccount:    c.Payment.BankAccount,
		BankHolder:     c.Payment.BankHolder,
	}
}
