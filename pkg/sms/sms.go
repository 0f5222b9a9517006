// Package sms sends booking-confirmation messages via Twilio.
// Without credentials it runs in mock mode and only logs.
package sms

import (
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers transactional SMS messages
type Sender struct {
	client    *twilio.RestClient
	fromPhone string
	enabled   bool
	logger    *slog.Logger
}

// Config holds Twilio credentials. Enabled=false selects mock mode.
type Config struct {
	AccountSID string
	APIKey     string
	APISecret  string
	FromPhone  string
	Enabled    bool
}

// NewSender creates a new SMS sender. With incomplete credentials the
// sender operates in mock mode: messages are logged, not sent.
func NewSender(cfg Config, logger *slog.Logger) *Sender {
	if !cfg.Enabled || cfg.AccountSID == "" || cfg.APIKey == "" || cfg.APISecret == "" || cfg.FromPhone == "" {
		return &Sender{enabled: false, logger: logger}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.APIKey,
		Password:   cfg.APISecret,
		AccountSid: cfg.AccountSID,
	})

	return &Sender{
		client:    client,
		fromPhone: cfg.FromPhone,
		enabled:   true,
		logger:    logger,
	}
}

// SendBookingConfirmation notifies a client that their freight order was
// registered. Best-effort: the booking flow never fails on SMS errors.
func (s *Sender) SendBookingConfirmation(toPhone, orderID, price, timeSlot string) error {
	body := fmt.Sprintf("Carreto do Carlos: pedido %s confirmado. Valor: %s. Janela: %s.", orderID, price, timeSlot)

	if !s.enabled {
		s.logger.Info("sms mock mode",
			slog.String("to", toPhone),
			slog.String("body", body),
		)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(s.fromPhone)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("error sending confirmation SMS: %w", err)
	}
	return nil
}
