package services

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/pkg/config"
)

// DriversTopic is the FCM topic every driver device subscribes to.
const DriversTopic = "drivers"

// PushService sends driver push notifications via Firebase Cloud
// Messaging.
type PushService struct {
	client *messaging.Client
	logger *slog.Logger
}

// NewPushService creates a push service from the configured credentials
// (file path preferred, inline JSON as fallback).
func NewPushService(ctx context.Context, cfg config.FCMConfig, logger *slog.Logger) (*PushService, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsPath != "":
		opt = option.WithCredentialsFile(cfg.CredentialsPath)
	case cfg.CredentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	default:
		return nil, fmt.Errorf("fcm credentials are not configured")
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}
	return &PushService{client: client, logger: logger}, nil
}

// NotifyNewJob announces a freshly booked job to the drivers topic.
// Best-effort: failures are logged, never propagated.
func (s *PushService) NotifyNewJob(ctx context.Context, job *freight.FreightJob) {
	message := &messaging.Message{
		Topic: DriversTopic,
		Notification: &messaging.Notification{
			Title: "Novo carreto disponível",
			Body:  fmt.Sprintf("%s: %s (%s)", job.ID, job.Address, job.Price),
		},
		Data: map[string]string{
			"job_id": job.ID,
			"weight": job.WeightLabel,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
		},
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		s.logger.Warn("driver push failed", slog.String("job_id", job.ID), slog.String("error", err.Error()))
	}
}
