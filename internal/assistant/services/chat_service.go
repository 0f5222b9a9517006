package services

import (
	"context"
	"errors"
	"fmt"

	freight "carreto-freight-api/internal/freight/models"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/genai"
)

var ErrNotConfigured = errors.New("assistant is not configured")

// Model answers one assistant message given the current truck context.
type Model interface {
	Ask(ctx context.Context, message string, state genai.AskContext) (string, error)
}

// ChatService answers logistics questions with the session's live state
// as context. Stateless between calls.
type ChatService struct {
	model Model
}

func NewChatService(model Model) *ChatService {
	return &ChatService{model: model}
}

// Chat rebuilds the truck context from the session and forwards the
// message to the model.
func (s *ChatService) Chat(ctx context.Context, sess *session.Session, message string) (string, error) {
	if s.model == nil {
		return "", ErrNotConfigured
	}

	route := sess.Route.Status()
	state := genai.AskContext{
		RouteActive: route.Active,
		NextStop:    route.NextStop,
	}

	sess.Lock()
	for _, j := range sess.Jobs() {
		label := fmt.Sprintf("%s (%s)", j.CargoDescription, j.WeightLabel)
		switch j.Status {
		case freight.StatusDelivered:
			state.DeliveredCargo = append(state.DeliveredCargo, label)
		case freight.StatusPending, freight.StatusInTransit:
			state.PendingCargo = append(state.PendingCargo, label)
		}
	}
	sess.Unlock()

	return s.model.Ask(ctx, message, state)
}
