package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"carreto-freight-api/internal/session"
)

func mustParse(t *testing.T, id string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("invalid session id %q: %v", id, err)
	}
	return parsed
}

func testManager(t *testing.T) *session.Manager {
	t.Helper()
	return session.NewManager(session.Factory{
		TickInterval: time.Hour,
		Logger:       slog.New(slog.DiscardHandler),
	}, time.Hour, slog.New(slog.DiscardHandler))
}

func TestLoginRoleHeuristic(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(testManager(t), time.Hour)

	tests := []struct {
		credential string
		wantRole   string
	}{
		{"joao.motorista@example.com", session.RoleDriver},
		{"driver42@example.com", session.RoleDriver},
		{"maria@example.com", session.RoleClient},
		{"MOTORISTA@EXAMPLE.COM", session.RoleDriver},
	}

	for _, tt := range tests {
		t.Run(tt.credential, func(t *testing.T) {
			resp, err := svc.Login(tt.credential, "whatever")
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if resp.Role != tt.wantRole {
				t.Errorf("role = %s, want %s", resp.Role, tt.wantRole)
			}
			if resp.Token == "" || resp.SessionID == "" {
				t.Error("login must issue a token and session")
			}
		})
	}
}

func TestLoginDemoAccountPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(testManager(t), time.Hour)

	if _, err := svc.Login("motorista@carreto.app", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong demo password should fail, got %v", err)
	}

	resp, err := svc.Login("motorista@carreto.app", "motorista123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Name != "Motorista Demo" || resp.Role != session.RoleDriver {
		t.Fatalf("unexpected demo identity: %+v", resp)
	}
}

func TestLoginRejectsEmpty(t *testing.T) {
	svc := NewAuthService(testManager(t), time.Hour)
	if _, err := svc.Login("", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credential: %v", err)
	}
	if _, err := svc.Login("user@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty password: %v", err)
	}
}

func TestGuestSessionNeedsNoCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	manager := testManager(t)
	svc := NewAuthService(manager, time.Hour)

	resp, err := svc.Guest()
	if err != nil {
		t.Fatalf("Guest: %v", err)
	}
	if resp.Role != session.RoleClient {
		t.Errorf("role = %s, want client", resp.Role)
	}
	if resp.Token == "" || resp.SessionID == "" {
		t.Error("guest must issue a token and session")
	}
	if manager.Count() != 1 {
		t.Fatalf("session count = %d, want 1", manager.Count())
	}

	// A guest session drives the wizard like any signed-in one
	sess, ok := manager.Get(mustParse(t, resp.SessionID))
	if !ok {
		t.Fatal("guest session not registered")
	}
	if sess.Wizard == nil || sess.Wizard.Snapshot().OrderID == "" {
		t.Fatal("guest session should carry a ready wizard draft")
	}
}

func TestLogoutDropsSession(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	manager := testManager(t)
	svc := NewAuthService(manager, time.Hour)

	resp, err := svc.Login("maria@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if manager.Count() != 1 {
		t.Fatalf("session count = %d, want 1", manager.Count())
	}

	sessID := mustParse(t, resp.SessionID)
	svc.Logout(sessID)
	if manager.Count() != 0 {
		t.Fatal("logout should remove the session")
	}
}
