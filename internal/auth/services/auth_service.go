package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carreto-freight-api/internal/auth/models"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/authx"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type account struct {
	name string
	role string
	hash []byte
}

// AuthService implements the demo sign-in flow. Two fixed accounts get
// real password checks; any other credential signs in as a mock user
// whose role is inferred from the credential itself.
type AuthService struct {
	sessions *session.Manager
	tokenTTL time.Duration
	accounts map[string]account
}

func NewAuthService(sessions *session.Manager, tokenTTL time.Duration) *AuthService {
	seed := []struct {
		credential, password, name, role string
	}{
		{"motorista@carreto.app", "motorista123", "Motorista Demo", session.RoleDriver},
		{"cliente@carreto.app", "cliente123", "Cliente Demo", session.RoleClient},
	}

	accounts := make(map[string]account, len(seed))
	for _, s := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			continue
		}
		accounts[s.credential] = account{name: s.name, role: s.role, hash: hash}
	}
	return &AuthService{sessions: sessions, tokenTTL: tokenTTL, accounts: accounts}
}

// Login creates a session and issues its token. Demo accounts verify the
// password; everything else is accepted as-is.
func (s *AuthService) Login(credential, password string) (*models.LoginResponse, error) {
	credential = strings.TrimSpace(strings.ToLower(credential))
	if credential == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	name := displayName(credential)
	role := inferRole(credential)
	if acct, ok := s.accounts[credential]; ok {
		if bcrypt.CompareHashAndPassword(acct.hash, []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		name = acct.name
		role = acct.role
	}

	sess := s.sessions.Create(name, role)
	token, err := authx.GenerateSessionToken(sess.ID, name, role, s.tokenTTL)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		Name:      name,
		Role:      role,
		SessionID: sess.ID.String(),
	}, nil
}

// Guest creates an anonymous client session so the quote wizard works
// before sign-in, mirroring the guest flow of the mobile app.
func (s *AuthService) Guest() (*models.LoginResponse, error) {
	const name = "Visitante"
	sess := s.sessions.Create(name, session.RoleClient)
	token, err := authx.GenerateSessionToken(sess.ID, name, session.RoleClient, s.tokenTTL)
	if err != nil {
		s.sessions.Delete(sess.ID)
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		Name:      name,
		Role:      session.RoleClient,
		SessionID: sess.ID.String(),
	}, nil
}

// Logout drops the session; its token becomes useless even if unexpired.
func (s *AuthService) Logout(sessionID uuid.UUID) {
	s.sessions.Delete(sessionID)
}

// inferRole maps the credential to a role: anything mentioning a driver
// signs in as one.
func inferRole(credential string) string {
	if strings.Contains(credential, "motorista") || strings.Contains(credential, "driver") {
		return session.RoleDriver
	}
	return session.RoleClient
}

// displayName derives a presentable name from the credential local part.
func displayName(credential string) string {
	local, _, _ := strings.Cut(credential, "@")
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return credential
	}
	return strings.Join(words, " ")
}
