package models

// LoginRequest is the mock sign-in payload. Any credential works; known
// demo accounts additionally verify the password.
type LoginRequest struct {
	Credential string `json:"credential" example:"motorista@carreto.app"`
	Password   string `json:"password" example:"motorista123"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string `json:"token"`
	Name      string `json:"name" example:"Motorista Demo"`
	Role      string `json:"role" example:"driver"`
	SessionID string `json:"session_id"`
}
