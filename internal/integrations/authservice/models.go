package authservice

import "encoding/json"

// AuthenticateRequest тело запроса POST /auth/authenticate
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest тело запроса POST /auth/refresh-token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Tokens пара токенов из ответа бэкенда
type Tokens struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	StoreConfig  json.RawMessage `json:"storeConfig,omitempty"`
}
