package token

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/integrations/authservice"
	"github.com/m04kA/SMC-RescheduleService/pkg/authctx"
)

// DefaultLeeway за сколько до истечения токен считается устаревшим
const DefaultLeeway = 30 * time.Second

// Credentials начальные данные для получения токена
type Credentials struct {
	Token        string
	RefreshToken string
	Email        string
	Password     string
}

// Source выдает действующий bearer-токен для обращений к бэкенду.
// Токен обновляется по refresh-токену, а при его отказе выполняется повторный вход.
type Source struct {
	auth   AuthClient
	clock  TimeProvider
	leeway time.Duration
	logger Logger

	mu           sync.Mutex
	token        string
	refreshToken string
	email        string
	password     string
}

// NewSource создает новый источник токенов. auth может быть nil для статического токена.
func NewSource(auth AuthClient, creds Credentials, clock TimeProvider, leeway time.Duration, logger Logger) *Source {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &Source{
		auth:         auth,
		clock:        clock,
		leeway:       leeway,
		logger:       logger,
		token:        creds.Token,
		refreshToken: creds.RefreshToken,
		email:        creds.Email,
		password:     creds.Password,
	}
}

// Token возвращает действующий токен, при необходимости обновляя его
func (s *Source) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Текущий токен еще жив
	if s.token != "" && !authctx.Expired(s.token, s.clock.Now(), s.leeway) {
		return s.token, nil
	}

	hadSession := s.token != "" || s.refreshToken != ""
	s.token = ""

	if s.auth == nil {
		if hadSession {
			return "", ErrSessionExpired
		}
		return "", ErrNoCredentials
	}

	// 2. Пробуем обновить по refresh-токену
	if s.refreshToken != "" {
		tokens, err := s.auth.Refresh(ctx, s.refreshToken)
		if err == nil {
			s.store(tokens)
			s.logger.Info("Token: access token refreshed")
			return s.token, nil
		}
		if !errors.Is(err, authservice.ErrRefreshRejected) {
			s.logger.Error("Token: failed to refresh token: %v", err)
			return "", fmt.Errorf("%w: failed to refresh token: %v", ErrInternal, err)
		}
		s.logger.Warn("Token: refresh token rejected, falling back to sign in")
		s.refreshToken = ""
	}

	// 3. Входим заново по email и паролю
	if s.email == "" || s.password == "" {
		if hadSession {
			return "", ErrSessionExpired
		}
		return "", ErrNoCredentials
	}

	tokens, err := s.auth.Authenticate(ctx, s.email, s.password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrAccountNotActivated):
			s.logger.Warn("Token: account %s is not activated", s.email)
			return "", ErrAccountNotActivated
		case errors.Is(err, authservice.ErrInvalidCredentials):
			s.logger.Warn("Token: invalid credentials for %s", s.email)
			return "", ErrSessionExpired
		default:
			s.logger.Error("Token: failed to authenticate: %v", err)
			return "", fmt.Errorf("%w: failed to authenticate: %v", ErrInternal, err)
		}
	}

	s.store(tokens)
	s.logger.Info("Token: signed in as %s", s.email)
	return s.token, nil
}

func (s *Source) store(tokens *authservice.Tokens) {
	s.token = tokens.Token
	if tokens.RefreshToken != "" {
		s.refreshToken = tokens.RefreshToken
	}
}
