package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RescheduleService/internal/integrations/authservice"
	"github.com/m04kA/SMC-RescheduleService/pkg/logger"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) (*authservice.Tokens, error) {
	args := m.Called(ctx, email, password)
	tokens, _ := args.Get(0).(*authservice.Tokens)
	return tokens, args.Error(1)
}

func (m *mockAuth) Refresh(ctx context.Context, refreshToken string) (*authservice.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	tokens, _ := args.Get(0).(*authservice.Tokens)
	return tokens, args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func jwtExpiring(t *testing.T, exp time.Time) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return signed
}

func TestToken_ValidTokenIsReused(t *testing.T) {
	auth := &mockAuth{}
	valid := jwtExpiring(t, testNow.Add(time.Hour))
	src := NewSource(auth, Credentials{Token: valid, RefreshToken: "r"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())

	got, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, valid, got)
	auth.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
}

func TestToken_ExpiredTokenIsRefreshed(t *testing.T) {
	auth := &mockAuth{}
	expired := jwtExpiring(t, testNow.Add(10*time.Second))
	fresh := jwtExpiring(t, testNow.Add(time.Hour))
	auth.On("Refresh", mock.Anything, "r1").
		Return(&authservice.Tokens{Token: fresh, RefreshToken: "r2"}, nil).Once()

	src := NewSource(auth, Credentials{Token: expired, RefreshToken: "r1"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())

	got, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)

	// Второй вызов берет уже обновленный токен
	got, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	auth.AssertExpectations(t)
}

func TestToken_RejectedRefreshFallsBackToSignIn(t *testing.T) {
	auth := &mockAuth{}
	fresh := jwtExpiring(t, testNow.Add(time.Hour))
	auth.On("Refresh", mock.Anything, "stale").Return(nil, authservice.ErrRefreshRejected).Once()
	auth.On("Authenticate", mock.Anything, "owner@salon.test", "pw").
		Return(&authservice.Tokens{Token: fresh, RefreshToken: "r2"}, nil).Once()

	src := NewSource(auth, Credentials{RefreshToken: "stale", Email: "owner@salon.test", Password: "pw"},
		fixedClock{testNow}, DefaultLeeway, logger.NewNop())

	got, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, got)
	auth.AssertExpectations(t)
}

func TestToken_Errors(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		src := NewSource(nil, Credentials{}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
		_, err := src.Token(context.Background())
		assert.ErrorIs(t, err, ErrNoCredentials)
	})

	t.Run("static token expired", func(t *testing.T) {
		expired := jwtExpiring(t, testNow.Add(-time.Hour))
		src := NewSource(nil, Credentials{Token: expired}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
		_, err := src.Token(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("refresh rejected without password", func(t *testing.T) {
		auth := &mockAuth{}
		auth.On("Refresh", mock.Anything, "stale").Return(nil, authservice.ErrRefreshRejected).Once()
		src := NewSource(auth, Credentials{RefreshToken: "stale"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
		_, err := src.Token(context.Background())
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("account not activated", func(t *testing.T) {
		auth := &mockAuth{}
		auth.On("Authenticate", mock.Anything, "a@b.c", "pw").Return(nil, authservice.ErrAccountNotActivated).Once()
		src := NewSource(auth, Credentials{Email: "a@b.c", Password: "pw"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
		_, err := src.Token(context.Background())
		assert.ErrorIs(t, err, ErrAccountNotActivated)
	})

	t.Run("transport failure on refresh", func(t *testing.T) {
		auth := &mockAuth{}
		auth.On("Refresh", mock.Anything, "r").Return(nil, errors.New("connection refused")).Once()
		src := NewSource(auth, Credentials{RefreshToken: "r"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
		_, err := src.Token(context.Background())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestToken_OpaqueTokenIsTrusted(t *testing.T) {
	src := NewSource(nil, Credentials{Token: "opaque"}, fixedClock{testNow}, DefaultLeeway, logger.NewNop())
	got, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "opaque", got)
}
