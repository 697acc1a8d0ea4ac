package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
)

func newTestAuthService(t *testing.T, password string, duration time.Duration) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(config.ServerAuth{
		PasswordHash:  string(hash),
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "replsync-test",
		TokenDuration: duration,
	}, logger.Nop())
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t, "s3cret", time.Hour)

	token, err := svc.Login(context.Background(), "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.NotEmpty(t, token.ClientID)
}

func TestLogin_EachLoginGetsOwnClientID(t *testing.T) {
	svc := newTestAuthService(t, "s3cret", time.Hour)

	first, err := svc.Login(context.Background(), "s3cret")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), "s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientID, second.ClientID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, "s3cret", time.Hour)

	_, err := svc.Login(context.Background(), "guess")

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(t, "s3cret", time.Hour)

	_, err := svc.Login(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestLogin_TokenCreationFails(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(config.ServerAuth{PasswordHash: string(hash)}, logger.Nop())

	_, err = svc.Login(context.Background(), "pw")

	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ── ParseToken ───────────────────────────────────────────────────────────────

func TestParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t, "pw", time.Hour)
	token, err := svc.Login(context.Background(), "pw")
	require.NoError(t, err)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)

	require.NoError(t, err)
	assert.Equal(t, token.ClientID, parsed.ClientID)
}

func TestParseToken_Expired(t *testing.T) {
	svc := newTestAuthService(t, "pw", -time.Minute)
	token, err := svc.Login(context.Background(), "pw")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_ForeignKey(t *testing.T) {
	issuer := newTestAuthService(t, "pw", time.Hour)
	token, err := issuer.Login(context.Background(), "pw")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	other := NewAuthService(config.ServerAuth{
		PasswordHash:  string(hash),
		TokenSignKey:  "another-key",
		TokenIssuer:   "replsync-test",
		TokenDuration: time.Hour,
	}, logger.Nop())

	_, err = other.ParseToken(context.Background(), token.SignedString)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(t, "pw", time.Hour)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
