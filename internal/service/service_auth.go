package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

// authService is the concrete implementation of AuthService.
// The replica has a single password, stored only as a bcrypt hash.
type authService struct {
	// passwordHash is the bcrypt hash every login is compared against.
	passwordHash []byte

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the server auth settings.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(cfg config.ServerAuth, logger *logger.Logger) AuthService {
	return &authService{
		passwordHash:  []byte(cfg.PasswordHash),
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		ids:           utils.NewUUIDGenerator(),
		logger:        logger,
	}
}

// Login authenticates a client by the replica password.
//
// Returns a signed token or:
//   - ErrInvalidDataProvided if password is empty.
//   - ErrWrongPassword if password does not match the configured hash.
//   - ErrTokenCreationFailed if the token cannot be signed.
func (a *authService) Login(ctx context.Context, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if password == "" {
		log.Error().Str("func", "authService.Login").Msg("empty password provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Warn().Err(err).Str("func", "authService.Login").Msg("wrong password")
		return models.Token{}, ErrWrongPassword
	}

	clientID := a.ids.Generate()
	token, err := utils.GenerateJWTToken(a.tokenIssuer, clientID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("failed to sign token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Str("client_id", clientID).Msg("client logged in")
	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
