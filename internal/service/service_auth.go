package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlevich/noteful-server/internal/config"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/internal/utils"
	"github.com/mlevich/noteful-server/models"
)

// Credential size limits applied at registration. The upper bound matches
// bcrypt's 72-byte input limit: anything longer would be silently truncated
// by the hash, giving an illusion of extra entropy.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// uuid produces identifiers for newly registered accounts.
	uuid *utils.UUIDGenerator

	// tokenSignKey is the shared secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		uuid:           utils.NewUUIDGenerator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// Credentials are validated strictly: username and password are required,
// must not carry surrounding whitespace (rejected explicitly rather than
// trimmed silently, so callers learn what happened), and the password must
// be between 8 and 72 characters. The full name is non-credential data and
// is trimmed silently.
//
// Returns the persisted, sanitized user or:
//   - A *ValidationError naming the offending field.
//   - store.ErrUsernameAlreadyExists if the username is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateRegisterRequest(req); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("invalid registration data provided")
		return models.User{}, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		UserID:       a.uuid.Generate(),
		Username:     req.Username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser.Sanitize(), nil
}

// Login authenticates an existing user.
//
// It looks up the account by username and verifies the supplied password
// against the stored bcrypt digest. An unknown username and a wrong
// password produce the same ErrInvalidCredentials; the distinct internal
// reason is logged only.
//
// Returns the sanitized user record on success, ready for token issuance.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", username).Str("reason", "username").Msg("login failed")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.VerifyPassword(password, foundUser.PasswordHash) {
		log.Warn().Str("username", username).Str("reason", "password").Msg("login failed")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser.Sanitize(), nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, embeds the sanitized user, and expires after
// tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// RefreshToken re-issues a token with a fresh expiration for an identity
// that has already been verified by ParseToken. Credentials are not
// re-checked; only a currently valid token can reach this path, so an
// expired token can never be traded for a new one.
func (a *authService) RefreshToken(ctx context.Context, user models.User) (models.Token, error) {
	return a.CreateToken(ctx, user)
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// the HS256 algorithm restriction, the issuer claim, and expiry. Any
// validation failure (expired, forged, wrong algorithm, malformed) is
// normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// validateRegisterRequest applies the registration field rules and returns
// a *ValidationError naming the first offending field.
func validateRegisterRequest(req models.RegisterRequest) error {
	if req.Username == "" {
		return newValidationError("username", "Missing `username` in request body")
	}
	if req.Password == "" {
		return newValidationError("password", "Missing `password` in request body")
	}

	if strings.TrimSpace(req.Username) != req.Username {
		return newValidationError("username", "Cannot start or end with whitespace")
	}
	if strings.TrimSpace(req.Password) != req.Password {
		return newValidationError("password", "Cannot start or end with whitespace")
	}

	if len(req.Password) < minPasswordLength {
		return newValidationError("password", fmt.Sprintf("Must be at least %d characters long", minPasswordLength))
	}
	if len(req.Password) > maxPasswordLength {
		return newValidationError("password", fmt.Sprintf("Must be at most %d characters long", maxPasswordLength))
	}

	return nil
}
