package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mlevich/noteful-server/internal/config"
	"github.com/mlevich/noteful-server/internal/logger"
	"github.com/mlevich/noteful-server/internal/mock"
	"github.com/mlevich/noteful-server/internal/store"
	"github.com/mlevich/noteful-server/internal/utils"
	"github.com/mlevich/noteful-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testAuthConfig() config.Auth {
	return config.Auth{
		TokenSignKey:  "test-secret",
		TokenIssuer:   "noteful-server",
		TokenDuration: time.Hour,
	}
}

func newTestAuthService(t *testing.T, ctrl *gomock.Controller) (AuthService, *mock.MockUserRepository) {
	t.Helper()
	users := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(users, testAuthConfig(), logger.Nop())
	return svc, users
}

func TestRegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{
		Username: "bobuser",
		Password: "baseball 123",
		FullName: "  Bob User  ",
	}

	var persisted models.User
	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			persisted = user
			return user, nil
		})

	registered, err := svc.RegisterUser(ctx, req)
	require.NoError(t, err)

	// credentials are hashed before they reach the store
	assert.NotEqual(t, req.Password, persisted.PasswordHash)
	assert.True(t, utils.VerifyPassword(req.Password, persisted.PasswordHash))

	// fullname is trimmed silently, a new id is assigned
	assert.Equal(t, "Bob User", persisted.FullName)
	assert.NotEmpty(t, persisted.UserID)

	// the returned user never carries the hash
	assert.Empty(t, registered.PasswordHash)
}

func TestRegisterUser_Validation(t *testing.T) {
	tests := []struct {
		name         string
		req          models.RegisterRequest
		wantLocation string
		wantMessage  string
	}{
		{
			name:         "missing username",
			req:          models.RegisterRequest{Password: "baseball 123"},
			wantLocation: "username",
			wantMessage:  "Missing `username` in request body",
		},
		{
			name:         "missing password",
			req:          models.RegisterRequest{Username: "bobuser"},
			wantLocation: "password",
			wantMessage:  "Missing `password` in request body",
		},
		{
			name:         "username with surrounding whitespace",
			req:          models.RegisterRequest{Username: " bobuser", Password: "baseball 123"},
			wantLocation: "username",
			wantMessage:  "Cannot start or end with whitespace",
		},
		{
			name:         "password with trailing whitespace",
			req:          models.RegisterRequest{Username: "bobuser", Password: "baseball 123 "},
			wantLocation: "password",
			wantMessage:  "Cannot start or end with whitespace",
		},
		{
			name:         "password too short",
			req:          models.RegisterRequest{Username: "bobuser", Password: "short"},
			wantLocation: "password",
			wantMessage:  "Must be at least 8 characters long",
		},
		{
			name:         "password too long",
			req:          models.RegisterRequest{Username: "bobuser", Password: strings.Repeat("a", 73)},
			wantLocation: "password",
			wantMessage:  "Must be at most 72 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// no store interaction is expected for invalid requests
			svc, _ := newTestAuthService(t, ctrl)

			_, err := svc.RegisterUser(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrValidation)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantLocation, validationErr.Location)
			assert.Equal(t, tt.wantMessage, validationErr.Message)
		})
	}
}

func TestRegisterUser_PasswordAtBcryptLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User) (models.User, error) {
			return user, nil
		})

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{
		Username: "bobuser",
		Password: strings.Repeat("a", 72),
	})
	require.NoError(t, err)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)
	ctx := context.Background()

	users.EXPECT().
		CreateUser(ctx, gomock.Any()).
		Return(models.User{}, store.ErrUsernameAlreadyExists)

	_, err := svc.RegisterUser(ctx, models.RegisterRequest{
		Username: "bobuser",
		Password: "baseball 123",
	})
	require.ErrorIs(t, err, store.ErrUsernameAlreadyExists)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)
	ctx := context.Background()

	hash, err := utils.HashPassword("baseball 123")
	require.NoError(t, err)

	users.EXPECT().
		FindUserByUsername(ctx, "bobuser").
		Return(models.User{
			UserID:       "user-1",
			Username:     "bobuser",
			PasswordHash: hash,
		}, nil)

	user, err := svc.Login(ctx, "bobuser", "baseball 123")
	require.NoError(t, err)
	assert.Equal(t, "bobuser", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestLogin_UnknownUsernameAndWrongPasswordAreIndistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users := newTestAuthService(t, ctrl)
	ctx := context.Background()

	hash, err := utils.HashPassword("baseball 123")
	require.NoError(t, err)

	users.EXPECT().
		FindUserByUsername(ctx, "ghost").
		Return(models.User{}, store.ErrNoUserWasFound)
	_, unknownUserErr := svc.Login(ctx, "ghost", "whatever 123")

	users.EXPECT().
		FindUserByUsername(ctx, "bobuser").
		Return(models.User{Username: "bobuser", PasswordHash: hash}, nil)
	_, wrongPasswordErr := svc.Login(ctx, "bobuser", "not the password")

	require.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPasswordErr, ErrInvalidCredentials)
	assert.Equal(t, unknownUserErr.Error(), wrongPasswordErr.Error())
}

func TestLogin_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCreateToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: "user-1", Username: "bobuser", FullName: "Bob User"}

	token, err := svc.CreateToken(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, parsed.User.UserID)
	assert.Equal(t, user.Username, parsed.User.Username)
}

func TestParseToken_RejectsForgedToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	otherCfg := testAuthConfig()
	otherCfg.TokenSignKey = "different-secret"
	otherSvc := NewAuthService(mock.NewMockUserRepository(ctrl), otherCfg, logger.Nop())

	token, err := otherSvc.CreateToken(ctx, models.User{UserID: "user-1", Username: "bobuser"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_RejectsExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testAuthConfig()
	cfg.TokenDuration = -time.Minute
	svc := NewAuthService(mock.NewMockUserRepository(ctrl), cfg, logger.Nop())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: "user-1", Username: "bobuser"})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestRefreshToken_IssuesFreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthService(t, ctrl)
	ctx := context.Background()

	user := models.User{UserID: "user-1", Username: "bobuser"}

	refreshed, err := svc.RefreshToken(ctx, user)
	require.NoError(t, err)

	parsed, err := svc.ParseToken(ctx, refreshed.SignedString)
	require.NoError(t, err)
	assert.Equal(t, user.Username, parsed.User.Username)
}
