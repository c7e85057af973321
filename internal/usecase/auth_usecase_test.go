package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"foh/internal/auth"
	"foh/internal/config"
	"foh/internal/domain/model"
	"foh/internal/repository"
	"foh/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *AuthUserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type RefreshTokenRepoMock struct{ mock.Mock }

func (m *RefreshTokenRepoMock) Create(ctx context.Context, token *model.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*model.RefreshToken)
	return t, args.Error(1)
}

func (m *RefreshTokenRepoMock) MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, usedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) Revoke(ctx context.Context, tokenID string, revokedAt time.Time) error {
	args := m.Called(ctx, tokenID, revokedAt)
	return args.Error(0)
}

func (m *RefreshTokenRepoMock) DeleteAllByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func authFixture() (*AuthUserRepoMock, *RefreshTokenRepoMock, *usecase.AuthUsecase) {
	users := new(AuthUserRepoMock)
	tokens := new(RefreshTokenRepoMock)
	cfg := config.Config{JWTSecret: "test_secret"}
	return users, tokens, usecase.NewAuthUsecase(users, tokens, cfg)
}

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuth_Login_Success(t *testing.T) {
	users, tokens, uc := authFixture()

	users.On("FindByEmail", mock.Anything, "waiter@example.com").Return(&model.User{
		ID:           42,
		Email:        "waiter@example.com",
		PasswordHash: bcryptHash(t, "password123"),
		Role:         model.RoleWaiter,
		TokenVersion: 1,
		IsActive:     true,
	}, nil)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 42 && u.LastLoginAt != nil
	})).Return(nil)

	res, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "waiter@example.com",
		Password: "password123",
	}, "test-agent")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), res.Body.User.ID)
	assert.Equal(t, "Waiter", res.Body.User.Role)
	assert.NotEmpty(t, res.Body.Token.AccessToken)
	assert.NotEmpty(t, res.RefreshTokenPlain)

	// 発行されたアクセストークンのclaimsを確認する
	claims, perr := auth.Parse(res.Body.Token.AccessToken, "test_secret")
	assert.NoError(t, perr)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "Waiter", claims.Role)
	assert.Equal(t, 1, claims.TokenVersion)
}

func TestAuth_Login_MissingFields(t *testing.T) {
	_, _, uc := authFixture()

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{Email: "a@b.c"}, "")
	assertHTTPError(t, err, http.StatusBadRequest, "email and password are required")
}

func TestAuth_Login_UnknownUserSameMessage(t *testing.T) {
	users, _, uc := authFixture()

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, "")
	assertHTTPError(t, err, http.StatusUnauthorized, "invalid credentials")
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	users, _, uc := authFixture()

	users.On("FindByEmail", mock.Anything, "waiter@example.com").Return(&model.User{
		ID:           42,
		Email:        "waiter@example.com",
		PasswordHash: bcryptHash(t, "password123"),
		Role:         model.RoleWaiter,
		IsActive:     true,
	}, nil)

	_, err := uc.Login(context.Background(), usecase.AuthLoginRequest{
		Email:    "waiter@example.com",
		Password: "wrong",
	}, "")
	assertHTTPError(t, err, http.StatusUnauthorized, "invalid credentials")
}

func TestAuth_Refresh_RotatesToken(t *testing.T) {
	users, tokens, uc := authFixture()

	stored := &model.RefreshToken{
		ID:        "tok-1",
		UserID:    42,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(stored, nil)
	users.On("FindByID", mock.Anything, int64(42)).Return(&model.User{
		ID: 42, Role: model.RoleWaiter, IsActive: true,
	}, nil)
	tokens.On("MarkUsed", mock.Anything, "tok-1", mock.Anything).Return(nil)
	tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := uc.Refresh(context.Background(), "plain-refresh", "test-agent")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Body.AccessToken)
	assert.NotEmpty(t, res.RefreshTokenPlain)
	assert.NotEqual(t, "plain-refresh", res.RefreshTokenPlain)
	tokens.AssertCalled(t, "MarkUsed", mock.Anything, "tok-1", mock.Anything)
}

func TestAuth_Refresh_UsedTokenRejected(t *testing.T) {
	_, tokens, uc := authFixture()

	used := time.Now().Add(-time.Minute)
	tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "tok-1",
		UserID:    42,
		ExpiresAt: time.Now().Add(time.Hour),
		UsedAt:    &used,
	}, nil)

	_, err := uc.Refresh(context.Background(), "plain-refresh", "")
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuth_Refresh_ExpiredTokenRejected(t *testing.T) {
	_, tokens, uc := authFixture()

	tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(&model.RefreshToken{
		ID:        "tok-1",
		UserID:    42,
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)

	_, err := uc.Refresh(context.Background(), "plain-refresh", "")
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuth_Refresh_UnknownTokenRejected(t *testing.T) {
	_, tokens, uc := authFixture()

	tokens.On("FindByTokenHash", mock.Anything, mock.Anything).
		Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := uc.Refresh(context.Background(), "plain-refresh", "")
	assertHTTPError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestAuth_Logout_InvalidatesEverything(t *testing.T) {
	users, tokens, uc := authFixture()

	tokens.On("DeleteAllByUserID", mock.Anything, int64(42)).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(42)).Return(nil)

	err := uc.Logout(context.Background(), 42)

	assert.NoError(t, err)
	tokens.AssertExpectations(t)
	users.AssertExpectations(t)
}
