package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foh/internal/auth"
	"foh/internal/config"
	"foh/internal/domain/model"
	"foh/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// accesstokenの有効期限
const accessTokenTTL = 15 * time.Minute

// refreshtokenの有効期限
const refreshTokenTTL = 14 * 24 * time.Hour

type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type JwtAccessTokenDTO struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthLoginResponse struct {
	User  UserDTO           `json:"user"`
	Token JwtAccessTokenDTO `json:"token"`
}

// handlerがCookieに詰めるために必要な値も一緒に返す
type LoginResult struct {
	Body              AuthLoginResponse
	RefreshTokenPlain string
}

type RefreshResult struct {
	Body              JwtAccessTokenDTO
	RefreshTokenPlain string
}

// ログイン〜ログアウトのセッション管理。
// 認証状態は暗黙のグローバルに置かず、発行したトークンだけが持ち回る。
type AuthUsecase struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	cfg    config.Config
}

func NewAuthUsecase(users repository.UserRepository, tokens repository.RefreshTokenRepository, cfg config.Config) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, cfg: cfg}
}

// Login はメール＋パスワードでセッションを作る
func (u *AuthUsecase) Login(ctx context.Context, req AuthLoginRequest, userAgent string) (LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return LoginResult{}, NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//存在しない場合も同じメッセージ（列挙攻撃対策）
	if user == nil || !user.IsActive {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	access, err := u.issueAccessToken(user, now)
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	plainRefresh, err := u.issueRefreshToken(ctx, user.ID, userAgent, now)
	if err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//最終ログインを記録
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return LoginResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoginResult{
		Body: AuthLoginResponse{
			User: UserDTO{
				ID:    user.ID,
				Email: user.Email,
				Role:  string(user.Role),
			},
			Token: JwtAccessTokenDTO{
				AccessToken: access,
				ExpiresIn:   int(accessTokenTTL.Seconds()),
			},
		},
		RefreshTokenPlain: plainRefresh,
	}, nil
}

// Refresh はリフレッシュトークンを使い捨てにして新しいペアを発行する
func (u *AuthUsecase) Refresh(ctx context.Context, plainRefresh string, userAgent string) (RefreshResult, error) {
	if strings.TrimSpace(plainRefresh) == "" {
		return RefreshResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	hash := hashToken(plainRefresh)
	token, err := u.tokens.FindByTokenHash(ctx, hash)
	if errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return RefreshResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return RefreshResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	now := time.Now()
	if token.RevokedAt != nil || token.UsedAt != nil || now.After(token.ExpiresAt) {
		return RefreshResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		return RefreshResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return RefreshResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	//使用済みの印（同じトークンの再利用を検知できるように）
	if err := u.tokens.MarkUsed(ctx, token.ID, now); err != nil {
		return RefreshResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	access, err := u.issueAccessToken(user, now)
	if err != nil {
		return RefreshResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	plainNext, err := u.issueRefreshToken(ctx, user.ID, userAgent, now)
	if err != nil {
		return RefreshResult{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return RefreshResult{
		Body: JwtAccessTokenDTO{
			AccessToken: access,
			ExpiresIn:   int(accessTokenTTL.Seconds()),
		},
		RefreshTokenPlain: plainNext,
	}, nil
}

// Logout はセッションを破棄する。リフレッシュトークンを全部消し、
// token_versionを上げて発行済みアクセストークンも無効にする。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.tokens.DeleteAllByUserID(ctx, userID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.users.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) issueAccessToken(user *model.User, now time.Time) (string, error) {
	claims := auth.AccessClaims{
		Role:         string(user.Role),
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	return auth.Sign(claims, u.cfg.JWTSecret)
}

func (u *AuthUsecase) issueRefreshToken(ctx context.Context, userID int64, userAgent string, now time.Time) (string, error) {
	plain, err := generateSecureToken(32)
	if err != nil {
		return "", err
	}

	token := &model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(plain),
		UserAgent: userAgent,
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := u.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return plain, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
