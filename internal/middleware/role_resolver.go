package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foh/internal/repository"

	"github.com/labstack/echo/v4"
)

// ロール解決の上限。超えたら認証失敗ではなくタイムアウトとして返す。
const roleLookupTimeout = 9 * time.Second

// RoleResolver はDBから最新のユーザーを読み直して有効なロールを確定する。
// JWTのrole/tvはログイン時点のスナップショットなので、毎リクエストここで照合する。
//   - 期限内に引けない → 504（再試行はユーザー操作に任せる）
//   - token_version不一致・無効ユーザー → 401
//   - それ以外のストア障害 → 500
func RoleResolver(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawUserID := c.Get(CtxUserIDKey)
			userID, ok := rawUserID.(int64)
			if !ok || userID <= 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			rawTV := c.Get(CtxTokenVersionKey)
			tv, ok := rawTV.(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//DBから最新のuserを取得する（上限付き）
			ctx, cancel := context.WithTimeout(c.Request().Context(), roleLookupTimeout)
			defer cancel()

			user, err := userRepo.FindByID(ctx, userID)
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return c.JSON(http.StatusGatewayTimeout, errorJSON("role lookup timeout"))
			}
			if errors.Is(err, repository.ErrUserNotFound) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			//ストア障害は認証失敗と混同しない
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//停止ユーザーは即401
			if !user.IsActive {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//token_versionが一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//認可に使うロールはDBの現在値で上書きする
			c.Set(CtxUserRoleKey, string(user.Role))

			return next(c)
		}
	}
}
