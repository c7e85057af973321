package middleware

import (
	"net/http"

	"foh/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// RequireRole はcontextのロールが許可リストに入っているか確認する。
// Adminは常に許可。
func RequireRole(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if model.Role(role) == model.RoleAdmin {
				return next(c)
			}

			for _, a := range allowed {
				if model.Role(role) == a {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}
