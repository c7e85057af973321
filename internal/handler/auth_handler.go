package handler

import (
	"net/http"
	"time"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cookieSecure bool
}

func NewAuthHandler(uc *usecase.AuthUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieSecure: cookieSecure}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authed *echo.Group) {
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
	authed.POST("/auth/logout", h.logout)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	result, err := h.uc.Login(c.Request().Context(), req, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}

	h.setRefreshCookie(c, result.RefreshTokenPlain)
	return c.JSON(http.StatusOK, result.Body)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	result, err := h.uc.Refresh(c.Request().Context(), cookie.Value, c.Request().UserAgent())
	if err != nil {
		return writeError(c, err)
	}

	h.setRefreshCookie(c, result.RefreshTokenPlain)
	return c.JSON(http.StatusOK, result.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	h.clearRefreshCookie(c)
	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// refresh tokenはHttpOnly Cookieで持たせる
func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
