package handler

import (
	"net/http"
	"strconv"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TableHandler struct {
	uc *usecase.TableUsecase
}

func NewTableHandler(uc *usecase.TableUsecase) *TableHandler {
	return &TableHandler{uc: uc}
}

func (h *TableHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tables", h.list)
	g.GET("/tables/summary", h.summary)
}

// ?occupied=true|false で絞り込みもできる
func (h *TableHandler) list(c echo.Context) error {
	raw := c.QueryParam("occupied")
	if raw == "" {
		out, err := h.uc.List(c.Request().Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	occupied, err := strconv.ParseBool(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid occupied filter"})
	}

	out, err := h.uc.ListByOccupancy(c.Request().Context(), occupied)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TableHandler) summary(c echo.Context) error {
	out, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
