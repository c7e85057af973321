package handler

import (
	"net/http"
	"strconv"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 厨房ダッシュボード
type KitchenHandler struct {
	uc *usecase.KitchenUsecase
}

func NewKitchenHandler(uc *usecase.KitchenUsecase) *KitchenHandler {
	return &KitchenHandler{uc: uc}
}

func (h *KitchenHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/queue", h.queue)
	g.POST("/orders/:id/items/:position/prepared", h.markItemPrepared)
	g.POST("/orders/:id/ready", h.markReady)
	g.POST("/orders/:id/complete", h.markComplete)
}

func (h *KitchenHandler) queue(c echo.Context) error {
	out, err := h.uc.Queue(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) markItemPrepared(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid position"})
	}

	out, err := h.uc.MarkItemPrepared(c.Request().Context(), orderID, position)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) markReady(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.MarkOrderReady(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *KitchenHandler) markComplete(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.MarkOrderComplete(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
