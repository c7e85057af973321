package handler

import (
	"net/http"
	"strconv"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ウェイターの注文作成・編集画面
type WaiterOrderHandler struct {
	uc *usecase.OrderEditorUsecase
}

func NewWaiterOrderHandler(uc *usecase.OrderEditorUsecase) *WaiterOrderHandler {
	return &WaiterOrderHandler{uc: uc}
}

func (h *WaiterOrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tables/:id/orders", h.listTableOrders)
	g.GET("/tables/:id/active-order", h.activeOrder)
	g.POST("/orders", h.submit)
}

func (h *WaiterOrderHandler) listTableOrders(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.ListTableOrders(c.Request().Context(), tableID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WaiterOrderHandler) activeOrder(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.LoadActiveOrder(c.Request().Context(), tableID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WaiterOrderHandler) submit(c echo.Context) error {
	var req usecase.SubmitOrderInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SubmitOrder(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
