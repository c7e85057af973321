package handler

import (
	"net/http"
	"strconv"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 会計画面（テーブル締め）
type BillingHandler struct {
	uc *usecase.BillingUsecase
}

func NewBillingHandler(uc *usecase.BillingUsecase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

type PayOrderRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *BillingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/tables/:id/orders", h.unpaidOrders)
	g.POST("/orders/:id/pay", h.pay)
}

func (h *BillingHandler) unpaidOrders(c echo.Context) error {
	tableID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.UnpaidOrders(c.Request().Context(), tableID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BillingHandler) pay(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PayOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.MarkOrderPaid(c.Request().Context(), usecase.PayOrderInput{
		OrderID: orderID,
		Confirm: req.Confirm,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
