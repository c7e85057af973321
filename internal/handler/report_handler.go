package handler

import (
	"net/http"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者レポート（読み取り専用）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/report", h.report)
}

func (h *ReportHandler) report(c echo.Context) error {
	out, err := h.uc.Report(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
