package handler

import (
	"net/http"
	"strconv"

	"foh/internal/usecase"

	"github.com/labstack/echo/v4"
)

// メニュー表示・注文入力フォーム用の公開カタログ
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/catalog", h.list)
	e.GET("/catalog/products", h.listProducts)
}

func (h *CatalogHandler) list(c echo.Context) error {
	out, err := h.uc.ListCatalog(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) listProducts(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.QueryParam("category"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category id"})
	}

	out, err := h.uc.ListProducts(c.Request().Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
