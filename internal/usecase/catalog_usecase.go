package usecase

import (
	"context"
	"net/http"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
)

// 注文入力フォーム用の読み取り専用カタログ
type CatalogUsecase struct {
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

func NewCatalogUsecase(categories repo.CategoryRepository, products repo.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{categories: categories, products: products}
}

type ProductOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Price       string `json:"price"` // "€2.50" 形式
	CategoryID  int64  `json:"category_id"`
}

type CategoryOutput struct {
	ID        int64           `json:"id"`
	SortOrder int             `json:"sort_order"`
	Name      string          `json:"name"`
	Products  []ProductOutput `json:"products"`
}

// ListCatalog はカテゴリ順（SortOrder昇順）で商品をグループ化して返す
func (u *CatalogUsecase) ListCatalog(ctx context.Context) ([]CategoryOutput, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return []CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.ListActive(ctx)
	if err != nil {
		return []CategoryOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byCategory := make(map[int64][]ProductOutput, len(cats))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], toProductOutput(p))
	}

	outs := make([]CategoryOutput, 0, len(cats))
	for _, c := range cats {
		group := byCategory[c.ID]
		if group == nil {
			group = []ProductOutput{}
		}
		outs = append(outs, CategoryOutput{
			ID:        c.ID,
			SortOrder: c.SortOrder,
			Name:      c.Name,
			Products:  group,
		})
	}
	return outs, nil
}

// ListProducts は1カテゴリ分の商品を返す
func (u *CatalogUsecase) ListProducts(ctx context.Context, categoryID int64) ([]ProductOutput, error) {
	if categoryID <= 0 {
		return []ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	products, err := u.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return []ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs, nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Price:       model.FormatEuro(p.PriceCents),
		CategoryID:  p.CategoryID,
	}
}
