package repository

import (
	"context"
	"errors"

	"foh/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品カタログは読み取り専用
type ProductRepository interface {
	ListActive(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
}
