package repository

import (
	"context"

	"foh/internal/domain/model"
)

type CategoryRepository interface {
	// SortOrderの昇順で全件
	List(ctx context.Context) ([]model.Category, error)
}
