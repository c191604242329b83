package repository

import (
	"context"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
	"ticket-allocator/internal/infra/repository/converter"
)

type CategoryRepository struct {
	db db.DBTX
}

func NewCategoryRepository(dbtx db.DBTX) *CategoryRepository {
	return &CategoryRepository{db: dbtx}
}

func (r *CategoryRepository) Create(ctx context.Context, cat *category.Category) error {
	q := `INSERT INTO ticket_categories (` + converter.CategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := r.db.Exec(ctx, q, converter.CategoryArgs(cat)...); err != nil {
		return infra.WrapRepoErr("failed to create category", err)
	}
	return nil
}
