package commands

//go:generate mockgen -source=$GOFILE -destination=../../mock/commandsmock/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateCategoryInput struct {
	EventID     uuid.UUID
	Name        string
	PriceCents  int64
	Total       int
	MinPerOrder int
	MaxPerOrder int
	SaleStart   *time.Time
	SaleEnd     *time.Time
}

type CatalogCommands interface {
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*category.Category, error)
	// DeactivateCategory stops sales; active holds stay valid until they end.
	DeactivateCategory(ctx context.Context, categoryID uuid.UUID) (*category.Category, error)
}

type catalogUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog shared.CategoryCatalog
	clock   clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, catalog shared.CategoryCatalog, clock clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{
		uow:     uow,
		catalog: catalog,
		clock:   clock,
	}
}

func (c *catalogUseCaseImpl) CreateCategory(ctx context.Context, in CreateCategoryInput) (*category.Category, error) {
	cat, err := category.NewCategory(
		in.EventID,
		in.Name,
		in.PriceCents,
		in.Total,
		in.MinPerOrder,
		in.MaxPerOrder,
		category.SaleWindow{Start: in.SaleStart, End: in.SaleEnd},
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCategory)
	}

	if err := c.catalog.Create(ctx, cat); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("category created", "category_id", cat.ID(), "event_id", cat.EventID(), "total", in.Total)
	return cat, nil
}

func (c *catalogUseCaseImpl) DeactivateCategory(ctx context.Context, categoryID uuid.UUID) (*category.Category, error) {
	var cat *category.Category
	err := c.uow.WithinCategory(ctx, categoryID, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Ledger().Deactivate(ctx, categoryID); err != nil {
			return err
		}
		cat = tx.Category().Clone()
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	slog.Info("category deactivated", "category_id", categoryID)
	return cat, nil
}
