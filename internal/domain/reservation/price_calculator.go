package reservation

import "github.com/google/uuid"

type PriceContext struct {
	CategoryID     uuid.UUID
	UnitPriceCents int64
	Quantity       int
}

// PriceCalculator decides the price locked into a hold at creation time.
type PriceCalculator interface {
	CalculatePriceCents(ctx PriceContext) int64
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

func (pc *DefaultPriceCalculator) CalculatePriceCents(ctx PriceContext) int64 {
	return ctx.UnitPriceCents * int64(ctx.Quantity)
}
