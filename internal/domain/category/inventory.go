package category

import "errors"

var (
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrNonPositiveQuantity   = errors.New("quantity must be positive")
	ErrInvariantViolated     = errors.New("inventory invariant violated: sold + reserved exceeds total")
	ErrReservedUnderflow     = errors.New("reserved quantity lower than the amount being converted")
)

// Inventory holds the authoritative counters of one category.
// sold + reserved <= total must hold after every transition.
type Inventory struct {
	Total    int
	Sold     int
	Reserved int
}

func (i Inventory) Available() int {
	return i.Total - i.Sold - i.Reserved
}

func (i Inventory) Validate() error {
	if i.Total < 0 || i.Sold < 0 || i.Reserved < 0 {
		return ErrInvariantViolated
	}
	if i.Sold+i.Reserved > i.Total {
		return ErrInvariantViolated
	}
	return nil
}

func (i Inventory) Reserve(qty int) (Inventory, error) {
	if qty <= 0 {
		return i, ErrNonPositiveQuantity
	}
	if i.Available() < qty {
		return i, ErrInsufficientInventory
	}
	i.Reserved += qty
	return i, nil
}

// Release is floored at zero.
func (i Inventory) Release(qty int) Inventory {
	if qty <= 0 {
		return i
	}
	i.Reserved -= qty
	if i.Reserved < 0 {
		i.Reserved = 0
	}
	return i
}

func (i Inventory) ConvertToSale(qty int) (Inventory, error) {
	if qty <= 0 {
		return i, ErrNonPositiveQuantity
	}
	if i.Reserved < qty {
		return i, ErrReservedUnderflow
	}
	i.Reserved -= qty
	i.Sold += qty
	return i, nil
}
