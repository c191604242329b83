package commands

import (
	"fmt"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/pkg/errs"
)

// DuplicateQueueEntryError carries the entry that blocks a second join.
type DuplicateQueueEntryError struct {
	Existing *queue.Entry
}

func (e *DuplicateQueueEntryError) Error() string {
	return fmt.Sprintf("user already holds queue entry %s at position %d (%s)",
		e.Existing.ID(), e.Existing.Position(), e.Existing.Status())
}

func newDuplicateEntryError(existing *queue.Entry) error {
	return errs.Mark(&DuplicateQueueEntryError{Existing: existing}, errs.ErrDuplicateQueueEntry)
}

// classify marks domain and storage errors with the sentinel the API layer
// understands. Errors that already carry a sentinel pass through.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, category.ErrInsufficientInventory):
		return errs.Mark(err, errs.ErrInsufficientInventory)
	case errs.Is(err, category.ErrQuantityOutOfRange),
		errs.Is(err, category.ErrNonPositiveQuantity),
		errs.Is(err, queue.ErrInvalidQuantity),
		errs.Is(err, reservation.ErrNonPositiveQuantity):
		return errs.Mark(err, errs.ErrInvalidQuantity)
	case errs.Is(err, reservation.ErrNotActive):
		return errs.Mark(err, errs.ErrReservationNoLongerValid)
	case errs.Is(err, queue.ErrInvalidTransition):
		return errs.Mark(err, errs.ErrInvalidEntryState)
	case isSentinel(err):
		return err
	case infra.IsKind(err, infra.KindNotFound):
		return err
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func isSentinel(err error) bool {
	for _, s := range []error{
		errs.ErrCategoryNotFound, errs.ErrCategoryNotOnSale, errs.ErrInsufficientInventory,
		errs.ErrInvalidQuantity, errs.ErrDuplicateQueueEntry, errs.ErrQueueFull,
		errs.ErrQueueEntryNotFound, errs.ErrInvalidEntryState, errs.ErrReservationNotFound,
		errs.ErrReservationNotOwned, errs.ErrReservationNoLongerValid,
		errs.ErrInvalidCategory, errs.ErrInvalidRequest,
	} {
		if errs.Is(err, s) {
			return true
		}
	}
	return false
}

func notFoundAs(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}

func isInsufficient(err error) bool {
	return errs.Is(err, category.ErrInsufficientInventory)
}
