package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid reservation status")
	ErrInvalidSource       = errors.New("invalid reservation source")
	ErrNotActive           = errors.New("reservation is no longer active")
	ErrNonPositiveQuantity = errors.New("reservation quantity must be positive")
	ErrExpiryNotAfterStart = errors.New("reservation expiry must be after its start")
	ErrMissingWaitingList  = errors.New("queue offers must reference a waiting-list entry")
	ErrExtendNotForward    = errors.New("extension must move the expiry forward")
)

// Reservation is a time-boxed hold on category inventory. While active its
// quantity is counted in the category's reserved counter.
type Reservation struct {
	id            uuid.UUID
	categoryID    uuid.UUID
	userID        *uuid.UUID
	sessionID     SessionID
	quantity      int
	source        Source
	waitingListID *uuid.UUID
	status        Status
	reservedAt    time.Time
	expiresAt     time.Time
	priceLocked   Money
	updatedAt     time.Time
}

func NewReservation(
	categoryID uuid.UUID,
	userID *uuid.UUID,
	sessionID SessionID,
	quantity int,
	source Source,
	waitingListID *uuid.UUID,
	priceLocked Money,
	reservedAt, expiresAt time.Time,
) (*Reservation, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQuantity
	}
	if !source.IsValid() {
		return nil, ErrInvalidSource
	}
	if source == SourceQueueOffer && waitingListID == nil {
		return nil, ErrMissingWaitingList
	}
	if !expiresAt.After(reservedAt) {
		return nil, ErrExpiryNotAfterStart
	}

	return &Reservation{
		id:            uuid.New(),
		categoryID:    categoryID,
		userID:        userID,
		sessionID:     sessionID,
		quantity:      quantity,
		source:        source,
		waitingListID: waitingListID,
		status:        StatusActive,
		reservedAt:    reservedAt,
		expiresAt:     expiresAt,
		priceLocked:   priceLocked,
		updatedAt:     reservedAt,
	}, nil
}

func ReconstructReservation(
	id, categoryID uuid.UUID,
	userID *uuid.UUID,
	sessionID SessionID,
	quantity int,
	source Source,
	waitingListID *uuid.UUID,
	status Status,
	reservedAt, expiresAt time.Time,
	priceLocked Money,
	updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:            id,
		categoryID:    categoryID,
		userID:        userID,
		sessionID:     sessionID,
		quantity:      quantity,
		source:        source,
		waitingListID: waitingListID,
		status:        status,
		reservedAt:    reservedAt,
		expiresAt:     expiresAt,
		priceLocked:   priceLocked,
		updatedAt:     updatedAt,
	}
}

func (r *Reservation) terminate(next Status, now time.Time) error {
	if r.status != StatusActive {
		return fmt.Errorf("%w: status %s", ErrNotActive, r.status)
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status == StatusActive
}

// HasExpired is evaluated lazily against the clock; an active reservation
// past its deadline still holds inventory until the sweeper reclaims it.
func (r *Reservation) HasExpired(now time.Time) bool {
	return !now.Before(r.expiresAt)
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID != nil && *r.userID == userID
}

func (r *Reservation) Extend(until, now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if !until.After(r.expiresAt) {
		return ErrExtendNotForward
	}
	r.expiresAt = until
	r.updatedAt = now
	return nil
}

func (r *Reservation) Expire(now time.Time) error {
	return r.terminate(StatusExpired, now)
}

func (r *Reservation) Convert(now time.Time) error {
	return r.terminate(StatusConverted, now)
}

func (r *Reservation) Release(now time.Time) error {
	return r.terminate(StatusReleased, now)
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) CategoryID() uuid.UUID     { return r.categoryID }
func (r *Reservation) UserID() *uuid.UUID        { return r.userID }
func (r *Reservation) SessionID() SessionID      { return r.sessionID }
func (r *Reservation) Quantity() int             { return r.quantity }
func (r *Reservation) Source() Source            { return r.source }
func (r *Reservation) WaitingListID() *uuid.UUID { return r.waitingListID }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) ReservedAt() time.Time     { return r.reservedAt }
func (r *Reservation) ExpiresAt() time.Time      { return r.expiresAt }
func (r *Reservation) PriceLocked() Money        { return r.priceLocked }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }

func (r *Reservation) Clone() *Reservation {
	c := *r
	if r.userID != nil {
		id := *r.userID
		c.userID = &id
	}
	if r.waitingListID != nil {
		id := *r.waitingListID
		c.waitingListID = &id
	}
	return &c
}
