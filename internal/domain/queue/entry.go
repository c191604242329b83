package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid queue entry status")
	ErrInvalidTransition  = errors.New("invalid queue entry status transition")
	ErrInvalidQuantity    = errors.New("requested quantity must be positive")
	ErrInvalidOffer       = errors.New("offer quantity must be positive and within the request")
	ErrMissingReservation = errors.New("offer requires a backing reservation")
)

type Contact struct {
	Email string
	Phone string
}

type Entry struct {
	id                uuid.UUID
	categoryID        uuid.UUID
	userID            uuid.UUID
	position          int64
	requestedQuantity int
	priorityScore     int
	status            Status
	offerExpiresAt    *time.Time
	offeredQuantity   int
	offeredPriceCents int64
	reservationID     *uuid.UUID
	contact           Contact
	clientIPKey       string
	flagged           bool
	createdAt         time.Time
	updatedAt         time.Time
}

// NewEntry builds a waiting entry. Position is assigned by the queue store on enqueue.
func NewEntry(categoryID, userID uuid.UUID, requested int, contact Contact, clientIPKey string, flagged bool, now time.Time) (*Entry, error) {
	if requested <= 0 {
		return nil, ErrInvalidQuantity
	}
	return &Entry{
		id:                uuid.New(),
		categoryID:        categoryID,
		userID:            userID,
		requestedQuantity: requested,
		status:            StatusWaiting,
		contact: Contact{
			Email: strings.TrimSpace(contact.Email),
			Phone: strings.TrimSpace(contact.Phone),
		},
		clientIPKey: clientIPKey,
		flagged:     flagged,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructEntry(
	id, categoryID, userID uuid.UUID,
	position int64,
	requested, priorityScore int,
	status Status,
	offerExpiresAt *time.Time,
	offeredQuantity int,
	offeredPriceCents int64,
	reservationID *uuid.UUID,
	contact Contact,
	clientIPKey string,
	flagged bool,
	createdAt, updatedAt time.Time,
) *Entry {
	return &Entry{
		id:                id,
		categoryID:        categoryID,
		userID:            userID,
		position:          position,
		requestedQuantity: requested,
		priorityScore:     priorityScore,
		status:            status,
		offerExpiresAt:    offerExpiresAt,
		offeredQuantity:   offeredQuantity,
		offeredPriceCents: offeredPriceCents,
		reservationID:     reservationID,
		contact:           contact,
		clientIPKey:       clientIPKey,
		flagged:           flagged,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (e *Entry) transition(next Status, now time.Time) error {
	if !e.status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, e.status, next)
	}
	e.status = next
	e.updatedAt = now
	return nil
}

// AssignPosition is called once by the queue store when the entry is enqueued.
func (e *Entry) AssignPosition(position int64) {
	e.position = position
}

func (e *Entry) SetPriorityScore(score int) {
	e.priorityScore = score
}

func (e *Entry) Offer(qty int, priceCents int64, reservationID uuid.UUID, expiresAt, now time.Time) error {
	if qty <= 0 || qty > e.requestedQuantity {
		return ErrInvalidOffer
	}
	if reservationID == uuid.Nil {
		return ErrMissingReservation
	}
	if err := e.transition(StatusOffered, now); err != nil {
		return err
	}
	e.offeredQuantity = qty
	e.offeredPriceCents = priceCents
	e.reservationID = &reservationID
	e.offerExpiresAt = &expiresAt
	return nil
}

// StartPurchase moves the offer into checkout; expiresAt is the extended hold deadline.
func (e *Entry) StartPurchase(expiresAt, now time.Time) error {
	if err := e.transition(StatusPurchasing, now); err != nil {
		return err
	}
	e.offerExpiresAt = &expiresAt
	return nil
}

func (e *Entry) Convert(now time.Time) error {
	return e.transition(StatusConverted, now)
}

func (e *Entry) Expire(now time.Time) error {
	return e.transition(StatusExpired, now)
}

func (e *Entry) Decline(now time.Time) error {
	return e.transition(StatusDeclined, now)
}

func (e *Entry) Cancel(now time.Time) error {
	return e.transition(StatusCancelled, now)
}

func (e *Entry) Remove(now time.Time) error {
	return e.transition(StatusRemoved, now)
}

func (e *Entry) IsActive() bool { return e.status.IsActive() }

func (e *Entry) ID() uuid.UUID              { return e.id }
func (e *Entry) CategoryID() uuid.UUID      { return e.categoryID }
func (e *Entry) UserID() uuid.UUID          { return e.userID }
func (e *Entry) Position() int64            { return e.position }
func (e *Entry) RequestedQuantity() int     { return e.requestedQuantity }
func (e *Entry) PriorityScore() int         { return e.priorityScore }
func (e *Entry) Status() Status             { return e.status }
func (e *Entry) OfferExpiresAt() *time.Time { return e.offerExpiresAt }
func (e *Entry) OfferedQuantity() int       { return e.offeredQuantity }
func (e *Entry) OfferedPriceCents() int64   { return e.offeredPriceCents }
func (e *Entry) ReservationID() *uuid.UUID  { return e.reservationID }
func (e *Entry) Contact() Contact           { return e.contact }
func (e *Entry) ClientIPKey() string        { return e.clientIPKey }
func (e *Entry) Flagged() bool              { return e.flagged }
func (e *Entry) CreatedAt() time.Time       { return e.createdAt }
func (e *Entry) UpdatedAt() time.Time       { return e.updatedAt }

// Clone returns an independent copy; in-process stores hand out clones so
// callers cannot mutate stored state outside a transaction.
func (e *Entry) Clone() *Entry {
	c := *e
	if e.offerExpiresAt != nil {
		t := *e.offerExpiresAt
		c.offerExpiresAt = &t
	}
	if e.reservationID != nil {
		id := *e.reservationID
		c.reservationID = &id
	}
	return &c
}
