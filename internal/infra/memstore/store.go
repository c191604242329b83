// Package memstore is the in-process storage backend. A per-category mutex
// gives the same single-writer guarantee as the Postgres row lock, and each
// transaction stages its writes so a failed callback leaves no trace.
package memstore

import (
	"context"
	"sync"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/pkg/clock"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	claimLease          = time.Minute
	maxDeliveryAttempts = 5
)

type jobRecord struct {
	job       shared.NotificationJob
	status    string
	lastError string
}

type Store struct {
	clock clock.Clock

	mu           sync.RWMutex
	categories   map[uuid.UUID]*category.Category
	entries      map[uuid.UUID]*queue.Entry
	reservations map[uuid.UUID]*reservation.Reservation
	jobs         []*jobRecord

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func New(clk clock.Clock) *Store {
	return &Store{
		clock:        clk,
		categories:   make(map[uuid.UUID]*category.Category),
		entries:      make(map[uuid.UUID]*queue.Entry),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) categoryLock(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) WithinCategory(ctx context.Context, categoryID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := s.categoryLock(categoryID)
	l.Lock()
	defer l.Unlock()

	s.mu.RLock()
	cat, ok := s.categories[categoryID]
	if ok {
		cat = cat.Clone()
	}
	s.mu.RUnlock()
	if !ok {
		return errs.Mark(infra.WrapRepoErr("category not found", nil, infra.KindNotFound), errs.ErrCategoryNotFound)
	}

	tx := newMemTx(s, cat)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

func (s *Store) commit(tx *memTx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories[tx.cat.ID()] = tx.cat.Clone()
	for id, e := range tx.entries {
		s.entries[id] = e.Clone()
	}
	for id, r := range tx.reservations {
		s.reservations[id] = r.Clone()
	}
	s.jobs = append(s.jobs, tx.jobs...)
}

func (s *Store) Reads() shared.Reads {
	return &reads{s: s}
}

func (s *Store) Catalog() shared.CategoryCatalog {
	return &catalog{s: s}
}

func (s *Store) Outbox() shared.Outbox {
	return &outbox{s: s}
}

type catalog struct {
	s *Store
}

func (c *catalog) Create(_ context.Context, cat *category.Category) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, exists := c.s.categories[cat.ID()]; exists {
		return infra.WrapRepoErr("category already exists", nil, infra.KindDuplicateKey)
	}
	if err := cat.Inventory().Validate(); err != nil {
		return infra.WrapRepoErr("category violates inventory invariant", err, infra.KindConstraintViolated)
	}
	c.s.categories[cat.ID()] = cat.Clone()
	return nil
}
