package memstore

import (
	"context"
	"sort"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/pkg/errs"
	"ticket-allocator/internal/usecase/shared"

	"github.com/google/uuid"
)

var errLedgerCategoryMismatch = errs.New("ledger is bound to a different category")

// memTx stages writes for one category until the callback returns nil.
type memTx struct {
	s            *Store
	cat          *category.Category
	entries      map[uuid.UUID]*queue.Entry
	reservations map[uuid.UUID]*reservation.Reservation
	jobs         []*jobRecord
}

func newMemTx(s *Store, cat *category.Category) *memTx {
	return &memTx{
		s:            s,
		cat:          cat,
		entries:      make(map[uuid.UUID]*queue.Entry),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

func (t *memTx) Category() *category.Category          { return t.cat }
func (t *memTx) Ledger() shared.InventoryLedger        { return (*ledger)(t) }
func (t *memTx) Queue() shared.QueueStore              { return (*queueStore)(t) }
func (t *memTx) Reservations() shared.ReservationStore { return (*reservationStore)(t) }
func (t *memTx) Notifications() shared.NotificationRepository {
	return (*notifications)(t)
}

// entriesOfCategory merges committed and staged entries of the locked category.
func (t *memTx) entriesOfCategory() []*queue.Entry {
	t.s.mu.RLock()
	merged := make(map[uuid.UUID]*queue.Entry)
	for id, e := range t.s.entries {
		if e.CategoryID() == t.cat.ID() {
			merged[id] = e
		}
	}
	t.s.mu.RUnlock()
	for id, e := range t.entries {
		merged[id] = e
	}

	out := make([]*queue.Entry, 0, len(merged))
	for _, e := range merged {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position() < out[j].Position() })
	return out
}

func (t *memTx) entry(id uuid.UUID) (*queue.Entry, bool) {
	if e, ok := t.entries[id]; ok {
		return e, true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	e, ok := t.s.entries[id]
	return e, ok
}

func (t *memTx) reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	if r, ok := t.reservations[id]; ok {
		return r, true
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	r, ok := t.s.reservations[id]
	return r, ok
}

type ledger memTx

func (l *ledger) bound(categoryID uuid.UUID) error {
	if l.cat.ID() != categoryID {
		return errs.Wrapf(errLedgerCategoryMismatch, "locked %s, requested %s", l.cat.ID(), categoryID)
	}
	return nil
}

func (l *ledger) TryReserve(_ context.Context, categoryID uuid.UUID, qty int) error {
	if err := l.bound(categoryID); err != nil {
		return err
	}
	return l.cat.Reserve(qty, l.s.clock.Now())
}

func (l *ledger) Release(_ context.Context, categoryID uuid.UUID, qty int) error {
	if err := l.bound(categoryID); err != nil {
		return err
	}
	l.cat.Release(qty, l.s.clock.Now())
	return nil
}

func (l *ledger) ConvertToSale(_ context.Context, categoryID uuid.UUID, qty int) error {
	if err := l.bound(categoryID); err != nil {
		return err
	}
	return l.cat.ConvertToSale(qty, l.s.clock.Now())
}

func (l *ledger) Deactivate(_ context.Context, categoryID uuid.UUID) error {
	if err := l.bound(categoryID); err != nil {
		return err
	}
	l.cat.Deactivate(l.s.clock.Now())
	return nil
}

type queueStore memTx

func (q *queueStore) tx() *memTx { return (*memTx)(q) }

func (q *queueStore) Enqueue(_ context.Context, entry *queue.Entry) error {
	if entry.CategoryID() != q.cat.ID() {
		return errs.Wrapf(errLedgerCategoryMismatch, "entry for category %s", entry.CategoryID())
	}
	var maxPos int64
	for _, e := range q.tx().entriesOfCategory() {
		if e.UserID() == entry.UserID() && e.IsActive() {
			return infra.WrapRepoErr("active queue entry already exists", nil, infra.KindDuplicateKey)
		}
		maxPos = max(maxPos, e.Position())
	}
	entry.AssignPosition(maxPos + 1)
	q.entries[entry.ID()] = entry.Clone()
	return nil
}

func (q *queueStore) Update(_ context.Context, entry *queue.Entry) error {
	if _, ok := q.tx().entry(entry.ID()); !ok {
		return infra.WrapRepoErr("queue entry not found", nil, infra.KindNotFound)
	}
	q.entries[entry.ID()] = entry.Clone()
	return nil
}

func (q *queueStore) GetByID(_ context.Context, id uuid.UUID) (*queue.Entry, error) {
	e, ok := q.tx().entry(id)
	if !ok {
		return nil, infra.WrapRepoErr("queue entry not found", nil, infra.KindNotFound)
	}
	return e.Clone(), nil
}

func (q *queueStore) FindActive(_ context.Context, userID, categoryID uuid.UUID) (*queue.Entry, error) {
	if categoryID != q.cat.ID() {
		return nil, errs.Wrapf(errLedgerCategoryMismatch, "lookup for category %s", categoryID)
	}
	for _, e := range q.tx().entriesOfCategory() {
		if e.UserID() == userID && e.IsActive() {
			return e.Clone(), nil
		}
	}
	return nil, nil
}

func (q *queueStore) CountWaiting(_ context.Context, categoryID uuid.UUID) (int, error) {
	if categoryID != q.cat.ID() {
		return 0, errs.Wrapf(errLedgerCategoryMismatch, "count for category %s", categoryID)
	}
	n := 0
	for _, e := range q.tx().entriesOfCategory() {
		if e.Status() == queue.StatusWaiting {
			n++
		}
	}
	return n, nil
}

func (q *queueStore) NextEligible(_ context.Context, categoryID uuid.UUID, capacity, maxPerOrder int) ([]*queue.Entry, error) {
	if categoryID != q.cat.ID() {
		return nil, errs.Wrapf(errLedgerCategoryMismatch, "selection for category %s", categoryID)
	}
	all := q.tx().entriesOfCategory()
	clones := make([]*queue.Entry, len(all))
	for i, e := range all {
		clones[i] = e.Clone()
	}
	return queue.SelectEligible(clones, capacity, maxPerOrder), nil
}

type reservationStore memTx

func (r *reservationStore) tx() *memTx { return (*memTx)(r) }

func (r *reservationStore) Create(_ context.Context, res *reservation.Reservation) error {
	if _, exists := r.tx().reservation(res.ID()); exists {
		return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
	}
	r.reservations[res.ID()] = res.Clone()
	return nil
}

func (r *reservationStore) GetByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.tx().reservation(id)
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res.Clone(), nil
}

func (r *reservationStore) Save(_ context.Context, res *reservation.Reservation) error {
	current, ok := r.tx().reservation(res.ID())
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	if !current.IsActive() {
		return reservation.ErrNotActive
	}
	r.reservations[res.ID()] = res.Clone()
	return nil
}

func (r *reservationStore) ExpireSweep(_ context.Context, categoryID uuid.UUID, now time.Time) ([]*reservation.Reservation, error) {
	merged := make(map[uuid.UUID]*reservation.Reservation)
	r.s.mu.RLock()
	for id, res := range r.s.reservations {
		if res.CategoryID() == categoryID {
			merged[id] = res
		}
	}
	r.s.mu.RUnlock()
	for id, res := range r.reservations {
		merged[id] = res
	}

	var out []*reservation.Reservation
	for _, res := range merged {
		if res.IsActive() && res.HasExpired(now) {
			out = append(out, res.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiresAt().Equal(out[j].ExpiresAt()) {
			return out[i].ExpiresAt().Before(out[j].ExpiresAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

type notifications memTx

func (n *notifications) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	n.jobs = append(n.jobs, &jobRecord{
		job: shared.NotificationJob{
			ID:      uuid.New(),
			Kind:    kind,
			Topic:   topic,
			Payload: append([]byte(nil), payload...),
			RunAt:   runAt,
		},
		status: jobStatusQueued,
	})
	return nil
}
