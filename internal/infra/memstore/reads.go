package memstore

import (
	"context"
	"sort"
	"time"

	"ticket-allocator/internal/domain/category"
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"

	"github.com/google/uuid"
)

type reads struct {
	s *Store
}

func (r *reads) CategoryByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, infra.WrapRepoErr("category not found", nil, infra.KindNotFound)
	}
	return c.Clone(), nil
}

func (r *reads) ListCategories(_ context.Context) ([]*category.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*category.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r *reads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res.Clone(), nil
}

func (r *reads) EntryByID(_ context.Context, id uuid.UUID) (*queue.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[id]
	if !ok {
		return nil, infra.WrapRepoErr("queue entry not found", nil, infra.KindNotFound)
	}
	return e.Clone(), nil
}

func (r *reads) LatestEntry(_ context.Context, categoryID, userID uuid.UUID) (*queue.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *queue.Entry
	for _, e := range r.s.entries {
		if e.CategoryID() != categoryID || e.UserID() != userID {
			continue
		}
		switch {
		case best == nil:
			best = e
		case e.IsActive() != best.IsActive():
			if e.IsActive() {
				best = e
			}
		case e.Position() > best.Position():
			best = e
		}
	}
	if best == nil {
		return nil, infra.WrapRepoErr("queue entry not found", nil, infra.KindNotFound)
	}
	return best.Clone(), nil
}

func (r *reads) CountAhead(_ context.Context, entry *queue.Entry) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var peers []*queue.Entry
	for _, e := range r.s.entries {
		if e.CategoryID() == entry.CategoryID() {
			peers = append(peers, e)
		}
	}
	if entry.Status() != queue.StatusWaiting {
		return 0, nil
	}
	return queue.CountAhead(peers, entry), nil
}

func (r *reads) ExpiredReservationCategories(_ context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	earliest := make(map[uuid.UUID]time.Time)
	for _, res := range r.s.reservations {
		if !res.IsActive() || !res.HasExpired(now) {
			continue
		}
		if t, ok := earliest[res.CategoryID()]; !ok || res.ExpiresAt().Before(t) {
			earliest[res.CategoryID()] = res.ExpiresAt()
		}
	}
	ids := make([]uuid.UUID, 0, len(earliest))
	for id := range earliest {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if !earliest[ids[i]].Equal(earliest[ids[j]]) {
			return earliest[ids[i]].Before(earliest[ids[j]])
		}
		return ids[i].String() < ids[j].String()
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *reads) CategoriesWithWaiting(_ context.Context) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, e := range r.s.entries {
		if e.Status() != queue.StatusWaiting {
			continue
		}
		c, ok := r.s.categories[e.CategoryID()]
		if !ok || !c.IsActive() {
			continue
		}
		if _, dup := seen[e.CategoryID()]; dup {
			continue
		}
		seen[e.CategoryID()] = struct{}{}
		ids = append(ids, e.CategoryID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *reads) ActiveReservedTotals(_ context.Context) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[uuid.UUID]int)
	for _, res := range r.s.reservations {
		if res.IsActive() {
			out[res.CategoryID()] += res.Quantity()
		}
	}
	return out, nil
}
