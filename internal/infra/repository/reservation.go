package repository

import (
	"context"
	"time"

	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/infra"
	"ticket-allocator/internal/infra/db"
	"ticket-allocator/internal/infra/repository/converter"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	q := `INSERT INTO reservations (` + converter.ReservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	if _, err := r.db.Exec(ctx, q, converter.ReservationArgs(res)...); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	q := `SELECT ` + converter.ReservationColumns + ` FROM reservations WHERE id = $1`
	res, err := converter.ScanReservation(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation", err)
	}
	return res, nil
}

// Save only touches rows that are still active, so a reservation leaves
// active at most once even if two writers loaded it.
func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	const q = `
		UPDATE reservations
		SET status = $2, expires_at = $3, updated_at = $4
		WHERE id = $1 AND status = 'active'`
	tag, err := r.db.Exec(ctx, q, res.ID(), res.Status().String(), res.ExpiresAt(), res.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to save reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return reservation.ErrNotActive
	}
	return nil
}

func (r *ReservationRepository) ExpireSweep(ctx context.Context, categoryID uuid.UUID, now time.Time) ([]*reservation.Reservation, error) {
	q := `SELECT ` + converter.ReservationColumns + ` FROM reservations
		WHERE category_id = $1 AND status = 'active' AND expires_at <= $2
		ORDER BY expires_at, id`
	rows, err := r.db.Query(ctx, q, categoryID, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expired reservations", err)
	}
	out, err := converter.CollectReservations(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan expired reservations", err)
	}
	return out, nil
}
