package converter

import (
	"ticket-allocator/internal/domain/reservation"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ReservationColumns = `id, category_id, user_id, session_id, quantity, source, waiting_list_id,
	status, reserved_at, expires_at, price_locked_cents, updated_at`

func ScanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, categoryID        uuid.UUID
		userID, waitingListID pgtype.UUID
		sessionID             pgtype.Text
		quantity              int32
		source, status        string
		reservedAt, expiresAt pgtype.Timestamptz
		priceCents            int64
		updatedAt             pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &categoryID, &userID, &sessionID, &quantity, &source, &waitingListID,
		&status, &reservedAt, &expiresAt, &priceCents, &updatedAt,
	); err != nil {
		return nil, err
	}

	src, err := reservation.ParseSource(source)
	if err != nil {
		return nil, err
	}
	st, err := reservation.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewMoney(priceCents)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, categoryID, pgconv.UUIDPtrFromPgtype(userID),
		reservation.NewSessionID(pgconv.StringFromPgtype(sessionID)),
		int(quantity), src, pgconv.UUIDPtrFromPgtype(waitingListID), st,
		reservedAt.Time.UTC(), expiresAt.Time.UTC(), price, updatedAt.Time.UTC(),
	), nil
}

func CollectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	defer rows.Close()
	var out []*reservation.Reservation
	for rows.Next() {
		r, err := ScanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReservationArgs returns the insert arguments in ReservationColumns order.
func ReservationArgs(r *reservation.Reservation) []any {
	return []any{
		r.ID(), r.CategoryID(), pgconv.UUIDPtrToPgtype(r.UserID()),
		pgconv.NullableText(r.SessionID().String()), r.Quantity(), r.Source().String(),
		pgconv.UUIDPtrToPgtype(r.WaitingListID()), r.Status().String(),
		r.ReservedAt(), r.ExpiresAt(), r.PriceLocked().Cents(), r.UpdatedAt(),
	}
}
