package converter

import (
	"ticket-allocator/internal/domain/queue"
	"ticket-allocator/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const EntryColumns = `id, category_id, user_id, position, requested_quantity, priority_score, status,
	offer_expires_at, offered_quantity, offered_price_cents, reservation_id, email, phone,
	client_ip_key, flagged, created_at, updated_at`

func ScanEntry(row pgx.Row) (*queue.Entry, error) {
	var (
		id, categoryID, userID uuid.UUID
		position               int64
		requested, priority    int32
		status                 string
		offerExpiresAt         pgtype.Timestamptz
		offeredQuantity        int32
		offeredPriceCents      int64
		reservationID          pgtype.UUID
		email, phone, ipKey    pgtype.Text
		flagged                bool
		createdAt, updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&id, &categoryID, &userID, &position, &requested, &priority, &status,
		&offerExpiresAt, &offeredQuantity, &offeredPriceCents, &reservationID, &email, &phone,
		&ipKey, &flagged, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	st, err := queue.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return queue.ReconstructEntry(
		id, categoryID, userID, position, int(requested), int(priority), st,
		pgconv.TimePtrFromPgtype(offerExpiresAt), int(offeredQuantity), offeredPriceCents,
		pgconv.UUIDPtrFromPgtype(reservationID),
		queue.Contact{Email: pgconv.StringFromPgtype(email), Phone: pgconv.StringFromPgtype(phone)},
		pgconv.StringFromPgtype(ipKey), flagged, createdAt.Time.UTC(), updatedAt.Time.UTC(),
	), nil
}

func CollectEntries(rows pgx.Rows) ([]*queue.Entry, error) {
	defer rows.Close()
	var out []*queue.Entry
	for rows.Next() {
		e, err := ScanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EntryArgs returns the insert arguments in EntryColumns order.
func EntryArgs(e *queue.Entry) []any {
	return []any{
		e.ID(), e.CategoryID(), e.UserID(), e.Position(), e.RequestedQuantity(), e.PriorityScore(), e.Status().String(),
		pgconv.TimePtrToPgtype(e.OfferExpiresAt()), e.OfferedQuantity(), e.OfferedPriceCents(),
		pgconv.UUIDPtrToPgtype(e.ReservationID()),
		pgconv.NullableText(e.Contact().Email), pgconv.NullableText(e.Contact().Phone),
		pgconv.NullableText(e.ClientIPKey()), e.Flagged(), e.CreatedAt(), e.UpdatedAt(),
	}
}
