package readstore

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/booking"
	"appointment-engine/internal/infra"

	"github.com/google/uuid"
)

const findBookingLinesSQL = `
	SELECT id, appointment_type_id, resource_id, event_start, event_stop, capacity_reserved, capacity_used
	FROM appointment_booking_lines
	WHERE resource_id = ANY($1)
	  AND event_start < $3
	  AND event_stop > $2
	ORDER BY event_start, id`

const findLeaveIntervalsSQL = `
	SELECT resource_id, date_from, date_to
	FROM appointment_resource_leaves
	WHERE resource_id = ANY($1)
	  AND date_from < $3
	  AND date_to > $2
	ORDER BY date_from, resource_id`

type BookingReadStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewBookingReadStore(db DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: db, logger: orDiscard(logger)}
}

func (s *BookingReadStore) FindBookingLines(ctx context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Line, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, findBookingLinesSQL, resourceIDs, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query booking lines", err)
	}
	defer rows.Close()

	var lines []booking.Line
	for rows.Next() {
		var l booking.Line
		if err := rows.Scan(
			&l.ID,
			&l.AppointmentTypeID,
			&l.ResourceID,
			&l.EventStart,
			&l.EventStop,
			&l.CapacityReserved,
			&l.CapacityUsed,
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan booking line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read booking lines", err)
	}
	return lines, nil
}

func (s *BookingReadStore) FindLeaveIntervals(ctx context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Interval, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, findLeaveIntervalsSQL, resourceIDs, start, end)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query resource leaves", err)
	}
	defer rows.Close()

	var leaves []booking.Interval
	for rows.Next() {
		var iv booking.Interval
		if err := rows.Scan(&iv.ResourceID, &iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan resource leave", err)
		}
		leaves = append(leaves, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read resource leaves", err)
	}
	return leaves, nil
}
