package readstore

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const findAppointmentTypeSQL = `
	SELECT id, name, active, category, duration, timezone,
	       start_datetime, end_datetime,
	       min_schedule_hours, min_cancellation_hours, max_schedule_days,
	       schedule_based_on, assign_method,
	       resource_manage_capacity, resource_manual_confirmation, resource_manual_confirmation_percentage
	FROM appointment_types
	WHERE id = $1`

// weekday is ISO numbered (Monday = 1) and 0 for unique slots.
const findAppointmentSlotsSQL = `
	SELECT id, slot_type, COALESCE(weekday, 0), COALESCE(start_hour, 0), COALESCE(end_hour, 0),
	       start_datetime, end_datetime, allday,
	       COALESCE(restrict_to_user_ids, '{}'), COALESCE(restrict_to_resource_ids, '{}')
	FROM appointment_slots
	WHERE appointment_type_id = $1
	ORDER BY weekday, start_hour, start_datetime, id`

const findStaffUsersSQL = `
	SELECT user_id, partner_id, name, COALESCE(timezone, '')
	FROM appointment_staff_users
	WHERE appointment_type_id = $1
	ORDER BY user_id`

const findResourcesSQL = `
	SELECT r.id, r.name, r.capacity, r.sequence, r.shareable,
	       COALESCE(array_agg(l.linked_resource_id) FILTER (WHERE l.linked_resource_id IS NOT NULL), '{}')
	FROM appointment_type_resources tr
	JOIN appointment_resources r ON r.id = tr.resource_id
	LEFT JOIN appointment_resource_links l ON l.resource_id = r.id
	WHERE tr.appointment_type_id = $1
	GROUP BY r.id
	ORDER BY r.sequence, r.id`

type AppointmentTypeReadStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewAppointmentTypeReadStore(db DBTX, logger *slog.Logger) *AppointmentTypeReadStore {
	return &AppointmentTypeReadStore{db: db, logger: orDiscard(logger)}
}

// FindByID loads an appointment type with its slots, staff and resources. The
// returned type has passed Validate.
func (s *AppointmentTypeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Type, error) {
	apt, err := s.findType(ctx, id)
	if err != nil {
		return nil, err
	}

	if apt.Slots, err = s.findSlots(ctx, id); err != nil {
		return nil, err
	}
	if apt.StaffUsers, err = s.findStaffUsers(ctx, id); err != nil {
		return nil, err
	}
	if apt.Resources, err = s.findResources(ctx, id); err != nil {
		return nil, err
	}

	if err := apt.Validate(); err != nil {
		return nil, errs.Wrapf(err, "appointment type %s", id)
	}
	return apt, nil
}

func (s *AppointmentTypeReadStore) findType(ctx context.Context, id uuid.UUID) (*appointment.Type, error) {
	var (
		apt             appointment.Type
		category        string
		scheduleBasedOn string
		assignMethod    string
	)
	err := s.db.QueryRow(ctx, findAppointmentTypeSQL, id).Scan(
		&apt.ID,
		&apt.Name,
		&apt.Active,
		&category,
		&apt.Duration,
		&apt.TimeZone,
		&apt.StartDatetime,
		&apt.EndDatetime,
		&apt.MinScheduleHours,
		&apt.MinCancellationHours,
		&apt.MaxScheduleDays,
		&scheduleBasedOn,
		&assignMethod,
		&apt.ResourceManageCapacity,
		&apt.ResourceManualConfirmation,
		&apt.ResourceManualConfirmationPercentage,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "appointment type "+id.String()+" not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to find appointment type", err)
	}

	apt.Category = appointment.Category(category)
	apt.ScheduleBasedOn = appointment.ScheduleBasedOn(scheduleBasedOn)
	apt.AssignMethod = appointment.AssignMethod(assignMethod)
	return &apt, nil
}

func (s *AppointmentTypeReadStore) findSlots(ctx context.Context, id uuid.UUID) ([]appointment.SlotTemplate, error) {
	rows, err := s.db.Query(ctx, findAppointmentSlotsSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query appointment slots", err)
	}
	defer rows.Close()

	var slots []appointment.SlotTemplate
	for rows.Next() {
		var (
			slot       appointment.SlotTemplate
			slotType   string
			isoWeekday int
			start, end *time.Time
		)
		if err := rows.Scan(
			&slot.ID,
			&slotType,
			&isoWeekday,
			&slot.StartHour,
			&slot.EndHour,
			&start,
			&end,
			&slot.AllDay,
			&slot.RestrictToUsers,
			&slot.RestrictToResources,
		); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan appointment slot", err)
		}

		slot.SlotType = appointment.SlotType(slotType)
		slot.Weekday = time.Weekday(isoWeekday % 7)
		slot.StartDatetime = pgconv.TimeValue(start)
		slot.EndDatetime = pgconv.TimeValue(end)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read appointment slots", err)
	}
	return slots, nil
}

func (s *AppointmentTypeReadStore) findStaffUsers(ctx context.Context, id uuid.UUID) ([]appointment.StaffUser, error) {
	rows, err := s.db.Query(ctx, findStaffUsersSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query staff users", err)
	}
	defer rows.Close()

	var users []appointment.StaffUser
	for rows.Next() {
		var u appointment.StaffUser
		if err := rows.Scan(&u.ID, &u.PartnerID, &u.Name, &u.TimeZone); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan staff user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read staff users", err)
	}
	return users, nil
}

func (s *AppointmentTypeReadStore) findResources(ctx context.Context, id uuid.UUID) ([]*resource.Resource, error) {
	rows, err := s.db.Query(ctx, findResourcesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to query resources", err)
	}
	defer rows.Close()

	var resources []*resource.Resource
	for rows.Next() {
		var (
			rid       uuid.UUID
			name      string
			capacity  int
			sequence  int
			shareable bool
			linked    []uuid.UUID
		)
		if err := rows.Scan(&rid, &name, &capacity, &sequence, &shareable, &linked); err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to scan resource", err)
		}

		r, err := resource.NewResource(rid, name, capacity, sequence, shareable, linked)
		if err != nil {
			return nil, infra.WrapRepoErr(s.logger, infra.KindCorruptRecord, "invalid resource "+rid.String(), err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindDBFailure, "failed to read resources", err)
	}
	return resources, nil
}
