//go:build e2e

package readstore_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/infra/db"
	"appointment-engine/internal/infra/readstore"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/pkg/errs"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgDatabase = "appointments"
)

var readModelTables = []string{
	"calendar_attendees",
	"calendar_events",
	"appointment_resource_leaves",
	"appointment_booking_lines",
	"appointment_resource_links",
	"appointment_type_resources",
	"appointment_resources",
	"appointment_staff_users",
	"appointment_slots",
	"appointment_types",
}

type PostgresReadStoreSuite struct {
	suite.Suite
	container testcontainers.Container
	pool      *pgxpool.Pool
}

func TestPostgresReadStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresReadStoreSuite))
}

func (s *PostgresReadStoreSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       pgDatabase,
		},
		Tmpfs: map[string]string{
			"/var/lib/postgresql/data": "rw,size=256m",
		},
		Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off", "-c", "full_page_writes=off"},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), pgDatabase)
		}).WithStartupTimeout(60 * time.Second),
		Labels: map[string]string{"purpose": "readstore-e2e"},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	s.Require().NoError(err)

	pool, _, err := db.Connect(ctx, config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   pgDatabase,
		SSLMode:  "disable",
		MaxConns: 4,
	})
	s.Require().NoError(err, "failed to connect to postgres")
	s.pool = pool

	s.Require().NoError(applyMigrations(ctx, pool), "failed to apply migrations")
}

func (s *PostgresReadStoreSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.container.Terminate(ctx); err != nil {
			s.T().Logf("failed to terminate postgres container: %v", err)
		}
	}
}

func (s *PostgresReadStoreSuite) SetupTest() {
	for _, table := range readModelTables {
		_, err := s.pool.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE")
		s.Require().NoError(err)
	}
}

// applyMigrations runs the schema files from the repository root; go test runs
// with the package directory as working directory.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	const file = "migrations/001_read_model.sql"

	var (
		sqlContent []byte
		readErr    error
	)
	for _, cand := range []string{
		file,
		filepath.Join("..", file),
		filepath.Join("..", "..", file),
		filepath.Join("..", "..", "..", file),
	} {
		sqlContent, readErr = os.ReadFile(cand)
		if readErr == nil {
			break
		}
	}
	if readErr != nil {
		return fmt.Errorf("failed to read migration file %s: %w", file, readErr)
	}

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", file, err)
	}
	return nil
}

func (s *PostgresReadStoreSuite) exec(sql string, args ...any) {
	_, err := s.pool.Exec(context.Background(), sql, args...)
	s.Require().NoError(err)
}

func (s *PostgresReadStoreSuite) insertType(id uuid.UUID, category, basedOn string, start, end *time.Time) {
	s.exec(`
		INSERT INTO appointment_types (id, name, category, duration, timezone, start_datetime, end_datetime,
		                               schedule_based_on, assign_method, resource_manage_capacity)
		VALUES ($1, 'Dinner', $2, 1.5, 'Europe/Brussels', $3, $4, $5, 'time_auto_assign', TRUE)`,
		id, category, start, end, basedOn)
}

func (s *PostgresReadStoreSuite) insertResource(id uuid.UUID, name string, capacity, sequence int, shareable bool) {
	s.exec(`INSERT INTO appointment_resources (id, name, capacity, sequence, shareable) VALUES ($1, $2, $3, $4, $5)`,
		id, name, capacity, sequence, shareable)
}

func (s *PostgresReadStoreSuite) TestFindByID() {
	ctx := context.Background()
	store := readstore.NewAppointmentTypeReadStore(s.pool, nil)

	s.Run("resource based type with linked resources", func() {
		aptID, other := uuid.New(), uuid.New()
		big, small, lone, foreign := uuid.New(), uuid.New(), uuid.New(), uuid.New()
		s.insertType(aptID, "recurring", "resources", nil, nil)
		s.insertType(other, "recurring", "resources", nil, nil)
		s.insertResource(big, "Big table", 6, 1, true)
		s.insertResource(small, "Small table", 2, 2, false)
		s.insertResource(lone, "Terrace", 4, 3, false)
		s.insertResource(foreign, "Other room", 8, 0, false)
		for _, r := range []uuid.UUID{big, small, lone} {
			s.exec(`INSERT INTO appointment_type_resources (appointment_type_id, resource_id) VALUES ($1, $2)`, aptID, r)
		}
		s.exec(`INSERT INTO appointment_type_resources (appointment_type_id, resource_id) VALUES ($1, $2)`, other, foreign)
		s.exec(`INSERT INTO appointment_resource_links (resource_id, linked_resource_id) VALUES ($1, $2), ($2, $1)`, big, small)
		s.exec(`
			INSERT INTO appointment_slots (id, appointment_type_id, weekday, start_hour, end_hour, restrict_to_resource_ids)
			VALUES ($1, $2, 1, 18, 23, $3), ($4, $2, 7, 12, 0, NULL)`,
			uuid.New(), aptID, []uuid.UUID{big}, uuid.New())

		apt, err := store.FindByID(ctx, aptID)
		s.Require().NoError(err)

		s.Equal(appointment.CategoryRecurring, apt.Category)
		s.Equal(appointment.ScheduleBasedOnResources, apt.ScheduleBasedOn)
		s.Nil(apt.StartDatetime)
		s.Equal(90*time.Minute, apt.SlotDuration())

		s.Require().Len(apt.Slots, 2)
		s.Equal(time.Monday, apt.Slots[0].Weekday)
		s.Equal([]uuid.UUID{big}, apt.Slots[0].RestrictToResources)
		s.Equal(time.Sunday, apt.Slots[1].Weekday)
		s.Equal(0.0, apt.Slots[1].EndHour)
		s.Empty(apt.Slots[1].RestrictToResources)

		s.Require().Len(apt.Resources, 3)
		s.Equal("Big table", apt.Resources[0].Name())
		s.True(apt.Resources[0].Shareable())
		s.True(apt.Resources[0].IsLinkedTo(small))
		s.True(apt.Resources[1].IsLinkedTo(big))
		s.Equal("Terrace", apt.Resources[2].Name())
		s.False(apt.Resources[2].IsLinkedTo(big))
		s.Equal(12, apt.ResourceTotalCapacity())
	})

	s.Run("punctual staff type", func() {
		aptID, userID, partnerID := uuid.New(), uuid.New(), uuid.New()
		start := time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC)
		end := start.Add(72 * time.Hour)
		s.insertType(aptID, "punctual", "users", &start, &end)
		s.exec(`INSERT INTO appointment_staff_users (appointment_type_id, user_id, partner_id, name) VALUES ($1, $2, $3, 'Alice')`,
			aptID, userID, partnerID)
		s.exec(`
			INSERT INTO appointment_slots (id, appointment_type_id, weekday, start_hour, end_hour, restrict_to_user_ids)
			VALUES ($1, $2, 2, 9.5, 12, $3)`,
			uuid.New(), aptID, []uuid.UUID{userID})

		apt, err := store.FindByID(ctx, aptID)
		s.Require().NoError(err)

		s.Require().NotNil(apt.StartDatetime)
		s.True(start.Equal(*apt.StartDatetime))
		s.True(end.Equal(*apt.EndDatetime))
		s.Equal([]appointment.StaffUser{{ID: userID, PartnerID: partnerID, Name: "Alice"}}, apt.StaffUsers)
		s.Require().Len(apt.Slots, 1)
		s.Equal(time.Tuesday, apt.Slots[0].Weekday)
		s.Equal(9.5, apt.Slots[0].StartHour)
		s.Equal([]uuid.UUID{userID}, apt.Slots[0].RestrictToUsers)
		s.Empty(apt.Resources)
	})

	s.Run("custom type with unique slots", func() {
		aptID := uuid.New()
		first := time.Date(2026, 11, 3, 14, 0, 0, 0, time.UTC)
		s.insertType(aptID, "custom", "users", nil, nil)
		s.exec(`
			INSERT INTO appointment_slots (id, appointment_type_id, slot_type, start_datetime, end_datetime, allday)
			VALUES ($1, $2, 'unique', $3, $4, FALSE), ($5, $2, 'unique', $6, $7, TRUE)`,
			uuid.New(), aptID, first, first.Add(time.Hour),
			uuid.New(), first.Add(48*time.Hour), first.Add(72*time.Hour))

		apt, err := store.FindByID(ctx, aptID)
		s.Require().NoError(err)

		s.Require().Len(apt.Slots, 2)
		s.Equal(appointment.SlotTypeUnique, apt.Slots[0].SlotType)
		s.True(first.Equal(apt.Slots[0].StartDatetime))
		s.Equal(time.Hour, apt.Slots[0].Duration())
		s.True(apt.Slots[1].AllDay)
	})

	s.Run("unknown id", func() {
		_, err := store.FindByID(ctx, uuid.New())
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrAppointmentTypeNotFound))
	})
}

func (s *PostgresReadStoreSuite) TestBookingReadStore() {
	ctx := context.Background()
	store := readstore.NewBookingReadStore(s.pool, nil)

	aptID, room, hall := uuid.New(), uuid.New(), uuid.New()
	s.insertType(aptID, "recurring", "resources", nil, nil)
	s.insertResource(room, "Room", 4, 1, false)
	s.insertResource(hall, "Hall", 20, 2, true)

	nine := windowStart.Add(9 * time.Hour)
	inside, touching, otherResource := uuid.New(), uuid.New(), uuid.New()
	s.exec(`
		INSERT INTO appointment_booking_lines (id, appointment_type_id, resource_id, event_start, event_stop, capacity_reserved, capacity_used)
		VALUES ($1, $4, $5, $7, $8, 2, 4),
		       ($2, $4, $5, $9, $10, 1, 1),
		       ($3, $4, $6, $7, $8, 3, 3)`,
		inside, touching, otherResource, aptID, room, hall,
		nine, nine.Add(time.Hour), windowStart.Add(-time.Hour), windowStart)

	s.Run("lines overlapping the window", func() {
		lines, err := store.FindBookingLines(ctx, []uuid.UUID{room}, windowStart, windowEnd)
		s.Require().NoError(err)
		s.Require().Len(lines, 1)
		s.Equal(inside, lines[0].ID)
		s.Equal(aptID, lines[0].AppointmentTypeID)
		s.True(nine.Equal(lines[0].EventStart))
		s.Equal(2, lines[0].CapacityReserved)
		s.Equal(4, lines[0].CapacityUsed)
	})

	s.Run("lines of several resources", func() {
		lines, err := store.FindBookingLines(ctx, []uuid.UUID{room, hall}, windowStart, windowEnd)
		s.Require().NoError(err)
		s.Len(lines, 2)
	})

	s.Run("leaves overlapping the window", func() {
		s.exec(`
			INSERT INTO appointment_resource_leaves (id, resource_id, date_from, date_to)
			VALUES ($1, $3, $4, $5), ($2, $3, $6, $7)`,
			uuid.New(), uuid.New(), room, nine, nine.Add(2*time.Hour), windowStart.Add(-24*time.Hour), windowStart)

		leaves, err := store.FindLeaveIntervals(ctx, []uuid.UUID{room, hall}, windowStart, windowEnd)
		s.Require().NoError(err)
		s.Require().Len(leaves, 1)
		s.Equal(room, leaves[0].ResourceID)
		s.True(nine.Equal(leaves[0].Start))
		s.True(nine.Add(2 * time.Hour).Equal(leaves[0].End))
	})
}

func (s *PostgresReadStoreSuite) TestCalendarReadStore() {
	ctx := context.Background()
	store := readstore.NewCalendarReadStore(s.pool, nil)

	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	meeting, holiday, freeTime, archived := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	nine := windowStart.Add(9 * time.Hour)

	s.exec(`
		INSERT INTO calendar_events (id, start_at, stop_at, allday, show_as, active)
		VALUES ($1, $5, $6, FALSE, 'busy', TRUE),
		       ($2, $7, $8, TRUE, 'busy', TRUE),
		       ($3, $5, $6, FALSE, 'free', TRUE),
		       ($4, $5, $6, FALSE, 'busy', FALSE)`,
		meeting, holiday, freeTime, archived,
		nine, nine.Add(time.Hour), windowStart, windowEnd)
	s.exec(`
		INSERT INTO calendar_attendees (event_id, partner_id, state)
		VALUES ($1, $5, 'accepted'), ($1, $6, 'declined'), ($1, $7, 'accepted'),
		       ($2, $6, 'accepted'),
		       ($3, $5, 'accepted'),
		       ($4, $5, 'accepted')`,
		meeting, holiday, freeTime, archived, alice, bob, carol)

	events, err := store.FindBusyEvents(ctx, []uuid.UUID{alice, bob}, windowStart, windowEnd)
	s.Require().NoError(err)
	s.Require().Len(events, 2)

	s.Equal(holiday, events[0].ID)
	s.True(events[0].AllDay)
	s.Equal([]calendar.Attendee{{PartnerID: bob, State: calendar.AttendeeStateAccepted}}, events[0].Attendees)

	s.Equal(meeting, events[1].ID)
	s.Equal(calendar.ShowAsBusy, events[1].ShowAs)
	s.ElementsMatch([]calendar.Attendee{
		{PartnerID: alice, State: calendar.AttendeeStateAccepted},
		{PartnerID: bob, State: calendar.AttendeeStateDeclined},
	}, events[1].Attendees)
	s.True(events[1].Blocks(alice))
	s.False(events[1].Blocks(bob))
}
