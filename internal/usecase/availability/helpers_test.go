package availability_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"appointment-engine/internal/domain/booking"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/testutil/builder"
	"appointment-engine/internal/usecase/availability"

	"github.com/google/uuid"
)

var (
	// A Sunday; the first Monday after it is 2026-10-19.
	testNow    = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// memoryStore serves booking lines, leaves and calendar events from memory.
type memoryStore struct {
	mu     sync.Mutex
	lines  []booking.Line
	leaves []booking.Interval
	events []calendar.Event
	err    error

	lineQueries  int
	eventQueries int
}

func (m *memoryStore) FindBookingLines(_ context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Line, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lineQueries++
	if m.err != nil {
		return nil, m.err
	}
	var out []booking.Line
	for _, l := range m.lines {
		if slices.Contains(resourceIDs, l.ResourceID) && l.Overlaps(start, end) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryStore) FindLeaveIntervals(_ context.Context, resourceIDs []uuid.UUID, start, end time.Time) ([]booking.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []booking.Interval
	for _, lv := range m.leaves {
		if slices.Contains(resourceIDs, lv.ResourceID) && lv.Overlaps(start, end) {
			out = append(out, lv)
		}
	}
	return out, nil
}

func (m *memoryStore) FindBusyEvents(_ context.Context, partnerIDs []uuid.UUID, start, end time.Time) ([]calendar.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventQueries++
	if m.err != nil {
		return nil, m.err
	}
	var out []calendar.Event
	for _, ev := range m.events {
		if ev.Stop.Before(start) || ev.Start.After(end) {
			continue
		}
		if slices.ContainsFunc(partnerIDs, ev.Blocks) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *memoryStore) book(apt uuid.UUID, r *resource.Resource, start, end time.Time, used int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, booking.Line{
		ID:                uuid.New(),
		AppointmentTypeID: apt,
		ResourceID:        r.ID(),
		EventStart:        start,
		EventStop:         end,
		CapacityReserved:  used,
		CapacityUsed:      used,
	})
}

func (m *memoryStore) busy(partnerID uuid.UUID, start, stop time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, calendar.Event{
		ID:        uuid.New(),
		Start:     start,
		Stop:      stop,
		ShowAs:    calendar.ShowAsBusy,
		Attendees: []calendar.Attendee{{PartnerID: partnerID, State: calendar.AttendeeStateAccepted}},
	})
}

func newTestEngine(store *memoryStore, opts ...availability.Option) availability.Engine {
	base := []availability.Option{
		availability.WithClock(clock.NewMockClock(testNow)),
		availability.WithRandomSeed(42),
	}
	return availability.NewEngine(store, store, append(base, opts...)...)
}

// table builds a resource; links must point at resources built earlier.
func table(name string, capacity, sequence int, links ...*resource.Resource) *resource.Resource {
	b := builder.NewResourceBuilder().
		WithName(name).
		WithCapacity(capacity).
		WithSequence(sequence)
	for _, l := range links {
		b.LinkedTo(l.ID())
	}
	return b.MustBuild()
}

func shareableTable(name string, capacity, sequence int, links ...*resource.Resource) *resource.Resource {
	b := builder.NewResourceBuilder().
		WithName(name).
		WithCapacity(capacity).
		WithSequence(sequence).
		AsShareable()
	for _, l := range links {
		b.LinkedTo(l.ID())
	}
	return b.MustBuild()
}

func names(rs []*resource.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

func starts(slots []availability.Slot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.UTC.Start
	}
	return out
}

// mondayWindow limits the default builder window to the first Monday.
func mondayWindow(b *builder.AppointmentTypeBuilder) {
	b.MaxScheduleDays = 3
}
