package availability

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/calendar"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/observability/metrics"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/pkg/logger"
	"appointment-engine/internal/pkg/tzutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxCombinationPeers = 10

// Engine computes bookable slots for appointment types and re-validates them
// at booking time.
type Engine interface {
	GetAppointmentSlots(ctx context.Context, apt *appointment.Type, q Query) ([]Slot, error)
	GenerateSlots(apt *appointment.Type, first, last time.Time, viewerTZ string, reference time.Time) ([]Slot, error)
	FillUserAvailability(ctx context.Context, apt *appointment.Type, slots []Slot, start, end time.Time, users []appointment.StaffUser) error
	FillResourceAvailability(ctx context.Context, apt *appointment.Type, slots []Slot, start, end time.Time, resources []*resource.Resource, askedCapacity int) error
	IsSlotStillValid(ctx context.Context, apt *appointment.Type, req ValidityRequest) (bool, error)
	DefaultAttendeeStatus(ctx context.Context, apt *appointment.Type, start, stop time.Time, capacityReserved int) (calendar.AttendeeState, error)
	PrepareBooking(ctx context.Context, apt *appointment.Type, req BookingRequest) (*BookingProposal, bool, error)
}

type engine struct {
	bookings  BookingStore
	calendars CalendarStore
	cache     SelectionCache

	clock     clock.Clock
	logger    *slog.Logger
	metrics   *metrics.EngineMetrics
	tracer    trace.Tracer
	defaultTZ *time.Location
	maxPeers  int

	seed  uint64
	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*engine)

func WithClock(c clock.Clock) Option {
	return func(e *engine) { e.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *engine) { e.logger = l }
}

func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(e *engine) { e.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(e *engine) { e.tracer = t }
}

func WithSelectionCache(c SelectionCache) Option {
	return func(e *engine) { e.cache = c }
}

// WithRandomSeed makes the staff user shuffle reproducible. 0 seeds from the
// current time.
func WithRandomSeed(seed uint64) Option {
	return func(e *engine) { e.seed = seed }
}

func WithMaxCombinationPeers(n int) Option {
	return func(e *engine) {
		if n > 0 {
			e.maxPeers = n
		}
	}
}

// WithDefaultTimezone sets the timezone of staff users without one.
func WithDefaultTimezone(loc *time.Location) Option {
	return func(e *engine) {
		if loc != nil {
			e.defaultTZ = loc
		}
	}
}

// OptionsFromConfig translates the engine configuration into options.
func OptionsFromConfig(cfg config.EngineConfig) ([]Option, error) {
	loc, err := tzutil.Load(cfg.DefaultTimezone)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithDefaultTimezone(loc),
		WithMaxCombinationPeers(cfg.MaxCombinationPeers),
		WithRandomSeed(cfg.RandomSeed),
	}, nil
}

func NewEngine(bookings BookingStore, calendars CalendarStore, opts ...Option) Engine {
	e := &engine{
		bookings:  bookings,
		calendars: calendars,
		clock:     clock.NewRealClock(),
		logger:    logger.Discard(),
		tracer:    otel.Tracer("appointment-engine/internal/usecase/availability"),
		defaultTZ: time.UTC,
		maxPeers:  defaultMaxCombinationPeers,
	}
	for _, opt := range opts {
		opt(e)
	}

	seed := e.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return e
}

func (e *engine) shuffleUsers(users []appointment.StaffUser) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	e.rng.Shuffle(len(users), func(i, j int) {
		users[i], users[j] = users[j], users[i]
	})
}

// viewerLocation resolves the viewer timezone, falling back to the
// appointment timezone.
func (e *engine) viewerLocation(name string, aptLoc *time.Location) *time.Location {
	if name == "" {
		return aptLoc
	}
	loc, fellBack := tzutil.LoadOr(name, aptLoc)
	if fellBack {
		e.logger.Warn("unknown viewer timezone, using appointment timezone",
			slog.String("timezone", name),
			slog.String("fallback", aptLoc.String()))
	}
	return loc
}

func (e *engine) userLocation(u appointment.StaffUser) *time.Location {
	if u.TimeZone == "" {
		return e.defaultTZ
	}
	loc, _ := tzutil.LoadOr(u.TimeZone, e.defaultTZ)
	return loc
}

func (e *engine) observe(operation string, began time.Time, err error) {
	e.metrics.ObserveOperation(operation, err, time.Since(began).Seconds())
}
