package cli_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"appointment-engine/internal/cli"
	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/mock/availabilitymock"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/testutil/builder"
	"appointment-engine/internal/usecase/availability"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

type fixture struct {
	types *availabilitymock.MockAppointmentTypeStore
	out   *bytes.Buffer
	ctx   *cli.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	bookings := availabilitymock.NewMockBookingStore(ctrl)
	bookings.EXPECT().FindBookingLines(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	bookings.EXPECT().FindLeaveIntervals(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	calendars := availabilitymock.NewMockCalendarStore(ctrl)
	calendars.EXPECT().FindBusyEvents(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	f := &fixture{
		types: availabilitymock.NewMockAppointmentTypeStore(ctrl),
		out:   &bytes.Buffer{},
	}
	f.ctx = &cli.Context{
		Ctx: context.Background(),
		Engine: availability.NewEngine(bookings, calendars,
			availability.WithClock(clock.NewMockClock(testNow)),
			availability.WithRandomSeed(1)),
		Types: f.types,
		Out:   f.out,
	}
	return f
}

func (f *fixture) run(t *testing.T, args ...string) error {
	t.Helper()
	parser, err := kong.New(&cli.CLI{}, kong.Name("appointment-engine"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(f.ctx)
}

func (f *fixture) serve(apt *appointment.Type) {
	f.types.EXPECT().FindByID(gomock.Any(), apt.ID).Return(apt, nil).Times(1)
}

func TestSlotsCmd(t *testing.T) {
	t.Run("success: grouped by day", func(t *testing.T) {
		f := newFixture(t)
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "slots", apt.ID.String()))
		assert.Equal(t, "2026-10-19 Monday\n"+
			"  09:00-10:00  Alice\n"+
			"  10:00-11:00  Alice\n"+
			"  11:00-12:00  Alice\n", f.out.String())
	})

	t.Run("success: viewer timezone", func(t *testing.T) {
		f := newFixture(t)
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "slots", apt.ID.String(), "--timezone=America/New_York"))
		assert.Equal(t, "2026-10-19 Monday\n"+
			"  05:00-06:00  Alice\n"+
			"  06:00-07:00  Alice\n"+
			"  07:00-08:00  Alice\n", f.out.String())
	})

	t.Run("success: resources are listed by name", func(t *testing.T) {
		f := newFixture(t)
		terrace := builder.NewResourceBuilder().WithName("Terrace").WithCapacity(4).MustBuild()
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).AsResourceBased(terrace).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "slots", apt.ID.String(), "--capacity=3"))
		assert.Contains(t, f.out.String(), "  09:00-10:00  Terrace\n")
	})

	t.Run("success: nothing to show", func(t *testing.T) {
		f := newFixture(t)
		apt := builder.NewAppointmentTypeBuilder().With(func(b *builder.AppointmentTypeBuilder) { b.Active = false }).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "slots", apt.ID.String()))
		assert.Equal(t, "No slots available.\n", f.out.String())
	})

	t.Run("error: malformed type id", func(t *testing.T) {
		f := newFixture(t)

		require.Error(t, f.run(t, "slots", "not-a-uuid"))
		assert.Empty(t, f.out.String())
	})

	t.Run("error: unknown type", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.New()
		f.types.EXPECT().FindByID(gomock.Any(), id).Return(nil, errs.Mark(errs.New("no rows"), errs.ErrAppointmentTypeNotFound))

		err := f.run(t, "slots", id.String())
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrAppointmentTypeNotFound))
	})
}

func TestCheckCmd(t *testing.T) {
	apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).Build()

	cases := []struct {
		name  string
		start string
		want  string
	}{
		{name: "opening hour", start: "2026-10-19T10:00:00Z", want: "valid\n"},
		{name: "outside the opening hours", start: "2026-10-19T12:30:00Z", want: "stale\n"},
		{name: "closed day", start: "2026-10-18T09:00:00Z", want: "stale\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.serve(apt)

			require.NoError(t, f.run(t, "check", apt.ID.String(), tc.start))
			assert.Equal(t, tc.want, f.out.String())
		})
	}
}

func TestPrepareCmd(t *testing.T) {
	t.Run("success: exclusive resource", func(t *testing.T) {
		f := newFixture(t)
		terrace := builder.NewResourceBuilder().WithName("Terrace").WithCapacity(4).MustBuild()
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).AsResourceBased(terrace).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "prepare", apt.ID.String(), "2026-10-19T10:00:00Z", "--capacity=2"))
		assert.Equal(t, "slot     2026-10-19T10:00:00Z - 2026-10-19T11:00:00Z\n"+
			"status   accepted\n"+
			"resource Terrace reserved=2 used=4\n", f.out.String())
	})

	t.Run("success: staff user", func(t *testing.T) {
		f := newFixture(t)
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "prepare", apt.ID.String(), "2026-10-19T09:00:00Z",
			"--staff="+apt.StaffUsers[0].ID.String()))
		assert.Equal(t, "slot     2026-10-19T09:00:00Z - 2026-10-19T10:00:00Z\n"+
			"status   accepted\n"+
			"staff    Alice\n", f.out.String())
	})

	t.Run("stale: capacity above the resource", func(t *testing.T) {
		f := newFixture(t)
		terrace := builder.NewResourceBuilder().WithName("Terrace").WithCapacity(4).MustBuild()
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).AsResourceBased(terrace).Build()
		f.serve(apt)

		require.NoError(t, f.run(t, "prepare", apt.ID.String(), "2026-10-19T10:00:00Z", "--capacity=5"))
		assert.Equal(t, "stale\n", f.out.String())
	})

	t.Run("error: malformed resource id", func(t *testing.T) {
		f := newFixture(t)
		apt := builder.NewAppointmentTypeBuilder().WithMaxScheduleDays(3).Build()
		f.serve(apt)

		require.Error(t, f.run(t, "prepare", apt.ID.String(), "2026-10-19T10:00:00Z", "--resources=nope"))
	})
}
