package appointment

import (
	"slices"
	"time"

	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
)

// Type is the configuration of a bookable appointment: when it can be booked,
// for how long, and with whom or what.
type Type struct {
	ID       uuid.UUID
	Name     string
	Active   bool
	Category Category
	// Duration is the slot length in hours.
	Duration float64
	TimeZone string

	// Only set for punctual appointment types.
	StartDatetime *time.Time
	EndDatetime   *time.Time

	MinScheduleHours     float64
	MinCancellationHours float64
	MaxScheduleDays      int

	ScheduleBasedOn ScheduleBasedOn
	AssignMethod    AssignMethod

	Slots      []SlotTemplate
	StaffUsers []StaffUser
	Resources  []*resource.Resource

	ResourceManageCapacity               bool
	ResourceManualConfirmation           bool
	ResourceManualConfirmationPercentage float64
}

// SlotTemplate is either a weekly recurring opening range or a unique dated
// range (custom appointment types).
type SlotTemplate struct {
	ID       uuid.UUID
	SlotType SlotType

	Weekday   time.Weekday
	StartHour float64
	// 0 means midnight at the end of the day.
	EndHour float64

	StartDatetime time.Time
	EndDatetime   time.Time
	AllDay        bool

	RestrictToUsers     []uuid.UUID
	RestrictToResources []uuid.UUID
}

type StaffUser struct {
	ID        uuid.UUID
	PartnerID uuid.UUID
	Name      string
	// Empty falls back to the engine default timezone.
	TimeZone string
}

func (s SlotTemplate) EndHour24() float64 {
	if s.EndHour == 0 {
		return 24
	}
	return s.EndHour
}

// Duration of a unique slot.
func (s SlotTemplate) Duration() time.Duration {
	return s.EndDatetime.Sub(s.StartDatetime)
}

// AllowsUser reports whether the slot accepts the user. An empty restriction
// list accepts everyone.
func (s SlotTemplate) AllowsUser(id uuid.UUID) bool {
	return len(s.RestrictToUsers) == 0 || slices.Contains(s.RestrictToUsers, id)
}

func (s SlotTemplate) AllowsResource(id uuid.UUID) bool {
	return len(s.RestrictToResources) == 0 || slices.Contains(s.RestrictToResources, id)
}

func (t *Type) SlotDuration() time.Duration {
	return tzutil.HoursToDuration(t.Duration)
}

func (t *Type) MinSchedule() time.Duration {
	return tzutil.HoursToDuration(t.MinScheduleHours)
}

func (t *Type) MaxSchedule() time.Duration {
	return time.Duration(t.MaxScheduleDays) * 24 * time.Hour
}

func (t *Type) IsResourceBased() bool {
	return t.ScheduleBasedOn == ScheduleBasedOnResources
}

func (t *Type) Location() (*time.Location, error) {
	loc, err := tzutil.Load(t.TimeZone)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "appointment type %s", t.ID), errs.ErrInvalidAppointmentType)
	}
	return loc, nil
}

func (t *Type) StaffUserByID(id uuid.UUID) (*StaffUser, bool) {
	for i := range t.StaffUsers {
		if t.StaffUsers[i].ID == id {
			return &t.StaffUsers[i], true
		}
	}
	return nil, false
}

func (t *Type) ResourceByID(id uuid.UUID) (*resource.Resource, bool) {
	for _, r := range t.Resources {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// ResourceTotalCapacity sums the capacity of every resource of the type.
func (t *Type) ResourceTotalCapacity() int {
	return resource.TotalCapacity(t.Resources)
}

// UniqueSlotRange returns the earliest start and latest end among unique slots.
func (t *Type) UniqueSlotRange() (first, last time.Time, ok bool) {
	for _, s := range t.Slots {
		if s.SlotType != SlotTypeUnique {
			continue
		}
		if !ok || s.StartDatetime.Before(first) {
			first = s.StartDatetime
		}
		if !ok || s.EndDatetime.After(last) {
			last = s.EndDatetime
		}
		ok = true
	}
	return first, last, ok
}

// Validate checks the configuration invariants of the type. Every returned
// error is marked with errs.ErrInvalidAppointmentType.
func (t *Type) Validate() error {
	if err := t.validate(); err != nil {
		return errs.Mark(err, errs.ErrInvalidAppointmentType)
	}
	return nil
}

func (t *Type) validate() error {
	if !t.Category.IsValid() {
		return errs.Mark(errs.Newf("category %q", t.Category), errs.ErrInvalidCategory)
	}

	switch t.ScheduleBasedOn {
	case ScheduleBasedOnUsers, ScheduleBasedOnResources:
	default:
		return errs.Wrapf(ErrUnknownScheduleBasedOn, "%q", t.ScheduleBasedOn)
	}

	switch t.AssignMethod {
	case AssignResourceTime, AssignTimeResource, AssignTimeAutoAssign:
	default:
		return errs.Wrapf(ErrUnknownAssignMethod, "%q", t.AssignMethod)
	}

	if t.Category == CategoryPunctual {
		if t.StartDatetime == nil || t.EndDatetime == nil {
			return ErrPunctualBoundaries
		}
		if !t.EndDatetime.After(*t.StartDatetime) {
			return ErrPunctualRange
		}
	} else if t.StartDatetime != nil || t.EndDatetime != nil {
		return errs.Wrapf(ErrUnexpectedBoundaries, "category %s", t.Category)
	}

	if !(t.Duration > 0) {
		return ErrNonPositiveDuration
	}

	if t.MinScheduleHours < 0 || t.MinCancellationHours < 0 || t.MaxScheduleDays < 0 {
		return ErrNegativeScheduleWindow
	}

	if t.ResourceManualConfirmationPercentage < 0 || t.ResourceManualConfirmationPercentage > 1 {
		return ErrConfirmationPercentage
	}

	if _, err := tzutil.Load(t.TimeZone); err != nil {
		return err
	}

	for _, s := range t.Slots {
		if err := t.validateSlot(s); err != nil {
			return err
		}
	}

	if t.ScheduleBasedOn == ScheduleBasedOnUsers {
		if t.Category == CategoryAnytime && len(t.StaffUsers) != 1 {
			return errs.Wrapf(ErrAnytimeSingleUser, "got %d users", len(t.StaffUsers))
		}
		for _, s := range t.Slots {
			for _, id := range s.RestrictToUsers {
				if _, ok := t.StaffUserByID(id); !ok {
					return errs.Wrapf(ErrRestrictedUserNotStaff, "user %s", id)
				}
			}
		}
	}

	return nil
}

func (t *Type) validateSlot(s SlotTemplate) error {
	if t.Category == CategoryCustom {
		if s.SlotType != SlotTypeUnique {
			return ErrSlotTypeMismatch
		}
		if !s.EndDatetime.After(s.StartDatetime) {
			return ErrSlotBoundaries
		}
		return nil
	}

	if s.SlotType != SlotTypeRecurring {
		return ErrSlotTypeMismatch
	}
	if s.StartHour < 0 || s.StartHour >= 24 || s.EndHour < 0 || s.EndHour > 24 || s.EndHour24() <= s.StartHour {
		return errs.Wrapf(ErrSlotHours, "%s %.2f-%.2f", s.Weekday, s.StartHour, s.EndHour)
	}
	return nil
}

// DefaultSlots returns the standard opening hours for a new appointment type:
// weekdays 9-12 and 14-17 for recurring and punctual types, every day 7-19 for
// anytime types.
func DefaultSlots(category Category) ([]SlotTemplate, error) {
	type hours struct{ start, end float64 }

	var days []time.Weekday
	var ranges []hours
	switch category {
	case CategoryRecurring, CategoryPunctual:
		days = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
		ranges = []hours{{9, 12}, {14, 17}}
	case CategoryAnytime:
		days = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
		ranges = []hours{{7, 19}}
	case CategoryCustom:
		return nil, ErrNoDefaultSlots
	default:
		return nil, errs.Mark(errs.Newf("category %q", category), errs.ErrInvalidCategory)
	}

	slots := make([]SlotTemplate, 0, len(days)*len(ranges))
	for _, d := range days {
		for _, h := range ranges {
			slots = append(slots, SlotTemplate{
				ID:        uuid.New(),
				SlotType:  SlotTypeRecurring,
				Weekday:   d,
				StartHour: h.start,
				EndHour:   h.end,
			})
		}
	}
	return slots, nil
}
