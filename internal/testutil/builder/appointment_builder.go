package builder

import (
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"

	"github.com/google/uuid"
)

type AppointmentTypeBuilder struct {
	ID                         uuid.UUID
	Name                       string
	Active                     bool
	Category                   appointment.Category
	Duration                   float64
	TimeZone                   string
	StartDatetime              *time.Time
	EndDatetime                *time.Time
	MinScheduleHours           float64
	MaxScheduleDays            int
	ScheduleBasedOn            appointment.ScheduleBasedOn
	AssignMethod               appointment.AssignMethod
	Slots                      []appointment.SlotTemplate
	StaffUsers                 []appointment.StaffUser
	Resources                  []*resource.Resource
	ManageCapacity             bool
	ManualConfirmation         bool
	ManualConfirmationFraction float64
}

// NewAppointmentTypeBuilder starts from a one-hour recurring type open Monday
// 09:00-12:00 in UTC with a single staff user.
func NewAppointmentTypeBuilder() *AppointmentTypeBuilder {
	return &AppointmentTypeBuilder{
		ID:              uuid.New(),
		Name:            "Consultation",
		Active:          true,
		Category:        appointment.CategoryRecurring,
		Duration:        1,
		TimeZone:        "UTC",
		MaxScheduleDays: 15,
		ScheduleBasedOn: appointment.ScheduleBasedOnUsers,
		AssignMethod:    appointment.AssignResourceTime,
		Slots: []appointment.SlotTemplate{
			RecurringSlot(time.Monday, 9, 12),
		},
		StaffUsers: []appointment.StaffUser{
			NewStaffUser("Alice", "UTC"),
		},
	}
}

func (b *AppointmentTypeBuilder) With(mutate func(*AppointmentTypeBuilder)) *AppointmentTypeBuilder {
	mutate(b)
	return b
}

// Build returns the type without validating it.
func (b *AppointmentTypeBuilder) Build() *appointment.Type {
	return &appointment.Type{
		ID:                                   b.ID,
		Name:                                 b.Name,
		Active:                               b.Active,
		Category:                             b.Category,
		Duration:                             b.Duration,
		TimeZone:                             b.TimeZone,
		StartDatetime:                        b.StartDatetime,
		EndDatetime:                          b.EndDatetime,
		MinScheduleHours:                     b.MinScheduleHours,
		MaxScheduleDays:                      b.MaxScheduleDays,
		ScheduleBasedOn:                      b.ScheduleBasedOn,
		AssignMethod:                         b.AssignMethod,
		Slots:                                b.Slots,
		StaffUsers:                           b.StaffUsers,
		Resources:                            b.Resources,
		ResourceManageCapacity:               b.ManageCapacity,
		ResourceManualConfirmation:           b.ManualConfirmation,
		ResourceManualConfirmationPercentage: b.ManualConfirmationFraction,
	}
}

func (b *AppointmentTypeBuilder) BuildDomain() (*appointment.Type, error) {
	t := b.Build()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Fluent builder methods
func (b *AppointmentTypeBuilder) WithCategory(c appointment.Category) *AppointmentTypeBuilder {
	b.Category = c
	return b
}

func (b *AppointmentTypeBuilder) WithDuration(hours float64) *AppointmentTypeBuilder {
	b.Duration = hours
	return b
}

func (b *AppointmentTypeBuilder) WithTimeZone(tz string) *AppointmentTypeBuilder {
	b.TimeZone = tz
	return b
}

func (b *AppointmentTypeBuilder) WithSlots(slots ...appointment.SlotTemplate) *AppointmentTypeBuilder {
	b.Slots = slots
	return b
}

func (b *AppointmentTypeBuilder) WithStaffUsers(users ...appointment.StaffUser) *AppointmentTypeBuilder {
	b.StaffUsers = users
	return b
}

func (b *AppointmentTypeBuilder) WithMinScheduleHours(hours float64) *AppointmentTypeBuilder {
	b.MinScheduleHours = hours
	return b
}

func (b *AppointmentTypeBuilder) WithMaxScheduleDays(days int) *AppointmentTypeBuilder {
	b.MaxScheduleDays = days
	return b
}

func (b *AppointmentTypeBuilder) WithPunctualRange(start, end time.Time) *AppointmentTypeBuilder {
	b.Category = appointment.CategoryPunctual
	b.StartDatetime = &start
	b.EndDatetime = &end
	return b
}

func (b *AppointmentTypeBuilder) WithAssignMethod(m appointment.AssignMethod) *AppointmentTypeBuilder {
	b.AssignMethod = m
	return b
}

// AsResourceBased switches the type to resources with capacity management.
func (b *AppointmentTypeBuilder) AsResourceBased(resources ...*resource.Resource) *AppointmentTypeBuilder {
	b.ScheduleBasedOn = appointment.ScheduleBasedOnResources
	b.StaffUsers = nil
	b.Resources = resources
	b.ManageCapacity = true
	return b
}

func (b *AppointmentTypeBuilder) WithoutCapacityManagement() *AppointmentTypeBuilder {
	b.ManageCapacity = false
	return b
}

func (b *AppointmentTypeBuilder) WithManualConfirmation(fraction float64) *AppointmentTypeBuilder {
	b.ManualConfirmation = true
	b.ManualConfirmationFraction = fraction
	return b
}

func RecurringSlot(day time.Weekday, start, end float64) appointment.SlotTemplate {
	return appointment.SlotTemplate{
		ID:        uuid.New(),
		SlotType:  appointment.SlotTypeRecurring,
		Weekday:   day,
		StartHour: start,
		EndHour:   end,
	}
}

func UniqueSlot(start, end time.Time) appointment.SlotTemplate {
	return appointment.SlotTemplate{
		ID:            uuid.New(),
		SlotType:      appointment.SlotTypeUnique,
		StartDatetime: start,
		EndDatetime:   end,
	}
}

func NewStaffUser(name, tz string) appointment.StaffUser {
	return appointment.StaffUser{
		ID:        uuid.New(),
		PartnerID: uuid.New(),
		Name:      name,
		TimeZone:  tz,
	}
}
