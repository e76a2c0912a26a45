package appointment

import "errors"

type Category string

const (
	CategoryRecurring Category = "recurring"
	CategoryPunctual  Category = "punctual"
	CategoryCustom    Category = "custom"
	CategoryAnytime   Category = "anytime"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryRecurring, CategoryPunctual, CategoryCustom, CategoryAnytime:
		return true
	}
	return false
}

type ScheduleBasedOn string

const (
	ScheduleBasedOnUsers     ScheduleBasedOn = "users"
	ScheduleBasedOnResources ScheduleBasedOn = "resources"
)

// AssignMethod decides how staff or resources are picked for a slot.
type AssignMethod string

const (
	// AssignResourceTime lets the customer pick the resource first.
	AssignResourceTime AssignMethod = "resource_time"
	// AssignTimeResource shows every available resource for a time.
	AssignTimeResource AssignMethod = "time_resource"
	// AssignTimeAutoAssign picks the resource automatically.
	AssignTimeAutoAssign AssignMethod = "time_auto_assign"
)

type SlotType string

const (
	SlotTypeRecurring SlotType = "recurring"
	SlotTypeUnique    SlotType = "unique"
)

var (
	ErrPunctualBoundaries     = errors.New("punctual appointment types must have a start and end datetime")
	ErrUnexpectedBoundaries   = errors.New("only punctual appointment types can be limited by datetimes")
	ErrPunctualRange          = errors.New("punctual end datetime must be after its start datetime")
	ErrNonPositiveDuration    = errors.New("appointment duration must be greater than zero")
	ErrConfirmationPercentage = errors.New("manual confirmation percentage must be between 0 and 1")
	ErrAnytimeSingleUser      = errors.New("anytime appointment types must have exactly one staff user")
	ErrRestrictedUserNotStaff = errors.New("restricted slot user is not part of the staff")
	ErrSlotHours              = errors.New("slot hours must be within 0 and 24 and end after start")
	ErrSlotBoundaries         = errors.New("unique slot must end after it starts")
	ErrSlotTypeMismatch       = errors.New("slot type does not match the appointment category")
	ErrNoDefaultSlots         = errors.New("custom appointment types have no default slots")
	ErrNegativeScheduleWindow = errors.New("schedule windows cannot be negative")
	ErrUnknownScheduleBasedOn = errors.New("unknown schedule basis")
	ErrUnknownAssignMethod    = errors.New("unknown assign method")
)
