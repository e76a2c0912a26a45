package errs

import "errors"

// Engine-level sentinel errors. Outcomes such as "no slot available" or
// "slot no longer valid" are not errors and have no sentinel here.
var (
	// Configuration errors
	ErrInvalidCategory        = errors.New("invalid appointment category")
	ErrInvalidAppointmentType = errors.New("invalid appointment type configuration")
	ErrUnknownTimezone        = errors.New("unknown timezone")

	// Collaborator errors
	ErrStoreFailure            = errors.New("availability store failure")
	ErrAppointmentTypeNotFound = errors.New("appointment type not found")
)
