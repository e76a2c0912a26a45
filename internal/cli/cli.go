// Package cli holds the command line front end of the availability engine.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/usecase/availability"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

// CLI is the kong grammar of the appointment-engine binary.
type CLI struct {
	Version kong.VersionFlag `help:"Print the version and exit."`

	Slots   SlotsCmd   `cmd:"" help:"List the bookable slots of an appointment type."`
	Check   CheckCmd   `cmd:"" help:"Check that a slot can still be booked."`
	Prepare PrepareCmd `cmd:"" help:"Preview the booking a slot would produce."`
}

// Context is passed to every command's Run method.
type Context struct {
	Ctx    context.Context
	Engine availability.Engine
	Types  availability.AppointmentTypeStore
	Out    io.Writer
}

func (c *Context) loadType(id string) (*appointment.Type, error) {
	aptID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment type id %q: %w", id, err)
	}
	return c.Types.FindByID(c.Ctx, aptID)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(strings.TrimSpace(r))
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// slotTarget is the shared flag set of commands addressing one slot.
type slotTarget struct {
	TypeID    string    `arg:"" name:"type-id" help:"Appointment type id."`
	Start     time.Time `arg:"" help:"Slot start (RFC 3339)."`
	Duration  float64   `help:"Slot duration in hours. Defaults to the type duration."`
	Staff     string    `help:"Staff user id."`
	Resources []string  `help:"Resource ids." sep:","`
	Capacity  int       `help:"Requested capacity." default:"1"`
	Timezone  string    `help:"Viewer timezone." default:"UTC"`
}

func (t slotTarget) request(apt *appointment.Type) (availability.ValidityRequest, error) {
	resources, err := parseIDs(t.Resources)
	if err != nil {
		return availability.ValidityRequest{}, err
	}
	var staff uuid.UUID
	if t.Staff != "" {
		if staff, err = uuid.Parse(t.Staff); err != nil {
			return availability.ValidityRequest{}, fmt.Errorf("invalid staff id %q: %w", t.Staff, err)
		}
	}

	duration := t.Duration
	if duration == 0 {
		duration = apt.Duration
	}
	return availability.ValidityRequest{
		StaffUserID:    staff,
		ResourceIDs:    resources,
		AskedCapacity:  t.Capacity,
		ViewerTimezone: t.Timezone,
		Start:          t.Start.UTC(),
		Duration:       duration,
	}, nil
}
