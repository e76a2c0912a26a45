package cli

import (
	"fmt"
	"strings"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/usecase/availability"
)

type SlotsCmd struct {
	TypeID    string    `arg:"" name:"type-id" help:"Appointment type id."`
	Timezone  string    `help:"Viewer timezone." default:"UTC"`
	Users     []string  `help:"Only consider these staff user ids." sep:","`
	Resources []string  `help:"Only consider these resource ids." sep:","`
	Capacity  int       `help:"Requested capacity." default:"1"`
	From      time.Time `help:"Reference instant (RFC 3339). Defaults to now."`
}

func (c *SlotsCmd) Run(ctx *Context) error {
	apt, err := ctx.loadType(c.TypeID)
	if err != nil {
		return err
	}
	users, err := parseIDs(c.Users)
	if err != nil {
		return err
	}
	resources, err := parseIDs(c.Resources)
	if err != nil {
		return err
	}

	slots, err := ctx.Engine.GetAppointmentSlots(ctx.Ctx, apt, availability.Query{
		ViewerTimezone:  c.Timezone,
		FilterUsers:     users,
		FilterResources: resources,
		AskedCapacity:   c.Capacity,
		Reference:       c.From,
	})
	if err != nil {
		return err
	}

	if len(slots) == 0 {
		fmt.Fprintln(ctx.Out, "No slots available.")
		return nil
	}
	for _, day := range availability.GroupByDay(slots) {
		fmt.Fprintf(ctx.Out, "%s %s\n", day.Date, day.Date.Weekday())
		for _, s := range day.Slots {
			fmt.Fprintf(ctx.Out, "  %s-%s  %s\n",
				s.Viewer.Start.Format("15:04"), s.Viewer.End.Format("15:04"), assignee(s))
		}
	}
	return nil
}

func assignee(s availability.Slot) string {
	if s.StaffUser != nil {
		return s.StaffUser.Name
	}
	names := make([]string, len(s.Resources))
	for i, r := range s.Resources {
		names[i] = r.Name()
	}
	return strings.Join(names, ", ")
}

type CheckCmd struct {
	Target slotTarget `embed:""`
}

func (c *CheckCmd) Run(ctx *Context) error {
	apt, err := ctx.loadType(c.Target.TypeID)
	if err != nil {
		return err
	}
	req, err := c.Target.request(apt)
	if err != nil {
		return err
	}

	valid, err := ctx.Engine.IsSlotStillValid(ctx.Ctx, apt, req)
	if err != nil {
		return err
	}
	if valid {
		fmt.Fprintln(ctx.Out, "valid")
	} else {
		fmt.Fprintln(ctx.Out, "stale")
	}
	return nil
}

type PrepareCmd struct {
	Target slotTarget `embed:""`
}

func (c *PrepareCmd) Run(ctx *Context) error {
	apt, err := ctx.loadType(c.Target.TypeID)
	if err != nil {
		return err
	}
	req, err := c.Target.request(apt)
	if err != nil {
		return err
	}

	proposal, ok, err := ctx.Engine.PrepareBooking(ctx.Ctx, apt, availability.BookingRequest{ValidityRequest: req})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(ctx.Out, "stale")
		return nil
	}
	printProposal(ctx, apt, proposal)
	return nil
}

func printProposal(ctx *Context, apt *appointment.Type, p *availability.BookingProposal) {
	fmt.Fprintf(ctx.Out, "slot     %s - %s\n", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
	fmt.Fprintf(ctx.Out, "status   %s\n", p.AttendeeStatus)
	if u, ok := apt.StaffUserByID(p.StaffUserID); ok {
		fmt.Fprintf(ctx.Out, "staff    %s\n", u.Name)
	}
	for _, l := range p.Lines {
		name := l.ResourceID.String()
		if r, ok := apt.ResourceByID(l.ResourceID); ok {
			name = r.Name()
		}
		fmt.Fprintf(ctx.Out, "resource %s reserved=%d used=%d\n", name, l.CapacityReserved, l.CapacityUsed)
	}
}
