package availability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/booking"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/tzutil"

	"github.com/google/uuid"
)

type occupancy struct {
	lines  map[uuid.UUID][]booking.Line
	leaves map[uuid.UUID][]booking.Interval
}

func (e *engine) loadOccupancy(ctx context.Context, ids []uuid.UUID, start, end time.Time) (occupancy, error) {
	occ := occupancy{
		lines:  make(map[uuid.UUID][]booking.Line),
		leaves: make(map[uuid.UUID][]booking.Interval),
	}

	dayStart, dayEnd := tzutil.StartOfDay(start, time.UTC), tzutil.EndOfDay(end, time.UTC)
	lines, err := e.bookings.FindBookingLines(ctx, ids, dayStart, dayEnd)
	if err != nil {
		return occ, errs.Mark(errs.Wrap(err, "find booking lines"), errs.ErrStoreFailure)
	}
	for _, l := range lines {
		occ.lines[l.ResourceID] = append(occ.lines[l.ResourceID], l)
	}

	leaves, err := e.bookings.FindLeaveIntervals(ctx, ids, dayStart, dayEnd)
	if err != nil {
		return occ, errs.Mark(errs.Wrap(err, "find leave intervals"), errs.ErrStoreFailure)
	}
	for _, lv := range leaves {
		occ.leaves[lv.ResourceID] = append(occ.leaves[lv.ResourceID], lv)
	}
	return occ, nil
}

// FillResourceAvailability attaches to each slot the resources selected to
// host askedCapacity people. A nil resources list means every resource of the
// type. Slots without a suitable selection are left unassigned.
func (e *engine) FillResourceAvailability(ctx context.Context, apt *appointment.Type, slots []Slot, start, end time.Time, resources []*resource.Resource, askedCapacity int) error {
	if len(slots) == 0 {
		return nil
	}
	if askedCapacity < 1 {
		askedCapacity = 1
	}
	if resources == nil {
		resources = apt.Resources
	}
	if resource.TotalCapacity(resources) < askedCapacity {
		return nil
	}

	occ, err := e.loadOccupancy(ctx, resource.IDs(resources), start, end)
	if err != nil {
		return err
	}

	memo := make(map[string][]*resource.Resource)
	assigned := 0
	for i := range slots {
		candidates := e.capacitySnapshot(apt, slots[i], resources, occ, askedCapacity)
		if len(candidates) == 0 {
			continue
		}
		selected := e.selectResources(ctx, apt, candidates, askedCapacity, memo)
		if len(selected) == 0 {
			continue
		}
		slots[i].Resources = selected
		slots[i].Capacity = make(map[uuid.UUID]CapacityInfo, len(candidates))
		for _, c := range candidates {
			slots[i].Capacity[c.Resource.ID()] = c.CapacityInfo
		}
		assigned++
	}

	e.logger.Debug("resource availability filled",
		slog.String("appointment_type", apt.ID.String()),
		slog.Int("resources", len(resources)),
		slog.Int("asked_capacity", askedCapacity),
		slog.Int("slots", len(slots)),
		slog.Int("assigned", assigned))
	return nil
}

func isResourceAvailable(apt *appointment.Type, slot Slot, r *resource.Resource, occ occupancy) bool {
	if !slot.Template.AllowsResource(r.ID()) {
		return false
	}
	start, end := slot.UTC.Start, slot.UTC.End
	for _, lv := range occ.leaves[r.ID()] {
		if lv.Overlaps(start, end) {
			return false
		}
	}
	for _, l := range occ.lines[r.ID()] {
		if l.Overlaps(start, end) {
			return r.Shareable() && apt.ResourceManageCapacity
		}
	}
	return true
}

// capacitySnapshot lists the resources able to take part in hosting the slot
// with their remaining capacities.
func (e *engine) capacitySnapshot(apt *appointment.Type, slot Slot, resources []*resource.Resource, occ occupancy, asked int) []Candidate {
	allowed := make([]*resource.Resource, 0, len(resources))
	for _, r := range resources {
		if slot.Template.AllowsResource(r.ID()) {
			allowed = append(allowed, r)
		}
	}
	if len(allowed) == 0 {
		allowed = resources
	}

	remaining := func(r *resource.Resource) int {
		return r.Capacity() - booking.UsedCapacity(occ.lines[r.ID()], r.ID(), slot.UTC.Start, slot.UTC.End)
	}

	var out []Candidate
	index := make(map[uuid.UUID]int)
	put := func(c Candidate) {
		if i, ok := index[c.Resource.ID()]; ok {
			out[i] = c
			return
		}
		index[c.Resource.ID()] = len(out)
		out = append(out, c)
	}

	for _, r := range resources {
		if !isResourceAvailable(apt, slot, r, occ) {
			continue
		}

		group := []*resource.Resource{r}
		if apt.ResourceManageCapacity {
			group = resource.Group(r, allowed)
		}
		own := remaining(r)
		total := 0
		peers := make(map[uuid.UUID]int, len(group))
		for _, m := range group {
			rem := own
			if m.ID() != r.ID() {
				rem = remaining(m)
				peers[m.ID()] = rem
			}
			total += rem
		}
		if total < asked {
			continue
		}

		put(Candidate{Resource: r, CapacityInfo: CapacityInfo{Total: total, Remaining: own}})
		for _, m := range group {
			rem, ok := peers[m.ID()]
			if !ok || rem <= 0 {
				continue
			}
			if _, present := index[m.ID()]; present {
				continue
			}
			if !isResourceAvailable(apt, slot, m, occ) {
				continue
			}
			put(Candidate{Resource: m, CapacityInfo: CapacityInfo{Total: rem, Remaining: rem}})
		}
	}
	return out
}

func (e *engine) selectResources(ctx context.Context, apt *appointment.Type, candidates []Candidate, asked int, memo map[string][]*resource.Resource) []*resource.Resource {
	key := selectionKey(apt, candidates, asked, e.maxPeers)
	if selected, ok := memo[key]; ok {
		e.metrics.ObserveSelection("memo")
		return selected
	}

	if e.cache != nil {
		ids, ok, err := e.cache.Get(ctx, key)
		if err != nil {
			e.logger.Warn("selection cache read failed", slog.String("error", err.Error()))
		} else if ok {
			if selected, resolved := resolveSelection(ids, candidates); resolved {
				memo[key] = selected
				e.metrics.ObserveSelection("shared")
				return selected
			}
		}
	}

	selected := SelectBestResources(apt, candidates, asked, e.maxPeers)
	memo[key] = selected
	e.metrics.ObserveSelection("computed")
	if e.cache != nil {
		if err := e.cache.Set(ctx, key, resource.IDs(selected)); err != nil {
			e.logger.Warn("selection cache write failed", slog.String("error", err.Error()))
		}
	}
	return selected
}

func resolveSelection(ids []uuid.UUID, candidates []Candidate) ([]*resource.Resource, bool) {
	selected := make([]*resource.Resource, 0, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(candidates, func(c Candidate) bool { return c.Resource.ID() == id })
		if i < 0 {
			return nil, false
		}
		selected = append(selected, candidates[i].Resource)
	}
	return selected, true
}

// selectionKey fingerprints everything SelectBestResources depends on.
func selectionKey(apt *appointment.Type, candidates []Candidate, asked, maxPeers int) string {
	entries := make([]string, 0, len(candidates))
	for _, c := range candidates {
		links := make([]string, 0, len(c.Resource.LinkedIDs()))
		for _, l := range c.Resource.LinkedIDs() {
			links = append(links, l.String())
		}
		slices.Sort(links)
		entries = append(entries, fmt.Sprintf("%s|%d|%d|%d|%d|%s",
			c.Resource.ID(), c.Resource.Sequence(), c.Resource.Capacity(),
			c.Remaining, c.Total, strings.Join(links, ",")))
	}
	slices.Sort(entries)

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%t|%s|%d\n", apt.ID, asked, apt.ResourceManageCapacity, apt.AssignMethod, maxPeers)
	for _, entry := range entries {
		h.Write([]byte(entry))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
