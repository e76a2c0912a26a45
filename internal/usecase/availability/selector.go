package availability

import (
	"slices"
	"strings"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"

	"github.com/google/uuid"
)

// Candidate is a resource available for a slot with its capacity snapshot.
type Candidate struct {
	Resource *resource.Resource
	CapacityInfo
}

type combination struct {
	ids      []uuid.UUID
	capacity int
}

func (c combination) touches(ids map[uuid.UUID]bool) bool {
	return slices.ContainsFunc(c.ids, func(id uuid.UUID) bool { return ids[id] })
}

// SelectBestResources picks the resources hosting asked people among the
// candidates. The result is ordered by sequence and empty when no selection
// can host the request.
//
// Without capacity management the lowest-sequence resource is used. With it, a
// resource whose capacity and remaining capacity both equal the request wins;
// otherwise the first resource is used alone when it suffices, or the
// smallest linked combination covering the request is chosen, an exact fit
// being preferred. The time_resource assignment method returns every
// candidate whenever a single resource would do.
func SelectBestResources(apt *appointment.Type, candidates []Candidate, asked, maxPeers int) []*resource.Resource {
	if len(candidates) == 0 {
		return nil
	}
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		return a.Resource.Sequence() - b.Resource.Sequence()
	})
	all := make([]*resource.Resource, len(sorted))
	for i, c := range sorted {
		all[i] = c.Resource
	}
	showAll := apt.AssignMethod == appointment.AssignTimeResource

	if !apt.ResourceManageCapacity {
		if showAll {
			return all
		}
		return all[:1]
	}

	for _, c := range sorted {
		if c.Resource.Capacity() == asked && c.Remaining == asked {
			if showAll {
				return all
			}
			return []*resource.Resource{c.Resource}
		}
	}

	first := sorted[0]
	if asked-first.Remaining > 0 {
		combos := capacityCombinations(sorted, asked, maxPeers)
		if len(combos) == 0 {
			return nil
		}
		if asked <= first.Total-first.Remaining {
			group := make(map[uuid.UUID]bool)
			for _, r := range resource.Group(first.Resource, all) {
				group[r.ID()] = true
			}
			var touching []combination
			for _, c := range combos {
				if c.touches(group) {
					touching = append(touching, c)
				}
			}
			if len(touching) > 0 {
				combos = touching
			}
		}

		chosen := combos[0]
		for _, c := range combos {
			if c.capacity == asked {
				chosen = c
				break
			}
		}
		var selected []*resource.Resource
		for _, r := range all {
			if slices.Contains(chosen.ids, r.ID()) {
				selected = append(selected, r)
			}
		}
		return selected
	}

	if showAll {
		return all
	}
	return []*resource.Resource{first.Resource}
}

// capacityCombinations lists every resource joined with each subset of its
// linked peers whose remaining capacity covers asked, smallest capacity first.
// Groups with more than maxPeers peers get a single greedy combination.
func capacityCombinations(sorted []Candidate, asked, maxPeers int) []combination {
	pool := make([]*resource.Resource, len(sorted))
	remaining := make(map[uuid.UUID]int, len(sorted))
	for i, c := range sorted {
		pool[i] = c.Resource
		remaining[c.Resource.ID()] = c.Remaining
	}

	seen := make(map[string]bool)
	var combos []combination
	add := func(members []*resource.Resource) {
		ids := resource.IDs(members)
		keyParts := make([]string, len(ids))
		capacity := 0
		for i, id := range ids {
			keyParts[i] = id.String()
			capacity += remaining[id]
		}
		slices.Sort(keyParts)
		key := strings.Join(keyParts, ",")
		if seen[key] {
			return
		}
		seen[key] = true
		combos = append(combos, combination{ids: ids, capacity: capacity})
	}

	for _, c := range sorted {
		if c.Remaining <= 0 {
			continue
		}
		var peers []*resource.Resource
		for _, m := range resource.Group(c.Resource, pool) {
			if m.ID() != c.Resource.ID() && remaining[m.ID()] > 0 {
				peers = append(peers, m)
			}
		}

		if len(peers) > maxPeers {
			add(greedyCombination(c.Resource, peers, remaining, asked))
			continue
		}
		for size := 0; size <= len(peers); size++ {
			forEachSubset(peers, size, func(subset []*resource.Resource) {
				add(append([]*resource.Resource{c.Resource}, subset...))
			})
		}
	}

	var covering []combination
	for _, c := range combos {
		if c.capacity >= asked {
			covering = append(covering, c)
		}
	}
	slices.SortStableFunc(covering, func(a, b combination) int {
		return a.capacity - b.capacity
	})
	return covering
}

func greedyCombination(first *resource.Resource, peers []*resource.Resource, remaining map[uuid.UUID]int, asked int) []*resource.Resource {
	ordered := slices.Clone(peers)
	slices.SortStableFunc(ordered, func(a, b *resource.Resource) int {
		return remaining[b.ID()] - remaining[a.ID()]
	})
	members := []*resource.Resource{first}
	total := remaining[first.ID()]
	for _, p := range ordered {
		if total >= asked {
			break
		}
		members = append(members, p)
		total += remaining[p.ID()]
	}
	return members
}

// forEachSubset calls fn with every size-element subset of items in
// lexicographic index order.
func forEachSubset(items []*resource.Resource, size int, fn func([]*resource.Resource)) {
	if size > len(items) {
		return
	}
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	buf := make([]*resource.Resource, size)
	for {
		for i, j := range idx {
			buf[i] = items[j]
		}
		fn(slices.Clone(buf))

		i := size - 1
		for i >= 0 && idx[i] == len(items)-size+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
