package resource

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidCapacity     = errors.New("resource capacity must be at least 1")
	ErrSelfLink            = errors.New("resource cannot be linked to itself")
)

const (
	MaxResourceNameLength = 255
)

// Resource is a bookable, capacity-limited asset such as a table or a room.
type Resource struct {
	id        uuid.UUID
	name      string
	capacity  int
	sequence  int
	shareable bool
	linkedIDs []uuid.UUID
}

func NewResource(id uuid.UUID, name string, capacity, sequence int, shareable bool, linkedIDs []uuid.UUID) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}

	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	links := make([]uuid.UUID, 0, len(linkedIDs))
	for _, l := range linkedIDs {
		if l == id {
			return nil, ErrSelfLink
		}
		if !slices.Contains(links, l) {
			links = append(links, l)
		}
	}

	return &Resource{
		id:        id,
		name:      strings.TrimSpace(name),
		capacity:  capacity,
		sequence:  sequence,
		shareable: shareable,
		linkedIDs: links,
	}, nil
}

// IsLinkedTo reports a direct link declared on this resource.
func (r *Resource) IsLinkedTo(id uuid.UUID) bool {
	return slices.Contains(r.linkedIDs, id)
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID          { return r.id }
func (r *Resource) Name() string           { return r.name }
func (r *Resource) Capacity() int          { return r.capacity }
func (r *Resource) Sequence() int          { return r.sequence }
func (r *Resource) Shareable() bool        { return r.shareable }
func (r *Resource) LinkedIDs() []uuid.UUID { return slices.Clone(r.linkedIDs) }

// SortBySequence orders resources by sequence, keeping input order for ties.
func SortBySequence(rs []*Resource) {
	slices.SortStableFunc(rs, func(a, b *Resource) int {
		return a.sequence - b.sequence
	})
}

// TotalCapacity sums the capacity of rs.
func TotalCapacity(rs []*Resource) int {
	total := 0
	for _, r := range rs {
		total += r.capacity
	}
	return total
}

// IDs returns the identifiers of rs in order.
func IDs(rs []*Resource) []uuid.UUID {
	ids := make([]uuid.UUID, len(rs))
	for i, r := range rs {
		ids[i] = r.id
	}
	return ids
}

// Group returns the linked group of start among pool: every resource reachable
// through links declared on either side, start included. Resources outside
// pool are never part of the group.
func Group(start *Resource, pool []*Resource) []*Resource {
	byID := make(map[uuid.UUID]*Resource, len(pool))
	for _, r := range pool {
		byID[r.id] = r
	}
	if _, ok := byID[start.id]; !ok {
		return []*Resource{start}
	}

	adj := make(map[uuid.UUID][]uuid.UUID, len(pool))
	for _, r := range pool {
		for _, l := range r.linkedIDs {
			if _, ok := byID[l]; !ok {
				continue
			}
			adj[r.id] = append(adj[r.id], l)
			adj[l] = append(adj[l], r.id)
		}
	}

	seen := map[uuid.UUID]bool{start.id: true}
	queue := []uuid.UUID{start.id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}

	group := make([]*Resource, 0, len(seen))
	for _, r := range pool {
		if seen[r.id] {
			group = append(group, r)
		}
	}
	return group
}
