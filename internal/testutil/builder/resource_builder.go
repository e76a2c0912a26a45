package builder

import (
	"appointment-engine/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID        uuid.UUID
	Name      string
	Capacity  int
	Sequence  int
	Shareable bool
	LinkedIDs []uuid.UUID
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:       uuid.New(),
		Name:     "Table",
		Capacity: 2,
		Sequence: 1,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	return resource.NewResource(r.ID, r.Name, r.Capacity, r.Sequence, r.Shareable, r.LinkedIDs)
}

// MustBuild panics on invalid input; use it only with known-good fixtures.
func (r *ResourceBuilder) MustBuild() *resource.Resource {
	res, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (r *ResourceBuilder) WithName(name string) *ResourceBuilder {
	r.Name = name
	return r
}

func (r *ResourceBuilder) WithCapacity(capacity int) *ResourceBuilder {
	r.Capacity = capacity
	return r
}

func (r *ResourceBuilder) WithSequence(sequence int) *ResourceBuilder {
	r.Sequence = sequence
	return r
}

func (r *ResourceBuilder) AsShareable() *ResourceBuilder {
	r.Shareable = true
	return r
}

func (r *ResourceBuilder) LinkedTo(ids ...uuid.UUID) *ResourceBuilder {
	r.LinkedIDs = append(r.LinkedIDs, ids...)
	return r
}
