package availability_test

import (
	"testing"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/resource"
	"appointment-engine/internal/testutil/builder"
	"appointment-engine/internal/usecase/availability"

	"github.com/stretchr/testify/assert"
)

func candidate(r *resource.Resource, total, remaining int) availability.Candidate {
	return availability.Candidate{
		Resource:     r,
		CapacityInfo: availability.CapacityInfo{Total: total, Remaining: remaining},
	}
}

func TestSelectBestResources(t *testing.T) {
	managed := builder.NewAppointmentTypeBuilder().AsResourceBased().Build()
	showAll := builder.NewAppointmentTypeBuilder().
		AsResourceBased().
		WithAssignMethod(appointment.AssignTimeResource).
		Build()
	unmanaged := builder.NewAppointmentTypeBuilder().
		AsResourceBased().
		WithoutCapacityManagement().
		Build()

	one := table("One", 1, 1)
	five := table("Five", 5, 2, one)
	three := table("Three", 3, 3, one)
	loneA := table("Lone A", 2, 4)
	loneB := table("Lone B", 2, 5)

	cases := []struct {
		name       string
		apt        *appointment.Type
		candidates []availability.Candidate
		asked      int
		maxPeers   int
		want       []string
	}{
		{
			name:     "no candidates",
			apt:      managed,
			asked:    1,
			maxPeers: 10,
		},
		{
			name:       "unmanaged capacity takes the lowest sequence",
			apt:        unmanaged,
			candidates: []availability.Candidate{candidate(loneB, 2, 2), candidate(loneA, 2, 2)},
			asked:      1,
			maxPeers:   10,
			want:       []string{"Lone A"},
		},
		{
			name:       "unlinked resources cannot cover the request",
			apt:        managed,
			candidates: []availability.Candidate{candidate(loneA, 1, 1), candidate(loneB, 1, 1)},
			asked:      2,
			maxPeers:   10,
		},
		{
			name: "exhaustive search prefers the exact fit",
			apt:  managed,
			candidates: []availability.Candidate{
				candidate(one, 9, 1), candidate(five, 9, 5), candidate(three, 9, 3),
			},
			asked:    6,
			maxPeers: 10,
			want:     []string{"One", "Five"},
		},
		{
			name: "greedy search above the peer bound",
			apt:  managed,
			candidates: []availability.Candidate{
				candidate(one, 9, 1), candidate(five, 9, 5), candidate(three, 9, 3),
			},
			asked:    6,
			maxPeers: 1,
			want:     []string{"One", "Five"},
		},
		{
			name: "greedy search keeps the smallest covering pick",
			apt:  managed,
			candidates: []availability.Candidate{
				candidate(one, 9, 1), candidate(five, 9, 5), candidate(three, 9, 3),
			},
			asked:    7,
			maxPeers: 1,
			want:     []string{"Five", "Three"},
		},
		{
			name: "time_resource lists every candidate when one suffices",
			apt:  showAll,
			candidates: []availability.Candidate{
				candidate(three, 9, 3), candidate(five, 9, 5),
			},
			asked:    2,
			maxPeers: 10,
			want:     []string{"Five", "Three"},
		},
		{
			name: "time_resource still combines when needed",
			apt:  showAll,
			candidates: []availability.Candidate{
				candidate(one, 9, 1), candidate(five, 9, 5), candidate(three, 9, 3),
			},
			asked:    8,
			maxPeers: 10,
			want:     []string{"Five", "Three"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := availability.SelectBestResources(tc.apt, tc.candidates, tc.asked, tc.maxPeers)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, names(got))
		})
	}
}
