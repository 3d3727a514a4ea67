package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGapScore(t *testing.T) {
	tests := []struct {
		name string
		link ApplicationKeyword
		want float64
	}{
		{
			name: "required keyword with shortfall is a gap",
			link: ApplicationKeyword{IsRequired: true, YearsRequired: 5, YearsHave: 2, LevelRequired: 3, LevelHave: 3},
			want: 6,
		},
		{
			name: "preferred keyword with surplus is a strength",
			link: ApplicationKeyword{IsPreferred: true, YearsRequired: 2, YearsHave: 5, LevelRequired: 2, LevelHave: 3},
			want: -4,
		},
		{
			name: "exact match is neutral",
			link: ApplicationKeyword{IsRequired: true, YearsRequired: 3, YearsHave: 3, LevelRequired: 2, LevelHave: 2},
			want: 0,
		},
		{
			name: "nice-to-have weighs half",
			link: ApplicationKeyword{YearsRequired: 4, YearsHave: 2, LevelRequired: 1, LevelHave: 1},
			want: 1,
		},
		{
			name: "required outweighs preferred when both set",
			link: ApplicationKeyword{IsRequired: true, IsPreferred: true, YearsRequired: 1, YearsHave: 0},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.link.ComputeGapScore())
		})
	}
}
