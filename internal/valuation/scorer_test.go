package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		asset models.Asset
		want  int
	}{
		{
			name:  "cheap prospect on a long deal",
			asset: models.Asset{Age: 21, Overall: 45, Potential: 70, Salary: 0.7, YearsRemaining: 5, IsProspect: true},
			want:  47, // 4 + 15 + 10 + 18.25
		},
		{
			name:  "expensive veteran adds no contract value",
			asset: models.Asset{Age: 29, Overall: 85, Potential: 87, Salary: 25, YearsRemaining: 3},
			want:  44, // 36 + 8 + 0.4 + 0
		},
		{
			name:  "age cliff",
			asset: models.Asset{Age: 34, Overall: 70, Potential: 70, Salary: 12, YearsRemaining: 1},
			want:  24,
		},
		{
			name:  "floored at zero",
			asset: models.Asset{Age: 38, Overall: 20, Potential: 20, Salary: 30, YearsRemaining: 2},
			want:  0,
		},
		{
			name:  "capped at 100",
			asset: models.Asset{Age: 22, Overall: 99, Potential: 99, Salary: 0.5, YearsRemaining: 10, IsProspect: true},
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.asset)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExplainTerms(t *testing.T) {
	b, err := Explain(models.Asset{Age: 27, Overall: 60, Potential: 65, Salary: 6, YearsRemaining: 2})
	require.NoError(t, err)

	assert.InDelta(t, 16.0, b.Skill, 1e-9)
	assert.InDelta(t, 12.0, b.Age, 1e-9)
	assert.InDelta(t, 1.0, b.Upside, 1e-9)
	assert.InDelta(t, 2.0, b.Contract, 1e-9)
	assert.Equal(t, 31, b.Total)
}

func TestAgeSteps(t *testing.T) {
	steps := map[int]float64{18: 15, 25: 15, 26: 12, 28: 12, 29: 8, 30: 8, 31: 4, 33: 4, 34: 0, 45: 0}
	for age, want := range steps {
		assert.Equal(t, want, ageTerm(age), "age %d", age)
	}
}

func TestScoreRejectsInvalidInputs(t *testing.T) {
	bad := []models.Asset{
		{Age: -1, Overall: 50, Potential: 50},
		{Age: 25, Overall: 50, Potential: 50, Salary: -2},
		{Age: 25, Overall: 50, Potential: 50, YearsRemaining: -1},
		{Age: 25, Overall: 120, Potential: 50},
		{Age: 25, Overall: 50, Potential: -5},
	}
	for _, a := range bad {
		_, err := Score(a)
		require.Error(t, err)
		assert.True(t, models.IsValidationError(err), "expected validation error for %+v", a)
	}
}

func TestScoreMonotonicInOverall(t *testing.T) {
	for _, prospect := range []bool{false, true} {
		prev := -1
		for overall := 20; overall <= 99; overall++ {
			got, err := Score(models.Asset{Age: 27, Overall: overall, Potential: 99, Salary: 3, YearsRemaining: 2, IsProspect: prospect})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, prev, "overall %d prospect %v", overall, prospect)
			prev = got
		}
	}
}

func TestScoreBounded(t *testing.T) {
	for age := 18; age <= 45; age++ {
		for overall := 20; overall <= 99; overall += 7 {
			for _, potential := range []int{overall, 99} {
				for _, prospect := range []bool{false, true} {
					got, err := Score(models.Asset{
						Age: age, Overall: overall, Potential: potential,
						Salary: 0.5, YearsRemaining: 7, IsProspect: prospect,
					})
					require.NoError(t, err)
					assert.GreaterOrEqual(t, got, 0)
					assert.LessOrEqual(t, got, 100)
				}
			}
		}
	}
}
