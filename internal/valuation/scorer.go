// Package valuation scores roster assets and judges whether a trade is balanced.
package valuation

import (
	"math"

	"github.com/pmurley/ulb-frontoffice/internal/models"
)

const (
	maxRating       = 99
	skillBaseline   = 40
	skillWeight     = 0.8
	prospectBase    = 50
	prospectWeight  = 0.5
	upsideWeight    = 0.2 // established players; a quarter of the prospect weight
	cheapSalaryLine = 8.0 // millions; at or above this a contract adds nothing
	contractWeight  = 0.5
	maxScore        = 100
)

// Breakdown is the composite value of an asset split into its additive terms.
type Breakdown struct {
	Skill    float64
	Age      float64
	Upside   float64
	Contract float64
	Total    int // Rounded and clamped to [0, 100]
}

// Score returns the 0-100 composite trade value of an asset.
func Score(a models.Asset) (int, error) {
	b, err := Explain(a)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// Explain validates the asset and returns every term of its composite value.
func Explain(a models.Asset) (Breakdown, error) {
	if err := Validate(a); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		Skill:    float64(a.Overall-skillBaseline) * skillWeight,
		Age:      ageTerm(a.Age),
		Upside:   upsideTerm(a),
		Contract: float64(a.YearsRemaining) * math.Max(0, cheapSalaryLine-a.Salary) * contractWeight,
	}

	total := math.Round(b.Skill + b.Age + b.Upside + b.Contract)
	b.Total = int(math.Min(maxScore, math.Max(0, total)))
	return b, nil
}

// Validate rejects inputs that would produce a nonsensical score.
func Validate(a models.Asset) error {
	switch {
	case a.Age < 0:
		return &models.ValidationError{Field: "age", Value: a.Age, Reason: "must not be negative"}
	case a.Overall < 0 || a.Overall > maxRating:
		return &models.ValidationError{Field: "overall", Value: a.Overall, Reason: "must be between 0 and 99"}
	case a.Potential < 0 || a.Potential > maxRating:
		return &models.ValidationError{Field: "potential", Value: a.Potential, Reason: "must be between 0 and 99"}
	case a.Salary < 0:
		return &models.ValidationError{Field: "salary", Value: a.Salary, Reason: "must not be negative"}
	case a.YearsRemaining < 0:
		return &models.ValidationError{Field: "years remaining", Value: a.YearsRemaining, Reason: "must not be negative"}
	}
	return nil
}

// ageTerm values team-control years: younger assets are worth more at equal skill.
func ageTerm(age int) float64 {
	switch {
	case age <= 25:
		return 15
	case age <= 28:
		return 12
	case age <= 30:
		return 8
	case age <= 33:
		return 4
	default:
		return 0
	}
}

func upsideTerm(a models.Asset) float64 {
	if a.IsProspect {
		return float64(a.Potential-prospectBase) * prospectWeight
	}
	return float64(a.Potential-a.Overall) * upsideWeight
}
