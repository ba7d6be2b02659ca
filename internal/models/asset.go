package models

import (
	"strconv"
	"strings"
)

// Asset is a player or prospect considered as a tradeable unit.
// Its trade value is always derived by the valuation package and never stored.
type Asset struct {
	ID             string
	Team           string // Club that controls the asset
	Name           string
	Position       string
	Age            int
	Overall        int     // Current skill, 20-99
	Potential      int     // Ceiling, same scale
	Salary         float64 // Annual salary in millions
	YearsRemaining int     // Contract years left
	IsProspect     bool
}

// Asset sheet columns
const (
	assetColTeam = iota
	assetColName
	assetColPosition
	assetColAge
	assetColOverall
	assetColPotential
	assetColSalary
	assetColYears
	assetColProspect
	assetColID
	assetMinColumns = assetColProspect + 1
)

// ParseAssetRow parses one row of the asset sheet.
// Incomplete rows and rows without a name return (nil, nil) and are skipped.
func ParseAssetRow(row []string) (*Asset, error) {
	if len(row) < assetMinColumns {
		return nil, nil
	}

	name := strings.TrimSpace(row[assetColName])
	if name == "" {
		return nil, nil
	}

	a := &Asset{
		Team:     strings.TrimSpace(row[assetColTeam]),
		Name:     name,
		Position: strings.TrimSpace(row[assetColPosition]),
	}

	var err error
	if a.Age, err = parseIntCell(row[assetColAge]); err != nil {
		return nil, &ValidationError{Field: "age", Value: row[assetColAge], Reason: "not a number"}
	}
	if a.Overall, err = parseIntCell(row[assetColOverall]); err != nil {
		return nil, &ValidationError{Field: "overall", Value: row[assetColOverall], Reason: "not a number"}
	}

	// A missing potential means the asset has peaked
	a.Potential = a.Overall
	if strings.TrimSpace(row[assetColPotential]) != "" {
		if a.Potential, err = parseIntCell(row[assetColPotential]); err != nil {
			return nil, &ValidationError{Field: "potential", Value: row[assetColPotential], Reason: "not a number"}
		}
	}

	if salary, ok := ParseMoney(row[assetColSalary]); ok {
		a.Salary = salary
	}
	if years, err := parseIntCell(row[assetColYears]); err == nil {
		a.YearsRemaining = years
	}
	a.IsProspect = parseBoolCell(row[assetColProspect])

	if len(row) > assetColID {
		a.ID = strings.TrimSpace(row[assetColID])
	}
	if a.ID == "" {
		a.ID = NewID()
	}

	return a, nil
}

// WithContract returns a copy of the asset carrying new contract terms.
func (a Asset) WithContract(salary float64, years int) Asset {
	a.Salary = salary
	a.YearsRemaining = years
	return a
}

func parseIntCell(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}

func parseFloatCell(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func parseBoolCell(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "y", "yes", "true", "1", "x":
		return true
	}
	return false
}
