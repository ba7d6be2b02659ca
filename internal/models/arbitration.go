package models

import (
	"strings"
)

// ArbStatus is the lifecycle state of a salary arbitration case
type ArbStatus string

const (
	ArbPending    ArbStatus = "pending"
	ArbHearing    ArbStatus = "hearing"
	ArbSettled    ArbStatus = "settled"
	ArbTeamWins   ArbStatus = "team_wins"
	ArbPlayerWins ArbStatus = "player_wins"
)

// Terminal reports whether no further transitions are accepted.
func (s ArbStatus) Terminal() bool {
	switch s {
	case ArbSettled, ArbTeamWins, ArbPlayerWins:
		return true
	}
	return false
}

// ArbitrationCase is one pending salary dispute between a club and a player.
// PlayerAsk and TeamOffer are fixed at creation; only Status and CurrentSalary change.
type ArbitrationCase struct {
	ID             string
	PlayerName     string
	Position       string
	Team           string
	ServiceYears   float64
	ArbYear        int     // 1-4
	CurrentSalary  float64 // Realized salary once resolved
	PlayerAsk      float64
	TeamOffer      float64
	ProjectedValue float64 // Market estimate
	Status         ArbStatus
}

// Validate checks the values fixed at case creation.
func (c ArbitrationCase) Validate() error {
	if c.ArbYear < 1 || c.ArbYear > 4 {
		return &ValidationError{Field: "arb year", Value: c.ArbYear, Reason: "must be between 1 and 4"}
	}
	if c.ServiceYears < 0 {
		return &ValidationError{Field: "service years", Value: c.ServiceYears, Reason: "must not be negative"}
	}
	amounts := []struct {
		field string
		v     float64
	}{
		{"current salary", c.CurrentSalary},
		{"player ask", c.PlayerAsk},
		{"team offer", c.TeamOffer},
		{"projected value", c.ProjectedValue},
	}
	for _, a := range amounts {
		if a.v < 0 {
			return &ValidationError{Field: a.field, Value: a.v, Reason: "must not be negative"}
		}
	}
	return nil
}

// Arbitration sheet columns
const (
	arbColName = iota
	arbColPosition
	arbColTeam
	arbColService
	arbColArbYear
	arbColSalary
	arbColAsk
	arbColOffer
	arbColProjected
	arbColStatus
	arbMinColumns = arbColProjected + 1
)

// ParseArbitrationRow parses one row of the arbitration sheet into a validated case.
// Rows without a status start as pending.
func ParseArbitrationRow(row []string) (*ArbitrationCase, error) {
	if len(row) < arbMinColumns {
		return nil, nil
	}
	name := strings.TrimSpace(row[arbColName])
	if name == "" {
		return nil, nil
	}

	c := &ArbitrationCase{
		ID:         NameID("arb", name),
		PlayerName: name,
		Position:   strings.TrimSpace(row[arbColPosition]),
		Team:       strings.TrimSpace(row[arbColTeam]),
		Status:     ArbPending,
	}

	var err error
	if c.ServiceYears, err = parseFloatCell(row[arbColService]); err != nil {
		return nil, &ValidationError{Field: "service years", Value: row[arbColService], Reason: "not a number"}
	}
	if c.ArbYear, err = parseIntCell(row[arbColArbYear]); err != nil {
		return nil, &ValidationError{Field: "arb year", Value: row[arbColArbYear], Reason: "not a number"}
	}

	money := []struct {
		col   int
		field string
		dst   *float64
	}{
		{arbColSalary, "current salary", &c.CurrentSalary},
		{arbColAsk, "player ask", &c.PlayerAsk},
		{arbColOffer, "team offer", &c.TeamOffer},
		{arbColProjected, "projected value", &c.ProjectedValue},
	}
	for _, m := range money {
		v, ok := ParseMoney(row[m.col])
		if !ok {
			return nil, &ValidationError{Field: m.field, Value: row[m.col], Reason: "not an amount"}
		}
		*m.dst = v
	}

	if len(row) > arbColStatus {
		if status := strings.ToLower(strings.TrimSpace(row[arbColStatus])); status != "" {
			c.Status = ArbStatus(status)
		}
	}
	switch c.Status {
	case ArbPending, ArbHearing, ArbSettled, ArbTeamWins, ArbPlayerWins:
	default:
		return nil, &ValidationError{Field: "status", Value: c.Status, Reason: "unknown arbitration status"}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
