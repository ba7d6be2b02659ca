package models

import "strings"

// TeamOwners maps club names to the Discord usernames allowed to act for them.
// Each club can have multiple owners who are considered equal.
type TeamOwners map[string][]string

// IsTeamOwner checks if a Discord username owns the specified club.
// Club names compare case-insensitively.
func (to TeamOwners) IsTeamOwner(teamName string, username string) bool {
	for team, owners := range to {
		if !strings.EqualFold(team, teamName) {
			continue
		}
		for _, owner := range owners {
			if strings.EqualFold(owner, username) {
				return true
			}
		}
	}
	return false
}

// CanAct reports whether the user may run workflow actions for the club.
// An empty registry leaves every club open.
func (to TeamOwners) CanAct(teamName string, username string) bool {
	if len(to) == 0 {
		return true
	}
	return to.IsTeamOwner(teamName, username)
}

// TeamsForOwner returns all clubs owned by a Discord username
func (to TeamOwners) TeamsForOwner(username string) []string {
	var teams []string
	for team, owners := range to {
		for _, owner := range owners {
			if strings.EqualFold(owner, username) {
				teams = append(teams, team)
				break
			}
		}
	}
	return teams
}
