package models

import (
	"fmt"
	"strings"
)

// AssetList is a slice of assets with lookup helpers
type AssetList []Asset

// FilterByTeam returns assets controlled by the given club
func (al AssetList) FilterByTeam(teamName string) AssetList {
	var filtered AssetList
	teamLower := strings.ToLower(strings.TrimSpace(teamName))

	for _, a := range al {
		if strings.ToLower(strings.TrimSpace(a.Team)) == teamLower {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// SearchByName returns assets whose names contain the search string
func (al AssetList) SearchByName(search string) AssetList {
	var matches AssetList
	searchLower := strings.ToLower(strings.TrimSpace(search))

	for _, a := range al {
		if strings.Contains(strings.ToLower(a.Name), searchLower) {
			matches = append(matches, a)
		}
	}
	return matches
}

// FindByExactName returns all assets with an exact name match (case-insensitive)
func (al AssetList) FindByExactName(name string) AssetList {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches AssetList

	for _, a := range al {
		if strings.ToLower(a.Name) == nameLower {
			matches = append(matches, a)
		}
	}
	return matches
}

// Resolve finds the single asset a user most likely meant.
// Exact matches win over partial ones; more than one exact match is ambiguous.
func (al AssetList) Resolve(name string) (Asset, error) {
	exact := al.FindByExactName(name)
	switch len(exact) {
	case 1:
		return exact[0], nil
	case 0:
	default:
		return Asset{}, fmt.Errorf("found %d assets named %s - please specify team", len(exact), name)
	}

	matches := al.SearchByName(name)
	if len(matches) == 0 {
		return Asset{}, fmt.Errorf("no asset found matching '%s'", name)
	}
	return matches[0], nil
}
