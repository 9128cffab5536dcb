package main

import (
	"slices"
	"strings"
)

// RosterSource supplies the crew to evaluate. Vaulted members may be
// included; the optimizer drops them.
type RosterSource interface {
	ListCrew() ([]CrewMember, error)
}

// Catalog is the crew database: every known character at full rank.
type Catalog struct {
	Crew   []CrewMember
	byName map[string]int // lower-cased name -> index into Crew
}

func newCatalog(crew []CrewMember) *Catalog {
	c := &Catalog{Crew: crew, byName: make(map[string]int, len(crew))}
	for i := range crew {
		c.byName[strings.ToLower(crew[i].Name)] = i
	}
	return c
}

// Find returns the catalog entry for name, matched case-insensitively.
func (c *Catalog) Find(name string) (CrewMember, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return CrewMember{}, false
	}
	return c.Crew[i], true
}

// ListCrew returns every catalog entry, fully equipped and never vaulted.
func (c *Catalog) ListCrew() ([]CrewMember, error) {
	return slices.Clone(c.Crew), nil
}

// PlayerRoster is one player's owned crew resolved against a Catalog.
type PlayerRoster struct {
	Crew []CrewMember
}

func (r *PlayerRoster) ListCrew() ([]CrewMember, error) {
	return slices.Clone(r.Crew), nil
}

// InputData is the loaded catalog plus an optional player roster.
type InputData struct {
	Catalog *Catalog
	Roster  *PlayerRoster
}

// Source returns the roster to optimize: the whole catalog when best is set
// or no roster was loaded, the player's roster otherwise.
func (d *InputData) Source(best bool) RosterSource {
	if best || d.Roster == nil {
		return d.Catalog
	}
	return d.Roster
}
