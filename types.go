package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Skill is one of the six voyage skill categories.
type Skill int

const (
	SkillCommand Skill = iota
	SkillDiplomacy
	SkillSecurity
	SkillEngineering
	SkillScience
	SkillMedicine
)

const (
	NumSkills     = 6
	SlotsPerSkill = 2
	LineupSize    = NumSkills * SlotsPerSkill
)

var (
	// ErrInsufficientRoster is returned when fewer than LineupSize eligible crew exist.
	ErrInsufficientRoster = errors.New("insufficient roster")
	// ErrInvalidSkill is returned for an unknown skill or a primary equal to the secondary.
	ErrInvalidSkill = errors.New("invalid skill selection")
	// ErrOracleFailure wraps any error or non-finite value from the duration oracle.
	ErrOracleFailure = errors.New("duration oracle failure")
)

var skillShortNames = [NumSkills]string{"cmd", "dip", "sec", "eng", "sci", "med"}

var skillLongNames = [NumSkills]string{"command", "diplomacy", "security", "engineering", "science", "medicine"}

func (s Skill) Valid() bool { return s >= 0 && s < NumSkills }

func (s Skill) String() string {
	if !s.Valid() {
		return fmt.Sprintf("skill(%d)", int(s))
	}
	return skillShortNames[s]
}

// LongName returns the full category name, e.g. "command".
func (s Skill) LongName() string {
	if !s.Valid() {
		return s.String()
	}
	return skillLongNames[s]
}

func (s Skill) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSkill, int(s))
	}
	return []byte(skillShortNames[s]), nil
}

func (s *Skill) UnmarshalText(b []byte) error {
	sk, ok := parseSkill(string(b))
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidSkill, string(b))
	}
	*s = sk
	return nil
}

// parseSkill accepts both the short ("cmd") and long ("command") names, case-insensitively.
func parseSkill(s string) (Skill, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := range skillShortNames {
		if s == skillShortNames[i] || s == skillLongNames[i] {
			return Skill(i), true
		}
	}
	return -1, false
}

// SkillRoll is one skill's randomized proficiency range for one crew member.
type SkillRoll struct {
	Base    float64 `json:"base" validate:"gte=0"`
	MinRoll float64 `json:"min" validate:"gte=0"`
	MaxRoll float64 `json:"max" validate:"gtefield=MinRoll"`
}

// CrewMember is a read-only snapshot of one owned character.
type CrewMember struct {
	Name    string
	Vaulted bool
	Skills  [NumSkills]SkillRoll
	// SkillMask has bit N set when the member has Skill(N); rolls of absent
	// skills are ignored.
	SkillMask uint8
}

func (c *CrewMember) Has(sk Skill) bool {
	return c.SkillMask&(1<<sk) != 0
}

func (c *CrewMember) SetSkill(sk Skill, r SkillRoll) {
	c.Skills[sk] = r
	c.SkillMask |= 1 << sk
}

// AggregateSkills holds one summed skill value per position of the run's skill order.
type AggregateSkills [NumSkills]float64

// Lineup is an immutable assignment of crew to skill slots. Place and Swap
// return new values and never touch the receiver's backing arrays.
type Lineup struct {
	Slots      [NumSkills][]*CrewMember
	Assigned   []*CrewMember // in placement order
	TotalScore float64
}

func (l Lineup) Len() int { return len(l.Assigned) }

func (l Lineup) Contains(c *CrewMember) bool {
	return slices.Contains(l.Assigned, c)
}

// SlotOf reports which skill slot c occupies.
func (l Lineup) SlotOf(c *CrewMember) (Skill, bool) {
	for sk := range l.Slots {
		if slices.Contains(l.Slots[sk], c) {
			return Skill(sk), true
		}
	}
	return -1, false
}

// Place appends c to the slot for sk and adds score to the total.
func (l Lineup) Place(sk Skill, c *CrewMember, score float64) Lineup {
	next := l
	next.Slots[sk] = append(slices.Clip(l.Slots[sk]), c)
	next.Assigned = append(slices.Clip(l.Assigned), c)
	next.TotalScore += score
	return next
}

// Swap replaces before with after at the same position and adjusts the total by scoreDelta.
func (l Lineup) Swap(before, after *CrewMember, scoreDelta float64) Lineup {
	next := l
	next.Assigned = replaceMember(l.Assigned, before, after)
	for sk := range l.Slots {
		if slices.Contains(l.Slots[sk], before) {
			next.Slots[sk] = replaceMember(l.Slots[sk], before, after)
		}
	}
	next.TotalScore += scoreDelta
	return next
}

func replaceMember(in []*CrewMember, before, after *CrewMember) []*CrewMember {
	out := slices.Clone(in)
	for i, c := range out {
		if c == before {
			out[i] = after
		}
	}
	return out
}

// OptimizationResult is the outcome of one optimization run.
type OptimizationResult struct {
	RunID      string
	Primary    Skill
	Secondary  Skill
	SkillOrder [NumSkills]Skill
	Start      float64

	Lineup         Lineup
	Aggregates     AggregateSkills // indexed like SkillOrder
	EstimatedHours float64
	BaselineHours  float64
	Iterations     int
	Swaps          int
	OracleCalls    int

	// Scores is this run's score table keyed by crew name.
	Scores  map[string]float64
	Elapsed time.Duration
}
