package main

import (
	"fmt"
	"slices"
)

// ── Roll values ──

// rollValue is the midpoint-expected value of a roll range.
func rollValue(r SkillRoll) float64 {
	return r.Base + r.MinRoll + (r.MaxRoll-r.MinRoll)/2
}

// aggregate sums rollValue per position of order over every member having
// that skill. Contributions are added in ascending order so the totals do not
// depend on the order of members.
func aggregate(members []*CrewMember, order [NumSkills]Skill) AggregateSkills {
	var out AggregateSkills
	vals := make([]float64, 0, len(members))
	for i, sk := range order {
		vals = vals[:0]
		for _, c := range members {
			if c.Has(sk) {
				vals = append(vals, rollValue(c.Skills[sk]))
			}
		}
		slices.Sort(vals)
		for _, v := range vals {
			out[i] += v
		}
	}
	return out
}

// ── Scoring ──

const (
	primaryWeight   = 3
	secondaryWeight = 2
)

// scoreMember weights each skill's roll value by 3 for the primary, 2 for the
// secondary and 1 otherwise.
func scoreMember(c *CrewMember, primary, secondary Skill) float64 {
	score := 0.0
	for sk := Skill(0); sk < NumSkills; sk++ {
		if !c.Has(sk) {
			continue
		}
		mult := 1.0
		switch sk {
		case primary:
			mult = primaryWeight
		case secondary:
			mult = secondaryWeight
		}
		score += rollValue(c.Skills[sk]) * mult
	}
	return score
}

// ── Skill order ──

func validateSkills(primary, secondary Skill) error {
	if !primary.Valid() {
		return fmt.Errorf("%w: primary %s", ErrInvalidSkill, primary)
	}
	if !secondary.Valid() {
		return fmt.Errorf("%w: secondary %s", ErrInvalidSkill, secondary)
	}
	if primary == secondary {
		return fmt.Errorf("%w: primary and secondary are both %s", ErrInvalidSkill, primary)
	}
	return nil
}

// skillOrder puts primary first, secondary second and the remaining skills in
// canonical order.
func skillOrder(primary, secondary Skill) [NumSkills]Skill {
	order := [NumSkills]Skill{primary, secondary}
	n := 2
	for sk := Skill(0); sk < NumSkills; sk++ {
		if sk == primary || sk == secondary {
			continue
		}
		order[n] = sk
		n++
	}
	return order
}

// skillPairs lists every ordered (primary, secondary) pair.
func skillPairs() [][2]Skill {
	pairs := make([][2]Skill, 0, NumSkills*(NumSkills-1))
	for p := Skill(0); p < NumSkills; p++ {
		for s := Skill(0); s < NumSkills; s++ {
			if p != s {
				pairs = append(pairs, [2]Skill{p, s})
			}
		}
	}
	return pairs
}
