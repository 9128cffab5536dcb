package main

import (
	"fmt"
	"slices"
)

// linearOracle is monotone in every skill: a weighted sum plus the starting level.
var linearOracle = OracleFunc(func(s AggregateSkills, startAM float64) (float64, error) {
	return startAM/100 + 0.003*s[0] + 0.002*s[1] + 0.001*(s[2]+s[3]+s[4]+s[5]), nil
})

// countingOracle wraps next and counts calls.
type countingOracle struct {
	next  DurationOracle
	calls int
}

func (c *countingOracle) EstimateDuration(s AggregateSkills, startAM float64) (float64, error) {
	c.calls++
	return c.next.EstimateDuration(s, startAM)
}

// member builds a crew member with flat rolls (min = max = 0) per skill.
func member(name string, bases map[Skill]float64) CrewMember {
	c := CrewMember{Name: name}
	for sk, b := range bases {
		c.SetSkill(sk, SkillRoll{Base: b})
	}
	return c
}

// padding returns n members without skills; they score 0 and are never placed.
func padding(n int) []CrewMember {
	out := make([]CrewMember, n)
	for i := range out {
		out[i] = CrewMember{Name: fmt.Sprintf("pad-%d", i)}
	}
	return out
}

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// checkLineup asserts the lineup invariants: slot caps, no duplicates, skill
// membership and a consistent assigned list.
func checkLineup(t fataler, l Lineup) {
	t.Helper()
	if l.Len() > LineupSize {
		t.Fatalf("lineup holds %d members, max %d", l.Len(), LineupSize)
	}
	seen := map[*CrewMember]bool{}
	total := 0
	for sk := Skill(0); sk < NumSkills; sk++ {
		slot := l.Slots[sk]
		if len(slot) > SlotsPerSkill {
			t.Fatalf("slot %s holds %d members", sk, len(slot))
		}
		for _, c := range slot {
			if seen[c] {
				t.Fatalf("%s appears twice", c.Name)
			}
			seen[c] = true
			if !c.Has(sk) {
				t.Fatalf("%s sits in %s without the skill", c.Name, sk)
			}
			if !slices.Contains(l.Assigned, c) {
				t.Fatalf("%s is slotted but not assigned", c.Name)
			}
		}
		total += len(slot)
	}
	if total != l.Len() {
		t.Fatalf("slots hold %d members, assigned %d", total, l.Len())
	}
}

func names(cs []*CrewMember) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
