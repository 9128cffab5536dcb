package main

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"pgregory.net/rapid"
)

func TestProperty_AggregateIgnoresMemberOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("aggregate is invariant under reordering", prop.ForAll(
		func(bases []float64, seed int64) bool {
			members := make([]*CrewMember, len(bases))
			for i, b := range bases {
				c := &CrewMember{Name: fmt.Sprintf("c%d", i)}
				c.SetSkill(Skill(i%NumSkills), SkillRoll{Base: b, MinRoll: b / 7, MaxRoll: b/7 + b/3})
				c.SetSkill(Skill((i+2)%NumSkills), SkillRoll{Base: b / 3, MinRoll: 0.1, MaxRoll: 0.7})
				members[i] = c
			}
			order := skillOrder(SkillScience, SkillCommand)
			want := aggregate(members, order)

			shuffled := slices.Clone(members)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			return aggregate(shuffled, order) == want
		},
		gen.SliceOf(gen.Float64Range(0, 5000)),
		gen.Int64(),
	))

	properties.Property("rollValue is the midpoint of the range above base", prop.ForAll(
		func(base, lo, spread float64) bool {
			r := SkillRoll{Base: base, MinRoll: lo, MaxRoll: lo + spread}
			return math.Abs(rollValue(r)-(base+lo+spread/2)) <= 1e-9
		},
		gen.Float64Range(0, 2000),
		gen.Float64Range(0, 500),
		gen.Float64Range(0, 500),
	))

	properties.TestingRun(t)
}

func TestProperty_OracleMonotone(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)
	oracle := NewHazardEstimator(200)

	properties.Property("raising one skill total never shortens the estimate", prop.ForAll(
		func(totals []float64, idx int, bump float64) bool {
			var s AggregateSkills
			copy(s[:], totals)
			lower, err := oracle.EstimateDuration(s, 2500)
			if err != nil {
				return false
			}
			s[idx] += bump
			higher, err := oracle.EstimateDuration(s, 2500)
			if err != nil {
				return false
			}
			return higher >= lower-1e-9
		},
		gen.SliceOfN(NumSkills, gen.Float64Range(0, 8000)),
		gen.IntRange(0, NumSkills-1),
		gen.Float64Range(0, 3000),
	))

	properties.TestingRun(t)
}

// randomRoster draws n crew with random skill sets and rolls.
func randomRoster(t *rapid.T, n int) []CrewMember {
	roster := make([]CrewMember, n)
	for i := range roster {
		roster[i].Name = fmt.Sprintf("crew-%d", i)
		mask := rapid.IntRange(0, 63).Draw(t, fmt.Sprintf("mask-%d", i))
		for sk := Skill(0); sk < NumSkills; sk++ {
			if mask&(1<<sk) == 0 {
				continue
			}
			base := rapid.Float64Range(0, 1500).Draw(t, fmt.Sprintf("base-%d-%d", i, sk))
			lo := rapid.Float64Range(0, 300).Draw(t, fmt.Sprintf("min-%d-%d", i, sk))
			roster[i].SetSkill(sk, SkillRoll{Base: base, MinRoll: lo, MaxRoll: lo + 200})
		}
		roster[i].Vaulted = rapid.IntRange(0, 9).Draw(t, fmt.Sprintf("vault-%d", i)) == 0
	}
	return roster
}

func drawSkills(t *rapid.T) (Skill, Skill) {
	primary := Skill(rapid.IntRange(0, NumSkills-1).Draw(t, "primary"))
	secondary := Skill((int(primary) + rapid.IntRange(1, NumSkills-1).Draw(t, "offset")) % NumSkills)
	return primary, secondary
}

func TestProperty_AssignedLineupInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roster := randomRoster(t, rapid.IntRange(LineupSize, 40).Draw(t, "n"))
		primary, secondary := drawSkills(t)

		o, err := NewOptimizer(roster, primary, secondary, 2500, linearOracle, DefaultConfig(), nil)
		if err != nil {
			// too many vaulted
			return
		}
		l := o.assign()
		checkLineup(t, l)
		for _, c := range l.Assigned {
			if c.Vaulted {
				t.Fatalf("vaulted %s assigned", c.Name)
			}
			if o.scoreOf[c] <= 0 {
				t.Fatalf("%s placed with score %v", c.Name, o.scoreOf[c])
			}
		}
	})
}

func TestProperty_RefinementNeverLosesTime(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		roster := randomRoster(t, rapid.IntRange(LineupSize, 30).Draw(t, "n"))
		primary, secondary := drawSkills(t)

		oracle := &countingOracle{next: linearOracle}
		r, err := Optimize(roster, primary, secondary, 2500, oracle)
		if err != nil {
			return
		}
		checkLineup(t, r.Lineup)
		if r.EstimatedHours < r.BaselineHours {
			t.Fatalf("estimate fell from %v to %v", r.BaselineHours, r.EstimatedHours)
		}
		if r.Iterations < 1 {
			t.Fatalf("no refinement pass recorded")
		}
		if oracle.calls != r.OracleCalls {
			t.Fatalf("oracle called %d times, result says %d", oracle.calls, r.OracleCalls)
		}
		if got := aggregate(r.Lineup.Assigned, r.SkillOrder); got != r.Aggregates {
			t.Fatalf("aggregates %v do not match lineup %v", r.Aggregates, got)
		}
	})
}
