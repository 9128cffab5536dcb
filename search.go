package main

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer runs one lineup optimization: score, assign, then refine by swaps
// against the duration oracle. An Optimizer owns copies of its crew and is
// not safe for concurrent use; separate Optimizers never share state.
type Optimizer struct {
	crew    []*CrewMember // eligible crew, score descending
	scores  []float64     // scores[i] belongs to crew[i]
	scoreOf map[*CrewMember]float64

	primary   Skill
	secondary Skill
	order     [NumSkills]Skill
	start     float64

	oracle      DurationOracle
	oracleCalls int

	cfg   Config
	log   *zap.Logger
	runID string
}

// NewOptimizer validates the skill selection, drops vaulted members and
// scores the rest. It fails with ErrInvalidSkill or ErrInsufficientRoster
// before any search or oracle call.
func NewOptimizer(roster []CrewMember, primary, secondary Skill, startAM float64,
	oracle DurationOracle, cfg Config, log *zap.Logger) (*Optimizer, error) {
	if err := validateSkills(primary, secondary); err != nil {
		return nil, err
	}
	if oracle == nil {
		return nil, fmt.Errorf("%w: no oracle configured", ErrOracleFailure)
	}
	if log == nil {
		log = zap.NewNop()
	}

	eligible := make([]CrewMember, 0, len(roster))
	for i := range roster {
		if !roster[i].Vaulted {
			eligible = append(eligible, roster[i])
		}
	}
	if len(eligible) < LineupSize {
		return nil, fmt.Errorf("%w: %d eligible crew, need %d", ErrInsufficientRoster, len(eligible), LineupSize)
	}

	o := &Optimizer{
		primary:   primary,
		secondary: secondary,
		order:     skillOrder(primary, secondary),
		start:     startAM,
		oracle:    oracle,
		cfg:       cfg,
		runID:     uuid.NewString(),
	}
	o.log = log.With(zap.String("run", o.runID))
	o.rankCrew(eligible)
	return o, nil
}

// rankCrew scores every member into the run's own table and sorts by score,
// keeping input order among equal scores.
func (o *Optimizer) rankCrew(eligible []CrewMember) {
	o.crew = make([]*CrewMember, len(eligible))
	o.scoreOf = make(map[*CrewMember]float64, len(eligible))
	for i := range eligible {
		c := &eligible[i]
		o.crew[i] = c
		o.scoreOf[c] = scoreMember(c, o.primary, o.secondary)
	}
	sort.SliceStable(o.crew, func(i, j int) bool {
		return o.scoreOf[o.crew[i]] > o.scoreOf[o.crew[j]]
	})
	o.scores = make([]float64, len(o.crew))
	for i, c := range o.crew {
		o.scores[i] = o.scoreOf[c]
	}
}

// estimate calls the oracle; errors and non-finite answers abort the run.
func (o *Optimizer) estimate(skills AggregateSkills) (float64, error) {
	o.oracleCalls++
	hours, err := o.oracle.EstimateDuration(skills, o.start)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOracleFailure, err)
	}
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return 0, fmt.Errorf("%w: non-numeric estimate %v", ErrOracleFailure, hours)
	}
	return hours, nil
}

// ── Initial assignment ──────────────────────────────────────────────

// occupancyStates is the number of slot fill vectors: each of the six slots
// holds 0, 1 or 2 members.
const occupancyStates = 729

var pow3 = [NumSkills]int{1, 3, 9, 27, 81, 243}

func slotCount(state int, sk Skill) int {
	return state / pow3[sk] % 3
}

// assign returns the lineup with the highest summed score found by the
// depth-first placement search: the next candidate is placed into each free
// slot of a skill it has (score > 0 only), the best branch wins with the first
// one found kept on ties, and a candidate is skipped only when no placement
// improves on leaving it out.
//
// The best completion below a search node depends only on the next candidate
// and the slot occupancy, so the search is evaluated bottom-up over those
// states instead of recursively.
func (o *Optimizer) assign() Lineup {
	n := len(o.crew)
	best := make([]float64, (n+1)*occupancyStates)
	choice := make([]int8, n*occupancyStates)

	for i := n - 1; i >= 0; i-- {
		head := o.crew[i]
		score := o.scores[i]
		row := i * occupancyStates
		nextRow := (i + 1) * occupancyStates
		for state := 0; state < occupancyStates; state++ {
			bestPlaced := 0.0
			pick := int8(-1)
			if score > 0 {
				for sk := Skill(0); sk < NumSkills; sk++ {
					if !head.Has(sk) || slotCount(state, sk) >= SlotsPerSkill {
						continue
					}
					if v := score + best[nextRow+state+pow3[sk]]; v > bestPlaced {
						bestPlaced = v
						pick = int8(sk)
					}
				}
			}
			choice[row+state] = pick
			if pick < 0 {
				best[row+state] = best[nextRow+state]
			} else {
				best[row+state] = bestPlaced
			}
		}
	}

	var lineup Lineup
	state := 0
	for i := 0; i < n && lineup.Len() < LineupSize; i++ {
		pick := choice[i*occupancyStates+state]
		if pick < 0 {
			continue
		}
		sk := Skill(pick)
		lineup = lineup.Place(sk, o.crew[i], o.scores[i])
		state += pow3[sk]
	}
	return lineup
}

// ── Swap refinement ─────────────────────────────────────────────────

type refineResult struct {
	lineup Lineup
	skills AggregateSkills
	hours  float64
	passes int
	swaps  int
}

// refine hill-climbs on estimated hours. Each pass tries every unassigned
// member against every occupant of each slot it qualifies for, commits the
// best strictly improving replacement at once, and moves on to the next
// member. A pass without swaps ends the search.
func (o *Optimizer) refine(lineup Lineup, skills AggregateSkills, hours float64) (refineResult, error) {
	r := refineResult{lineup: lineup, skills: skills, hours: hours}

	for improving := true; improving; {
		if r.passes == o.cfg.MaxPasses {
			o.log.Warn("swap refinement hit pass cap",
				zap.Int("passes", r.passes), zap.Int("swaps", r.swaps))
			break
		}
		improving = false
		r.passes++
		o.log.Debug("swap pass", zap.Int("pass", r.passes), zap.Float64("hours", r.hours))

		for i, after := range o.crew {
			if r.lineup.Contains(after) {
				continue
			}
			var bestBefore *CrewMember
			var bestSkills AggregateSkills
			bestHours := r.hours
			for _, sk := range o.order {
				if !after.Has(sk) {
					continue
				}
				for _, before := range r.lineup.Slots[sk] {
					maybe := r.lineup.Swap(before, after, 0)
					maybeSkills := aggregate(maybe.Assigned, o.order)
					maybeHours, err := o.estimate(maybeSkills)
					if err != nil {
						return r, err
					}
					if maybeHours > bestHours {
						bestBefore = before
						bestSkills = maybeSkills
						bestHours = maybeHours
					}
				}
			}
			if bestBefore == nil {
				continue
			}
			o.log.Debug("swap",
				zap.String("out", bestBefore.Name),
				zap.String("in", after.Name),
				zap.Float64("from", r.hours),
				zap.Float64("to", bestHours))
			r.lineup = r.lineup.Swap(bestBefore, after, o.scores[i]-o.scoreOf[bestBefore])
			r.skills = bestSkills
			r.hours = bestHours
			r.swaps++
			improving = true
		}
	}
	return r, nil
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize assigns the initial lineup, takes its baseline estimate and
// refines it. Any oracle failure aborts the run without a result.
func (o *Optimizer) Optimize() (*OptimizationResult, error) {
	start := time.Now()
	o.log.Info("optimizing",
		zap.Int("crew", len(o.crew)),
		zap.Stringer("primary", o.primary),
		zap.Stringer("secondary", o.secondary),
		zap.Float64("start", o.start))

	lineup := o.assign()
	skills := aggregate(lineup.Assigned, o.order)
	o.log.Info("initial lineup assigned",
		zap.Int("assigned", lineup.Len()),
		zap.Float64("score", lineup.TotalScore))

	baseline, err := o.estimate(skills)
	if err != nil {
		return nil, err
	}

	r, err := o.refine(lineup, skills, baseline)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	o.log.Info("optimized",
		zap.Float64("baseline", baseline),
		zap.Float64("hours", r.hours),
		zap.Int("passes", r.passes),
		zap.Int("swaps", r.swaps),
		zap.Int("oracle_calls", o.oracleCalls),
		zap.Duration("elapsed", elapsed))

	scores := make(map[string]float64, len(o.crew))
	for i, c := range o.crew {
		scores[c.Name] = o.scores[i]
	}
	return &OptimizationResult{
		RunID:          o.runID,
		Primary:        o.primary,
		Secondary:      o.secondary,
		SkillOrder:     o.order,
		Start:          o.start,
		Lineup:         r.lineup,
		Aggregates:     r.skills,
		EstimatedHours: r.hours,
		BaselineHours:  baseline,
		Iterations:     r.passes,
		Swaps:          r.swaps,
		OracleCalls:    o.oracleCalls,
		Scores:         scores,
		Elapsed:        elapsed,
	}, nil
}

// Optimize runs a single optimization with the default config and no logging.
func Optimize(roster []CrewMember, primary, secondary Skill, startAM float64, oracle DurationOracle) (*OptimizationResult, error) {
	o, err := NewOptimizer(roster, primary, secondary, startAM, oracle, DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	return o.Optimize()
}

// OptimizeFrom pulls the roster from src and optimizes it.
func OptimizeFrom(src RosterSource, primary, secondary Skill, startAM float64,
	oracle DurationOracle, cfg Config, log *zap.Logger) (*OptimizationResult, error) {
	roster, err := src.ListCrew()
	if err != nil {
		return nil, fmt.Errorf("list crew: %w", err)
	}
	o, err := NewOptimizer(roster, primary, secondary, startAM, oracle, cfg, log)
	if err != nil {
		return nil, err
	}
	return o.Optimize()
}
