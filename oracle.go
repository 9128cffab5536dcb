package main

import (
	"fmt"
	"math"
)

// DurationOracle estimates voyage hours from aggregate skills (in the run's
// skill order, primary first) and a starting antimatter level.
type DurationOracle interface {
	EstimateDuration(skills AggregateSkills, startAM float64) (float64, error)
}

// OracleFunc adapts a plain function to DurationOracle.
type OracleFunc func(skills AggregateSkills, startAM float64) (float64, error)

func (f OracleFunc) EstimateDuration(skills AggregateSkills, startAM float64) (float64, error) {
	return f(skills, startAM)
}

// Hazard model constants.
const (
	ticksPerHour            = 180
	amPerTick               = 1.0
	hazardsPerHour          = 30.0
	hazardDifficultyPerHour = 1260.0
	hazardRewardAM          = 5.0
	hazardPenaltyAM         = 30.0
	skillVariance           = 0.2
	stepsPerHour            = 60
)

// hazardSkillChance is the chance that a hazard tests each position of the
// skill order: primary, secondary, then the four others.
var hazardSkillChance = [NumSkills]float64{0.35, 0.25, 0.1, 0.1, 0.1, 0.1}

// HazardEstimator is the default DurationOracle. It integrates the expected
// antimatter balance minute by minute: a constant activity drain plus hazards
// whose difficulty grows linearly with elapsed time, each passed hazard
// refunding and each failed one costing antimatter. A skill's roll is taken
// as uniform within ±skillVariance of its total. The estimate is the time
// the balance reaches zero, capped at MaxHours.
//
// It is a stand-in for the game's own formula and is safe for concurrent use.
type HazardEstimator struct {
	MaxHours float64
}

func NewHazardEstimator(maxHours float64) *HazardEstimator {
	return &HazardEstimator{MaxHours: maxHours}
}

func (h *HazardEstimator) EstimateDuration(skills AggregateSkills, startAM float64) (float64, error) {
	if math.IsNaN(startAM) || math.IsInf(startAM, 0) || startAM <= 0 {
		return 0, fmt.Errorf("starting antimatter must be positive, got %v", startAM)
	}
	for i, s := range skills {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0, fmt.Errorf("skill total %d is not finite: %v", i, s)
		}
	}

	const dt = 1.0 / stepsPerHour
	am := startAM
	steps := int(math.Ceil(h.MaxHours * stepsPerHour))
	for step := 0; step < steps; step++ {
		t := float64(step) * dt
		next := am + amRate(skills, t+dt/2)*dt
		if next <= 0 {
			return t + dt*am/(am-next), nil
		}
		am = next
	}
	return h.MaxHours, nil
}

// amRate is the expected antimatter change per hour at elapsed hour t.
func amRate(skills AggregateSkills, t float64) float64 {
	difficulty := t * hazardDifficultyPerHour
	hazard := 0.0
	for i, s := range skills {
		p := passChance(s, difficulty)
		hazard += hazardSkillChance[i] * (p*hazardRewardAM - (1-p)*hazardPenaltyAM)
	}
	return hazardsPerHour*hazard - ticksPerHour*amPerTick
}

// passChance is the probability that a roll uniform in
// [s(1-skillVariance), s(1+skillVariance)] meets difficulty.
func passChance(s, difficulty float64) float64 {
	if s <= 0 {
		return 0
	}
	lo := s * (1 - skillVariance)
	hi := s * (1 + skillVariance)
	switch {
	case difficulty <= lo:
		return 1
	case difficulty >= hi:
		return 0
	}
	return (hi - difficulty) / (hi - lo)
}
