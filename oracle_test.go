package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHazardEstimator(t *testing.T) {
	h := NewHazardEstimator(200)
	strong := AggregateSkills{6000, 5000, 3000, 3000, 3000, 3000}
	weak := AggregateSkills{3000, 2500, 1500, 1500, 1500, 1500}

	strongHours, err := h.EstimateDuration(strong, 2500)
	require.NoError(t, err)
	weakHours, err := h.EstimateDuration(weak, 2500)
	require.NoError(t, err)
	assert.Greater(t, strongHours, weakHours)
	assert.Greater(t, weakHours, 0.0)

	moreAM, err := h.EstimateDuration(weak, 4000)
	require.NoError(t, err)
	assert.Greater(t, moreAM, weakHours)
}

func TestHazardEstimator_NoSkills(t *testing.T) {
	// every hazard fails: 180 AM drain + 30 hazards * 30 AM per hour
	hours, err := NewHazardEstimator(200).EstimateDuration(AggregateSkills{}, 1080)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, hours, 1e-9)
}

func TestHazardEstimator_Cap(t *testing.T) {
	huge := AggregateSkills{1e9, 1e9, 1e9, 1e9, 1e9, 1e9}
	hours, err := NewHazardEstimator(5).EstimateDuration(huge, 1e6)
	require.NoError(t, err)
	assert.Equal(t, 5.0, hours)
}

func TestHazardEstimator_InvalidInput(t *testing.T) {
	h := NewHazardEstimator(200)
	for _, start := range []float64{0, -10, math.NaN(), math.Inf(1)} {
		_, err := h.EstimateDuration(AggregateSkills{1, 1, 1, 1, 1, 1}, start)
		assert.Error(t, err, "start %v", start)
	}
	_, err := h.EstimateDuration(AggregateSkills{math.NaN()}, 2500)
	assert.Error(t, err)
}

func TestPassChance(t *testing.T) {
	assert.Equal(t, 0.0, passChance(0, 0))
	assert.Equal(t, 1.0, passChance(1000, 700))
	assert.Equal(t, 0.0, passChance(1000, 1300))
	assert.InDelta(t, 0.5, passChance(1000, 1000), 1e-12)
	assert.InDelta(t, 0.25, passChance(1000, 1100), 1e-12)
}

func TestOracleFunc(t *testing.T) {
	var got AggregateSkills
	f := OracleFunc(func(s AggregateSkills, am float64) (float64, error) {
		got = s
		return am * 2, nil
	})
	h, err := f.EstimateDuration(AggregateSkills{1, 2, 3, 4, 5, 6}, 10)
	require.NoError(t, err)
	assert.Equal(t, 20.0, h)
	assert.Equal(t, AggregateSkills{1, 2, 3, 4, 5, 6}, got)
}
