package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatHours renders fractional hours as "8h 30m", truncating both parts.
func FormatHours(h float64) string {
	hrs := math.Floor(h)
	mins := math.Floor((h - hrs) * 60)
	return fmt.Sprintf("%dh %dm", int(hrs), int(mins))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatResult produces the text report for one optimization.
func FormatResult(r *OptimizationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Your best crew for %s/%s\n",
		strings.ToUpper(r.Primary.String()), strings.ToUpper(r.Secondary.String()))
	for sk := Skill(0); sk < NumSkills; sk++ {
		for _, c := range r.Lineup.Slots[sk] {
			fmt.Fprintf(&b, "    %s %s (%s)\n",
				strings.ToUpper(sk.String()), c.Name, formatNumber(r.Scores[c.Name]))
		}
	}
	fmt.Fprintf(&b, "excluding starbase bonus and with a %s ship\n", formatNumber(r.Start))
	fmt.Fprintf(&b, "(after %d rounds and %d swaps to improve from %s)\n",
		r.Iterations, r.Swaps, FormatHours(r.BaselineHours))

	totals := make([]string, NumSkills)
	for i, v := range r.Aggregates {
		totals[i] = strconv.Itoa(int(math.Floor(v)))
	}
	fmt.Fprintf(&b, "skills of %s\n", strings.Join(totals, " "))
	fmt.Fprintf(&b, "estimated voyage time of %s\n", FormatHours(r.EstimatedHours))
	return b.String()
}

// lineupEntry is one seat of the JSON lineup.
type lineupEntry struct {
	Skill Skill   `json:"skill"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// optimizeResponse is the JSON form of an OptimizationResult shared by the
// CLI, Lambda and HTTP outputs.
type optimizeResponse struct {
	RunID         string        `json:"runId"`
	Primary       Skill         `json:"primary"`
	Secondary     Skill         `json:"secondary"`
	Start         float64       `json:"start"`
	Hours         float64       `json:"hours"`
	Duration      string        `json:"duration"`
	BaselineHours float64       `json:"baselineHours"`
	Iterations    int           `json:"iterations"`
	Swaps         int           `json:"swaps"`
	SkillOrder    []Skill       `json:"skillOrder"`
	Skills        []float64     `json:"skills"`
	Lineup        []lineupEntry `json:"lineup"`
	OracleCalls   int           `json:"oracleCalls"`
	TimeMs        int64         `json:"timeMs"`
	Detail        string        `json:"detail,omitempty"`
}

func newOptimizeResponse(r *OptimizationResult, withDetail bool) optimizeResponse {
	resp := optimizeResponse{
		RunID:         r.RunID,
		Primary:       r.Primary,
		Secondary:     r.Secondary,
		Start:         r.Start,
		Hours:         r.EstimatedHours,
		Duration:      FormatHours(r.EstimatedHours),
		BaselineHours: r.BaselineHours,
		Iterations:    r.Iterations,
		Swaps:         r.Swaps,
		SkillOrder:    r.SkillOrder[:],
		Skills:        r.Aggregates[:],
		OracleCalls:   r.OracleCalls,
		TimeMs:        r.Elapsed.Milliseconds(),
	}
	for sk := Skill(0); sk < NumSkills; sk++ {
		for _, c := range r.Lineup.Slots[sk] {
			resp.Lineup = append(resp.Lineup, lineupEntry{Skill: sk, Name: c.Name, Score: r.Scores[c.Name]})
		}
	}
	if withDetail {
		resp.Detail = FormatResult(r)
	}
	return resp
}

// FormatSweep renders a sweep ranking as a table.
func FormatSweep(results []*OptimizationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-4s %10s %10s %6s\n", "Pri", "Sec", "Estimate", "Baseline", "Swaps")
	fmt.Fprintf(&b, "%-4s %-4s %10s %10s %6s\n", "----", "----", "----------", "----------", "------")
	for _, r := range results {
		fmt.Fprintf(&b, "%-4s %-4s %10s %10s %6d\n",
			r.Primary, r.Secondary, FormatHours(r.EstimatedHours), FormatHours(r.BaselineHours), r.Swaps)
	}
	return b.String()
}
