// Package planning computes the derived read-only views over a loaded
// project tree: checklist progress, per-phase counts, budget totals, and
// the assignment availability filter.
//
// Everything here is a pure fold over whatever is currently loaded. There
// is no caching and no incremental maintenance; trees are bounded by human
// wedding-planning content, so recomputing from scratch on every refresh
// is cheap and keeps the server the only source of truth.
package planning

import (
	"fmt"

	"github.com/mmynk/weddingplan/internal/models"
)

// Progress is the completed/total task tally across a project's phases.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Ratio returns completed/total, and exactly 0 for an empty tree (never
// NaN, never an error).
func (p Progress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) / float64(p.Total)
}

// Percent renders the ratio as a percentage with one decimal place, the
// format checklist screens display (e.g., "25.0").
func (p Progress) Percent() string {
	return fmt.Sprintf("%.1f", p.Ratio()*100)
}

// TreeProgress tallies completion across all tasks in all phases.
func TreeProgress(phases []models.Phase) Progress {
	var p Progress
	for _, phase := range phases {
		for _, task := range phase.Tasks {
			p.Total++
			if task.Completed {
				p.Completed++
			}
		}
	}
	return p
}

// TaskCountByPhase returns the task count per phase ID.
func TaskCountByPhase(phases []models.Phase) map[string]int {
	counts := make(map[string]int, len(phases))
	for _, phase := range phases {
		counts[phase.ID] = len(phase.Tasks)
	}
	return counts
}

// Totals is a pair of expected/actual budget sums in whole currency units.
type Totals struct {
	Expected int64 `json:"expected"`
	Actual   int64 `json:"actual"`
}

// GroupTotals sums a single group's activities.
func GroupTotals(group models.BudgetGroup) Totals {
	var t Totals
	for _, a := range group.Activities {
		t.Expected += a.ExpectedBudget
		t.Actual += a.ActualBudget
	}
	return t
}

// ProjectTotals sums across all loaded groups.
func ProjectTotals(groups []models.BudgetGroup) Totals {
	var t Totals
	for _, g := range groups {
		gt := GroupTotals(g)
		t.Expected += gt.Expected
		t.Actual += gt.Actual
	}
	return t
}

// AvailableMembers returns the project members not already assigned to the
// task: a set difference by member ID. Duplicate entries on either side are
// collapsed; the result keeps the member list's order.
func AvailableMembers(memberIDs, assigneeIDs []string) []string {
	assigned := make(map[string]struct{}, len(assigneeIDs))
	for _, id := range assigneeIDs {
		assigned[id] = struct{}{}
	}

	available := make([]string, 0, len(memberIDs))
	seen := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, taken := assigned[id]; !taken {
			available = append(available, id)
		}
	}
	return available
}
