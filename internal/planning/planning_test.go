package planning

import (
	"math"
	"reflect"
	"testing"

	"github.com/mmynk/weddingplan/internal/models"
)

func phaseWithTasks(id string, completed ...bool) models.Phase {
	p := models.Phase{ID: id}
	for i, c := range completed {
		p.Tasks = append(p.Tasks, models.Task{ID: id + "-t" + string(rune('a'+i)), Completed: c})
	}
	return p
}

func TestTreeProgressEmptyTree(t *testing.T) {
	p := TreeProgress(nil)
	if p.Ratio() != 0 {
		t.Errorf("empty tree ratio = %v, want exactly 0", p.Ratio())
	}
	if got := p.Percent(); got != "0.0" {
		t.Errorf("empty tree percent = %q, want \"0.0\"", got)
	}

	// Phases without tasks count as empty too.
	p = TreeProgress([]models.Phase{{ID: "p1"}, {ID: "p2"}})
	if p.Total != 0 || p.Ratio() != 0 {
		t.Errorf("task-less phases: got %+v, want zero progress", p)
	}
}

func TestTreeProgressQuarterDone(t *testing.T) {
	phases := []models.Phase{
		phaseWithTasks("p1", true, false),
		phaseWithTasks("p2", false, false),
	}

	p := TreeProgress(phases)
	if p.Completed != 1 || p.Total != 4 {
		t.Fatalf("progress = %+v, want 1/4", p)
	}
	if p.Ratio() != 0.25 {
		t.Errorf("ratio = %v, want 0.25", p.Ratio())
	}
	if got := p.Percent(); got != "25.0" {
		t.Errorf("percent = %q, want \"25.0\"", got)
	}
}

func TestTreeProgressAddingIncompleteTaskLowersRatio(t *testing.T) {
	phases := []models.Phase{phaseWithTasks("p1", true, true)}
	before := TreeProgress(phases).Ratio()

	phases[0].Tasks = append(phases[0].Tasks, models.Task{ID: "new", Completed: false})
	after := TreeProgress(phases).Ratio()
	if after >= before {
		t.Errorf("adding an incomplete task should lower the ratio: %v -> %v", before, after)
	}

	// Completing the new task raises the completed count by exactly one.
	phases[0].Tasks[2].Completed = true
	done := TreeProgress(phases)
	if done.Completed != 3 || done.Total != 3 {
		t.Errorf("progress = %+v, want 3/3", done)
	}
	if delta := done.Ratio() - after; math.Abs(delta-1.0/float64(done.Total)) > 1e-12 {
		t.Errorf("completing one task moved ratio by %v, want 1/%d", delta, done.Total)
	}
}

func TestTaskCountByPhase(t *testing.T) {
	phases := []models.Phase{
		phaseWithTasks("p1", true, false, false),
		phaseWithTasks("p2"),
	}

	counts := TaskCountByPhase(phases)
	want := map[string]int{"p1": 3, "p2": 0}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("TaskCountByPhase = %v, want %v", counts, want)
	}
}

func TestGroupAndProjectTotals(t *testing.T) {
	venue := models.BudgetGroup{
		ID: "g1",
		Activities: []models.Activity{
			{Name: "Hall", ExpectedBudget: 100, ActualBudget: 80},
			{Name: "Catering", ExpectedBudget: 50, ActualBudget: 0},
		},
	}
	attire := models.BudgetGroup{
		ID: "g2",
		Activities: []models.Activity{
			{Name: "Dress", ExpectedBudget: 30, ActualBudget: 35},
		},
	}

	gt := GroupTotals(venue)
	if gt.Expected != 150 || gt.Actual != 80 {
		t.Errorf("GroupTotals = %+v, want expected=150 actual=80", gt)
	}

	pt := ProjectTotals([]models.BudgetGroup{venue, attire})
	if pt.Expected != 180 || pt.Actual != 115 {
		t.Errorf("ProjectTotals = %+v, want expected=180 actual=115", pt)
	}

	if empty := ProjectTotals(nil); empty.Expected != 0 || empty.Actual != 0 {
		t.Errorf("ProjectTotals(nil) = %+v, want zeros", empty)
	}
}

func TestAvailableMembers(t *testing.T) {
	members := []string{"A", "B", "C"}

	got := AvailableMembers(members, []string{"B"})
	if !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("AvailableMembers = %v, want [A C]", got)
	}

	// Assigning A leaves only C.
	got = AvailableMembers(members, []string{"B", "A"})
	if !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("AvailableMembers after adding A = %v, want [C]", got)
	}

	// Duplicates on either side collapse by id.
	got = AvailableMembers([]string{"A", "A", "B", "C", "C"}, []string{"B", "B"})
	if !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("AvailableMembers with duplicates = %v, want [A C]", got)
	}

	// Everyone assigned: empty, not nil panic.
	got = AvailableMembers(members, members)
	if len(got) != 0 {
		t.Errorf("AvailableMembers all assigned = %v, want empty", got)
	}
}
