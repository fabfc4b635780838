// Package template generates the seed data used to bootstrap an empty
// project: a phase/task timeline anchored to a start date and a parallel
// set of budget groups. Generators are pure; the "only seed an empty
// project" guard lives at the service boundary, not here.
package template

import (
	"time"

	"github.com/mmynk/weddingplan/internal/datemath"
	"github.com/mmynk/weddingplan/internal/models"
)

// PhaseSeed is one generated phase with its boundary instants and starter
// tasks, ready to be handed to the phase store's seed call.
type PhaseSeed struct {
	Name    string
	StartAt time.Time
	EndAt   time.Time
	Tasks   []TaskSeed
}

// TaskSeed is one generated task. All seeds start incomplete and
// pre-assigned to the project owner.
type TaskSeed struct {
	Name       string
	Note       string
	AssigneeID string
}

// GroupSeed is one generated budget category.
type GroupSeed struct {
	Name       string
	Activities []ActivitySeed
}

// ActivitySeed is one generated budget line with zero starting amounts.
type ActivitySeed struct {
	Name  string
	Note  string
	Payer models.Payer
}

// Timeline generates the default phase sequence anchored at start, with
// every task pre-assigned to ownerID. weddingDate is accepted so callers
// can cross-check the generated span against the actual date; the spacing
// itself is the fixed offset chain from the content table and does not
// scale to fit it.
func Timeline(start time.Time, weddingDate time.Time, ownerID string) []PhaseSeed {
	_ = weddingDate
	return GenerateTimeline(DefaultTimeline, start, ownerID)
}

// GenerateTimeline chains the given content's durations from start: each
// phase begins exactly where the previous one ends.
func GenerateTimeline(content []PhaseContent, start time.Time, ownerID string) []PhaseSeed {
	seeds := make([]PhaseSeed, 0, len(content))
	cursor := start
	for _, pc := range content {
		end := cursor
		if pc.Months != 0 {
			end = datemath.AddMonths(end, pc.Months)
		}
		if pc.Weeks != 0 {
			end = datemath.AddWeeks(end, pc.Weeks)
		}

		seed := PhaseSeed{Name: pc.Name, StartAt: cursor, EndAt: end}
		for _, tc := range pc.Tasks {
			seed.Tasks = append(seed.Tasks, TaskSeed{
				Name:       tc.Name,
				Note:       tc.Note,
				AssigneeID: ownerID,
			})
		}
		seeds = append(seeds, seed)
		cursor = end
	}
	return seeds
}

// Budget generates the default budget categories.
func Budget() []GroupSeed {
	return GenerateBudget(DefaultBudget)
}

// GenerateBudget expands budget content into seeds. No date logic is
// involved; amounts start at zero.
func GenerateBudget(content []GroupContent) []GroupSeed {
	seeds := make([]GroupSeed, 0, len(content))
	for _, gc := range content {
		seed := GroupSeed{Name: gc.Name}
		for _, ac := range gc.Activities {
			seed.Activities = append(seed.Activities, ActivitySeed{
				Name:  ac.Name,
				Note:  ac.Note,
				Payer: ac.Payer,
			})
		}
		seeds = append(seeds, seed)
	}
	return seeds
}
