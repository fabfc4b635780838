package template

import "github.com/mmynk/weddingplan/internal/models"

// Content tables are plain data, kept apart from the generation logic so a
// deployment can swap texts (or a whole locale) without touching the offset
// chaining. Only the relative durations and the ordering are structural.

// TaskContent is one templated checklist entry.
type TaskContent struct {
	Name string
	Note string
}

// PhaseContent is one templated phase: a display name, the duration the
// phase spans from the previous boundary, and its starter tasks.
type PhaseContent struct {
	Name   string
	Months int
	Weeks  int
	Tasks  []TaskContent
}

// ActivityContent is one templated budget line item. Amounts always start
// at zero; the couple fills them in.
type ActivityContent struct {
	Name  string
	Note  string
	Payer models.Payer
}

// GroupContent is one templated budget category.
type GroupContent struct {
	Name       string
	Activities []ActivityContent
}

// DefaultTimeline is the stock checklist. The first phase spans five months
// from the project start and the second three months from the first phase's
// end; later phases tighten as the wedding approaches.
var DefaultTimeline = []PhaseContent{
	{
		Name:   "Foundations",
		Months: 5,
		Tasks: []TaskContent{
			{Name: "Set the wedding date", Note: "Agree on a date with both families before anything else."},
			{Name: "Draft the guest list", Note: "A rough headcount drives venue and budget decisions."},
			{Name: "Set the overall budget", Note: "Decide the ceiling and who contributes what."},
			{Name: "Book the venue", Note: "Popular venues go 6-12 months out."},
		},
	},
	{
		Name:   "Vendors and attire",
		Months: 3,
		Tasks: []TaskContent{
			{Name: "Book the photographer", Note: ""},
			{Name: "Choose catering", Note: "Schedule at least one tasting."},
			{Name: "Order the dress and suits", Note: "Allow time for fittings and alterations."},
			{Name: "Book music or a band", Note: ""},
		},
	},
	{
		Name:   "Invitations",
		Months: 2,
		Tasks: []TaskContent{
			{Name: "Finalize the guest list", Note: ""},
			{Name: "Send invitations", Note: "Include the RSVP deadline."},
			{Name: "Plan the ceremony program", Note: ""},
		},
	},
	{
		Name:   "Final arrangements",
		Months: 1,
		Tasks: []TaskContent{
			{Name: "Confirm all vendors", Note: "Reconfirm times, addresses and headcounts."},
			{Name: "Arrange seating", Note: ""},
			{Name: "Final dress fitting", Note: ""},
		},
	},
	{
		Name:  "Wedding week",
		Weeks: 2,
		Tasks: []TaskContent{
			{Name: "Rehearse the ceremony", Note: ""},
			{Name: "Pack for the honeymoon", Note: ""},
			{Name: "Hand off the day-of timeline", Note: "Give the schedule to whoever runs the day."},
		},
	},
}

// DefaultBudget is the stock set of spending categories.
var DefaultBudget = []GroupContent{
	{
		Name: "Venue & catering",
		Activities: []ActivityContent{
			{Name: "Venue rental", Note: "", Payer: models.PayerBoth},
			{Name: "Catering per head", Note: "Multiply by final headcount.", Payer: models.PayerBoth},
			{Name: "Cake", Note: "", Payer: models.PayerBoth},
		},
	},
	{
		Name: "Attire & beauty",
		Activities: []ActivityContent{
			{Name: "Wedding dress", Note: "", Payer: models.PayerBride},
			{Name: "Suit", Note: "", Payer: models.PayerGroom},
			{Name: "Hair and makeup", Note: "", Payer: models.PayerBride},
		},
	},
	{
		Name: "Photo & music",
		Activities: []ActivityContent{
			{Name: "Photographer", Note: "", Payer: models.PayerBoth},
			{Name: "Band or DJ", Note: "", Payer: models.PayerBoth},
		},
	},
	{
		Name: "Rings & stationery",
		Activities: []ActivityContent{
			{Name: "Wedding rings", Note: "", Payer: models.PayerBoth},
			{Name: "Invitations and printing", Note: "", Payer: models.PayerBoth},
		},
	},
}
