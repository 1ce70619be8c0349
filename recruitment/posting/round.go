package posting

import (
	"slices"
	"strings"
)

// RoundStatus is derived from the interviews of a round
type RoundStatus string

const (
	RoundStatusEmpty    RoundStatus = "EMPTY"    // Added but never started
	RoundStatusMatching RoundStatus = "MATCHING" // At least one interview has no interviewer
	RoundStatusPending  RoundStatus = "PENDING"  // Every interview matched, some undecided
	RoundStatusFinished RoundStatus = "FINISHED" // Every interview concluded
)

// InterviewRound is a named stage that a cohort of applications goes through.
type InterviewRound struct {
	Name         string         `json:"name"`
	Status       RoundStatus    `json:"status"`
	Applications []*Application `json:"-"`
}

func NewInterviewRound(name string) *InterviewRound {
	return &InterviewRound{
		Name:         strings.TrimSpace(name),
		Status:       RoundStatusEmpty,
		Applications: []*Application{},
	}
}

// Start admits the applications and gives each a fresh UNMATCHED interview
// for this round.
func (r *InterviewRound) Start(apps []*Application) {
	r.Status = RoundStatusMatching
	for _, app := range apps {
		if !r.Contains(app) {
			r.Applications = append(r.Applications, app)
		}
		app.RecordInterview(r.Name, newInterview(app, r.Name))
	}
}

// RefreshStatus recomputes the status from the interviews. UNMATCHED beats
// PENDING beats FINISHED; a round without applications keeps its status.
func (r *InterviewRound) RefreshStatus() {
	var unmatched, pending bool
	for _, iv := range r.Interviews() {
		switch iv.Status {
		case InterviewStatusUnmatched:
			unmatched = true
		case InterviewStatusPending:
			pending = true
		}
	}

	switch {
	case unmatched:
		r.Status = RoundStatusMatching
	case pending:
		r.Status = RoundStatusPending
	case len(r.Applications) > 0:
		r.Status = RoundStatusFinished
	}
}

// CancelApplication drops app from the round and fails its interview here.
func (r *InterviewRound) CancelApplication(app *Application) {
	r.Applications = slices.DeleteFunc(r.Applications, func(a *Application) bool {
		return a == app
	})
	if iv, ok := app.Interview(r.Name); ok {
		iv.Cancel()
	}
}

func (r *InterviewRound) Contains(app *Application) bool {
	return slices.Contains(r.Applications, app)
}

// Interviews returns this round's interview of every admitted application.
func (r *InterviewRound) Interviews() []*Interview {
	out := make([]*Interview, 0, len(r.Applications))
	for _, app := range r.Applications {
		if iv, ok := app.Interview(r.Name); ok {
			out = append(out, iv)
		}
	}
	return out
}

// IsFinished reports FINISHED status.
func (r *InterviewRound) IsFinished() bool {
	return r.Status == RoundStatusFinished
}
