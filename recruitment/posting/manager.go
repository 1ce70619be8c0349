package posting

import (
	"slices"
)

// RoundManager drives the interview rounds of one posting and decides who
// can be hired. It exists from the moment the posting stops accepting
// applications.
type RoundManager struct {
	Rounds    []*InterviewRound `json:"rounds"`
	Remaining []*Application    `json:"-"`

	posting *JobPosting
}

func newRoundManager(p *JobPosting, apps []*Application) *RoundManager {
	return &RoundManager{
		Rounds:    []*InterviewRound{},
		Remaining: slices.Clone(apps),
		posting:   p,
	}
}

// CurrentRound is the last round that has been started, or nil.
func (m *RoundManager) CurrentRound() *InterviewRound {
	if i := m.currentIndex(); i >= 0 {
		return m.Rounds[i]
	}
	return nil
}

func (m *RoundManager) currentIndex() int {
	for i := len(m.Rounds) - 1; i >= 0; i-- {
		if m.Rounds[i].Status != RoundStatusEmpty {
			return i
		}
	}
	return -1
}

// Round finds a round by name.
func (m *RoundManager) Round(name string) (*InterviewRound, bool) {
	for _, r := range m.Rounds {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// AddRound appends a new, not yet started round. Names are unique within
// the posting.
func (m *RoundManager) AddRound(round *InterviewRound) error {
	if round.Name == "" {
		return ErrInvalidRoundName()
	}
	if _, exists := m.Round(round.Name); exists {
		return ErrRoundAlreadyExists().WithDetail("round", round.Name)
	}
	if round.Status != RoundStatusEmpty {
		return ErrWrongRoundStatus(round.Name, round.Status).WithDetail("expected", RoundStatusEmpty)
	}
	m.Rounds = append(m.Rounds, round)
	return nil
}

// Advance starts the round after the current one with the remaining
// applications. With no round started yet, that is the first round. Rejected
// applications never enter a new round.
func (m *RoundManager) Advance() (*InterviewRound, error) {
	if m.posting.Status != StatusProcessing {
		return nil, ErrWrongPostingStatus(StatusProcessing, m.posting.Status)
	}

	cur := m.currentIndex()
	if cur >= 0 && m.Rounds[cur].Status != RoundStatusFinished {
		return nil, ErrWrongRoundStatus(m.Rounds[cur].Name, m.Rounds[cur].Status)
	}

	next := cur + 1
	if next >= len(m.Rounds) {
		return nil, ErrNextRoundDoesNotExist().WithDetail("rounds", len(m.Rounds))
	}

	m.pruneRejected()
	round := m.Rounds[next]
	round.Start(m.Remaining)
	return round, nil
}

// RefreshStatus refreshes the current round and drops rejected applications
// from the pool.
func (m *RoundManager) RefreshStatus() {
	if cur := m.CurrentRound(); cur != nil {
		cur.RefreshStatus()
	}
	m.pruneRejected()
}

func (m *RoundManager) pruneRejected() {
	m.Remaining = slices.DeleteFunc(m.Remaining, func(a *Application) bool {
		return a.Status == ApplicationStatusRejected
	})
}

// Hire marks a pending application HIRED once the current round is over,
// as long as positions are left.
func (m *RoundManager) Hire(app *Application) error {
	if m.posting.Status != StatusProcessing {
		return ErrWrongPostingStatus(StatusProcessing, m.posting.Status)
	}
	if app.Status != ApplicationStatusPending {
		return ErrWrongApplicationStatus(ApplicationStatusPending, app.Status)
	}
	if !slices.Contains(m.Remaining, app) {
		return ErrApplicationNotFound().WithDetail("application_id", app.ID.String())
	}
	if cur := m.CurrentRound(); cur != nil && cur.Status != RoundStatusFinished {
		return ErrWrongRoundStatus(cur.Name, cur.Status)
	}
	if positions := m.posting.NumOfPositions(); m.HiredCount() >= positions {
		return ErrPostingAlreadyFilled().WithDetail("positions", positions)
	}

	app.Status = ApplicationStatusHired
	return nil
}

// HiredCount counts HIRED applications in the pool.
func (m *RoundManager) HiredCount() int {
	n := 0
	for _, a := range m.Remaining {
		if a.Status == ApplicationStatusHired {
			n++
		}
	}
	return n
}

// EndAll rejects every application still pending, failing its open
// interview in the current round.
func (m *RoundManager) EndAll() {
	cur := m.CurrentRound()
	for _, app := range m.Remaining {
		if app.Status != ApplicationStatusPending {
			continue
		}
		app.Status = ApplicationStatusRejected
		if cur == nil {
			continue
		}
		if iv, ok := app.Interview(cur.Name); ok && iv.Status == InterviewStatusPending {
			iv.SetStatus(InterviewStatusFail)
		}
	}
	m.pruneRejected()
}

// Cancel removes app from the pool and from the current round.
func (m *RoundManager) Cancel(app *Application) {
	m.Remaining = slices.DeleteFunc(m.Remaining, func(a *Application) bool {
		return a == app
	})
	if cur := m.CurrentRound(); cur != nil {
		cur.CancelApplication(app)
	}
}

// Posting returns the owning posting.
func (m *RoundManager) Posting() *JobPosting {
	return m.posting
}
