package boardsrv

import (
	"context"

	"github.com/Abraxas-365/hireflow/pkg/clockx"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
)

func (s *Service) Clock() board.ClockResponse {
	_, simulated := s.clock.(*clockx.Simulated)
	return board.ClockResponse{
		Now:       kernel.FormatDate(s.clock.Now()),
		Simulated: simulated,
	}
}

// Tick closes postings past their close date, sweeps every document store
// and refreshes every round manager.
func (s *Service) Tick(ctx context.Context) (*board.TickReport, error) {
	var report *board.TickReport
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		report = s.tick(ctx)
		return nil
	})
	return report, err
}

// AdvanceClock moves a simulated clock forward and runs the tick.
func (s *Service) AdvanceClock(ctx context.Context, days int) (*board.TickReport, error) {
	sim, ok := s.clock.(*clockx.Simulated)
	if !ok {
		return nil, board.ErrClockNotSimulated()
	}
	if days <= 0 {
		return nil, board.ErrInvalidDays().WithDetail("days", days)
	}

	var report *board.TickReport
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		now := sim.AdvanceDays(days)
		logx.Infof("Clock advanced %d days to %s", days, kernel.FormatDate(now))
		report = s.tick(ctx)
		return nil
	})
	return report, err
}

// tick must run under the board lock.
func (s *Service) tick(ctx context.Context) *board.TickReport {
	now := s.clock.Now()
	report := &board.TickReport{
		Now:            kernel.FormatDate(now),
		ClosedPostings: []kernel.PostingID{},
	}

	for _, p := range s.board.Postings {
		if p.MaybeClose(now) {
			report.ClosedPostings = append(report.ClosedPostings, p.ID)
			logx.Infof("Posting %s closed to applicants", p.ID)
		}
	}

	var evicted []*document.Document
	for _, store := range s.board.DocumentStores() {
		evicted = append(evicted, store.Sweep(now)...)
	}
	s.releaseBlobs(ctx, evicted)
	report.EvictedDocuments = len(evicted)

	s.board.Refresh()
	return report
}
