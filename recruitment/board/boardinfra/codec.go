package boardinfra

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/iam/user"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/company"
	"github.com/Abraxas-365/hireflow/recruitment/posting"
)

// SnapshotVersion is bumped whenever the stored layout changes.
const SnapshotVersion = 1

// snapshot is the stored form of a board. Pointers between postings, rounds
// and applications are written as application ids. A round member that was
// withdrawn and deleted is stored inline in its posting record, since a
// recreated draft reuses its id.
type snapshot struct {
	Version      int                    `json:"version"`
	SavedAt      time.Time              `json:"saved_at"`
	Users        []*user.User           `json:"users"`
	Companies    []*company.Company     `json:"companies"`
	Postings     []postingRecord        `json:"postings"`
	Applications []*posting.Application `json:"applications"`
}

type postingRecord struct {
	Posting           *posting.JobPosting               `json:"posting"`
	ApplicationIDs    []kernel.ApplicationID            `json:"application_ids"`
	RoundApplications map[string][]kernel.ApplicationID `json:"round_applications,omitempty"`
	RemainingIDs      []kernel.ApplicationID            `json:"remaining_ids,omitempty"`
	Detached          []*posting.Application            `json:"detached,omitempty"`
}

// Encode serializes b.
func Encode(b *board.Board, now time.Time) ([]byte, error) {
	snap := snapshot{
		Version:      SnapshotVersion,
		SavedAt:      now,
		Users:        make([]*user.User, 0, len(b.Users)),
		Companies:    make([]*company.Company, 0, len(b.Companies)),
		Postings:     make([]postingRecord, 0, len(b.Postings)),
		Applications: make([]*posting.Application, 0, len(b.Applications)),
	}

	for _, u := range b.Users {
		snap.Users = append(snap.Users, u)
	}
	for _, c := range b.Companies {
		snap.Companies = append(snap.Companies, c)
	}
	for _, a := range b.Applications {
		snap.Applications = append(snap.Applications, a)
	}
	for _, p := range b.Postings {
		snap.Postings = append(snap.Postings, toRecord(b, p))
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, errx.Wrap(err, "failed to encode board snapshot", errx.TypeInternal)
	}
	return data, nil
}

func toRecord(b *board.Board, p *posting.JobPosting) postingRecord {
	rec := postingRecord{
		Posting:        p,
		ApplicationIDs: ids(p.Applications),
	}
	if p.Manager == nil {
		return rec
	}

	rec.RoundApplications = make(map[string][]kernel.ApplicationID, len(p.Manager.Rounds))
	for _, r := range p.Manager.Rounds {
		rec.RoundApplications[r.Name] = ids(r.Applications)
		for _, a := range r.Applications {
			if b.Applications[a.ID] != a && !slices.Contains(rec.Detached, a) {
				rec.Detached = append(rec.Detached, a)
			}
		}
	}
	rec.RemainingIDs = ids(p.Manager.Remaining)
	return rec
}

// Decode rebuilds a board and relinks it. Ids that do not resolve to a
// stored application are dropped.
func Decode(data []byte) (*board.Board, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, board.ErrSnapshotCorrupted().WithCause(err)
	}
	if snap.Version != SnapshotVersion {
		return nil, board.ErrSnapshotCorrupted().
			WithDetail("version", snap.Version).
			WithDetail("expected", SnapshotVersion)
	}

	b := board.New()
	for _, u := range snap.Users {
		b.AddUser(u)
	}
	for _, c := range snap.Companies {
		b.AddCompany(c)
	}
	for _, a := range snap.Applications {
		b.AddApplication(a)
	}

	for _, rec := range snap.Postings {
		p := rec.Posting
		if p == nil {
			continue
		}
		detached := make(map[kernel.ApplicationID]*posting.Application, len(rec.Detached))
		for _, a := range rec.Detached {
			a.Relink(b)
			detached[a.ID] = a
		}

		p.Applications = resolve(b, nil, rec.ApplicationIDs)
		if p.Manager != nil {
			for _, r := range p.Manager.Rounds {
				r.Applications = resolve(b, detached, rec.RoundApplications[r.Name])
			}
			p.Manager = posting.RestoreManager(p, p.Manager.Rounds, resolve(b, nil, rec.RemainingIDs))
		}
		b.AddPosting(p)
	}

	b.Relink()
	return b, nil
}

func ids(apps []*posting.Application) []kernel.ApplicationID {
	out := make([]kernel.ApplicationID, 0, len(apps))
	for _, a := range apps {
		out = append(out, a.ID)
	}
	return out
}

// resolve looks ids up in detached first, then on the board.
func resolve(b *board.Board, detached map[kernel.ApplicationID]*posting.Application, ids []kernel.ApplicationID) []*posting.Application {
	out := make([]*posting.Application, 0, len(ids))
	for _, id := range ids {
		if a, ok := detached[id]; ok {
			out = append(out, a)
			continue
		}
		if a, ok := b.Applications[id]; ok {
			out = append(out, a)
		}
	}
	return out
}
