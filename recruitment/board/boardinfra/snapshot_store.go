package boardinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/fsx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/jmoiron/sqlx"
)

// ============================================================================
// Postgres
// ============================================================================

// PostgresSnapshotStore appends one JSONB row per save; the newest row wins.
type PostgresSnapshotStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ board.SnapshotStore = (*PostgresSnapshotStore)(nil)

func NewPostgresSnapshotStore(db *sqlx.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db, now: time.Now}
}

type snapshotModel struct {
	ID        int64     `db:"id"`
	Version   int       `db:"version"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, b *board.Board) error {
	now := s.now()
	payload, err := Encode(b, now)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO board_snapshots (version, payload, created_at)
		VALUES (:version, :payload, :created_at)`

	model := snapshotModel{Version: SnapshotVersion, Payload: payload, CreatedAt: now}
	if _, err := s.db.NamedExecContext(ctx, query, model); err != nil {
		return errx.Wrap(err, "failed to save board snapshot", errx.TypeInternal)
	}
	return nil
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) (*board.Board, error) {
	query := `
		SELECT id, version, payload, created_at
		FROM board_snapshots
		ORDER BY id DESC
		LIMIT 1`

	var model snapshotModel
	if err := s.db.GetContext(ctx, &model, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to load board snapshot", errx.TypeInternal)
	}
	return Decode(model.Payload)
}

// Prune keeps the newest keep snapshots and deletes the rest.
func (s *PostgresSnapshotStore) Prune(ctx context.Context, keep int) (int64, error) {
	query := `
		DELETE FROM board_snapshots
		WHERE id NOT IN (SELECT id FROM board_snapshots ORDER BY id DESC LIMIT $1)`

	res, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, errx.Wrap(err, "failed to prune board snapshots", errx.TypeInternal)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ============================================================================
// File system
// ============================================================================

// FSSnapshotStore keeps the latest snapshot as a single JSON file.
type FSSnapshotStore struct {
	files fsx.FileSystem
	path  string
	now   func() time.Time
}

var _ board.SnapshotStore = (*FSSnapshotStore)(nil)

func NewFSSnapshotStore(files fsx.FileSystem, path string) *FSSnapshotStore {
	return &FSSnapshotStore{files: files, path: path, now: time.Now}
}

func (s *FSSnapshotStore) Save(ctx context.Context, b *board.Board) error {
	payload, err := Encode(b, s.now())
	if err != nil {
		return err
	}
	return s.files.WriteFile(ctx, s.path, payload)
}

func (s *FSSnapshotStore) Load(ctx context.Context) (*board.Board, error) {
	ok, err := s.files.Exists(ctx, s.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	data, err := s.files.ReadFile(ctx, s.path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// ============================================================================
// No-op
// ============================================================================

// NoopSnapshotStore keeps nothing; the board lives only in memory.
type NoopSnapshotStore struct{}

var _ board.SnapshotStore = NoopSnapshotStore{}

func (NoopSnapshotStore) Save(context.Context, *board.Board) error { return nil }

func (NoopSnapshotStore) Load(context.Context) (*board.Board, error) { return nil, nil }
