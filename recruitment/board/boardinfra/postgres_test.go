package boardinfra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresSnapshotStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresSnapshotStore(sqlx.NewDb(db, "postgres"))
	store.now = func() time.Time { return day }
	return store, mock
}

func TestPostgresSnapshotStoreSave(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO board_snapshots").
		WithArgs(SnapshotVersion, sqlmock.AnyArg(), day).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Save(context.Background(), sampleBoard(t)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStoreSaveError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO board_snapshots").
		WillReturnError(errors.New("connection reset"))

	err := store.Save(context.Background(), sampleBoard(t))
	assert.True(t, errx.IsType(err, errx.TypeInternal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSnapshotStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("latest row", func(t *testing.T) {
		store, mock := newMockStore(t)
		payload, err := Encode(sampleBoard(t), day)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "version", "payload", "created_at"}).
			AddRow(7, SnapshotVersion, payload, day)
		mock.ExpectQuery("SELECT (.+) FROM board_snapshots ORDER BY id DESC LIMIT 1").
			WillReturnRows(rows)

		b, err := store.Load(ctx)
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Len(t, b.Postings, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT (.+) FROM board_snapshots").
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "payload", "created_at"}))

		b, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, b)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresSnapshotStorePrune(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM board_snapshots").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := store.Prune(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
