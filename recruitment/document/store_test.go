package document

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newDoc(name string, at time.Time) *Document {
	return NewDocument(name, "blob/"+name, "application/pdf", 10, at)
}

func TestStoreAdd(t *testing.T) {
	t.Run("adds to an editable store", func(t *testing.T) {
		s := NewStore(true)
		require.NoError(t, s.Add(newDoc("cv.pdf", day0)))
		assert.Len(t, s.List(), 1)
	})

	t.Run("locked store wins over every other check", func(t *testing.T) {
		s := NewStore(false)
		err := s.Add(newDoc("", day0))
		assert.True(t, errx.IsCode(err, CodeNotEditable))
	})

	t.Run("blank name", func(t *testing.T) {
		s := NewStore(true)
		err := s.Add(newDoc("   ", day0))
		assert.True(t, errx.IsCode(err, CodeEmptyName))
	})

	t.Run("duplicate name", func(t *testing.T) {
		s := NewStore(true)
		require.NoError(t, s.Add(newDoc("cv.pdf", day0)))
		err := s.Add(newDoc("cv.pdf", day0))
		assert.True(t, errx.IsCode(err, CodeAlreadyExists))
		assert.Len(t, s.List(), 1)
	})
}

func TestStoreRemove(t *testing.T) {
	s := NewStore(true)
	require.NoError(t, s.Add(newDoc("a", day0)))
	require.NoError(t, s.Add(newDoc("b", day0)))

	removed := s.Remove("a")
	require.NotNil(t, removed)
	assert.Equal(t, "a", removed.Name)
	assert.Nil(t, s.Remove("missing"))
	assert.False(t, s.Contains("a"))
	assert.True(t, s.Contains("b"))
}

func TestStoreSweepBoundary(t *testing.T) {
	s := NewStore(true)
	require.NoError(t, s.Add(newDoc("thirty", day0.AddDate(0, 0, -30))))
	require.NoError(t, s.Add(newDoc("thirty-one", day0.AddDate(0, 0, -31))))

	evicted := s.Sweep(day0)

	require.Len(t, evicted, 1)
	assert.Equal(t, "thirty-one", evicted[0].Name)
	assert.True(t, s.Contains("thirty"))
	assert.False(t, s.Contains("thirty-one"))
}

func TestStoreSweepRefreshesUsedDocuments(t *testing.T) {
	s := NewStore(false)
	s.Documents = append(s.Documents, newDoc("cv.pdf", day0))

	doc, _ := s.Get("cv.pdf")
	doc.MarkUsed()

	later := day0.AddDate(0, 0, 40)
	evicted := s.Sweep(later)

	assert.Empty(t, evicted, "a used document is refreshed before the expiry check")
	assert.Equal(t, later, doc.LastUsedAt)
	assert.False(t, doc.Used)

	evicted = s.Sweep(later.AddDate(0, 0, 31))
	assert.Len(t, evicted, 1)
	assert.Empty(t, s.List())
}

func TestNewDocumentIsFreshlyUsed(t *testing.T) {
	now := time.Date(2024, 2, 3, 17, 30, 0, 0, time.UTC)
	d := newDoc("cover.txt", now)
	assert.False(t, d.Used)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), d.LastUsedAt)
	assert.False(t, d.Expired(now.AddDate(0, 0, 30)))
	assert.True(t, d.Expired(now.AddDate(0, 0, 31)))
}
