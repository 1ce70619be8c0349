package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationIDParts(t *testing.T) {
	id := NewApplicationID("p-1", "alice")
	posting, applicant, ok := id.Parts()
	require.True(t, ok)
	assert.Equal(t, PostingID("p-1"), posting)
	assert.Equal(t, UserID("alice"), applicant)

	_, _, ok = ApplicationID("garbage").Parts()
	assert.False(t, ok)
}

func TestEmailIsValid(t *testing.T) {
	tests := []struct {
		email Email
		want  bool
	}{
		{"alice@example.com", true},
		{"bob@mail.co.uk", true},
		{"no-at-sign", false},
		{"alice@localhost", false},
		{"Alice <alice@example.com>", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.email), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.email.IsValid())
		})
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), DateOf(in))

	d, err := ParseDate("2024-03-09")
	require.NoError(t, err)
	assert.Equal(t, DateOf(in), d)
	assert.Equal(t, "2024-03-09", FormatDate(in))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, PaginationOptions{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, p.Items)
	assert.Equal(t, Page{Number: 2, Size: 2, Total: 5, Pages: 3}, p.Page)
	assert.False(t, p.Empty)

	p = Paginate(items, PaginationOptions{Page: 9, PageSize: 2})
	assert.Empty(t, p.Items)
	assert.True(t, p.Empty)

	p = Paginate(items, PaginationOptions{})
	assert.Equal(t, DefaultPageSize, p.Page.Size)
	assert.Len(t, p.Items, 5)
}
