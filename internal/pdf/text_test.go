package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7\n...")))
	assert.False(t, IsPDF([]byte("hello")))
	assert.False(t, IsPDF(nil))
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	_, err := ExtractText([]byte("plain text"), 100)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello", Truncate("hello", 0))
	assert.Equal(t, "he…", Truncate("hello", 2))
	assert.Equal(t, "ñá…", Truncate("ñáé", 2))
}
