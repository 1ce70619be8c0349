package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

var magic = []byte("%PDF-")

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// ExtractText returns the text of the first pages of a PDF, collapsed to
// single spaces and cut at maxRunes. maxRunes <= 0 means no limit.
func ExtractText(pdfData []byte, maxRunes int) (string, error) {
	if !IsPDF(pdfData) {
		return "", fmt.Errorf("not a PDF document")
	}

	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteByte(' ')

		if maxRunes > 0 && utf8.RuneCountInString(sb.String()) >= maxRunes*2 {
			break
		}
	}

	return Truncate(strings.Join(strings.Fields(sb.String()), " "), maxRunes), nil
}

// Truncate cuts s to at most n runes, adding an ellipsis when it does.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
