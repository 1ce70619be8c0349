package document

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// RetentionDays is how long an unused document survives a sweep.
const RetentionDays = 30

// Document is an uploaded artifact. The bytes live in blob storage under
// StorageKey; the store only tracks metadata.
type Document struct {
	Name        string    `json:"name"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Preview     string    `json:"preview,omitempty"`
	Used        bool      `json:"used"`
	LastUsedAt  time.Time `json:"last_used_at"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewDocument creates a document that counts as used on the day it was
// uploaded.
func NewDocument(name, storageKey, contentType string, size int64, now time.Time) *Document {
	d := &Document{
		Name:        strings.TrimSpace(name),
		StorageKey:  storageKey,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  now,
		Used:        true,
	}
	d.Update(now)
	return d
}

// MarkUsed flags the document so the next sweep refreshes its last-used date.
func (d *Document) MarkUsed() {
	d.Used = true
}

// Update consumes the used flag, moving LastUsedAt to now if it was set.
func (d *Document) Update(now time.Time) {
	if d.Used {
		d.Used = false
		d.LastUsedAt = kernel.DateOf(now)
	}
}

// Expired reports whether the last use is more than RetentionDays before now.
func (d *Document) Expired(now time.Time) bool {
	deadline := kernel.DateOf(d.LastUsedAt).AddDate(0, 0, RetentionDays)
	return deadline.Before(kernel.DateOf(now))
}

// Copy returns a detached copy sharing the same blob.
func (d *Document) Copy() *Document {
	c := *d
	return &c
}
