package document

import (
	"strings"
	"time"
)

// Store is a set of documents keyed by name, owned by an applicant or an
// application. A locked store rejects additions.
type Store struct {
	Documents []*Document `json:"documents"`
	Editable  bool        `json:"editable"`
}

func NewStore(editable bool) *Store {
	return &Store{Documents: []*Document{}, Editable: editable}
}

// Add checks, in order, the lock, the name and uniqueness.
func (s *Store) Add(doc *Document) error {
	if !s.Editable {
		return ErrNotEditable()
	}
	if strings.TrimSpace(doc.Name) == "" {
		return ErrEmptyName()
	}
	if s.Contains(doc.Name) {
		return ErrAlreadyExists().WithDetail("name", doc.Name)
	}
	s.Documents = append(s.Documents, doc)
	return nil
}

// Remove drops the named document and returns it, or nil if absent.
func (s *Store) Remove(name string) *Document {
	for i, d := range s.Documents {
		if d.Name == name {
			s.Documents = append(s.Documents[:i], s.Documents[i+1:]...)
			return d
		}
	}
	return nil
}

func (s *Store) SetEditable(editable bool) {
	s.Editable = editable
}

func (s *Store) IsEditable() bool {
	return s.Editable
}

func (s *Store) Get(name string) (*Document, bool) {
	for _, d := range s.Documents {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

func (s *Store) Contains(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// List returns the documents in upload order.
func (s *Store) List() []*Document {
	out := make([]*Document, len(s.Documents))
	copy(out, s.Documents)
	return out
}

// Copies returns detached copies of the documents in upload order, safe to
// hand out after the owner's lock is released.
func (s *Store) Copies() []*Document {
	out := make([]*Document, len(s.Documents))
	for i, d := range s.Documents {
		out[i] = d.Copy()
	}
	return out
}

// Sweep updates every document and evicts the expired ones, returning them so
// the caller can release their blobs. Eviction ignores the lock.
func (s *Store) Sweep(now time.Time) []*Document {
	var evicted []*Document
	kept := s.Documents[:0]
	for _, d := range s.Documents {
		d.Update(now)
		if d.Expired(now) {
			evicted = append(evicted, d)
			continue
		}
		kept = append(kept, d)
	}
	// clear the tail so evicted pointers are not retained
	for i := len(kept); i < len(s.Documents); i++ {
		s.Documents[i] = nil
	}
	s.Documents = kept
	return evicted
}
