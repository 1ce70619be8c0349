package boardsrv

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/hireflow/internal/pdf"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/pkg/logx"
	"github.com/Abraxas-365/hireflow/recruitment/board"
	"github.com/Abraxas-365/hireflow/recruitment/document"
	"github.com/Abraxas-365/hireflow/recruitment/inbox"
	"github.com/google/uuid"
)

// PreviewLength caps the text kept from an uploaded PDF.
const PreviewLength = 280

// storeOf returns the applicant's own store when postingID is empty, and the
// application's store otherwise.
func (s *Service) storeOf(actor kernel.UserID, postingID kernel.PostingID) (*document.Store, error) {
	if postingID.IsEmpty() {
		u, err := s.applicant(actor)
		if err != nil {
			return nil, err
		}
		return u.DocumentStore()
	}
	app, err := s.applicationOf(postingID, actor)
	if err != nil {
		return nil, err
	}
	return app.Documents, nil
}

func (s *Service) ListDocuments(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID) (*board.DocumentsResponse, error) {
	var resp board.DocumentsResponse
	err := s.read(func() error {
		store, err := s.storeOf(actor, postingID)
		if err != nil {
			return err
		}
		resp = board.DocumentsResponse{Editable: store.IsEditable(), Documents: store.Copies()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadDocument stores the blob and adds the document. The store is checked
// before anything is written. The returned document is a copy.
func (s *Service) UploadDocument(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, req board.UploadDocumentRequest) (*document.Document, error) {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return nil, internal(err, "failed to read upload")
	}

	var uploaded *document.Document
	err = s.mutate(ctx, func(*inbox.Outbox) error {
		store, err := s.storeOf(actor, postingID)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(req.Name)
		switch {
		case !store.IsEditable():
			return document.ErrNotEditable()
		case name == "":
			return document.ErrEmptyName()
		case store.Contains(name):
			return document.ErrAlreadyExists().WithDetail("name", name)
		}

		key := s.files.Join("documents", actor.String(), uuid.NewString()+path.Ext(name))
		if err := s.files.WriteFileStream(ctx, key, bytes.NewReader(data)); err != nil {
			return err
		}

		doc := document.NewDocument(name, key, req.ContentType, int64(len(data)), s.clock.Now())
		if pdf.IsPDF(data) {
			preview, err := pdf.ExtractText(data, PreviewLength)
			if err != nil {
				logx.Warnf("Failed to extract preview of %s: %v", key, err)
			}
			doc.Preview = preview
		}

		if err := store.Add(doc); err != nil {
			_ = s.files.DeleteFile(ctx, key)
			return err
		}
		uploaded = doc.Copy()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uploaded, nil
}

// CopyDocument copies a document from the applicant's own store into an
// application, marking the original as used.
func (s *Service) CopyDocument(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, name string) (*document.Document, error) {
	var copied *document.Document
	err := s.mutate(ctx, func(*inbox.Outbox) error {
		own, err := s.storeOf(actor, "")
		if err != nil {
			return err
		}
		dst, err := s.storeOf(actor, postingID)
		if err != nil {
			return err
		}
		src, ok := own.Get(name)
		if !ok {
			return document.ErrNotFound().WithDetail("name", name)
		}

		c := src.Copy()
		c.MarkUsed()
		c.Update(s.clock.Now())
		if err := dst.Add(c); err != nil {
			return err
		}
		src.MarkUsed()
		copied = c.Copy()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// RemoveDocument deletes a document. Application stores must be editable.
func (s *Service) RemoveDocument(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, name string) error {
	return s.mutate(ctx, func(*inbox.Outbox) error {
		store, err := s.storeOf(actor, postingID)
		if err != nil {
			return err
		}
		if !store.IsEditable() {
			return document.ErrNotEditable()
		}
		removed := store.Remove(name)
		if removed == nil {
			return document.ErrNotFound().WithDetail("name", name)
		}
		s.releaseBlobs(ctx, []*document.Document{removed})
		return nil
	})
}

// ReadDocument returns a document's metadata and bytes.
func (s *Service) ReadDocument(ctx context.Context, actor kernel.UserID, postingID kernel.PostingID, name string) (*document.Document, []byte, error) {
	var doc *document.Document
	err := s.read(func() error {
		store, err := s.storeOf(actor, postingID)
		if err != nil {
			return err
		}
		d, ok := store.Get(name)
		if !ok {
			return document.ErrNotFound().WithDetail("name", name)
		}
		doc = d.Copy()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	data, err := s.files.ReadFile(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}
