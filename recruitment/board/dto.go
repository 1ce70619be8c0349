package board

import (
	"io"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/Abraxas-365/hireflow/recruitment/document"
)

// TickReport summarizes one pass of the daily housekeeping.
type TickReport struct {
	Now              string             `json:"now"`
	ClosedPostings   []kernel.PostingID `json:"closed_postings"`
	EvictedDocuments int                `json:"evicted_documents"`
}

type ClockResponse struct {
	Now       string `json:"now"`
	Simulated bool   `json:"simulated"`
}

type AdvanceClockRequest struct {
	Days int `json:"days" validate:"required,gt=0"`
}

// UploadDocumentRequest carries an uploaded file into a document store.
type UploadDocumentRequest struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

type DocumentsResponse struct {
	Editable  bool                 `json:"editable"`
	Documents []*document.Document `json:"documents"`
}

type MessagesResponse struct {
	Messages []string `json:"messages"`
}
