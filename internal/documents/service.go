package documents

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/andreslomelig/NovaFolio/internal/extract"
	"github.com/andreslomelig/NovaFolio/internal/pages"
	"github.com/andreslomelig/NovaFolio/internal/shared/storage/blob"
	"github.com/andreslomelig/NovaFolio/internal/shared/util"
)

// Service is the ingestion pipeline: it validates, stores, records and
// schedules indexing for uploaded documents.
type Service struct {
	Repo     Repo
	Pages    pages.Repo
	Cases    CaseDirectory
	Blob     *blob.Store
	Queue    IndexScheduler
	TenantID string
}

// Upload runs the pipeline for one file: case lookup and MIME validation
// happen before any byte is written; the blob write precedes the row insert;
// indexing is queued after the row exists and never blocks the caller.
func (s *Service) Upload(ctx context.Context, caseID, fileName, mime string, r io.Reader) (Document, error) {
	if caseID == "" || fileName == "" {
		return Document{}, ErrInvalidInput
	}

	ok, err := s.Cases.Exists(ctx, s.TenantID, caseID)
	if err != nil {
		return Document{}, fmt.Errorf("case lookup: %w", err)
	}
	if !ok {
		return Document{}, ErrCaseNotFound
	}

	if !extract.Supported(mime) {
		return Document{}, ErrUnsupportedMime
	}

	safeName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, ErrInvalidInput
	}

	locator, err := s.Blob.Save(ctx, r, safeName)
	if err != nil {
		return Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:         uuid.NewString(),
		TenantID:   s.TenantID,
		CaseID:     caseID,
		Name:       safeName,
		Mime:       mime,
		StorageURL: locator,
		Version:    1,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		// The written file stays behind as a documented orphan; a record
		// must never reference a file that was not written, not the reverse.
		return Document{}, fmt.Errorf("record upload: %w", err)
	}

	if s.Queue != nil {
		s.Queue.EnqueueIndex(doc.ID)
	}
	return doc, nil
}

// Get returns one document.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.Repo.GetByID(ctx, s.TenantID, id)
}

// List returns the documents of a case, optionally filtered by name.
func (s *Service) List(ctx context.Context, caseID, q string) ([]Document, error) {
	if caseID == "" {
		return nil, ErrInvalidInput
	}
	ok, err := s.Cases.Exists(ctx, s.TenantID, caseID)
	if err != nil {
		return nil, fmt.Errorf("case lookup: %w", err)
	}
	if !ok {
		return nil, ErrCaseNotFound
	}
	return s.Repo.ListByCase(ctx, s.TenantID, caseID, q)
}

// Rename changes only the display name; the stored file and index rows are
// untouched because content did not change.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	if name == "" || len(name) > 255 {
		return ErrInvalidInput
	}
	return s.Repo.Rename(ctx, s.TenantID, id, name)
}

// Delete removes the record synchronously (page rows cascade with it) and
// queues best-effort removal of the physical file.
func (s *Service) Delete(ctx context.Context, id string) error {
	doc, err := s.Repo.Delete(ctx, s.TenantID, id)
	if err != nil {
		return err
	}
	if s.Queue != nil {
		s.Queue.EnqueueRemoveFiles(doc.StorageURL)
	}
	return nil
}

// RequestReindex validates the document and queues an indexing job.
func (s *Service) RequestReindex(ctx context.Context, id string) error {
	if _, err := s.Repo.GetByID(ctx, s.TenantID, id); err != nil {
		return err
	}
	if s.Queue != nil {
		s.Queue.EnqueueIndex(id)
	}
	return nil
}

// Reindex rebuilds the page index for one document: read the stored file,
// extract per-page text, replace the document's page set. Called by the
// indexing workers; an error here leaves the document servable but unindexed.
func (s *Service) Reindex(ctx context.Context, id string) error {
	doc, err := s.Repo.GetByID(ctx, s.TenantID, id)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(s.Blob.PathFromURL(doc.StorageURL))
	if err != nil {
		return fmt.Errorf("read stored file doc=%s: %w", id, err)
	}

	texts, err := extract.Pages(ctx, data, doc.Mime)
	if err != nil {
		return fmt.Errorf("extract doc=%s: %w", id, err)
	}

	if err := s.Pages.ReplaceForDocument(ctx, doc.ID, texts); err != nil {
		return fmt.Errorf("replace pages doc=%s: %w", id, err)
	}
	return nil
}

// HTMLPreview renders the extracted body of a DOCX document as a minimal
// styled HTML page. Only DOCX is supported.
func (s *Service) HTMLPreview(ctx context.Context, id string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, s.TenantID, id)
	if err != nil {
		return "", err
	}
	if doc.Mime != extract.MimeDOCX {
		return "", ErrUnsupportedMime
	}

	data, err := os.ReadFile(s.Blob.PathFromURL(doc.StorageURL))
	if err != nil {
		return "", fmt.Errorf("read stored file doc=%s: %w", id, err)
	}

	texts, err := extract.Pages(ctx, data, doc.Mime)
	if err != nil {
		return "", fmt.Errorf("extract doc=%s: %w", id, err)
	}

	body := ""
	if len(texts) > 0 {
		body = texts[0]
	}
	return renderPreview(doc.Name, body)
}
