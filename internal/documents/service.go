package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"cvscore-backend/internal/extract"
	"cvscore-backend/internal/shared/storage/object"
	"cvscore-backend/internal/shared/telemetry"
	"cvscore-backend/internal/shared/util"
)

const sniffLen = 512

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload checks the file type, saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredMime string, r io.Reader) (Document, error) {
	if strings.TrimSpace(userID) == "" || r == nil {
		return Document{}, ErrInvalidInput
	}
	fileName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Document{}, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return Document{}, ErrInvalidInput
	}
	if !extract.Supported(declaredMime, fileName, head) && !extract.Supported(sniffed(head), fileName, head) {
		return Document{}, ErrUnsupportedType
	}

	stored, err := s.Store.Save(ctx, userID, fileName, io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return Document{}, err
	}

	mimeType := extract.NormalizeMimeType(stored.MimeType, fileName, head)
	if !extract.Supported(mimeType, fileName, head) {
		mimeType = extract.NormalizeMimeType(declaredMime, fileName, head)
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  stored.Size,
		StorageKey: stored.Key,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"mime_type":   doc.MimeType,
		"size_bytes":  doc.SizeBytes,
	})
	return doc, nil
}

// Current returns the most recent document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns one of the user's documents.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	if _, err := uuid.Parse(documentID); err != nil {
		return Document{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns a page of the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Text returns the plain text of a document, reusing a stored extraction when present.
func (s *Service) Text(ctx context.Context, userID, documentID string) (Document, string, error) {
	doc, err := s.Get(ctx, userID, documentID)
	if err != nil {
		return Document{}, "", err
	}

	if doc.Extracted() {
		if text, err := s.readExtracted(ctx, doc.ExtractedKey); err == nil {
			return doc, text, nil
		}
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return Document{}, "", err
	}

	at := s.now()
	key := object.ExtractedKey(doc.StorageKey)
	if err := s.Repo.MarkExtracted(ctx, userID, doc.ID, key, at); err != nil {
		telemetry.Error("document.mark_extracted_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err,
		})
	} else {
		doc.ExtractedKey = key
		doc.ExtractedAt = &at
	}
	return doc, text, nil
}

func (s *Service) readExtracted(ctx context.Context, key string) (string, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func sniffed(head []byte) string {
	mime, _, err := object.Sniff(bytes.NewReader(head))
	if err != nil {
		return ""
	}
	return mime
}
