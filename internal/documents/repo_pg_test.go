package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := Document{
		ID:         "doc-1",
		UserID:     "user-1",
		FileName:   "cv.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  1024,
		StorageKey: "abc/cv.pdf",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes, doc.StorageKey, doc.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullableExtraction(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_key", "extracted_at", "created_at"}).
		AddRow("doc-1", "user-1", "cv.txt", "text/plain", int64(10), "abc/cv.txt", nil, nil, created)
	mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("doc-1", "user-1").
		WillReturnRows(rows)

	doc, err := repo.GetByID(context.Background(), "user-1", "doc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.Extracted() || doc.ExtractedAt != nil {
		t.Fatalf("expected no extraction, got %+v", doc)
	}
	if !doc.CreatedAt.Equal(created) {
		t.Fatalf("unexpected created_at %v", doc.CreatedAt)
	}
}

func TestPGRepoGetCurrentNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetCurrentByUser(context.Background(), "user-1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_key", "extracted_at", "created_at"}).
		AddRow("doc-2", "user-1", "b.pdf", "application/pdf", int64(2), "k2", "k2.extracted.txt", now, now).
		AddRow("doc-1", "user-1", "a.pdf", "application/pdf", int64(1), "k1", nil, nil, now.Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	docs, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || !docs[0].Extracted() || docs[1].Extracted() {
		t.Fatalf("unexpected docs %+v", docs)
	}
}

func TestPGRepoMarkExtractedMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now().UTC()
	mock.ExpectExec("UPDATE documents").
		WithArgs("k.extracted.txt", at, "doc-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkExtracted(context.Background(), "user-1", "doc-1", "k.extracted.txt", at)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
