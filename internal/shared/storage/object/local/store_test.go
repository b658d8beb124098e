package local

import (
	"context"
	"io"
	"strings"
	"testing"

	"cvscore-backend/internal/shared/storage/object"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	stored, err := store.Save(ctx, "guest:abc", "my cv.txt", strings.NewReader("Experience\n- Managed a team"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(stored.Key, "_my cv.txt") {
		t.Fatalf("unexpected key: %s", stored.Key)
	}
	if stored.Size != int64(len("Experience\n- Managed a team")) {
		t.Fatalf("unexpected size: %d", stored.Size)
	}
	if !strings.HasPrefix(stored.MimeType, "text/plain") {
		t.Fatalf("unexpected mime: %s", stored.MimeType)
	}

	rc, err := store.Open(ctx, stored.Key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "Experience\n- Managed a team" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestSaveWithKeyExtractedCopy(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	key := object.ExtractedKey("owner/doc.pdf")
	if _, err := store.SaveWithKey(ctx, key, "text/plain", strings.NewReader("hello")); err != nil {
		t.Fatalf("save with key: %v", err)
	}
	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rc.Close()
}

func TestRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Open(ctx, "../secret"); err == nil {
		t.Fatalf("expected traversal error")
	}
	if _, err := store.SaveWithKey(ctx, "/abs/path", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected absolute key error")
	}
	if _, err := store.Save(ctx, "u", "../cv.pdf", strings.NewReader("x")); err == nil {
		t.Fatalf("expected bad file name error")
	}
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, "u", "cv.txt", strings.NewReader("x")); err == nil {
		t.Fatalf("expected context error")
	}
}
