package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cvscore-backend/internal/shared/storage/object"
	"cvscore-backend/internal/shared/storage/object/local"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:p><w:r><w:t>- Managed a team</w:t><w:tab/><w:t>2019 - 2021</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractTextFromBytes_ZipDocxNormalizes(t *testing.T) {
	data := buildZip(t, map[string]string{"word/document.xml": documentXML})

	text, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "cv.bin")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	want := "Experience\n- Managed a team\t2019 - 2021"
	if text != want {
		t.Fatalf("unexpected text:\n%q\nwant\n%q", text, want)
	}
}

func TestExtractTextFromBytes_RealZipRejected(t *testing.T) {
	data := buildZip(t, map[string]string{"notes.txt": "hello"})

	_, err := ExtractTextFromBytes(context.Background(), data, "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtractTextFromBytes_PlainText(t *testing.T) {
	text, err := ExtractTextFromBytes(context.Background(), []byte("\ufeffSkills: SQL"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("plain text: %v", err)
	}
	if text != "Skills: SQL" {
		t.Fatalf("unexpected text: %q", text)
	}

	if _, err := ExtractTextFromBytes(context.Background(), []byte("  \n "), "text/plain", "cv.txt"); !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
	if _, err := ExtractTextFromBytes(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain", "cv.txt"); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected invalid utf-8 to be unsupported, got %v", err)
	}
}

func TestNormalizeMimeType(t *testing.T) {
	cases := []struct {
		mime, name, want string
	}{
		{"application/pdf", "cv.pdf", MimePDF},
		{"application/octet-stream", "CV.PDF", MimePDF},
		{"", "cv.txt", MimeText},
		{"application/zip", "cv.docx", MimeDOCX},
		{"image/png", "cv.png", "image/png"},
	}
	for _, tc := range cases {
		if got := NormalizeMimeType(tc.mime, tc.name, nil); got != tc.want {
			t.Fatalf("NormalizeMimeType(%q, %q) = %q, want %q", tc.mime, tc.name, got, tc.want)
		}
	}
	if Supported("image/png", "cv.png", nil) {
		t.Fatalf("png should not be supported")
	}
}

func TestExtractTextPersistsCopy(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())
	stored, err := store.Save(ctx, "guest:1", "cv.txt", strings.NewReader("Education\nBSc 2018"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	text, err := ExtractText(ctx, store, stored.Key, stored.MimeType, "cv.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Education\nBSc 2018" {
		t.Fatalf("unexpected text: %q", text)
	}

	rc, err := store.Open(ctx, object.ExtractedKey(stored.Key))
	if err != nil {
		t.Fatalf("open extracted copy: %v", err)
	}
	defer rc.Close()
	copied, _ := io.ReadAll(rc)
	if string(copied) != text {
		t.Fatalf("extracted copy mismatch: %q", copied)
	}
}
