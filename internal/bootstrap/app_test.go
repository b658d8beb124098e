package bootstrap

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"

	"cvscore-backend/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "test",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		JWTSecret:       "secret",
		ATS: config.ATSConfig{
			Profile:       "standard",
			MaxTextBytes:  262144,
			FeedbackLimit: 3,
			SkillsLimit:   10,
		},
	}
}

func TestBuildUploadAnalyzeFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(testConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected memory repos without DATABASE_URL")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("file", "cv.txt")
	_, _ = part.Write([]byte("Thandi Nkosi\nthandi@example.co.za\nExperience\nManaged a team in Sandton 2019 - 2023\nSkills: Python, SQL"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Guest-Id", "flow")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var doc struct {
		DocumentID string `json:"documentId"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &doc)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+doc.DocumentID+"/analyze", bytes.NewBufferString(`{"jobDescription":"Python engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "flow")
	resp = httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("analyze: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var analysis struct {
		Result struct {
			Profile         string   `json:"profile"`
			SAKeywordsFound []string `json:"saKeywordsFound"`
			JobMatch        *struct {
				MatchScore int `json:"matchScore"`
			} `json:"jobMatch"`
		} `json:"result"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &analysis)
	if analysis.Result.Profile != "standard" || analysis.Result.JobMatch == nil {
		t.Fatalf("unexpected analysis %s", resp.Body.String())
	}
}

func TestBuildRejectsUnknownProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.ATS.Profile = "platinum"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for unknown default profile")
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "prod"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in prod")
	}
}

func TestBuildClosesDatabaseWhenStoreFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.ExpectClose()

	orig := openDatabase
	openDatabase = func(context.Context, config.Config) (*sql.DB, error) { return sqlDB, nil }
	defer func() { openDatabase = orig }()

	cfg := testConfig(t)
	cfg.ObjectStoreType = "ftp"
	if _, err := Build(cfg); err == nil {
		t.Fatalf("expected error for unknown object store")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("database was not closed: %v", err)
	}
}
