package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ATS_PROFILE", "ATS_MAX_TEXT_BYTES", "ATS_FEEDBACK_LIMIT", "ATS_SKILLS_LIMIT", "OBJECT_STORE", "ENV"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.ATS.Profile != "standard" {
		t.Fatalf("profile = %q", cfg.ATS.Profile)
	}
	if cfg.ATS.MaxTextBytes != 262144 || cfg.ATS.FeedbackLimit != 3 || cfg.ATS.SkillsLimit != 10 {
		t.Fatalf("unexpected ats defaults: %+v", cfg.ATS)
	}
	if cfg.ObjectStoreType != "local" || cfg.Env != "dev" {
		t.Fatalf("unexpected defaults: store=%s env=%s", cfg.ObjectStoreType, cfg.Env)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ATS_PROFILE", "Record")
	t.Setenv("ATS_FEEDBACK_LIMIT", "5")
	t.Setenv("ATS_SKILLS_LIMIT", "not-a-number")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://localhost/cv")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()
	if cfg.ATS.Profile != "record" || cfg.ATS.FeedbackLimit != 5 || cfg.ATS.SkillsLimit != 10 {
		t.Fatalf("unexpected ats config: %+v", cfg.ATS)
	}
	if cfg.ObjectStoreType != "s3" || cfg.Env != "production" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEnvFilesKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("CVSCORE_TEST_A=fromfile\nCVSCORE_TEST_B=\"quoted\"\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("CVSCORE_TEST_A", "fromenv")
	t.Setenv("CVSCORE_TEST_B", "")
	os.Unsetenv("CVSCORE_TEST_B")

	loadEnvFiles(filepath.Join(dir, "missing.env"), path)

	if got := os.Getenv("CVSCORE_TEST_A"); got != "fromenv" {
		t.Fatalf("existing var overwritten: %q", got)
	}
	if got := os.Getenv("CVSCORE_TEST_B"); got != "quoted" {
		t.Fatalf("file var not loaded: %q", got)
	}
}

func TestLoadWarnsOnInvalidIntAsJSON(t *testing.T) {
	t.Setenv("ATS_SKILLS_LIMIT", "many")

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	cfg := Load()
	os.Stdout = orig
	_ = w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read output: %v", err)
	}
	if cfg.ATS.SkillsLimit != 10 {
		t.Fatalf("expected default skills limit, got %d", cfg.ATS.SkillsLimit)
	}

	found := false
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("non-json log line %q: %v", line, err)
		}
		if payload["msg"] == "config.invalid_int" && payload["key"] == "ATS_SKILLS_LIMIT" && payload["level"] == "warn" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected config.invalid_int warning, got %q", buf.String())
	}
}
