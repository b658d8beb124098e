package analyses

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"cvscore-backend/internal/ats"
	"cvscore-backend/internal/documents"
	"cvscore-backend/internal/shared/storage/object/local"
)

const sampleCV = "John Smith\nSkills: Python, SQL\nExperience: Developer at X 2019-2021\n- Managed a team of 5\n- Increased revenue by 20%"

func identityShuffle(n int) int { return n - 1 }

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := local.New(t.TempDir())
	return &Service{
		Repo:           NewMemoryRepo(),
		Docs:           &documents.Service{Store: store, Repo: documents.NewMemoryRepo()},
		Profiles:       ats.DefaultProfiles(),
		DefaultProfile: ats.ProfileStandard,
		Limits:         Limits{MaxTextBytes: 4096, FeedbackLimit: 3, SkillsLimit: 10},
		Shuffler:       identityShuffle,
	}
}

func TestAnalyzeTextPersistsResult(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.AnalyzeText(ctx, AnalyzeTextInput{UserID: "guest:1", Text: sampleCV})
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if a.OverallScore != 46 || a.Rating != string(ats.RatingNeedsImprovement) {
		t.Fatalf("unexpected score %d / %s", a.OverallScore, a.Rating)
	}
	if a.Source != SourceText || a.Profile != ats.ProfileStandard {
		t.Fatalf("unexpected source/profile %q %q", a.Source, a.Profile)
	}
	if len(a.Result.Strengths) > 3 || len(a.Result.Improvements) > 3 {
		t.Fatalf("feedback not truncated: %+v", a.Result)
	}

	stored, err := svc.Get(ctx, "guest:1", a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Result.OverallScore != 46 {
		t.Fatalf("stored result mismatch: %+v", stored.Result)
	}
	if _, err := svc.Get(ctx, "guest:2", a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other owner, got %v", err)
	}
	if _, err := svc.Get(ctx, "guest:1", "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestAnalyzeTextValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   AnalyzeTextInput
		want error
	}{
		{"blank text", AnalyzeTextInput{UserID: "u", Text: "  \n"}, ErrInvalidInput},
		{"no user", AnalyzeTextInput{Text: sampleCV}, ErrInvalidInput},
		{"too large", AnalyzeTextInput{UserID: "u", Text: strings.Repeat("a", 4097)}, ErrTextTooLarge},
		{"unknown profile", AnalyzeTextInput{UserID: "u", Text: sampleCV, Profile: "gold"}, ErrUnknownProfile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AnalyzeText(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAnalyzeTextProfileAndJobDescription(t *testing.T) {
	svc := newTestService(t)
	a, err := svc.AnalyzeText(context.Background(), AnalyzeTextInput{
		UserID:         "u",
		Text:           sampleCV,
		Profile:        "RECORD",
		JobDescription: "<ul><li>Python</li><li>Kubernetes</li></ul>",
	})
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if a.Profile != ats.ProfileRecord || a.OverallScore != 54 {
		t.Fatalf("unexpected profile/score %q %d", a.Profile, a.OverallScore)
	}
	if a.JobDescription != "Python\nKubernetes" {
		t.Fatalf("job description not cleaned: %q", a.JobDescription)
	}
	if a.Result.JobMatch == nil {
		t.Fatalf("expected job match")
	}
}

func TestAnalyzeDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Docs.Upload(ctx, "user-1", "cv.txt", "text/plain", strings.NewReader(sampleCV))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	a, err := svc.AnalyzeDocument(ctx, "user-1", doc.ID, "", "")
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}
	if a.DocumentID != doc.ID || a.Source != SourceDocument || a.OverallScore != 46 {
		t.Fatalf("unexpected analysis %+v", a)
	}

	updated, err := svc.Docs.Get(ctx, "user-1", doc.ID)
	if err != nil {
		t.Fatalf("Get document: %v", err)
	}
	if !updated.Extracted() {
		t.Fatalf("expected document to be marked extracted")
	}

	if _, err := svc.AnalyzeDocument(ctx, "user-2", doc.ID, "", ""); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected documents.ErrNotFound, got %v", err)
	}
}

func TestAnalyzeBatchKeepsOrderAndItemErrors(t *testing.T) {
	svc := newTestService(t)
	items := []BatchItem{
		{Label: "a", Text: sampleCV},
		{Label: "b", Text: " "},
		{Label: "c", Text: "Experience\nManaged the sales team"},
		{Label: "d", Text: strings.Repeat("x", 5000)},
	}

	results, err := svc.AnalyzeBatch(context.Background(), "u", items, "", "")
	if err != nil {
		t.Fatalf("AnalyzeBatch: %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Label != items[i].Label {
			t.Fatalf("result %d out of order: %+v", i, r)
		}
	}
	if results[0].Analysis == nil || results[0].Analysis.OverallScore != 46 {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	if !errors.Is(results[1].Err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank item, got %v", results[1].Err)
	}
	if results[2].Analysis == nil || results[2].Analysis.Source != SourceBatch {
		t.Fatalf("unexpected third result %+v", results[2])
	}
	if !errors.Is(results[3].Err, ErrTextTooLarge) {
		t.Fatalf("expected text too large, got %v", results[3].Err)
	}

	list, err := svc.List(context.Background(), "u", 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 stored analyses, got %d", len(list))
	}
}

func TestAnalyzeBatchLimits(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.AnalyzeBatch(context.Background(), "u", nil, "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
	items := make([]BatchItem, MaxBatchItems+1)
	if _, err := svc.AnalyzeBatch(context.Background(), "u", items, "", ""); !errors.Is(err, ErrBatchTooLarge) {
		t.Fatalf("expected ErrBatchTooLarge, got %v", err)
	}
	if _, err := svc.AnalyzeBatch(context.Background(), "u", items[:1], "", "nope"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

type failingRepo struct{ *MemoryRepo }

func (failingRepo) Create(context.Context, Analysis) error { return errors.New("db down") }

func TestAnalyzeBatchAbortsOnStorageError(t *testing.T) {
	svc := newTestService(t)
	svc.Repo = failingRepo{NewMemoryRepo()}
	_, err := svc.AnalyzeBatch(context.Background(), "u", []BatchItem{{Text: sampleCV}, {Text: sampleCV}}, "", "")
	if err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected storage error, got %v", err)
	}
}

func TestAnalyzeTextConcurrent(t *testing.T) {
	svc := newTestService(t)
	svc.Shuffler = nil

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AnalyzeText(context.Background(), AnalyzeTextInput{UserID: "u", Text: sampleCV}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent analyze: %v", err)
	}
	list, _ := svc.List(context.Background(), "u", 100, 0)
	if len(list) != 16 {
		t.Fatalf("expected 16 analyses, got %d", len(list))
	}
}
