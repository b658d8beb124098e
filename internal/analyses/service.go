package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cvscore-backend/internal/ats"
	"cvscore-backend/internal/documents"
	"cvscore-backend/internal/jobdesc"
	"cvscore-backend/internal/shared/metrics"
	"cvscore-backend/internal/shared/telemetry"
)

const (
	// MaxBatchItems bounds a single batch request.
	MaxBatchItems   = 20
	batchWorkers    = 4
	defaultMaxBytes = 256 << 10
)

// Limits trims and bounds analysis input and output. Zero limits keep lists whole.
type Limits struct {
	MaxTextBytes  int
	FeedbackLimit int
	SkillsLimit   int
}

// Service runs the scoring engine and records the outcome.
type Service struct {
	Repo           Repo
	Docs           *documents.Service
	Profiles       *ats.ProfileSet
	DefaultProfile string
	Limits         Limits
	Shuffler       ats.Shuffler
	Now            func() time.Time
}

// AnalyzeTextInput is a single scoring request.
type AnalyzeTextInput struct {
	UserID         string
	Text           string
	JobDescription string
	Profile        string
	Source         string
	DocumentID     string
}

// BatchItem is one CV inside a batch request.
type BatchItem struct {
	Label string
	Text  string
}

// BatchResult pairs a batch item with its analysis or the reason it failed.
type BatchResult struct {
	Index    int
	Label    string
	Analysis *Analysis
	Err      error
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) maxBytes() int {
	if s.Limits.MaxTextBytes > 0 {
		return s.Limits.MaxTextBytes
	}
	return defaultMaxBytes
}

// ResolveProfile returns the named profile, falling back to the service default for blank names.
func (s *Service) ResolveProfile(name string) (ats.Profile, error) {
	profiles := s.Profiles
	if profiles == nil {
		profiles = ats.DefaultProfiles()
	}
	if strings.TrimSpace(name) == "" {
		name = s.DefaultProfile
	}
	p, ok := profiles.Get(name)
	if !ok {
		return ats.Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// ProfileList returns every configured profile ordered by name.
func (s *Service) ProfileList() []ats.Profile {
	if s.Profiles == nil {
		return ats.DefaultProfiles().All()
	}
	return s.Profiles.All()
}

// AnalyzeText validates and scores CV text and persists the result.
func (s *Service) AnalyzeText(ctx context.Context, in AnalyzeTextInput) (Analysis, error) {
	source := in.Source
	if source == "" {
		source = SourceText
	}
	a, err := s.analyze(ctx, in, source)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"source":      source,
			"document_id": in.DocumentID,
			"error":       err,
		})
		return Analysis{}, err
	}
	return a, nil
}

func (s *Service) analyze(ctx context.Context, in AnalyzeTextInput, source string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	if strings.TrimSpace(in.UserID) == "" {
		return Analysis{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Text) == "" {
		return Analysis{}, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(in.Text) > s.maxBytes() || len(in.JobDescription) > s.maxBytes() {
		return Analysis{}, fmt.Errorf("%w: limit is %d bytes", ErrTextTooLarge, s.maxBytes())
	}

	jd, err := jobdesc.Clean(in.JobDescription)
	if err != nil {
		return Analysis{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	profile, err := s.ResolveProfile(in.Profile)
	if err != nil {
		return Analysis{}, err
	}

	started := time.Now()
	analyzer := ats.New(ats.WithProfile(profile), ats.WithShuffler(s.Shuffler))
	result := analyzer.Analyze(in.Text, jd).Truncate(s.Limits.FeedbackLimit, s.Limits.SkillsLimit)
	elapsed := time.Since(started)

	a := Analysis{
		ID:             uuid.NewString(),
		UserID:         in.UserID,
		DocumentID:     in.DocumentID,
		Source:         source,
		Profile:        profile.Name,
		JobDescription: jd,
		OverallScore:   result.OverallScore,
		Rating:         string(result.Rating),
		Result:         result,
		CreatedAt:      s.now(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Analysis{}, fmt.Errorf("store analysis: %w", err)
	}

	durationMs := float64(elapsed.Microseconds()) / 1000
	metrics.IncAnalysisCompleted(a.Rating, a.Profile)
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":   a.ID,
		"document_id":   a.DocumentID,
		"source":        a.Source,
		"profile":       a.Profile,
		"overall_score": a.OverallScore,
		"rating":        a.Rating,
		"job_match":     result.JobMatch != nil,
		"duration_ms":   durationMs,
	})
	return a, nil
}

// AnalyzeDocument scores the text of one of the user's uploaded documents.
func (s *Service) AnalyzeDocument(ctx context.Context, userID, documentID, jobDescription, profile string) (Analysis, error) {
	if s.Docs == nil {
		return Analysis{}, errors.New("documents service not configured")
	}
	doc, text, err := s.Docs.Text(ctx, userID, documentID)
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"source":      SourceDocument,
			"document_id": documentID,
			"error":       err,
		})
		return Analysis{}, err
	}
	return s.AnalyzeText(ctx, AnalyzeTextInput{
		UserID:         userID,
		Text:           text,
		JobDescription: jobDescription,
		Profile:        profile,
		Source:         SourceDocument,
		DocumentID:     doc.ID,
	})
}

// AnalyzeBatch scores up to MaxBatchItems texts concurrently. Results keep input
// order; item-level validation failures are reported per item, while storage or
// context failures abort the batch.
func (s *Service) AnalyzeBatch(ctx context.Context, userID string, items []BatchItem, jobDescription, profile string) ([]BatchResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if len(items) > MaxBatchItems {
		return nil, fmt.Errorf("%w: at most %d items", ErrBatchTooLarge, MaxBatchItems)
	}
	if _, err := s.ResolveProfile(profile); err != nil {
		return nil, err
	}
	metrics.IncBatchRequests()

	results := make([]BatchResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i, item := range items {
		g.Go(func() error {
			a, err := s.AnalyzeText(gctx, AnalyzeTextInput{
				UserID:         userID,
				Text:           item.Text,
				JobDescription: jobDescription,
				Profile:        profile,
				Source:         SourceBatch,
			})
			results[i] = BatchResult{Index: i, Label: item.Label}
			if err != nil {
				if isItemError(err) {
					results[i].Err = err
					return nil
				}
				return err
			}
			results[i].Analysis = &a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func isItemError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrTextTooLarge)
}

// Get returns one of the user's analyses.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if userID == "" {
		return Analysis{}, ErrInvalidInput
	}
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns a page of the user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
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
