package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"cvscore-backend/internal/ats"
	"cvscore-backend/internal/extract"
	"cvscore-backend/internal/jobdesc"
	"cvscore-backend/internal/shared/config"
)

const (
	formatConsole = "console"
	formatJSON    = "json"
)

type analyzeOptions struct {
	Patterns     []string
	JobFile      string
	Profile      string
	ProfilesFile string
	Format       string
	Limit        int
	SkillsLimit  int
	FailUnder    int
	Workers      int
	MaxTextBytes int
}

// maxFileBytes matches the upload limit of the HTTP API.
const maxFileBytes = 10 << 20

// fileResult is one analyzed file; Error is set instead of Result on failure.
type fileResult struct {
	File   string      `json:"file"`
	Result *ats.Result `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file or glob>...",
		Short: "Score CV files (pdf, docx, txt); patterns support ** globs",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := analyzeOptions{
				Patterns:     args,
				JobFile:      v.GetString("job"),
				Profile:      v.GetString("profile"),
				ProfilesFile: v.GetString("profiles-file"),
				Format:       v.GetString("format"),
				Limit:        v.GetInt("limit"),
				SkillsLimit:  v.GetInt("skills-limit"),
				FailUnder:    v.GetInt("fail-under"),
				Workers:      v.GetInt("workers"),
				MaxTextBytes: v.GetInt("max-text-bytes"),
			}
			return runAnalyze(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.String("job", "", "job description file (plain text or HTML)")
	f.String("profile", ats.ProfileStandard, "scoring profile")
	f.String("format", formatConsole, "output format: console or json")
	f.Int("limit", 3, "maximum feedback items per list (0 keeps all)")
	f.Int("skills-limit", 10, "maximum skills listed (0 keeps all)")
	f.Int("fail-under", 0, "exit non-zero when any overall score is below this value")
	f.Int("workers", runtime.NumCPU(), "files analyzed in parallel")
	f.Int("max-text-bytes", config.DefaultMaxTextBytes, "skip files whose extracted text is larger (0 disables)")
	return cmd
}

func runAnalyze(ctx context.Context, cmd *cobra.Command, opts analyzeOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Format != formatConsole && opts.Format != formatJSON {
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	profiles, err := config.LoadProfiles(opts.ProfilesFile)
	if err != nil {
		return err
	}
	profile, ok := profiles.Get(opts.Profile)
	if !ok {
		return fmt.Errorf("unknown profile %q; known profiles: %s", opts.Profile, strings.Join(profiles.Names(), ", "))
	}

	jd, err := readJobDescription(opts.JobFile)
	if err != nil {
		return err
	}

	files, err := expandPatterns(opts.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match %s", strings.Join(opts.Patterns, " "))
	}

	analyzer := ats.New(ats.WithProfile(profile))
	results := make([]fileResult, len(files))

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = analyzeFile(gctx, analyzer, file, jd, opts)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Format == formatJSON {
		err = writeJSON(out, results)
	} else {
		err = writeConsole(out, results, profile.Name)
	}
	if err != nil {
		return err
	}
	return checkResults(results, opts.FailUnder)
}

func analyzeFile(ctx context.Context, analyzer *ats.Analyzer, file, jd string, opts analyzeOptions) fileResult {
	res := fileResult{File: file}
	info, err := os.Stat(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if info.Size() > maxFileBytes {
		res.Error = fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), maxFileBytes)
		return res
	}
	data, err := os.ReadFile(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	text, err := extract.ExtractTextFromBytes(ctx, data, detectMime(data), filepath.Base(file))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if opts.MaxTextBytes > 0 && len(text) > opts.MaxTextBytes {
		res.Error = fmt.Sprintf("text is %d bytes, limit is %d", len(text), opts.MaxTextBytes)
		return res
	}
	result := analyzer.Analyze(text, jd).Truncate(opts.Limit, opts.SkillsLimit)
	res.Result = &result
	return res
}

func detectMime(data []byte) string {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

func readJobDescription(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return jobdesc.Clean(string(raw))
}

// expandPatterns resolves globs and plain paths into a sorted, de-duplicated file list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			if _, err := os.Stat(pattern); err != nil {
				return nil, fmt.Errorf("stat %s: %w", pattern, err)
			}
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func checkResults(results []fileResult, failUnder int) error {
	failed, below := 0, 0
	for _, r := range results {
		switch {
		case r.Result == nil:
			failed++
		case r.Result.OverallScore < failUnder:
			below++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be analyzed", failed, len(results))
	}
	if below > 0 {
		return fmt.Errorf("%d of %d files scored below %d", below, len(results), failUnder)
	}
	return nil
}
