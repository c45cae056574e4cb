package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/catalog"
	"github.com/jonathan/campus-ats/internal/parsing"
	"github.com/jonathan/campus-ats/internal/pipeline"
	"github.com/jonathan/campus-ats/internal/schemas"
	"github.com/jonathan/campus-ats/internal/types"
)

var batchScoreCmd = &cobra.Command{
	Use:   "batch-score",
	Short: "Score many resumes from a manifest",
	Long: `Score every entry of a batch manifest. Each entry names a resume by path,
inline text or resume id (a ResumeRecord JSON under --resumes), and a job by
catalog name or inline job requirement. Relative paths resolve against the
manifest's directory. A failing entry is reported in place and does not stop
the batch.`,
	RunE: runBatchScore,
}

var (
	batchManifest    string
	batchResumesDir  string
	batchConcurrency int
	batchOutput      string
)

func init() {
	batchScoreCmd.Flags().StringVarP(&batchManifest, "manifest", "m", "", "Path to batch manifest JSON (required)")
	batchScoreCmd.Flags().StringVar(&batchResumesDir, "resumes", "", "Directory of ResumeRecord JSON files for resume_id entries")
	batchScoreCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Entries evaluated at once (defaults to config batch_concurrency)")
	batchScoreCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to output JSON file (stdout when omitted)")

	if err := batchScoreCmd.MarkFlagRequired("manifest"); err != nil {
		panic(fmt.Sprintf("failed to mark manifest flag as required: %v", err))
	}

	rootCmd.AddCommand(batchScoreCmd)
}

type manifestEntry struct {
	ResumeID       string                `json:"resume_id,omitempty"`
	ResumePath     string                `json:"resume_path,omitempty"`
	ResumeText     string                `json:"resume_text,omitempty"`
	Job            string                `json:"job,omitempty"`
	JobRequirement *types.JobRequirement `json:"job_requirement,omitempty"`
}

type batchManifestFile struct {
	Entries []manifestEntry `json:"entries"`
}

type batchSummary struct {
	Total     int `json:"total"`
	Passed    int `json:"passed"`
	NotPassed int `json:"not_passed"`
	Errors    int `json:"errors"`
}

type batchReport struct {
	Summary batchSummary         `json:"summary"`
	Results []pipeline.BatchItem `json:"results"`
}

func runBatchScore(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	manifest, err := loadManifest(batchManifest)
	if err != nil {
		return err
	}

	svc, err := pipeline.NewService(sess.vocab, sess.cfg)
	if err != nil {
		return err
	}
	if batchResumesDir != "" {
		svc.Resumes = pipeline.DirSource{Dir: batchResumesDir}
	}

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = sess.cfg.BatchConcurrency
	}

	// Entries that cannot even be turned into a request fail in place; the
	// rest go through the pipeline and are merged back by position.
	baseDir := filepath.Dir(batchManifest)
	items := make([]pipeline.BatchItem, len(manifest.Entries))
	var reqs []pipeline.Request
	var positions []int
	for i, entry := range manifest.Entries {
		req, err := entry.request(sess, baseDir)
		if err != nil {
			items[i] = pipeline.BatchItem{Index: i, ResumeID: entry.label(), Err: err, Error: err.Error()}
			continue
		}
		reqs = append(reqs, req)
		positions = append(positions, i)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	for j, item := range svc.EvaluateBatch(ctx, reqs, concurrency) {
		item.Index = positions[j]
		items[positions[j]] = item
	}

	report := batchReport{Results: items, Summary: batchSummary{Total: len(items)}}
	var errs []string
	for _, item := range items {
		switch {
		case item.Err != nil:
			report.Summary.Errors++
			errs = append(errs, fmt.Sprintf("#%d %s: %s", item.Index, item.ResumeID, item.Error))
		case item.Outcome.Evaluation.Passed:
			report.Summary.Passed++
		default:
			report.Summary.NotPassed++
		}
	}

	if sess.verbose {
		sess.printer.PrintBatchSummary(report.Summary.Total, report.Summary.Passed, report.Summary.NotPassed, errs)
	}

	if err := writeJSON(cmd.OutOrStdout(), batchOutput, report); err != nil {
		return err
	}
	if batchOutput != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scored %d entries (%d passed, %d not passed, %d errors) to %s\n",
			report.Summary.Total, report.Summary.Passed, report.Summary.NotPassed, report.Summary.Errors, batchOutput)
	}
	return nil
}

func loadManifest(path string) (*batchManifestFile, error) {
	if err := schemas.ValidateFile(schemas.BatchManifest, path); err != nil {
		return nil, fmt.Errorf("invalid batch manifest %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch manifest %s: %w", path, err)
	}
	var manifest batchManifestFile
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch manifest: %w", err)
	}
	return &manifest, nil
}

func (e manifestEntry) label() string {
	switch {
	case e.ResumeID != "":
		return e.ResumeID
	case e.ResumePath != "":
		return filepath.Base(e.ResumePath)
	}
	return ""
}

func (e manifestEntry) request(sess *session, baseDir string) (pipeline.Request, error) {
	job, err := e.job(sess)
	if err != nil {
		return pipeline.Request{}, err
	}

	req := pipeline.Request{ResumeID: e.ResumeID, ResumeText: e.ResumeText, Job: job}
	if e.ResumePath != "" {
		path := e.ResumePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return pipeline.Request{}, fmt.Errorf("failed to read resume %s: %w", path, err)
		}
		req.Document = data
		req.Filename = filepath.Base(path)
	}
	return req, nil
}

func (e manifestEntry) job(sess *session) (types.JobRequirement, error) {
	switch {
	case e.Job != "" && e.JobRequirement != nil:
		return types.JobRequirement{}, fmt.Errorf("entry sets both job and job_requirement")
	case e.Job != "":
		job, ok := catalog.Default().Get(e.Job)
		if !ok {
			return types.JobRequirement{}, fmt.Errorf("unknown job %q", e.Job)
		}
		return job, nil
	case e.JobRequirement != nil:
		return parsing.NormalizeJobRequirement(sess.vocab, *e.JobRequirement), nil
	}
	return types.JobRequirement{}, fmt.Errorf("entry sets neither job nor job_requirement")
}
