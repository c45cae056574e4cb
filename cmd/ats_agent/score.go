package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/pipeline"
	"github.com/jonathan/campus-ats/internal/schemas"
	"github.com/jonathan/campus-ats/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against a job requirement",
	Long: `Score a resume against a job requirement and print the evaluation.

The resume is either a document (--resume) or a ResumeRecord JSON produced by
parse-resume (--resume-json). The job comes from the catalog (--job), a
JobRequirement JSON file (--job-file) or a plain-text description (--jd-file).
Feedback is included only when the resume does not pass.`,
	RunE: runScore,
}

var (
	scoreResume     string
	scoreResumeJSON string
	scoreFormat     string
	scoreOutput     string
	scoreJob        jobFlags
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume document (pdf, docx, txt)")
	scoreCmd.Flags().StringVar(&scoreResumeJSON, "resume-json", "", "Path to a ResumeRecord JSON file")
	scoreCmd.Flags().StringVar(&scoreFormat, "format", "", "Resume document format; detected when omitted")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output JSON file (stdout when omitted)")
	scoreJob.register(scoreCmd)

	scoreCmd.MarkFlagsMutuallyExclusive("resume", "resume-json")
	scoreCmd.MarkFlagsOneRequired("resume", "resume-json")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	job, err := scoreJob.resolve(sess)
	if err != nil {
		return err
	}

	svc, err := pipeline.NewService(sess.vocab, sess.cfg)
	if err != nil {
		return err
	}
	if sess.verbose {
		svc.OnProgress = func(event pipeline.ProgressEvent) {
			log.Printf("[%s] %s", event.Step, event.Message)
		}
	}

	req, err := scoreRequest(job)
	if err != nil {
		return err
	}
	if req.ResumeID != "" {
		record, err := loadResumeJSON(scoreResumeJSON)
		if err != nil {
			return err
		}
		svc.Resumes = pipeline.NewMemorySource(map[string]*types.ResumeRecord{req.ResumeID: record})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outcome, err := svc.Evaluate(ctx, req)
	if err != nil {
		return err
	}

	if sess.verbose {
		sess.printer.PrintJobRequirement(&job)
		sess.printer.PrintResume(outcome.Resume)
		sess.printer.PrintEvaluation(outcome.Evaluation)
		if outcome.Feedback != nil {
			sess.printer.PrintFeedback(outcome.Feedback)
		}
	}

	checkEvaluationSchema(cmd, outcome.Evaluation)

	if err := writeJSON(cmd.OutOrStdout(), scoreOutput, outcome); err != nil {
		return err
	}
	if scoreOutput != "" {
		status := "passed"
		if !outcome.Evaluation.Passed {
			status = "did not pass"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ATS score %.2f (%s, threshold %.2f) written to %s\n",
			outcome.Evaluation.ATSScore, status, outcome.Evaluation.MinimumATSScore, scoreOutput)
	}
	return nil
}

func scoreRequest(job types.JobRequirement) (pipeline.Request, error) {
	if scoreResumeJSON != "" {
		return pipeline.Request{ResumeID: filepath.Base(scoreResumeJSON), Job: job}, nil
	}

	data, err := os.ReadFile(scoreResume)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("failed to read resume %s: %w", scoreResume, err)
	}
	req := pipeline.Request{
		Document: data,
		Filename: filepath.Base(scoreResume),
		Job:      job,
	}
	if scoreFormat != "" {
		format, err := ingestion.ParseFormat(scoreFormat)
		if err != nil {
			return pipeline.Request{}, err
		}
		req.Format = format
	}
	return req, nil
}

func loadResumeJSON(path string) (*types.ResumeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume JSON %s: %w", path, err)
	}
	var record types.ResumeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return &record, nil
}

// checkEvaluationSchema validates the result against the evaluation schema.
// A mismatch is reported as a warning and never fails the command.
func checkEvaluationSchema(cmd *cobra.Command, result *types.EvaluationResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := schemas.Validate(schemas.EvaluationResult, data); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
	}
}
