package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/catalog"
	"github.com/jonathan/campus-ats/internal/config"
	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/observability"
	"github.com/jonathan/campus-ats/internal/parsing"
	"github.com/jonathan/campus-ats/internal/schemas"
	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
)

// session bundles what every subcommand needs after flag parsing.
type session struct {
	cfg     config.Config
	vocab   *vocabulary.Vocabulary
	printer *observability.Printer
	verbose bool
}

func loadSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, err
	}

	vocab := vocabulary.Default()
	if cfg.VocabularyPath != "" {
		vocab, err = vocabulary.Load(cfg.VocabularyPath)
		if err != nil {
			return nil, err
		}
	}

	return &session{
		cfg:     cfg,
		vocab:   vocab,
		printer: observability.NewPrinter(cmd.ErrOrStderr()),
		verbose: verbose || cfg.Verbose,
	}, nil
}

// jobFlags selects a job requirement from the catalog, a JSON file or JD text.
type jobFlags struct {
	name      string
	file      string
	jdFile    string
	threshold float64
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "job", "j", "", "Name of a predefined job in the catalog")
	cmd.Flags().StringVar(&f.file, "job-file", "", "Path to a JobRequirement JSON file")
	cmd.Flags().StringVar(&f.jdFile, "jd-file", "", "Path to a plain-text job description")
	cmd.Flags().Float64Var(&f.threshold, "threshold", -1, "Override the job's minimum ATS score (0-100)")
}

func (f *jobFlags) resolve(sess *session) (types.JobRequirement, error) {
	set := 0
	for _, v := range []string{f.name, f.file, f.jdFile} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return types.JobRequirement{}, fmt.Errorf("exactly one of --job, --job-file or --jd-file must be provided")
	}

	var job types.JobRequirement
	switch {
	case f.name != "":
		j, ok := catalog.Default().Get(f.name)
		if !ok {
			return types.JobRequirement{}, fmt.Errorf("unknown job %q (available: %v)", f.name, catalog.Default().Names())
		}
		job = j
	case f.file != "":
		j, err := loadJobFile(f.file)
		if err != nil {
			return types.JobRequirement{}, err
		}
		job = parsing.NormalizeJobRequirement(sess.vocab, j)
	default:
		text, err := os.ReadFile(f.jdFile)
		if err != nil {
			return types.JobRequirement{}, fmt.Errorf("failed to read job description %s: %w", f.jdFile, err)
		}
		j, err := parsing.ParseJobDescription(string(text), sess.vocab)
		if err != nil {
			return types.JobRequirement{}, fmt.Errorf("failed to parse job description: %w", err)
		}
		job = *j
	}

	if f.threshold >= 0 {
		job = job.WithThreshold(f.threshold)
	}
	return job, nil
}

// loadJobFile reads a JobRequirement JSON file after checking it against the schema.
func loadJobFile(path string) (types.JobRequirement, error) {
	var job types.JobRequirement
	if err := schemas.ValidateFile(schemas.JobRequirement, path); err != nil {
		return job, fmt.Errorf("invalid job requirement %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("failed to read job requirement %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &job); err != nil {
		return job, fmt.Errorf("failed to unmarshal job requirement JSON: %w", err)
	}
	return job, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := w.Write(data)
		return err
	}

	// Ensure output directory exists
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// errorHint suggests a next step for errors a user can act on.
func errorHint(err error) string {
	var extractErr *ingestion.ExtractionError
	if errors.As(err, &extractErr) {
		return extractErr.Hint()
	}
	var formatErr *ingestion.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		return "supported resume formats are pdf, docx and txt"
	}
	return ""
}
