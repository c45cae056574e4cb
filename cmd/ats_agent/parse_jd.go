package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/parsing"
	"github.com/jonathan/campus-ats/internal/schemas"
)

var parseJDCmd = &cobra.Command{
	Use:   "parse-jd",
	Short: "Parse a plain-text job description into JobRequirement JSON",
	Long:  "Build a JobRequirement from custom job description text: title, required and preferred skills, years of experience, minimum education and keywords. Saved HTML pages (.html, .htm) are reduced to their readable text first.",
	RunE:  runParseJD,
}

var (
	parseJDInput     string
	parseJDOutput    string
	parseJDThreshold float64
)

func init() {
	parseJDCmd.Flags().StringVarP(&parseJDInput, "in", "i", "", "Path to job description text or HTML file (required)")
	parseJDCmd.Flags().StringVarP(&parseJDOutput, "out", "o", "", "Path to output JobRequirement JSON file (stdout when omitted)")
	parseJDCmd.Flags().Float64Var(&parseJDThreshold, "threshold", -1, "Minimum ATS score to store with the job (0-100)")

	if err := parseJDCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseJDCmd)
}

func runParseJD(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(parseJDInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	text := string(data)

	switch strings.ToLower(filepath.Ext(parseJDInput)) {
	case ".html", ".htm":
		text, err = ingestion.ExtractHTMLText(text)
		if err != nil {
			return fmt.Errorf("failed to extract job description from HTML: %w", err)
		}
	}

	job, err := parsing.ParseJobDescription(text, sess.vocab)
	if err != nil {
		return fmt.Errorf("failed to parse job description: %w", err)
	}
	if parseJDThreshold >= 0 {
		*job = job.WithThreshold(parseJDThreshold)
	} else {
		*job = job.WithDefaults()
	}
	if err := job.Validate(); err != nil {
		return err
	}
	if sess.verbose {
		sess.printer.PrintJobRequirement(job)
	}

	if err := writeJSON(cmd.OutOrStdout(), parseJDOutput, job); err != nil {
		return err
	}
	if parseJDOutput == "" {
		return nil
	}

	// Output validation is a safety check; the job has already been validated
	if err := schemas.ValidateFile(schemas.JobRequirement, parseJDOutput); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Output validation failed: %v\n", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully parsed job description %q to %s\n", job.Title, parseJDOutput)
	return nil
}
