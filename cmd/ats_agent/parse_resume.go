package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/parsing"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume document into a structured ResumeRecord JSON",
	Long:  "Extract and structure a resume into contact details, skills, education, experience, certifications and projects. The output can be scored later with score --resume-json.",
	RunE:  runParseResume,
}

var (
	parseResumeFile   string
	parseResumeFormat string
	parseResumeOutput string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeFile, "file", "f", "", "Path to resume document (required)")
	parseResumeCmd.Flags().StringVar(&parseResumeFormat, "format", "", "Document format (pdf, docx, txt); detected when omitted")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output ResumeRecord JSON file (stdout when omitted)")

	if err := parseResumeCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	text, _, err := ingestion.NewExtractor(sess.cfg.MinExtractedChars).ExtractFile(parseResumeFile, parseResumeFormat)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", parseResumeFile, err)
	}

	record := parsing.NewStructurer(sess.vocab, parsing.Options{}).Parse(text)
	if sess.verbose {
		sess.printer.PrintResume(record)
	}

	if err := writeJSON(cmd.OutOrStdout(), parseResumeOutput, record); err != nil {
		return err
	}
	if parseResumeOutput != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully parsed resume (%d skills, %.2f years of experience) to %s\n",
			len(record.Skills), record.TotalExperienceYears, parseResumeOutput)
	}
	return nil
}
