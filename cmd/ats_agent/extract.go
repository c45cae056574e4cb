package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/campus-ats/internal/ingestion"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract normalized text from a resume document",
	Long:  "Extract text from a pdf, docx or txt resume, normalize it, and write the cleaned text with metadata. Scanned image-only documents are rejected.",
	RunE:  runExtract,
}

var (
	extractFile   string
	extractFormat string
	extractOutDir string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to resume document (required)")
	extractCmd.Flags().StringVar(&extractFormat, "format", "", "Document format (pdf, docx, txt); detected when omitted")
	extractCmd.Flags().StringVarP(&extractOutDir, "out", "o", "", "Output directory (required)")

	if err := extractCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	if err := extractCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	sess, err := loadSession(cmd)
	if err != nil {
		return err
	}

	extractor := ingestion.NewExtractor(sess.cfg.MinExtractedChars)
	text, meta, err := extractor.ExtractFile(extractFile, extractFormat)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", extractFile, err)
	}

	if err := os.MkdirAll(extractOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", extractOutDir, err)
	}

	textPath := filepath.Join(extractOutDir, "resume.cleaned.txt")
	if err := os.WriteFile(textPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text: %w", err)
	}

	metaJSON, err := meta.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	metaPath := filepath.Join(extractOutDir, "resume.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Successfully extracted %d characters (%s)\n", meta.Characters, meta.Format)
	_, _ = fmt.Fprintf(out, "Cleaned text: %s\n", textPath)
	_, _ = fmt.Fprintf(out, "Metadata: %s\n", metaPath)

	return nil
}
