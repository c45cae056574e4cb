// Package pipeline provides the high-level orchestration of a resume evaluation:
// extraction, structuring, scoring and feedback.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/campus-ats/internal/config"
	"github.com/jonathan/campus-ats/internal/feedback"
	"github.com/jonathan/campus-ats/internal/ingestion"
	"github.com/jonathan/campus-ats/internal/parsing"
	"github.com/jonathan/campus-ats/internal/scoring"
	"github.com/jonathan/campus-ats/internal/skills"
	"github.com/jonathan/campus-ats/internal/types"
	"github.com/jonathan/campus-ats/internal/vocabulary"
)

// Progress steps reported through ProgressCallback.
const (
	StepExtract   = "extract_resume"
	StepStructure = "structure_resume"
	StepLoad      = "load_resume"
	StepScore     = "score_resume"
	StepFeedback  = "generate_feedback"
)

// ProgressEvent represents a progress update during an evaluation
type ProgressEvent struct {
	EvaluationID string `json:"evaluation_id"`
	Step         string `json:"step"`
	Message      string `json:"message"`
	Content      any    `json:"content,omitempty"`
}

// ProgressCallback is called when evaluation progress occurs
type ProgressCallback func(event ProgressEvent)

// Request is a single evaluation. Exactly one of ResumeID, ResumeText or
// Document must be set. Format is optional for documents; when empty it is
// detected from the bytes, with Filename as a hint.
type Request struct {
	ResumeID   string               `json:"resume_id,omitempty"`
	ResumeText string               `json:"resume_text,omitempty"`
	Document   []byte               `json:"-"`
	Format     ingestion.Format     `json:"format,omitempty"`
	Filename   string               `json:"filename,omitempty"`
	Job        types.JobRequirement `json:"job_requirement"`
}

// label names the request's resume for logs and batch results.
func (r *Request) label() string {
	switch {
	case r.ResumeID != "":
		return r.ResumeID
	case r.Filename != "":
		return r.Filename
	}
	return ""
}

// Outcome is the result of one evaluation. Feedback is nil when the resume passed.
type Outcome struct {
	ID         uuid.UUID               `json:"id"`
	Resume     *types.ResumeRecord     `json:"resume"`
	Evaluation *types.EvaluationResult `json:"evaluation"`
	Feedback   *types.FeedbackReport   `json:"feedback"`
	Document   *ingestion.Metadata     `json:"document,omitempty"`
}

// Service evaluates resumes. All of its parts are read-only, so one Service may
// serve concurrent evaluations.
type Service struct {
	Extractor  *ingestion.Extractor
	Structurer *parsing.Structurer
	Engine     *scoring.Engine
	Generator  *feedback.Generator
	Resumes    ResumeSource // optional; required for requests by ResumeID
	OnProgress ProgressCallback
}

// NewService wires a Service from a vocabulary and a resolved configuration.
func NewService(vocab *vocabulary.Vocabulary, cfg config.Config) (*Service, error) {
	engine, err := scoring.NewEngine(skills.NewMatcher(vocab), cfg.ScoringConfig())
	if err != nil {
		return nil, err
	}
	return &Service{
		Extractor:  ingestion.NewExtractor(cfg.MinExtractedChars),
		Structurer: parsing.NewStructurer(vocab, parsing.Options{}),
		Engine:     engine,
		Generator:  feedback.NewGenerator(cfg.Thresholds()),
	}, nil
}

// Evaluate runs one request. Extraction and validation errors are returned
// unchanged so callers can inspect them with errors.As.
func (s *Service) Evaluate(ctx context.Context, req Request) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.Job.Validate(); err != nil {
		return nil, err
	}

	out := &Outcome{ID: uuid.New()}

	resume, meta, err := s.resolveResume(ctx, out.ID, req)
	if err != nil {
		log.Printf("[PIPELINE] evaluation %s: failed to resolve resume: %v", out.ID, err)
		return nil, err
	}
	out.Resume = resume
	out.Document = meta

	result, err := s.Engine.Evaluate(resume, req.Job)
	if err != nil {
		return nil, err
	}
	out.Evaluation = result
	s.emit(out.ID, StepScore, fmt.Sprintf("ATS score %.2f (threshold %.2f, passed=%t)", result.ATSScore, result.MinimumATSScore, result.Passed), result)

	if !result.Passed {
		report, err := s.Generator.Generate(result, resume, req.Job)
		if err != nil {
			return nil, err
		}
		out.Feedback = report
		s.emit(out.ID, StepFeedback, fmt.Sprintf("Generated feedback with %d rejection reasons", len(report.RejectionReasons)), report)
	}

	return out, nil
}

func (s *Service) resolveResume(ctx context.Context, id uuid.UUID, req Request) (*types.ResumeRecord, *ingestion.Metadata, error) {
	sources := 0
	if req.ResumeID != "" {
		sources++
	}
	if req.ResumeText != "" {
		sources++
	}
	if len(req.Document) > 0 {
		sources++
	}
	if sources != 1 {
		return nil, nil, &types.InvalidStateError{
			Field:   "resume_source",
			Message: fmt.Sprintf("exactly one of resume_id, resume_text or document is required, got %d", sources),
		}
	}

	switch {
	case req.ResumeID != "":
		if s.Resumes == nil {
			return nil, nil, &types.InvalidStateError{Field: "resume_id", Message: "no resume source is configured"}
		}
		resume, err := s.Resumes.Resume(ctx, req.ResumeID)
		if err != nil {
			return nil, nil, err
		}
		s.emit(id, StepLoad, "Loaded stored resume "+req.ResumeID, nil)
		return resume, nil, nil

	case req.ResumeText != "":
		text := ingestion.CleanText(req.ResumeText)
		return s.structure(id, text), nil, nil
	}

	var (
		text string
		err  error
	)
	format := req.Format
	if format == "" {
		text, format, err = s.Extractor.ExtractDocument(req.Document, req.Filename)
	} else {
		text, err = s.Extractor.Extract(req.Document, format)
	}
	if err != nil {
		return nil, nil, err
	}
	meta := ingestion.NewMetadata(text, req.Filename, format)
	s.emit(id, StepExtract, fmt.Sprintf("Extracted %d characters from %s document", meta.Characters, format), meta)
	return s.structure(id, text), meta, nil
}

func (s *Service) structure(id uuid.UUID, text string) *types.ResumeRecord {
	resume := s.Structurer.Parse(text)
	s.emit(id, StepStructure, fmt.Sprintf("Structured resume: %d skills, %d education, %d experience entries (%s years)",
		len(resume.Skills), len(resume.Education), len(resume.Experience), strconv.FormatFloat(resume.TotalExperienceYears, 'f', -1, 64)), resume)
	return resume
}

// emit calls the progress callback if configured
func (s *Service) emit(id uuid.UUID, step, message string, content any) {
	if s.OnProgress != nil {
		s.OnProgress(ProgressEvent{
			EvaluationID: id.String(),
			Step:         step,
			Message:      message,
			Content:      content,
		})
	}
}
