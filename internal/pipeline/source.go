package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/campus-ats/internal/types"
)

// ResumeSource resolves a stored resume by its opaque id. Storage belongs to the
// caller; the pipeline only reads.
type ResumeSource interface {
	Resume(ctx context.Context, id string) (*types.ResumeRecord, error)
}

// ErrResumeNotFound is returned by sources that do not know the requested id.
var ErrResumeNotFound = errors.New("resume not found")

// MemorySource serves resumes from a map that is not modified after construction.
type MemorySource struct {
	records map[string]*types.ResumeRecord
}

// NewMemorySource copies records into a new MemorySource.
func NewMemorySource(records map[string]*types.ResumeRecord) *MemorySource {
	m := &MemorySource{records: make(map[string]*types.ResumeRecord, len(records))}
	for id, r := range records {
		m.records[id] = r
	}
	return m
}

// Resume implements ResumeSource.
func (m *MemorySource) Resume(_ context.Context, id string) (*types.ResumeRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, id)
	}
	return r, nil
}

// DirSource reads resumes written by parse-resume from Dir/<id>.json.
type DirSource struct {
	Dir string
}

// Resume implements ResumeSource.
func (d DirSource) Resume(ctx context.Context, id string) (*types.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, &types.InvalidStateError{Field: "resume_id", Message: fmt.Sprintf("invalid resume id %q", id)}
	}

	path := filepath.Join(d.Dir, id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrResumeNotFound, id)
		}
		return nil, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	var r types.ResumeRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse resume %s: %w", path, err)
	}
	return &r, nil
}
