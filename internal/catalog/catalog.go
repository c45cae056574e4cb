// Package catalog provides the predefined job requirements candidates can be scored against.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/campus-ats/internal/schemas"
	"github.com/jonathan/campus-ats/internal/types"
)

//go:embed roles.json
var defaultRoles []byte

type role struct {
	Name        string          `json:"name"`
	Requirement json.RawMessage `json:"requirement"`
}

// Catalog is an immutable set of named job requirements.
type Catalog struct {
	roles map[string]types.JobRequirement
	names []string
}

// Default returns the embedded role catalog.
func Default() *Catalog {
	c, err := Parse(defaultRoles)
	if err != nil {
		panic(fmt.Sprintf("embedded job catalog is invalid: %v", err))
	}
	return c
}

// Parse builds a catalog from a JSON array of {name, requirement} objects.
// Every requirement is schema-validated and must pass JobRequirement.Validate.
func Parse(data []byte) (*Catalog, error) {
	var raw []role
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse job catalog: %w", err)
	}

	c := &Catalog{roles: make(map[string]types.JobRequirement, len(raw))}
	for _, r := range raw {
		key := normalizeName(r.Name)
		if key == "" {
			return nil, fmt.Errorf("job catalog entry has an empty name")
		}
		if _, dup := c.roles[key]; dup {
			return nil, fmt.Errorf("duplicate job catalog entry %q", key)
		}
		if err := schemas.Validate(schemas.JobRequirement, r.Requirement); err != nil {
			return nil, fmt.Errorf("job catalog entry %q: %w", key, err)
		}
		var job types.JobRequirement
		if err := json.Unmarshal(r.Requirement, &job); err != nil {
			return nil, fmt.Errorf("job catalog entry %q: %w", key, err)
		}
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("job catalog entry %q: %w", key, err)
		}
		c.roles[key] = job
		c.names = append(c.names, key)
	}
	sort.Strings(c.names)
	return c, nil
}

// Names returns the role names in sorted order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Get looks up a role. Names are matched case-insensitively with spaces and
// hyphens treated as underscores; failing an exact match, the first role (in
// name order) that contains the query or is contained by it wins.
func (c *Catalog) Get(name string) (types.JobRequirement, bool) {
	key := normalizeName(name)
	if key == "" {
		return types.JobRequirement{}, false
	}
	if job, ok := c.roles[key]; ok {
		return clone(job), true
	}
	for _, n := range c.names {
		if strings.Contains(n, key) || strings.Contains(key, n) {
			return clone(c.roles[n]), true
		}
	}
	return types.JobRequirement{}, false
}

// clone copies the slices so callers cannot mutate catalog state.
func clone(job types.JobRequirement) types.JobRequirement {
	job.RequiredSkills = append([]string(nil), job.RequiredSkills...)
	job.PreferredSkills = append([]string(nil), job.PreferredSkills...)
	job.Keywords = append([]string(nil), job.Keywords...)
	if job.MinimumATSScore != nil {
		job = job.WithThreshold(*job.MinimumATSScore)
	}
	return job
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer(" ", "_", "-", "_").Replace(name)
	return strings.Trim(name, "_")
}
