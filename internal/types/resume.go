// Package types provides type definitions for structured data used throughout the campus-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeRecord is the structured form of one uploaded or pasted resume.
// It is built once by the structurer and treated as read-only afterwards.
type ResumeRecord struct {
	RawText              string            `json:"raw_text"`
	Contact              Contact           `json:"contact"`
	Skills               []string          `json:"skills"`
	Education            []EducationEntry  `json:"education_entries"`
	Experience           []ExperienceEntry `json:"experience_entries"`
	Certifications       []string          `json:"certifications"`
	Projects             []Project         `json:"projects,omitempty"`
	TotalExperienceYears float64           `json:"total_experience_years"`
}

// Contact holds best-effort contact details. Empty fields mean "not found".
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// HasAny reports whether at least one contact field was found.
func (c Contact) HasAny() bool {
	return c.Name != "" || c.Email != "" || c.Phone != ""
}

// EducationEntry is a single degree line found in the resume
type EducationEntry struct {
	Degree      string         `json:"degree"`
	Institution string         `json:"institution,omitempty"`
	Level       EducationLevel `json:"level"`
}

// ExperienceEntry is a single position found in the resume
type ExperienceEntry struct {
	Title         string  `json:"title"`
	Organization  string  `json:"organization,omitempty"`
	DurationYears float64 `json:"duration_years"`
}

// Project is a portfolio item listed under a projects section
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// HighestEducationLevel returns the highest level across all education entries.
func (r *ResumeRecord) HighestEducationLevel() EducationLevel {
	best := EducationNone
	for _, e := range r.Education {
		if e.Level > best {
			best = e.Level
		}
	}
	return best
}
