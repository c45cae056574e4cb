// Package types provides type definitions for structured data used throughout the campus-ats system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EducationLevel is the ordered degree ladder used for education matching.
// The zero value is EducationNone.
type EducationLevel int

const (
	EducationNone EducationLevel = iota
	EducationAssociate
	EducationBachelor
	EducationMaster
	EducationDoctorate
)

var educationLevelNames = [...]string{
	EducationNone:      "none",
	EducationAssociate: "associate",
	EducationBachelor:  "bachelor",
	EducationMaster:    "master",
	EducationDoctorate: "doctorate",
}

// educationSynonyms maps free-form degree spellings to levels.
// Keys are compared after lower-casing and stripping dots and apostrophes.
var educationSynonyms = map[string]EducationLevel{
	"":             EducationNone,
	"none":         EducationNone,
	"associate":    EducationAssociate,
	"associates":   EducationAssociate,
	"diploma":      EducationAssociate,
	"aa":           EducationAssociate,
	"as":           EducationAssociate,
	"bachelor":     EducationBachelor,
	"bachelors":    EducationBachelor,
	"undergrad":    EducationBachelor,
	"ba":           EducationBachelor,
	"bs":           EducationBachelor,
	"bsc":          EducationBachelor,
	"be":           EducationBachelor,
	"btech":        EducationBachelor,
	"bba":          EducationBachelor,
	"bca":          EducationBachelor,
	"bcom":         EducationBachelor,
	"master":       EducationMaster,
	"masters":      EducationMaster,
	"ma":           EducationMaster,
	"ms":           EducationMaster,
	"msc":          EducationMaster,
	"me":           EducationMaster,
	"mtech":        EducationMaster,
	"mba":          EducationMaster,
	"mca":          EducationMaster,
	"mcom":         EducationMaster,
	"doctorate":    EducationDoctorate,
	"doctoral":     EducationDoctorate,
	"phd":          EducationDoctorate,
	"doctor":       EducationDoctorate,
	"postdoc":      EducationDoctorate,
	"graduate":     EducationBachelor,
	"postgrad":     EducationMaster,
	"postgraduate": EducationMaster,
}

// String returns the lowercase level name.
func (l EducationLevel) String() string {
	if l < EducationNone || int(l) >= len(educationLevelNames) {
		return fmt.Sprintf("EducationLevel(%d)", int(l))
	}
	return educationLevelNames[l]
}

// Valid reports whether l is one of the declared levels.
func (l EducationLevel) Valid() bool {
	return l >= EducationNone && int(l) < len(educationLevelNames)
}

// ParseEducationLevel resolves a degree name or abbreviation to a level.
// Phrases such as "Bachelor's degree" or "M.Tech" are accepted.
func ParseEducationLevel(s string) (EducationLevel, error) {
	key := normalizeDegreeKey(s)
	if level, ok := educationSynonyms[key]; ok {
		return level, nil
	}
	// Multi-word inputs: take the highest level mentioned by any word.
	best, found := EducationNone, false
	for _, word := range strings.Fields(key) {
		if level, ok := educationSynonyms[word]; ok && word != "" {
			found = true
			if level > best {
				best = level
			}
		}
	}
	if found {
		return best, nil
	}
	return EducationNone, fmt.Errorf("unknown education level %q", s)
}

func normalizeDegreeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(".", "", "'", "", "’", "", "-", " ").Replace(s)
	s = strings.TrimSuffix(s, " degree")
	return strings.Join(strings.Fields(s), " ")
}

// MarshalJSON encodes the level as its lowercase name.
func (l EducationLevel) MarshalJSON() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid education level %d", int(l))
	}
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts a level name, a synonym, or null.
func (l *EducationLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = EducationNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("education level must be a string: %w", err)
	}
	level, err := ParseEducationLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}
