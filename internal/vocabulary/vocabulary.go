// Package vocabulary provides the skill reference data used for skill extraction and matching.
//
// A Vocabulary is built once and never mutated afterwards, so a single value can be
// shared by any number of goroutines without locking.
package vocabulary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/campus-ats/internal/schemas"
)

// OtherCategory is reported for skills that are not in the category table.
const OtherCategory = "Other"

//go:embed vocabulary.json
var defaultVocabulary []byte

// Entry is one canonical skill with its surface forms.
type Entry struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
}

type file struct {
	Version int     `json:"version"`
	Skills  []Entry `json:"skills"`
}

// Vocabulary maps surface forms to canonical skill names and canonical names to categories.
type Vocabulary struct {
	canonical  map[string]string // surface form -> canonical name
	categories map[string]string // canonical name -> category
	byFirst    map[rune][]string // first rune -> surface forms, longest first
	names      []string
}

// New builds a vocabulary from entries. Names and aliases are lower-cased and
// whitespace-collapsed; the first entry claiming a surface form keeps it.
func New(entries []Entry) (*Vocabulary, error) {
	v := &Vocabulary{
		canonical:  make(map[string]string),
		categories: make(map[string]string),
		byFirst:    make(map[rune][]string),
	}

	for i, e := range entries {
		name := normalize(e.Name)
		if name == "" {
			return nil, fmt.Errorf("vocabulary entry %d has an empty name", i)
		}
		if _, dup := v.categories[name]; dup {
			return nil, fmt.Errorf("duplicate vocabulary entry %q", name)
		}
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = OtherCategory
		}
		v.categories[name] = category
		v.names = append(v.names, name)
		v.addSurface(name, name)
		for _, alias := range e.Aliases {
			if a := normalize(alias); a != "" {
				v.addSurface(a, name)
			}
		}
	}

	for r, forms := range v.byFirst {
		sort.Slice(forms, func(i, j int) bool {
			if len(forms[i]) != len(forms[j]) {
				return len(forms[i]) > len(forms[j])
			}
			return forms[i] < forms[j]
		})
		v.byFirst[r] = forms
	}
	sort.Strings(v.names)

	return v, nil
}

func (v *Vocabulary) addSurface(surface, name string) {
	if _, taken := v.canonical[surface]; taken {
		return
	}
	v.canonical[surface] = name
	first, _ := utf8.DecodeRuneInString(surface)
	v.byFirst[first] = append(v.byFirst[first], surface)
}

// Default returns the embedded vocabulary.
func Default() *Vocabulary {
	v, err := Parse(defaultVocabulary)
	if err != nil {
		panic(fmt.Sprintf("embedded vocabulary is invalid: %v", err))
	}
	return v
}

// Parse builds a vocabulary from JSON after validating it against the vocabulary schema.
func Parse(data []byte) (*Vocabulary, error) {
	if err := schemas.Validate(schemas.Vocabulary, data); err != nil {
		return nil, err
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Skills)
}

// Load reads a vocabulary JSON file from disk.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	v, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid vocabulary", Cause: err}
	}
	return v, nil
}

// Len returns the number of canonical skills.
func (v *Vocabulary) Len() int {
	return len(v.names)
}

// Names returns all canonical skill names in sorted order.
func (v *Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}

// Contains reports whether name (or one of its aliases) is a known skill.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.canonical[normalize(name)]
	return ok
}

// Canonicalize lower-cases and trims name and resolves aliases.
// Unknown names are returned normalized but otherwise unchanged.
func (v *Vocabulary) Canonicalize(name string) string {
	n := normalize(name)
	if c, ok := v.canonical[n]; ok {
		return c
	}
	return n
}

// Category returns the category of a skill, or OtherCategory if it is unknown.
func (v *Vocabulary) Category(skill string) string {
	if c, ok := v.categories[v.Canonicalize(skill)]; ok {
		return c
	}
	return OtherCategory
}

// FindSkills scans text for known skills and returns their canonical names, sorted
// and deduplicated. A match must start and end on a word boundary, and at any
// position the longest surface form wins, so "javascript" never yields "java".
func (v *Vocabulary) FindSkills(text string) []string {
	s := normalize(text)
	found := make(map[string]struct{})

	prev := ' '
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if isWordRune(prev) && isWordRune(r) {
			prev = r
			i += size
			continue
		}
		if m := v.matchAt(s, i); m != "" {
			found[v.canonical[m]] = struct{}{}
			last, _ := utf8.DecodeLastRuneInString(m)
			prev = last
			i += len(m)
			continue
		}
		prev = r
		i += size
	}

	out := make([]string, 0, len(found))
	for name := range found {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (v *Vocabulary) matchAt(s string, i int) string {
	r, _ := utf8.DecodeRuneInString(s[i:])
	for _, form := range v.byFirst[r] {
		if !strings.HasPrefix(s[i:], form) {
			continue
		}
		end := i + len(form)
		if end < len(s) {
			next, _ := utf8.DecodeRuneInString(s[end:])
			last, _ := utf8.DecodeLastRuneInString(form)
			if isWordRune(last) && isWordRune(next) {
				continue
			}
		}
		return form
	}
	return ""
}

// isWordRune treats '&' as part of a word so that "R&D" is not read as the skill "r".
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '&'
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
