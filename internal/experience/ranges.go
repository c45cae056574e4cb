// Package experience estimates total work experience from resume text.
//
// Date ranges near job-title lines are merged into a union of months so
// overlapping positions are never counted twice. When no range can be parsed
// the largest explicit duration phrase is used instead.
package experience

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const minYear = 1950

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

const dateToken = `(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?,?\s+\d{4}|\d{1,2}/\d{4}|\d{4})`

var (
	rangePattern = regexp.MustCompile(`(?i)\b(` + dateToken + `)\s*(?:-|–|—|to|until|through|till)\s*(` + dateToken + `|present|current|now|today|date)\b`)
	monthYear    = regexp.MustCompile(`(?i)^([a-z]{3})[a-z]*\.?,?\s+(\d{4})$`)
	numericDate  = regexp.MustCompile(`^(\d{1,2})/(\d{4})$`)
)

// Range is a parsed employment period. Start is inclusive and End exclusive,
// both counted in months since year 0.
type Range struct {
	Start   int
	End     int
	Line    int    // index of the line the range was found on
	Span    [2]int // byte offsets of Text within that line
	Text    string
	Current bool
}

// Months is the length of the range.
func (r Range) Months() int {
	return r.End - r.Start
}

// Years is the length of the range in years.
func (r Range) Years() float64 {
	return float64(r.Months()) / 12
}

func monthIndex(year int, month time.Month) int {
	return year*12 + int(month) - 1
}

// ParseRange finds the first date range in line. now bounds open-ended and
// future ranges.
func ParseRange(line string, now time.Time) (Range, bool) {
	ranges := ParseRanges(line, now)
	if len(ranges) == 0 {
		return Range{}, false
	}
	return ranges[0], true
}

// ParseRanges returns every date range in line, in order of appearance.
func ParseRanges(line string, now time.Time) []Range {
	var out []Range
	for _, loc := range rangePattern.FindAllStringSubmatchIndex(line, -1) {
		r, ok := newRange(line[loc[2]:loc[3]], line[loc[4]:loc[5]], now)
		if !ok {
			continue
		}
		r.Text = line[loc[0]:loc[1]]
		r.Span = [2]int{loc[0], loc[1]}
		out = append(out, r)
	}
	return out
}

func newRange(from, to string, now time.Time) (Range, bool) {
	start, startYearOnly, ok := parseDate(from)
	if !ok {
		return Range{}, false
	}
	nowIdx := monthIndex(now.Year(), now.Month()) + 1

	var end int
	current := false
	endYearOnly := false
	switch strings.ToLower(to) {
	case "present", "current", "now", "today", "date":
		end, current = nowIdx, true
	default:
		end, endYearOnly, ok = parseDate(to)
		if !ok {
			return Range{}, false
		}
		if !endYearOnly {
			// "Jan 2020 - Dec 2020" includes December
			end++
		}
	}

	if startYearOnly && endYearOnly && end == start {
		end = start + 12
	}
	if end > nowIdx {
		end = nowIdx
	}
	if start >= end {
		return Range{}, false
	}
	return Range{Start: start, End: end, Current: current}, true
}

// parseDate returns the month index of a date token and whether only a year was given.
func parseDate(tok string) (int, bool, bool) {
	tok = strings.TrimSpace(tok)
	if m := monthYear.FindStringSubmatch(tok); m != nil {
		month, ok := months[strings.ToLower(m[1])]
		year, err := strconv.Atoi(m[2])
		if !ok || err != nil || year < minYear {
			return 0, false, false
		}
		return monthIndex(year, month), false, true
	}
	if m := numericDate.FindStringSubmatch(tok); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || year < minYear {
			return 0, false, false
		}
		return monthIndex(year, time.Month(month)), false, true
	}
	year, err := strconv.Atoi(tok)
	if err != nil || year < minYear {
		return 0, false, false
	}
	return monthIndex(year, time.January), true, true
}

// UnionMonths merges overlapping ranges and returns the number of distinct months covered.
func UnionMonths(ranges []Range) int {
	if len(ranges) == 0 {
		return 0
	}
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	total := 0
	curStart, curEnd := sorted[0].Start, sorted[0].End
	for _, r := range sorted[1:] {
		if r.Start <= curEnd {
			if r.End > curEnd {
				curEnd = r.End
			}
			continue
		}
		total += curEnd - curStart
		curStart, curEnd = r.Start, r.End
	}
	total += curEnd - curStart
	return total
}
