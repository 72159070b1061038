package matches

import (
	"fmt"
	"strings"
	"time"
)

// FilterSpec selects which records are rendered. Nil dates and an empty category list do not filter.
type FilterSpec struct {
	Categories []string   `json:"categories"`
	DateStart  *time.Time `json:"date_start,omitempty"`
	DateEnd    *time.Time `json:"date_end,omitempty"`
}

// EntitySet reports which competition entities are tracked.
type EntitySet interface {
	IsRecognizedEntity(code string) bool
}

// Accept reports whether a record passes the filter. Date bounds are inclusive.
func Accept(rec MatchRecord, spec FilterSpec, entities EntitySet) bool {
	if rec.DateText == HeaderDate {
		return false
	}
	if len(spec.Categories) > 0 {
		cat := rec.Category()
		matched := false
		for _, c := range spec.Categories {
			if c == cat {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	d, err := rec.Date()
	if err != nil {
		return false
	}
	if spec.DateStart != nil && d.Before(dayOf(*spec.DateStart)) {
		return false
	}
	if spec.DateEnd != nil && d.After(dayOf(*spec.DateEnd)) {
		return false
	}
	return entities.IsRecognizedEntity(rec.Entity)
}

// Filter keeps the accepted records in input order.
func Filter(recs []MatchRecord, spec FilterSpec, entities EntitySet) []MatchRecord {
	var out []MatchRecord
	for _, r := range recs {
		if Accept(r, spec, entities) {
			out = append(out, r)
		}
	}
	return out
}

// NewFilterSpec builds a FilterSpec from user input: category codes may be repeated or
// comma-separated, dates are "2006-01-02" and empty means unbounded.
func NewFilterSpec(categories []string, from, to string) (FilterSpec, error) {
	var spec FilterSpec
	for _, c := range categories {
		for _, part := range strings.Split(c, ",") {
			if part = strings.TrimSpace(part); part != "" {
				spec.Categories = append(spec.Categories, part)
			}
		}
	}
	var err error
	if spec.DateStart, err = parseDay(from); err != nil {
		return spec, fmt.Errorf("date_start: %w", err)
	}
	if spec.DateEnd, err = parseDay(to); err != nil {
		return spec, fmt.Errorf("date_end: %w", err)
	}
	return spec, nil
}

func parseDay(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
