package matches

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// HeaderDate is the value of the date column in the CSV header row.
const HeaderDate = "Date"

// NoTime is the time-of-day value meaning the kickoff time is not set.
const NoTime = "00:00"

// MatchRecord is one row of the federation's season export.
type MatchRecord struct {
	Entity    string `json:"entity"`
	MatchCode string `json:"match_code"`
	DateText  string `json:"date"`
	TimeText  string `json:"time"`
	HomeLogo  string `json:"home_logo"`
	HomeTeam  string `json:"home_team"`
	AwayLogo  string `json:"away_logo"`
	AwayTeam  string `json:"away_team"`
	// SetScore holds the sets won by each side, "3/1".
	SetScore string `json:"set_score"`
	// Score holds the per-set points, "25/20,18/25,...".
	Score string `json:"score"`
	Venue string `json:"venue"`
}

// Category returns the category code embedded in the first 3 characters of the match code.
func (r MatchRecord) Category() string {
	if len(r.MatchCode) < 3 {
		return r.MatchCode
	}
	return r.MatchCode[:3]
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Date parses the record's calendar date.
func (r MatchRecord) Date() (time.Time, error) {
	s := strings.TrimSpace(r.DateText)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("match %s: unparsable date %q", r.MatchCode, r.DateText)
}

// VenueInfo is the address block of a match venue.
type VenueInfo struct {
	Name       string `json:"nom"`
	Street     string `json:"rue"`
	PostalCode string `json:"code_postal"`
	City       string `json:"ville"`
}

// VenueResolver looks up the venue of a match. Failures, cancellation included, are reported as nil.
type VenueResolver interface {
	ResolveVenue(ctx context.Context, matchCode, entityCode string) *VenueInfo
}

// VenueResolverFunc adapts a function to VenueResolver.
type VenueResolverFunc func(ctx context.Context, matchCode, entityCode string) *VenueInfo

func (f VenueResolverFunc) ResolveVenue(ctx context.Context, matchCode, entityCode string) *VenueInfo {
	return f(ctx, matchCode, entityCode)
}
