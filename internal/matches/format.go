package matches

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/veec/commgen/internal/config"
)

// Outcome is the set-count comparison of a finished match.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHomeWin:
		return "home"
	case OutcomeAwayWin:
		return "away"
	default:
		return "undecided"
	}
}

// Result is an outcome seen from the club's side.
type Result int

const (
	ResultUnknown Result = iota
	ResultWin
	ResultLoss
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Match holds the display strings derived from one accepted record.
type Match struct {
	Record        MatchRecord
	DateLabel     string
	EntityLabel   string
	CategoryLabel string
	Outcome       Outcome
	// ClubIsAway is set when only the away team carries the club name.
	ClubIsAway bool
	ScoreText  string
	SetDetail  string
	HomeCourt  bool
}

// Result maps the outcome to the club's perspective. Undecided stays unknown.
func (m Match) Result() Result {
	switch m.Outcome {
	case OutcomeHomeWin:
		if m.ClubIsAway {
			return ResultLoss
		}
		return ResultWin
	case OutcomeAwayWin:
		if m.ClubIsAway {
			return ResultWin
		}
		return ResultLoss
	default:
		return ResultUnknown
	}
}

// Formatter derives display strings from records.
type Formatter struct {
	tables   config.Tables
	clubName string
}

func NewFormatter(tables config.Tables, clubName string) Formatter {
	return Formatter{tables: tables, clubName: clubName}
}

// Format derives every display field of a record.
func (f Formatter) Format(rec MatchRecord) Match {
	m := Match{
		Record:        rec,
		EntityLabel:   f.tables.EntityLabel(rec.Entity),
		CategoryLabel: f.tables.CategoryLabel(rec.Category()),
		Outcome:       ClassifyOutcome(rec.SetScore),
		ScoreText:     FormatScore(rec.SetScore),
		SetDetail:     FormatSetDetail(rec.Score),
		HomeCourt:     f.tables.IsHomeVenue(rec.Venue),
	}
	if d, err := rec.Date(); err == nil {
		m.DateLabel = f.FormatDate(d, rec.TimeText)
	}
	if f.clubName != "" {
		club := strings.ToUpper(f.clubName)
		m.ClubIsAway = !strings.Contains(strings.ToUpper(rec.HomeTeam), club) &&
			strings.Contains(strings.ToUpper(rec.AwayTeam), club)
	}
	return m
}

// FormatDate renders "Samedi 4 octobre 20:00"; the time is omitted when unset.
func (f Formatter) FormatDate(d time.Time, timeText string) string {
	s := fmt.Sprintf("%s %d %s", f.tables.Weekday(d.Weekday().String()), d.Day(), f.tables.Month(d.Month().String()))
	timeText = strings.TrimSpace(timeText)
	if timeText == "" || timeText == NoTime {
		return s
	}
	return s + " " + timeText
}

// FormatScore turns "A/B" into "A - B" when both sides are integers and
// returns any other token unchanged.
func FormatScore(token string) string {
	a, b, ok := splitScore(token)
	if !ok {
		return token
	}
	return fmt.Sprintf("%d - %d", a, b)
}

// FormatSetDetail formats each comma separated set token. "25:20" tokens are accepted too.
func FormatSetDetail(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, FormatScore(strings.Replace(p, ":", "/", 1)))
	}
	return strings.Join(out, ", ")
}

// ClassifyOutcome compares the set counts of "home/away".
// Equal, missing or unparsable counts are undecided.
func ClassifyOutcome(setScore string) Outcome {
	home, away, ok := splitScore(setScore)
	switch {
	case !ok:
		return OutcomeUndecided
	case home > away:
		return OutcomeHomeWin
	case home < away:
		return OutcomeAwayWin
	default:
		return OutcomeUndecided
	}
}

func splitScore(token string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(token), "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
