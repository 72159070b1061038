package imagepkg

import (
	"image/color"
	"log"
	"strings"

	"github.com/veec/commgen/internal/matches"
)

// Mode selects what a row shows: forthcoming matches (Planning) or finished ones (Results).
type Mode interface {
	Name() string
	banner(m matches.Match) string
	drawBlock(r *rowCompositor, m matches.Match, st LayoutState) error
}

// Planning rows show the date, the venue block and a home/away badge.
type Planning struct{}

// Results rows show the outcome and the set scores.
type Results struct{}

// ParseMode maps a mode name to its Mode. Unknown names fall back to Planning.
func ParseMode(name string) Mode {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "results", "resultats", "résultats":
		return Results{}
	case "planning", "":
		return Planning{}
	default:
		log.Printf("unknown mode %q, using planning", name)
		return Planning{}
	}
}

func (Planning) Name() string { return "planning" }

func (Planning) banner(matches.Match) string { return AssetBanner }

func (Planning) drawBlock(r *rowCompositor, m matches.Match, st LayoutState) error {
	l := r.layout
	x, w := st.px(l.MiddleX), st.px(l.MiddleWidth)
	r.text(m.DateLabel, w, x, float64(st.DateScore), r.fonts.Bold(st.px(l.DateSize)), TextStyle{StrokeWidth: 1})

	var venue matches.VenueInfo
	if r.venues != nil {
		if v := r.venues.ResolveVenue(r.ctx, m.Record.MatchCode, m.Record.Entity); v != nil {
			venue = *v
		} else {
			logDebug("match %s: no venue, leaving address blank", m.Record.MatchCode)
		}
	}
	city := strings.TrimSpace(venue.PostalCode + " " + venue.City)
	face := r.fonts.Regular(st.px(l.VenueSize))
	gap := st.px(l.VenueLineGap)
	y := float64(st.Venue)
	r.text(venue.Name, w, x, y, face, TextStyle{StrokeWidth: 1})
	r.text(venue.Street, w, x, y+gap, face, TextStyle{StrokeWidth: 1})
	r.text(city, w, x, y+2*gap, face, TextStyle{StrokeWidth: 1})

	badge := AssetBadgeAway
	if m.HomeCourt {
		badge = AssetBadgeHome
	}
	return r.placeFixedHeight(badge, st.ipx(l.BadgeX), st.Badge, st.ipx(l.BadgeHeight))
}

func (Results) Name() string { return "results" }

func (Results) banner(m matches.Match) string {
	switch m.Result() {
	case matches.ResultWin:
		return AssetBannerWin
	case matches.ResultLoss:
		return AssetBannerLoss
	default:
		return AssetBannerDraw
	}
}

var (
	winColor     = color.NRGBA{R: 0x2e, G: 0xb8, B: 0x4a, A: 0xff}
	lossColor    = color.NRGBA{R: 0xe0, G: 0x32, B: 0x32, A: 0xff}
	unknownColor = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// OutcomeText returns the label and color of a result.
func OutcomeText(r matches.Result) (string, color.Color) {
	switch r {
	case matches.ResultWin:
		return "VICTOIRE", winColor
	case matches.ResultLoss:
		return "DÉFAITE", lossColor
	default:
		return "INDÉCIS", unknownColor
	}
}

func (Results) drawBlock(r *rowCompositor, m matches.Match, st LayoutState) error {
	l := r.layout
	x, w := st.px(l.MiddleX), st.px(l.MiddleWidth)
	label, c := OutcomeText(m.Result())
	r.text(label, w, x, float64(st.DateScore), r.fonts.Bold(st.px(l.OutcomeSize)), TextStyle{Fill: c, StrokeWidth: 1})
	r.text(m.ScoreText, w, x, float64(st.Venue), r.fonts.Bold(st.px(l.ScoreSize)), TextStyle{StrokeWidth: 1})
	r.text(m.SetDetail, w, x, float64(st.Venue)+st.px(l.VenueLineGap)*1.5, r.fonts.Regular(st.px(l.DetailSize)), TextStyle{StrokeWidth: 1})
	return nil
}
