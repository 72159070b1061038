package imagepkg

import (
	"errors"
	"fmt"
	"sort"

	"github.com/veec/commgen/internal/config"
)

// ErrUnknownFormat is returned by Compose for a format name with no profile.
var ErrUnknownFormat = errors.New("unknown format")

// FormatProfile ties an output format to its background and scale.
// TitleY and StartY are in layout units, before scaling.
type FormatProfile struct {
	Name       string
	Background string
	Scale      int
	TitleY     int
	StartY     int
}

// DefaultFormats returns the "pub" (publication) and "story" profiles.
func DefaultFormats() map[string]FormatProfile {
	return map[string]FormatProfile{
		"pub": {
			Name:       "pub",
			Background: "background_pub.png",
			Scale:      2,
			TitleY:     60,
			StartY:     120,
		},
		"story": {
			Name:       "story",
			Background: "background_story.png",
			Scale:      2,
			TitleY:     140,
			StartY:     230,
		},
	}
}

// FormatsWithOverrides applies configured backgrounds and scales on top of DefaultFormats.
// A name unknown to the defaults becomes a new format placed like "pub".
func FormatsWithOverrides(over map[string]config.FormatConfig) map[string]FormatProfile {
	formats := DefaultFormats()
	for name, fc := range over {
		f, ok := formats[name]
		if !ok {
			f = formats["pub"]
			f.Name = name
		}
		if fc.Background != "" {
			f.Background = fc.Background
		}
		if fc.Scale > 0 {
			f.Scale = fc.Scale
		}
		formats[name] = f
	}
	return formats
}

// FormatNames lists the profile names in sorted order.
func FormatNames(formats map[string]FormatProfile) []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func resolveFormat(formats map[string]FormatProfile, name string) (FormatProfile, error) {
	f, ok := formats[name]
	if !ok {
		return FormatProfile{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownFormat, name, FormatNames(formats))
	}
	if f.Scale < 1 {
		f.Scale = 1
	}
	return f, nil
}

// Layout is the row grid in layout units. Every value is multiplied by the format scale.
// Y offsets ending in DY are relative to the top of the row.
type Layout struct {
	TitleWidth, TitleSize float64

	RowStep int

	BannerX, BannerWidth int

	LabelX, LabelWidth, LabelSize float64
	EntityDY, CategoryDY          int

	LogoW, LogoH, LogoDY int
	HomeLogoX, AwayLogoX int

	HomeNameX, AwayNameX, NameWidth, NameSize float64
	NameDY                                    int

	MiddleX, MiddleWidth float64
	DateScoreDY          int
	DateSize             float64
	OutcomeSize          float64
	VenueDY              int
	VenueLineGap         float64
	VenueSize            float64
	ScoreSize            float64
	DetailSize           float64

	BadgeX, BadgeDY, BadgeHeight int

	QRWidth, QRMargin int
}

var defaultLayout = Layout{
	TitleWidth: 480, TitleSize: 30,

	RowStep: 110,

	BannerX: 15, BannerWidth: 510,

	LabelX: 80, LabelWidth: 120, LabelSize: 11,
	EntityDY: 32, CategoryDY: 58,

	LogoW: 70, LogoH: 52, LogoDY: 10,
	HomeLogoX: 150, AwayLogoX: 340,

	HomeNameX: 185, AwayNameX: 375, NameWidth: 110, NameSize: 10,
	NameDY: 80,

	MiddleX: 275, MiddleWidth: 120,
	DateScoreDY: 28, DateSize: 11, OutcomeSize: 16,
	VenueDY: 52, VenueLineGap: 13, VenueSize: 8,
	ScoreSize: 14, DetailSize: 8,

	BadgeX: 450, BadgeDY: 30, BadgeHeight: 40,

	QRWidth: 64, QRMargin: 12,
}

// DefaultLayout returns the row grid used by NewEngine.
func DefaultLayout() Layout { return defaultLayout }

// LayoutState is the vertical cursor of one composition: one pixel offset per lane.
// It is created per Compose call and advanced once per rendered row.
type LayoutState struct {
	Scale int
	Step  int

	Banner    int
	Entity    int
	Category  int
	Logos     int
	Names     int
	DateScore int
	Venue     int
	Badge     int
}

func newLayoutState(l Layout, f FormatProfile) LayoutState {
	s := f.Scale
	top := f.StartY
	return LayoutState{
		Scale:     s,
		Step:      l.RowStep * s,
		Banner:    top * s,
		Entity:    (top + l.EntityDY) * s,
		Category:  (top + l.CategoryDY) * s,
		Logos:     (top + l.LogoDY) * s,
		Names:     (top + l.NameDY) * s,
		DateScore: (top + l.DateScoreDY) * s,
		Venue:     (top + l.VenueDY) * s,
		Badge:     (top + l.BadgeDY) * s,
	}
}

// Advance moves every lane down by the row step.
func (st LayoutState) Advance() LayoutState {
	st.Banner += st.Step
	st.Entity += st.Step
	st.Category += st.Step
	st.Logos += st.Step
	st.Names += st.Step
	st.DateScore += st.Step
	st.Venue += st.Step
	st.Badge += st.Step
	return st
}

// px scales a layout unit to pixels.
func (st LayoutState) px(v float64) float64 { return v * float64(st.Scale) }

func (st LayoutState) ipx(v int) int { return v * st.Scale }
