package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/matches"
)

type memStore map[string]image.Image

func (m memStore) Load(name string) (image.Image, error) {
	img, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return img, nil
}

var (
	bgColor        = color.NRGBA{R: 0x20, G: 0x40, B: 0x80, A: 0xff}
	bannerColor    = color.NRGBA{R: 0xc0, G: 0x10, B: 0x10, A: 0xff}
	winBanner      = color.NRGBA{R: 0x10, G: 0x90, B: 0x10, A: 0xff}
	lossBanner     = color.NRGBA{R: 0x90, G: 0x10, B: 0x90, A: 0xff}
	drawBanner     = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	homeBadgeColor = color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	awayBadgeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
	homeLogoColor  = color.NRGBA{R: 0x00, G: 0xc0, B: 0xc0, A: 0xff}
	awayLogoColor  = color.NRGBA{R: 0xc0, G: 0x80, B: 0x00, A: 0xff}
)

func testAssets() memStore {
	return memStore{
		"background_pub.png":   imaging.New(1080, 1350, bgColor),
		"background_story.png": imaging.New(1080, 1920, bgColor),
		AssetBanner:            imaging.New(510, 100, bannerColor),
		AssetBannerWin:         imaging.New(510, 100, winBanner),
		AssetBannerLoss:        imaging.New(510, 100, lossBanner),
		AssetBannerDraw:        imaging.New(510, 100, drawBanner),
		AssetBadgeHome:         imaging.New(40, 40, homeBadgeColor),
		AssetBadgeAway:         imaging.New(40, 40, awayBadgeColor),
		"logos/0775819.png":    imaging.New(100, 100, homeLogoColor),
		"logos/0771234.png":    imaging.New(200, 100, awayLogoColor),
	}
}

func testTables() config.Tables {
	return config.NewTables(
		map[string]string{"LIIDF": "Régional"},
		map[string]string{"RMC": "M18 G"},
		[]string{"GYMNASE DU CENTRE"},
	)
}

func testRecord(code, setScore, venue string) matches.MatchRecord {
	return matches.MatchRecord{
		Entity: "LIIDF", MatchCode: code, DateText: "2025-10-04", TimeText: "20:00",
		HomeLogo: "0775819", HomeTeam: "VEEC 1", AwayLogo: "0771234", AwayTeam: "MEAUX VB",
		SetScore: setScore, Score: "25/20,25/18,25/22", Venue: venue,
	}
}

type venueCalls struct {
	calls []string
	info  *matches.VenueInfo
}

func (v *venueCalls) ResolveVenue(_ context.Context, matchCode, entityCode string) *matches.VenueInfo {
	v.calls = append(v.calls, matchCode+"/"+entityCode)
	return v.info
}

func newTestEngine(t *testing.T, venues matches.VenueResolver, qr string) *Engine {
	t.Helper()
	fonts, err := DefaultFontSet()
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(Options{
		Assets:   testAssets(),
		Fonts:    fonts,
		Tables:   testTables(),
		Venues:   venues,
		ClubName: "VEEC",
		QRText:   qr,
	})
}

func rgba(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func countColor(im *image.RGBA, r image.Rectangle, c color.NRGBA) int {
	want := rgba(c)
	n := 0
	r = r.Intersect(im.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if im.RGBAAt(x, y) == want {
				n++
			}
		}
	}
	return n
}

// rowGeometry returns the pixel positions of the first row for the pub format.
func rowGeometry() (LayoutState, Layout) {
	return newLayoutState(defaultLayout, DefaultFormats()["pub"]), defaultLayout
}

func TestComposePlanningRow(t *testing.T) {
	venues := &venueCalls{info: &matches.VenueInfo{Name: "GYMNASE DU CENTRE", Street: "1 rue du stade", PostalCode: "77100", City: "Meaux"}}
	e := newTestEngine(t, venues, "")

	im, err := e.Compose(context.Background(), []matches.MatchRecord{testRecord("RMC012", "", "GYMNASE DU CENTRE")}, matches.FilterSpec{}, "Week-end", "pub", Planning{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	st, l := rowGeometry()

	if got := im.RGBAAt(st.ipx(l.BannerX)+10, st.Banner+5); got != rgba(bannerColor) {
		t.Errorf("banner pixel: got %v", got)
	}
	if got := im.RGBAAt(st.ipx(l.HomeLogoX+l.LogoW/2), st.Logos+st.ipx(l.LogoH/2)); got != rgba(homeLogoColor) {
		t.Errorf("home logo pixel: got %v", got)
	}
	if got := im.RGBAAt(st.ipx(l.AwayLogoX+l.LogoW/2), st.Logos+st.ipx(l.LogoH/2)); got != rgba(awayLogoColor) {
		t.Errorf("away logo pixel: got %v", got)
	}
	badge := image.Rect(st.ipx(l.BadgeX), st.Badge, st.ipx(l.BadgeX+l.BadgeHeight), st.Badge+st.ipx(l.BadgeHeight))
	if n := countColor(im, badge, homeBadgeColor); n < badge.Dx()*badge.Dy()/2 {
		t.Errorf("home badge pixels: %d", n)
	}
	if n := countColor(im, badge, awayBadgeColor); n != 0 {
		t.Errorf("away badge drawn on a home match: %d pixels", n)
	}
	if len(venues.calls) != 1 || venues.calls[0] != "RMC012/LIIDF" {
		t.Errorf("venue calls: %v", venues.calls)
	}

	// team names and the venue block leave ink on the banner
	names := image.Rect(st.ipx(l.BannerX), st.Names-10, st.ipx(l.BannerX+l.BannerWidth), st.Names+10)
	if n := countColor(im, names, nameColor); n == 0 {
		t.Error("team names not drawn")
	}
	middle := image.Rect(int(st.px(l.MiddleX-l.MiddleWidth/2)), st.DateScore-15, int(st.px(l.MiddleX+l.MiddleWidth/2)), st.Venue+int(3*st.px(l.VenueLineGap)))
	if n := countColor(im, middle, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}); n == 0 {
		t.Error("date and venue block not drawn")
	}
}

func TestComposePlanningAwayBadge(t *testing.T) {
	venues := &venueCalls{info: &matches.VenueInfo{Name: "SALLE DES FETES", City: "Provins"}}
	e := newTestEngine(t, venues, "")

	im, err := e.Compose(context.Background(), []matches.MatchRecord{testRecord("RMC013", "", "SALLE DES FETES")}, matches.FilterSpec{}, "", "pub", Planning{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	st, l := rowGeometry()
	badge := image.Rect(st.ipx(l.BadgeX), st.Badge, st.ipx(l.BadgeX+l.BadgeHeight), st.Badge+st.ipx(l.BadgeHeight))
	if n := countColor(im, badge, awayBadgeColor); n == 0 {
		t.Error("away badge not drawn")
	}
}

func TestComposeMissingVenueKeepsRows(t *testing.T) {
	venues := &venueCalls{}
	e := newTestEngine(t, venues, "")

	recs := []matches.MatchRecord{testRecord("RMC012", "", "X"), testRecord("RMC014", "", "Y")}
	im, err := e.Compose(context.Background(), recs, matches.FilterSpec{}, "", "pub", Planning{})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(venues.calls) != 2 {
		t.Fatalf("venue calls: %v", venues.calls)
	}
	st, l := rowGeometry()
	second := st.Advance()
	for i, s := range []LayoutState{st, second} {
		if got := im.RGBAAt(s.ipx(l.BannerX)+10, s.Banner+5); got != rgba(bannerColor) {
			t.Errorf("row %d banner pixel: got %v", i, got)
		}
	}
}

func TestComposeResults(t *testing.T) {
	tests := []struct {
		setScore string
		banner   color.NRGBA
		text     color.NRGBA
	}{
		{"3/0", winBanner, winColor},
		{"1/3", lossBanner, lossColor},
		{"2/2", drawBanner, unknownColor},
		{"", drawBanner, unknownColor},
	}
	for _, tt := range tests {
		t.Run(tt.setScore, func(t *testing.T) {
			venues := &venueCalls{}
			e := newTestEngine(t, venues, "")
			im, err := e.Compose(context.Background(), []matches.MatchRecord{testRecord("RMC012", tt.setScore, "")}, matches.FilterSpec{}, "", "pub", Results{})
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			st, l := rowGeometry()
			if got := im.RGBAAt(st.ipx(l.BannerX)+10, st.Banner+5); got != rgba(tt.banner) {
				t.Errorf("banner pixel: got %v", got)
			}
			middle := image.Rect(int(st.px(l.MiddleX-l.MiddleWidth/2)), st.DateScore-30, int(st.px(l.MiddleX+l.MiddleWidth/2)), st.DateScore+30)
			if n := countColor(im, middle, tt.text); n == 0 {
				t.Error("outcome text not drawn in its color")
			}
			score := image.Rect(int(st.px(l.MiddleX-l.MiddleWidth/2)), st.Venue-20, int(st.px(l.MiddleX+l.MiddleWidth/2)), st.Venue+20)
			if tt.setScore != "" && countColor(im, score, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) == 0 {
				t.Error("score not drawn")
			}
			if len(venues.calls) != 0 {
				t.Errorf("results mode resolved venues: %v", venues.calls)
			}
		})
	}
}

func TestComposeNoRowsEqualsTitleOnly(t *testing.T) {
	e := newTestEngine(t, &venueCalls{}, "")

	empty, err := e.Compose(context.Background(), nil, matches.FilterSpec{}, "Week-end de matchs", "story", Planning{})
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := e.Compose(context.Background(), []matches.MatchRecord{testRecord("RMC012", "", "")}, matches.FilterSpec{Categories: []string{"2FC"}}, "Week-end de matchs", "story", Planning{})
	if err != nil {
		t.Fatal(err)
	}
	if string(empty.Pix) != string(filtered.Pix) {
		t.Error("canvas with every record filtered out differs from the title-only canvas")
	}
	if n := countColor(empty, empty.Bounds(), bannerColor); n != 0 {
		t.Errorf("banner pixels on an empty composition: %d", n)
	}
	if n := countColor(empty, image.Rect(0, 0, 1080, 400), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}); n == 0 {
		t.Error("title not drawn")
	}
}

func TestComposeErrors(t *testing.T) {
	e := newTestEngine(t, &venueCalls{}, "")

	if _, err := e.Compose(context.Background(), nil, matches.FilterSpec{}, "", "poster", Planning{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("unknown format: got %v", err)
	}

	rec := testRecord("RMC012", "3/0", "")
	rec.AwayLogo = "0000000"
	if _, err := e.Compose(context.Background(), []matches.MatchRecord{rec}, matches.FilterSpec{}, "", "pub", Results{}); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("missing logo: got %v", err)
	}
}

func TestComposeQRCorner(t *testing.T) {
	e := newTestEngine(t, nil, "https://veec.example/resultats")
	im, err := e.Compose(context.Background(), nil, matches.FilterSpec{}, "", "pub", Planning{})
	if err != nil {
		t.Fatal(err)
	}
	st, l := rowGeometry()
	size, margin := st.ipx(l.QRWidth), st.ipx(l.QRMargin)
	corner := image.Rect(1080-size-margin, 1350-size-margin, 1080-margin, 1350-margin)
	if n := countColor(im, corner, bgColor); n != 0 {
		t.Errorf("qr area still shows %d background pixels", n)
	}
	if n := countColor(im, corner, color.NRGBA{A: 0xff}); n == 0 {
		t.Error("no dark qr modules")
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]string{
		"planning": "planning",
		"results":  "results",
		"RESULTS":  "results",
		"":         "planning",
		"calendar": "planning",
	}
	for in, want := range tests {
		if got := ParseMode(in).Name(); got != want {
			t.Errorf("ParseMode(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLayoutStateAdvance(t *testing.T) {
	st, l := rowGeometry()
	next := st.Advance()
	step := l.RowStep * st.Scale
	if next.Banner-st.Banner != step || next.Names-st.Names != step || next.Venue-st.Venue != step || next.Badge-st.Badge != step {
		t.Errorf("lanes advanced unevenly: %+v -> %+v", st, next)
	}
	// banner assets are 510x100, so one row of banner is shorter than the step
	if bannerH := st.ipx(l.BannerWidth) * 100 / 510; bannerH > step {
		t.Errorf("rows overlap: banner %d > step %d", bannerH, step)
	}
}

func TestFormatsWithOverrides(t *testing.T) {
	formats := FormatsWithOverrides(map[string]config.FormatConfig{
		"story":  {Scale: 3},
		"square": {Background: "background_square.png"},
	})
	if f := formats["story"]; f.Scale != 3 || f.Background != "background_story.png" {
		t.Errorf("story: %+v", f)
	}
	sq, ok := formats["square"]
	if !ok {
		t.Fatal("square format missing")
	}
	if sq.Name != "square" || sq.Background != "background_square.png" || sq.StartY != formats["pub"].StartY {
		t.Errorf("square: %+v", sq)
	}
	if got := FormatNames(formats); len(got) != 3 || got[0] != "pub" || got[1] != "square" || got[2] != "story" {
		t.Errorf("names: %v", got)
	}
}

func TestComposeStopsWhenContextDone(t *testing.T) {
	venues := &venueCalls{}
	e := newTestEngine(t, venues, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs := []matches.MatchRecord{testRecord("RMC012", "", "X"), testRecord("RMC014", "", "Y")}
	if _, err := e.Compose(ctx, recs, matches.FilterSpec{}, "", "pub", Planning{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if len(venues.calls) != 0 {
		t.Errorf("venues resolved after cancellation: %v", venues.calls)
	}
}

func TestComposePassesContextToVenues(t *testing.T) {
	type key struct{}
	var got []interface{}
	venues := matches.VenueResolverFunc(func(ctx context.Context, matchCode, entityCode string) *matches.VenueInfo {
		got = append(got, ctx.Value(key{}))
		return nil
	})
	e := newTestEngine(t, venues, "")

	ctx := context.WithValue(context.Background(), key{}, "request")
	if _, err := e.Compose(ctx, []matches.MatchRecord{testRecord("RMC012", "", "X")}, matches.FilterSpec{}, "", "pub", Planning{}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "request" {
		t.Errorf("resolver context values: %v", got)
	}
}
