package imagepkg

import (
	"context"
	"fmt"
	"image"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/matches"
)

// Options configures an Engine. Zero Fonts, Formats and Layout take the defaults.
type Options struct {
	Assets   AssetStore
	Fonts    *FontSet
	Tables   config.Tables
	Venues   matches.VenueResolver
	Formats  map[string]FormatProfile
	Layout   *Layout
	ClubName string
	// QRText, when set, is encoded as a QR code in the bottom-right corner.
	QRText string
}

// Engine composes match images. It holds no per-request state and can be shared.
type Engine struct {
	assets    AssetStore
	fonts     *FontSet
	formatter matches.Formatter
	tables    config.Tables
	venues    matches.VenueResolver
	formats   map[string]FormatProfile
	layout    Layout
	qrText    string
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		assets:    opts.Assets,
		fonts:     opts.Fonts,
		formatter: matches.NewFormatter(opts.Tables, opts.ClubName),
		tables:    opts.Tables,
		venues:    opts.Venues,
		formats:   opts.Formats,
		layout:    defaultLayout,
		qrText:    opts.QRText,
	}
	if e.formats == nil {
		e.formats = DefaultFormats()
	}
	if e.fonts == nil {
		// the embedded Go fonts always parse
		e.fonts, _ = DefaultFontSet()
	}
	if opts.Layout != nil {
		e.layout = *opts.Layout
	}
	return e
}

// Matches filters the records and derives their display strings, in input order.
func (e *Engine) Matches(recs []matches.MatchRecord, spec matches.FilterSpec) []matches.Match {
	var out []matches.Match
	for _, rec := range recs {
		if !matches.Accept(rec, spec, e.tables) {
			continue
		}
		out = append(out, e.formatter.Format(rec))
	}
	return out
}

// Compose draws the title and one row per accepted record onto the format's background.
// Asset and format errors abort the composition; missing venues only blank the address.
// Rows are not limited: an oversupply runs past the bottom of the background.
// ctx is handed to the venue resolver; once it is done no further row is drawn and its error is returned.
func (e *Engine) Compose(ctx context.Context, recs []matches.MatchRecord, spec matches.FilterSpec, title, format string, mode Mode) (*image.RGBA, error) {
	f, err := resolveFormat(e.formats, format)
	if err != nil {
		return nil, err
	}
	if mode == nil {
		mode = Planning{}
	}
	bg, err := e.assets.Load(f.Background)
	if err != nil {
		return nil, fmt.Errorf("background for %s: %w", f.Name, err)
	}

	canvas := NewCanvas(bg)
	st := newLayoutState(e.layout, f)
	fonts := e.fonts.session()

	if title != "" {
		DrawCenteredText(canvas, title, st.px(e.layout.TitleWidth), float64(canvas.Width())/2,
			float64(st.ipx(f.TitleY)), fonts.Bold(st.px(e.layout.TitleSize)), TextStyle{StrokeWidth: 2})
	}

	row := &rowCompositor{
		ctx:    ctx,
		canvas: canvas,
		assets: e.assets,
		fonts:  fonts,
		layout: e.layout,
		venues: e.venues,
		mode:   mode,
	}
	n := 0
	for _, m := range e.Matches(recs, spec) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logDebug("%s row %d: %s %s vs %s", mode.Name(), n, m.Record.MatchCode, m.Record.HomeTeam, m.Record.AwayTeam)
		if err := row.compose(m, st); err != nil {
			return nil, err
		}
		st = st.Advance()
		n++
	}

	if e.qrText != "" {
		if err := e.placeQR(canvas, st); err != nil {
			return nil, err
		}
	}
	logDebug("composed %s/%s: %d rows", f.Name, mode.Name(), n)
	return canvas.Image(), nil
}

func (e *Engine) placeQR(c *Canvas, st LayoutState) error {
	size := st.ipx(e.layout.QRWidth)
	qr, err := GenerateQRImage(e.qrText, size)
	if err != nil {
		return err
	}
	margin := st.ipx(e.layout.QRMargin)
	PasteFixedWidth(c, qr, c.Width()-size-margin, c.Height()-size-margin, size)
	return nil
}
