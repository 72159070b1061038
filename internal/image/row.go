package imagepkg

import (
	"context"
	"fmt"
	"image/color"

	"golang.org/x/image/font"

	"github.com/veec/commgen/internal/matches"
)

var nameColor = color.NRGBA{R: 0x10, G: 0x24, B: 0x4a, A: 0xff}

// rowCompositor draws one match row onto the canvas. It lives for one Compose call.
type rowCompositor struct {
	ctx    context.Context
	canvas *Canvas
	assets AssetStore
	fonts  *FontSet
	layout Layout
	venues matches.VenueResolver
	mode   Mode
}

// compose draws the banner, labels, logos, team names and the mode block at the lanes of st.
func (r *rowCompositor) compose(m matches.Match, st LayoutState) error {
	l := r.layout
	rec := m.Record

	if err := r.placeFixedWidth(r.mode.banner(m), st.ipx(l.BannerX), st.Banner, st.ipx(l.BannerWidth)); err != nil {
		return err
	}

	labelFace := r.fonts.Bold(st.px(l.LabelSize))
	r.text(m.EntityLabel, st.px(l.LabelWidth), st.px(l.LabelX), float64(st.Entity), labelFace, TextStyle{StrokeWidth: 1})
	r.text(m.CategoryLabel, st.px(l.LabelWidth), st.px(l.LabelX), float64(st.Category), labelFace, TextStyle{StrokeWidth: 1})

	nameFace := r.fonts.Bold(st.px(l.NameSize))
	if err := r.placeFit(LogoAsset(rec.HomeLogo), st.ipx(l.HomeLogoX), st.Logos, st.ipx(l.LogoW), st.ipx(l.LogoH)); err != nil {
		return err
	}
	r.text(rec.HomeTeam, st.px(l.NameWidth), st.px(l.HomeNameX), float64(st.Names), nameFace, TextStyle{Fill: nameColor})

	if err := r.placeFit(LogoAsset(rec.AwayLogo), st.ipx(l.AwayLogoX), st.Logos, st.ipx(l.LogoW), st.ipx(l.LogoH)); err != nil {
		return err
	}
	r.text(rec.AwayTeam, st.px(l.NameWidth), st.px(l.AwayNameX), float64(st.Names), nameFace, TextStyle{Fill: nameColor})

	if err := r.mode.drawBlock(r, m, st); err != nil {
		return fmt.Errorf("match %s: %w", rec.MatchCode, err)
	}
	return nil
}

func (r *rowCompositor) text(s string, maxWidth, x, y float64, face font.Face, style TextStyle) {
	DrawCenteredText(r.canvas, s, maxWidth, x, y, face, style)
}

func (r *rowCompositor) placeFit(name string, x, y, w, h int) error {
	img, err := r.assets.Load(name)
	if err != nil {
		return err
	}
	PasteFitBox(r.canvas, img, x, y, w, h)
	return nil
}

func (r *rowCompositor) placeFixedWidth(name string, x, y, width int) error {
	img, err := r.assets.Load(name)
	if err != nil {
		return err
	}
	PasteFixedWidth(r.canvas, img, x, y, width)
	return nil
}

func (r *rowCompositor) placeFixedHeight(name string, x, y, height int) error {
	img, err := r.assets.Load(name)
	if err != nil {
		return err
	}
	PasteFixedHeight(r.canvas, img, x, y, height)
	return nil
}
