package imagepkg

import (
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// lineLeading is added to the glyph height of every wrapped line.
const lineLeading = 5

// TextStyle controls fill and outline of drawn text. Nil colors default to white fill, black stroke.
type TextStyle struct {
	Fill        color.Color
	StrokeWidth int
	StrokeFill  color.Color
}

// WrapText greedily packs words into lines no wider than maxWidth, measured with the
// context's current font face. Any whitespace, newlines included, separates words.
// A word wider than maxWidth on its own gets a line to itself; words are never split.
func WrapText(dc *gg.Context, text string, maxWidth float64) []string {
	var lines []string
	for _, l := range dc.WordWrap(strings.Join(strings.Fields(text), " "), maxWidth) {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// LineHeight is the height of the "Hg" glyph pair plus the fixed leading.
func LineHeight(face font.Face) int {
	h, _ := hgMetrics(face)
	return h + lineLeading
}

func hgMetrics(face font.Face) (height, ascent int) {
	b, _ := font.BoundString(face, "Hg")
	return (b.Max.Y - b.Min.Y).Ceil(), (-b.Min.Y).Ceil()
}

// DrawCenteredText wraps text to maxWidth and draws the block centered on (centerX, centerY),
// each line centered horizontally on its own. Empty text draws nothing.
func DrawCenteredText(c *Canvas, text string, maxWidth, centerX, centerY float64, face font.Face, style TextStyle) *Canvas {
	dc := c.dc
	dc.SetFontFace(face)
	measure := func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	}
	lines := WrapText(dc, text, maxWidth)
	if len(lines) == 0 {
		return c
	}

	glyphH, ascent := hgMetrics(face)
	lineH := glyphH + lineLeading
	top := math.Trunc(centerY - float64(len(lines)*lineH)/2)

	fill := style.Fill
	if fill == nil {
		fill = color.White
	}
	stroke := style.StrokeFill
	if stroke == nil {
		stroke = color.Black
	}

	for i, line := range lines {
		x := math.Trunc(centerX - measure(line)/2)
		y := top + float64(i*lineH+ascent)
		if sw := style.StrokeWidth; sw > 0 {
			dc.SetColor(stroke)
			for dy := -sw; dy <= sw; dy++ {
				for dx := -sw; dx <= sw; dx++ {
					if (dx == 0 && dy == 0) || dx*dx+dy*dy > sw*sw {
						continue
					}
					dc.DrawString(line, x+float64(dx), y+float64(dy))
				}
			}
		}
		dc.SetColor(fill)
		dc.DrawString(line, x, y)
	}
	return c
}
