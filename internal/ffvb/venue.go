package ffvb

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/veec/commgen/internal/matches"
)

var (
	salleBlock  = regexp.MustCompile(`(?s)Salle\s*\n(.*?)(Sol\s*:|Arbitre\.s|$)`)
	addressLine = regexp.MustCompile(`(.+)\s(\d{5})\s(.+)`)
)

// ParseVenue extracts the venue from the text of a match sheet: the lines after "Salle"
// up to the floor or referee section. The first line is the venue name, the others hold
// "street postcode city". It returns nil when either part is missing.
func ParseVenue(text string) *matches.VenueInfo {
	m := salleBlock.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var lines []string
	for _, l := range strings.Split(m[1], "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	addr := addressLine.FindStringSubmatch(strings.Join(lines[1:], " "))
	if addr == nil {
		return nil
	}
	return &matches.VenueInfo{
		Name:       lines[0],
		Street:     strings.ToLower(strings.TrimSpace(addr[1])),
		PostalCode: addr[2],
		City:       strings.TrimSpace(addr[3]),
	}
}

// wordGap is the horizontal gap, as a fraction of the font size, above which two
// glyphs of a line belong to different words.
const wordGap = 0.15

// pdfText returns the text of every page, one line per baseline, top to bottom.
// The pdf package panics on some malformed files; that is reported as an error.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		writeLines(&sb, p.Content().Text)
	}
	return sb.String(), nil
}

// writeLines groups glyphs by baseline and orders them left to right. A space is inserted
// where the gap to the previous glyph is wider than wordGap, so words drawn by separate
// text operators stay apart.
func writeLines(sb *strings.Builder, glyphs []pdf.Text) {
	if len(glyphs) == 0 {
		return
	}
	sort.SliceStable(glyphs, func(i, j int) bool {
		yi, yj := math.Round(glyphs[i].Y), math.Round(glyphs[j].Y)
		if yi != yj {
			return yi > yj
		}
		return glyphs[i].X < glyphs[j].X
	})

	line := math.Round(glyphs[0].Y)
	started, space := false, false
	var end float64
	for _, g := range glyphs {
		if y := math.Round(g.Y); y != line {
			sb.WriteByte('\n')
			line, started, space = y, false, false
		}
		if strings.TrimSpace(g.S) == "" {
			space = started
			continue
		}
		if started && g.X-end > wordGap*math.Max(g.FontSize, 1) {
			space = true
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteString(g.S)
		end = g.X + g.W
		started = true
	}
	sb.WriteByte('\n')
}
