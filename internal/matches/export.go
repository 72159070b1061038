package matches

import "strings"

// ExportCaption renders the text that accompanies a generated image, one line per match.
func ExportCaption(title string, ms []Match, results bool) string {
	lines := []string{}
	if title != "" {
		lines = append(lines, "# "+title)
	}
	for _, m := range ms {
		r := m.Record
		var line string
		if results {
			line = m.CategoryLabel + " · " + r.HomeTeam + " " + m.ScoreText + " " + r.AwayTeam
		} else {
			line = m.DateLabel + " · " + m.CategoryLabel + " · " + r.HomeTeam + " vs " + r.AwayTeam
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return strings.Join(lines, "\n")
}
