package ffvb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/util"
)

// ParsePouleLines returns the "CODE - title" texts of the poule title cells of a planning page.
func ParsePouleLines(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse planning page: %w", err)
	}
	var lines []string
	doc.Find("td.titrepoule").Each(func(_ int, s *goquery.Selection) {
		txt := strings.Join(strings.Fields(s.Text()), " ")
		if strings.Contains(txt, " - ") {
			lines = append(lines, txt)
		}
	})
	return lines, nil
}

// FetchPoules downloads the club planning page of a season ("2025/2026") and returns its poule lines.
func (c *Client) FetchPoules(ctx context.Context, season string) ([]string, error) {
	q := url.Values{"cnclub": {c.ClubID}, "saison": {season}}
	body, err := util.GetBytes(ctx, c.PlanningURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch planning %s: %w", season, err)
	}
	return ParsePouleLines(bytes.NewReader(body))
}

// BuildSeasons scrapes every season. A season that fails is kept with its error message.
func (c *Client) BuildSeasons(ctx context.Context, seasons []string) config.Seasons {
	out := config.Seasons{}
	for _, season := range seasons {
		key := config.NormalizeSeason(season)
		lines, err := c.FetchPoules(ctx, season)
		if err != nil {
			log.Printf("season %s: %v", season, err)
			out[key] = config.Season{Error: fmt.Sprintf("%s fetch failed: %v", season, err)}
			continue
		}
		s := config.Season{Poules: map[string]config.Poule{}}
		for _, line := range lines {
			code, p := DescribePoule(line)
			s.Poules[code] = p
		}
		logDebug("season %s: %d poules", season, len(s.Poules))
		out[key] = s
	}
	return out
}
