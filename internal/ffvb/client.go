package ffvb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/veec/commgen/internal/matches"
	"github.com/veec/commgen/internal/util"
)

var (
	// ErrNotPDF is returned when the venue sheet endpoint answers with something else than a PDF.
	ErrNotPDF = errors.New("response is not a pdf")
	// ErrVenueNotFound is returned when the PDF has no recognizable venue block.
	ErrVenueNotFound = errors.New("venue block not found")
)

// VenueTimeout bounds one venue sheet download and parse.
const VenueTimeout = 15 * time.Second

var debugLogging atomic.Bool

// SetDebugLogging enables or disables request logging inside the ffvb package.
func SetDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

func logDebug(format string, args ...interface{}) {
	if debugLogging.Load() {
		log.Printf(format, args...)
	}
}

// Client talks to the federation results site.
type Client struct {
	CSVURL        string
	AddressPDFURL string
	PlanningURL   string
	ClubID        string
}

// FetchMatches downloads the season export of the club. The body is Latin-1.
func (c *Client) FetchMatches(ctx context.Context, season string) ([]matches.MatchRecord, error) {
	form := url.Values{
		"cnclub":      {c.ClubID},
		"cal_saison":  {season},
		"typ_edition": {"E"},
		"type":        {"RES"},
	}
	resp, err := util.PostForm(ctx, c.CSVURL, form)
	if err != nil {
		return nil, fmt.Errorf("fetch matches %s: %w", season, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch matches %s: status %d", season, resp.StatusCode)
	}
	body := charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(resp.Body))
	recs, err := matches.ParseCSV(body)
	if err != nil {
		return nil, fmt.Errorf("fetch matches %s: %w", season, err)
	}
	logDebug("fetched %d rows for season %s", len(recs), season)
	return recs, nil
}

// ResolveVenue implements matches.VenueResolver: any failure is logged and reported as nil.
// Each lookup is bounded by VenueTimeout on top of ctx.
func (c *Client) ResolveVenue(ctx context.Context, matchCode, entityCode string) *matches.VenueInfo {
	ctx, cancel := context.WithTimeout(ctx, VenueTimeout)
	defer cancel()
	v, err := c.FetchVenue(ctx, matchCode, entityCode)
	if err != nil {
		log.Printf("venue for match %s: %v", matchCode, err)
		return nil
	}
	return v
}

// FetchVenue downloads the match sheet PDF and extracts the venue block.
func (c *Client) FetchVenue(ctx context.Context, matchCode, entityCode string) (*matches.VenueInfo, error) {
	form := url.Values{"codmatch": {matchCode}, "codent": {entityCode}}
	resp, err := util.PostForm(ctx, c.AddressPDFURL, form)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("match sheet: status %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.ContentType, "application/pdf") {
		return nil, fmt.Errorf("%w: %q", ErrNotPDF, resp.ContentType)
	}
	text, err := pdfText(resp.Body)
	if err != nil {
		return nil, err
	}
	v := ParseVenue(text)
	if v == nil {
		return nil, ErrVenueNotFound
	}
	logDebug("venue for %s: %s, %s %s", matchCode, v.Name, v.PostalCode, v.City)
	return v, nil
}
