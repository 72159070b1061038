package api

import (
	"bytes"
	"errors"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/veec/commgen/internal/config"
	imagepkg "github.com/veec/commgen/internal/image"
	"github.com/veec/commgen/internal/matches"
)

const defaultQRSize = 400

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// categories lists the poules of a season, or the configured labels when the season is not scraped.
func (s *Server) categories(c *gin.Context) {
	season := c.DefaultQuery("saison", s.Config.Club.Saison)
	if sn, ok := s.Seasons[config.NormalizeSeason(season)]; ok && sn.Error == "" {
		c.JSON(http.StatusOK, sn.Poules)
		return
	}
	out := map[string]config.Poule{}
	for code, label := range s.Config.Championnat.Categories {
		out[code] = config.Poule{Label: label}
	}
	c.JSON(http.StatusOK, out)
}

// imageRequest is the query shared by the image and caption endpoints.
type imageRequest struct {
	season string
	title  string
	format string
	mode   imagepkg.Mode
	filter matches.FilterSpec
}

func (s *Server) parseImageRequest(c *gin.Context) (imageRequest, bool) {
	filter, err := matches.NewFilterSpec(c.QueryArray("categories"), c.Query("date_start"), c.Query("date_end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return imageRequest{}, false
	}
	return imageRequest{
		season: c.DefaultQuery("saison", s.Config.Club.Saison),
		title:  c.Query("title"),
		format: c.DefaultQuery("format", "pub"),
		mode:   imagepkg.ParseMode(c.Query("mode")),
		filter: filter,
	}, true
}

func (s *Server) fetch(c *gin.Context, season string) ([]matches.MatchRecord, bool) {
	recs, err := s.Matches.FetchMatches(c.Request.Context(), season)
	if err != nil {
		log.Printf("fetch matches %s: %v", season, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return nil, false
	}
	return recs, true
}

// imageHandler renders the PNG for the query. The ETag is the xxhash of the body.
func (s *Server) imageHandler(c *gin.Context) {
	req, ok := s.parseImageRequest(c)
	if !ok {
		return
	}
	recs, ok := s.fetch(c, req.season)
	if !ok {
		return
	}

	out, err := s.Engine(req.season).Compose(c.Request.Context(), recs, req.filter, req.title, req.format, req.mode)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, imagepkg.ErrUnknownFormat) {
			status = http.StatusBadRequest
		}
		log.Printf("compose %s/%s: %v", req.format, req.mode.Name(), err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(buf.Bytes()), 16) + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if match := c.GetHeader("If-None-Match"); match != "" && strings.Contains(match, etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// captionHandler returns the text to post with the image of the same query.
func (s *Server) captionHandler(c *gin.Context) {
	req, ok := s.parseImageRequest(c)
	if !ok {
		return
	}
	recs, ok := s.fetch(c, req.season)
	if !ok {
		return
	}
	ms := s.Engine(req.season).Matches(recs, req.filter)
	_, results := req.mode.(imagepkg.Results)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(matches.ExportCaption(req.title, ms, results)))
}

// qr endpoint returns a PNG of a QR for "text" query param
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = s.Config.Club.URL
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	size := defaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
