package api

import (
	"context"
	"fmt"

	"github.com/veec/commgen/internal/config"
	"github.com/veec/commgen/internal/ffvb"
	imagepkg "github.com/veec/commgen/internal/image"
	"github.com/veec/commgen/internal/matches"
)

// MatchSource returns the raw export rows of a season.
type MatchSource interface {
	FetchMatches(ctx context.Context, season string) ([]matches.MatchRecord, error)
}

// Server holds what the handlers need to build an image for a request.
type Server struct {
	Config  config.Config
	Seasons config.Seasons
	Matches MatchSource
	Venues  matches.VenueResolver
	Assets  imagepkg.AssetStore
	Fonts   *imagepkg.FontSet
	Formats map[string]imagepkg.FormatProfile
}

// New wires the federation client, the asset directory and the fonts from the configuration.
func New(cfg config.Config, seasons config.Seasons) (*Server, error) {
	fonts, err := imagepkg.LoadFontSet(cfg.Paths.FontRegular, cfg.Paths.FontBold)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	client := &ffvb.Client{
		CSVURL:        cfg.FFVB.CSVURL,
		AddressPDFURL: cfg.FFVB.AddressPDFURL,
		PlanningURL:   cfg.FFVB.PlanningURL,
		ClubID:        cfg.Club.ID,
	}
	return &Server{
		Config:  cfg,
		Seasons: seasons,
		Matches: client,
		Venues:  client,
		Assets:  imagepkg.DirStore{Root: cfg.Paths.Assets},
		Fonts:   fonts,
		Formats: imagepkg.FormatsWithOverrides(cfg.Formats),
	}, nil
}

// Engine builds the composition engine for a season; category labels come from the season file
// when it knows the season, from the configuration otherwise.
func (s *Server) Engine(season string) *imagepkg.Engine {
	return imagepkg.NewEngine(imagepkg.Options{
		Assets:   s.Assets,
		Fonts:    s.Fonts,
		Tables:   s.Config.Tables(s.Seasons.Labels(season)),
		Venues:   s.Venues,
		Formats:  s.Formats,
		ClubName: s.Config.Club.Name,
		QRText:   s.Config.Club.URL,
	})
}
