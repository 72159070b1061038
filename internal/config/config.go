package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration (config.yaml).
type Config struct {
	FFVB        FFVBConfig              `yaml:"ffvb"`
	Club        ClubConfig              `yaml:"club"`
	Championnat ChampionnatConfig       `yaml:"championnat"`
	Paths       PathsConfig             `yaml:"paths"`
	Formats     map[string]FormatConfig `yaml:"formats,omitempty"`
}

type FFVBConfig struct {
	CSVURL        string `yaml:"csv_url"`
	AddressPDFURL string `yaml:"address_pdf_url"`
	PlanningURL   string `yaml:"planning_url"`
}

type ClubConfig struct {
	Name   string `yaml:"name"`
	ID     string `yaml:"id"`
	Saison string `yaml:"saison"`
	// URL is encoded as a QR code in the bottom corner of generated images when set.
	URL string `yaml:"url,omitempty"`
}

type ChampionnatConfig struct {
	// Entities maps the recognized entity codes to their display label.
	Entities map[string]string `yaml:"entities"`
	// Categories is the fallback category label map used when no season file is loaded.
	Categories map[string]string `yaml:"categories"`
	HomeVenues []string          `yaml:"home_venues"`
}

type PathsConfig struct {
	Assets      string `yaml:"assets"`
	FontRegular string `yaml:"font_regular,omitempty"`
	FontBold    string `yaml:"font_bold,omitempty"`
	Seasons     string `yaml:"seasons"`
}

// FormatConfig overrides the built-in output format profiles.
type FormatConfig struct {
	Background string `yaml:"background"`
	Scale      int    `yaml:"scale"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		FFVB: FFVBConfig{
			CSVURL:        "https://www.ffvbbeach.org/ffvbapp/resu/vbspo_calendrier_export.php",
			AddressPDFURL: "https://www.ffvbbeach.org/ffvbapp/resu/vbspo_fiche_salle.php",
			PlanningURL:   "https://www.ffvbbeach.org/ffvbapp/resu/planning_club_class.php",
		},
		Club: ClubConfig{
			Name:   "VEEC",
			ID:     "0775819",
			Saison: "2025/2026",
		},
		Championnat: ChampionnatConfig{
			Entities: map[string]string{
				"LIIDF":   "Championnat Régional",
				"PTIDF77": "Championnat Départemental",
			},
			Categories: map[string]string{
				"1MB": "SM1 - Masculin",
				"2FC": "SF1 - Féminin",
			},
		},
		Paths: PathsConfig{
			Assets:  "assets",
			Seasons: "saisons.yaml",
		},
	}
}

// Load reads a yaml config file. Sections left empty in the file take their default value;
// a missing or empty file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config: open %q: %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return cfg, fmt.Errorf("load config: read %q: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return cfg, fmt.Errorf("load config: parse %q: %w", path, err)
	}
	cfg = parsed.withDefaults()

	for name, f := range cfg.Formats {
		if f.Scale < 0 {
			return cfg, fmt.Errorf("load config: format %q: scale must be >= 1, got %d", name, f.Scale)
		}
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	def := Default()
	if c.FFVB.CSVURL == "" {
		c.FFVB.CSVURL = def.FFVB.CSVURL
	}
	if c.FFVB.AddressPDFURL == "" {
		c.FFVB.AddressPDFURL = def.FFVB.AddressPDFURL
	}
	if c.FFVB.PlanningURL == "" {
		c.FFVB.PlanningURL = def.FFVB.PlanningURL
	}
	if c.Club.Name == "" {
		c.Club.Name = def.Club.Name
	}
	if c.Club.ID == "" {
		c.Club.ID = def.Club.ID
	}
	if c.Club.Saison == "" {
		c.Club.Saison = def.Club.Saison
	}
	if c.Championnat.Entities == nil {
		c.Championnat.Entities = def.Championnat.Entities
	}
	if c.Championnat.Categories == nil {
		c.Championnat.Categories = def.Championnat.Categories
	}
	if c.Paths.Assets == "" {
		c.Paths.Assets = def.Paths.Assets
	}
	if c.Paths.Seasons == "" {
		c.Paths.Seasons = def.Paths.Seasons
	}
	return c
}

// Tables builds the immutable lookup tables from the configuration.
// categories takes precedence over the configured fallback labels when non-nil.
func (c Config) Tables(categories map[string]string) Tables {
	if categories == nil {
		categories = c.Championnat.Categories
	}
	return NewTables(c.Championnat.Entities, categories, c.Championnat.HomeVenues)
}
