package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Poule describes one competition pool the club is engaged in for a season.
type Poule struct {
	Titre    string `yaml:"titre" json:"titre"`
	Type     string `yaml:"type" json:"type"`
	Genre    string `yaml:"genre" json:"genre"`
	Category string `yaml:"category" json:"category"`
	Niveau   string `yaml:"niveau" json:"niveau"`
	Label    string `yaml:"label" json:"label"`
	Nom      string `yaml:"nom,omitempty" json:"nom,omitempty"`
}

// Season holds the poules of a season keyed by poule code.
// Error is set when the season could not be scraped; it is stored as "_error".
type Season struct {
	Poules map[string]Poule
	Error  string
}

// Seasons is keyed by normalized season ("2025-2026").
type Seasons map[string]Season

type seasonsFile struct {
	Saisons Seasons `yaml:"saisons"`
}

// NormalizeSeason turns "2025/2026" into the "2025-2026" key form.
func NormalizeSeason(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "/", "-")
}

// LoadSeasons reads a saisons.yaml file. A missing file yields an empty set.
func LoadSeasons(path string) (Seasons, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Seasons{}, nil
		}
		return nil, fmt.Errorf("load seasons: read %q: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Seasons{}, nil
	}
	var f seasonsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load seasons: parse %q: %w", path, err)
	}
	if f.Saisons == nil {
		f.Saisons = Seasons{}
	}
	return f.Saisons, nil
}

// Save writes the seasons in the saisons.yaml layout.
func (s Seasons) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seasonsFile{Saisons: s}); err != nil {
		return fmt.Errorf("encode seasons: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode seasons: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write seasons %q: %w", path, err)
	}
	return nil
}

// Labels returns poule code -> short label for a season, or nil when the season is unknown.
func (s Seasons) Labels(season string) map[string]string {
	sz, ok := s[NormalizeSeason(season)]
	if !ok || len(sz.Poules) == 0 {
		return nil
	}
	out := make(map[string]string, len(sz.Poules))
	for code, p := range sz.Poules {
		out[code] = p.Label
	}
	return out
}

func (s *Season) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("season: expected mapping, got kind %d", value.Kind)
	}
	s.Poules = map[string]Poule{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if key == "_error" {
			s.Error = value.Content[i+1].Value
			continue
		}
		var p Poule
		if err := value.Content[i+1].Decode(&p); err != nil {
			return fmt.Errorf("season: poule %q: %w", key, err)
		}
		s.Poules[key] = p
	}
	return nil
}

func (s Season) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	if s.Error != "" {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "_error"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: s.Error},
		)
	}
	codes := make([]string, 0, len(s.Poules))
	for code := range s.Poules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		var v yaml.Node
		if err := v.Encode(s.Poules[code]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: code}, &v)
	}
	return node, nil
}
