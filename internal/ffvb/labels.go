package ffvb

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/veec/commgen/internal/config"
)

var youthCategory = regexp.MustCompile(`^[MF]?\d{1,2}$`)

var genderSuffix = map[string]string{
	"M": "G", "MASC": "G", "MASCULIN": "G",
	"F": "F", "FEM": "F", "FEMININ": "F",
	"MIXTE": "X", "X": "X",
}

// Normalize upper-cases s and drops accents and any other non-ASCII rune.
func Normalize(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToUpper(strings.TrimSpace(out))
}

// BuildLabel derives the short team label (SM, SF, SVA, M15G, LX, ...) of a poule.
func BuildLabel(typ, genre, category string) string {
	t, g, c := Normalize(typ), Normalize(genre), Normalize(category)
	suffix := genderSuffix[g]

	if t == "VOLLEY-ASSIS" {
		if c == "SENIOR" {
			return "SVA"
		}
		if youthCategory.MatchString(c) {
			return c + "VA" + suffix
		}
		return "VA"
	}

	if c == "SENIOR" {
		if t == "BEACH-VOLLEY" || t == "BEACH" || t == "VOLLEY BEACH" {
			switch suffix {
			case "G":
				return "SMB"
			case "F":
				return "SFB"
			}
			return "SXB"
		}
		switch suffix {
		case "G":
			return "SM"
		case "F":
			return "SF"
		}
		return "SX"
	}

	if youthCategory.MatchString(c) {
		return c + suffix
	}
	if strings.Contains(c, "LOISIR") {
		return "L" + suffix
	}
	if c == "" {
		return "UNK"
	}
	return c
}

func detectType(u string) string {
	switch {
	case strings.Contains(u, "BEACH"):
		return "Beach-Volley"
	case strings.Contains(u, "ASSIS"):
		return "Volley-Assis"
	}
	return "Volley-Ball"
}

func detectGender(u string) string {
	switch {
	case strings.Contains(u, "MASC"):
		return "Masculin"
	case strings.Contains(u, "FEM"), strings.Contains(u, "FÉM"):
		return "Féminin"
	}
	return "Mixte"
}

func detectCategory(u string) string {
	if strings.Contains(u, "SENIOR") {
		return "Sénior"
	}
	for _, cat := range []string{"M11", "M13", "M15", "M18", "M21"} {
		if strings.Contains(u, cat) {
			return cat
		}
	}
	if strings.Contains(u, "LOISIR") {
		return "Loisir"
	}
	return "Sénior"
}

func detectLevel(u string) string {
	switch {
	case strings.Contains(u, "CHAMPIONNAT DE FRANCE"):
		return "Championnat de France"
	case strings.Contains(u, "COUPE DE FRANCE"):
		return "Coupe de France"
	case strings.Contains(u, "REG"):
		return "Championnat Régional"
	case strings.Contains(u, "DEP"):
		return "Championnat Départemental"
	case strings.Contains(u, "LIB"):
		return "Championnat Loisir Compet'Lib"
	}
	return "Championnat Départemental"
}

// DescribePoule splits a "CODE - title" planning line and classifies it.
func DescribePoule(line string) (string, config.Poule) {
	code, title := line, ""
	if i := strings.Index(line, " - "); i >= 0 {
		code, title = line[:i], line[i+3:]
	}
	code, title = strings.TrimSpace(code), strings.TrimSpace(title)

	u := strings.ToUpper(line)
	p := config.Poule{
		Titre:    title,
		Type:     detectType(u),
		Genre:    detectGender(u),
		Category: detectCategory(u),
		Niveau:   detectLevel(u),
	}
	p.Label = BuildLabel(p.Type, p.Genre, p.Category)
	return code, p
}
