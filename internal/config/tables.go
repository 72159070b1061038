package config

// NullLabel is returned for codes missing from a label table.
const NullLabel = "null"

var weekdays = map[string]string{
	"Monday":    "Lundi",
	"Tuesday":   "Mardi",
	"Wednesday": "Mercredi",
	"Thursday":  "Jeudi",
	"Friday":    "Vendredi",
	"Saturday":  "Samedi",
	"Sunday":    "Dimanche",
}

var months = map[string]string{
	"January":   "janvier",
	"February":  "février",
	"March":     "mars",
	"April":     "avril",
	"May":       "mai",
	"June":      "juin",
	"July":      "juillet",
	"August":    "août",
	"September": "septembre",
	"October":   "octobre",
	"November":  "novembre",
	"December":  "décembre",
}

// Tables bundles the fixed lookup data used while composing an image.
// The maps are copied on construction and never exposed, so a Tables value is safe to share.
type Tables struct {
	entities   map[string]string
	categories map[string]string
	homeVenues map[string]struct{}
}

func NewTables(entities, categories map[string]string, homeVenues []string) Tables {
	t := Tables{
		entities:   make(map[string]string, len(entities)),
		categories: make(map[string]string, len(categories)),
		homeVenues: make(map[string]struct{}, len(homeVenues)),
	}
	for k, v := range entities {
		t.entities[k] = v
	}
	for k, v := range categories {
		t.categories[k] = v
	}
	for _, v := range homeVenues {
		t.homeVenues[v] = struct{}{}
	}
	return t
}

// Weekday translates an English weekday name. Unknown names are returned unchanged.
func (Tables) Weekday(name string) string {
	if v, ok := weekdays[name]; ok {
		return v
	}
	return name
}

// Month translates an English month name. Unknown names are returned unchanged.
func (Tables) Month(name string) string {
	if v, ok := months[name]; ok {
		return v
	}
	return name
}

func (t Tables) EntityLabel(code string) string {
	if v, ok := t.entities[code]; ok {
		return v
	}
	return NullLabel
}

func (t Tables) CategoryLabel(code string) string {
	if v, ok := t.categories[code]; ok {
		return v
	}
	return NullLabel
}

// IsRecognizedEntity reports whether matches of this entity are shown at all.
func (t Tables) IsRecognizedEntity(code string) bool {
	_, ok := t.entities[code]
	return ok
}

// IsHomeVenue is a case-sensitive membership test on the raw venue name.
func (t Tables) IsHomeVenue(venue string) bool {
	_, ok := t.homeVenues[venue]
	return ok
}

// Categories returns a copy of the category label map.
func (t Tables) Categories() map[string]string {
	out := make(map[string]string, len(t.categories))
	for k, v := range t.categories {
		out[k] = v
	}
	return out
}
