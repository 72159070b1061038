package matches

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column positions in the federation export. Columns 1 and 11 are not used.
const (
	colEntity    = 0
	colMatchCode = 2
	colDate      = 3
	colTime      = 4
	colHomeLogo  = 5
	colHomeTeam  = 6
	colAwayLogo  = 7
	colAwayTeam  = 8
	colSetScore  = 9
	colScore     = 10
	colVenue     = 12
)

// LoadCSVFile reads a local UTF-8 export.
func LoadCSVFile(path string) ([]MatchRecord, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	recs, err := ParseCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return recs, nil
}

// ParseCSV reads ';'-delimited rows in input order. The header row is kept as a record;
// the filter is responsible for rejecting it.
func ParseCSV(r io.Reader) ([]MatchRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []MatchRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if isBlank(row) {
			continue
		}
		out = append(out, recordFromRow(row))
	}
	return out, nil
}

func recordFromRow(row []string) MatchRecord {
	get := func(idx int) string {
		if idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}
	return MatchRecord{
		Entity:    get(colEntity),
		MatchCode: get(colMatchCode),
		DateText:  get(colDate),
		TimeText:  get(colTime),
		HomeLogo:  get(colHomeLogo),
		HomeTeam:  get(colHomeTeam),
		AwayLogo:  get(colAwayLogo),
		AwayTeam:  get(colAwayTeam),
		SetScore:  get(colSetScore),
		Score:     get(colScore),
		Venue:     get(colVenue),
	}
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
