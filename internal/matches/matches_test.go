package matches

import (
	"strings"
	"testing"
	"time"

	"github.com/veec/commgen/internal/config"
)

const sampleCSV = `Entité;Jo;Match;Date;Heure;EQA_no;EQA_nom;EQB_no;EQB_nom;Set;Score;Total;Salle
LIIDF;3;RMC012;2025-10-04;20:00;0775819;VEEC 1;0771234;MEAUX VB;3/1;25/20,18/25,25/22,25/19;;GYMNASE DU CENTRE
PTIDF77;2;2FC007;2025-10-05;00:00;0779999;PROVINS;0775819;VEEC 2;0/3;;;SALLE DES FETES
ZZZZ;1;RMC020;2025-10-05;15:00;0770001;A;0770002;B;;;;
`

func testTables() config.Tables {
	return config.NewTables(
		map[string]string{"LIIDF": "Régional", "PTIDF77": "Départemental"},
		map[string]string{"RMC": "M18 G"},
		[]string{"GYMNASE DU CENTRE"},
	)
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestParseCSVKeepsOrderAndHeader(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("records: got %d, want 4", len(recs))
	}
	if recs[0].DateText != HeaderDate {
		t.Errorf("header row should be kept, got date %q", recs[0].DateText)
	}
	r := recs[1]
	if r.Entity != "LIIDF" || r.MatchCode != "RMC012" || r.HomeTeam != "VEEC 1" || r.AwayLogo != "0771234" {
		t.Errorf("unexpected record: %+v", r)
	}
	if r.SetScore != "3/1" || r.Venue != "GYMNASE DU CENTRE" {
		t.Errorf("score/venue: %+v", r)
	}
	if recs[3].Venue != "" {
		t.Errorf("short row venue: got %q", recs[3].Venue)
	}
}

func TestAccept(t *testing.T) {
	tables := testTables()
	rec := MatchRecord{Entity: "LIIDF", MatchCode: "RMC012", DateText: "2025-10-04"}

	tests := []struct {
		name string
		rec  MatchRecord
		spec FilterSpec
		want bool
	}{
		{"no filters", rec, FilterSpec{}, true},
		{"header", MatchRecord{Entity: "LIIDF", MatchCode: "Match", DateText: "Date"}, FilterSpec{}, false},
		{"category match", rec, FilterSpec{Categories: []string{"2FC", "RMC"}}, true},
		{"category miss", rec, FilterSpec{Categories: []string{"2FC"}}, false},
		{"start bound inclusive", rec, FilterSpec{DateStart: day("2025-10-04")}, true},
		{"end bound inclusive", rec, FilterSpec{DateEnd: day("2025-10-04")}, true},
		{"before start", rec, FilterSpec{DateStart: day("2025-10-05")}, false},
		{"after end", rec, FilterSpec{DateEnd: day("2025-10-03")}, false},
		{"unknown entity", MatchRecord{Entity: "ZZZZ", MatchCode: "RMC012", DateText: "2025-10-04"}, FilterSpec{}, false},
		{"bad date", MatchRecord{Entity: "LIIDF", MatchCode: "RMC012", DateText: "soon"}, FilterSpec{}, false},
		{"french date layout", MatchRecord{Entity: "LIIDF", MatchCode: "RMC012", DateText: "04/10/2025"}, FilterSpec{DateStart: day("2025-10-04"), DateEnd: day("2025-10-04")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Accept(tt.rec, tt.spec, tables); got != tt.want {
				t.Errorf("Accept = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	recs, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	out := Filter(recs, FilterSpec{}, testTables())
	if len(out) != 2 {
		t.Fatalf("accepted: got %d, want 2", len(out))
	}
	if out[0].MatchCode != "RMC012" || out[1].MatchCode != "2FC007" {
		t.Errorf("order: %s, %s", out[0].MatchCode, out[1].MatchCode)
	}
}

func TestClassifyOutcome(t *testing.T) {
	tests := map[string]Outcome{
		"3/1":  OutcomeHomeWin,
		"1/3":  OutcomeAwayWin,
		"2/2":  OutcomeUndecided,
		"x/y":  OutcomeUndecided,
		"":     OutcomeUndecided,
		"3":    OutcomeUndecided,
		"3/0 ": OutcomeHomeWin,
	}
	for in, want := range tests {
		if got := ClassifyOutcome(in); got != want {
			t.Errorf("ClassifyOutcome(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[string]string{
		"11/9":    "11 - 9",
		"abc/def": "abc/def",
		"3/x":     "3/x",
		"":        "",
	}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%q) = %q, want %q", in, got, want)
		}
	}
	if got := FormatSetDetail("25/20, 18:25,bad"); got != "25 - 20, 18 - 25, bad" {
		t.Errorf("FormatSetDetail: got %q", got)
	}
}

func TestFormatter(t *testing.T) {
	f := NewFormatter(testTables(), "veec")

	m := f.Format(MatchRecord{
		Entity: "LIIDF", MatchCode: "RMC012", DateText: "2025-10-04", TimeText: "20:00",
		HomeTeam: "VEEC 1", AwayTeam: "MEAUX", SetScore: "3/1", Venue: "GYMNASE DU CENTRE",
	})
	if m.DateLabel != "Samedi 4 octobre 20:00" {
		t.Errorf("date label: got %q", m.DateLabel)
	}
	if m.EntityLabel != "Régional" || m.CategoryLabel != "M18 G" {
		t.Errorf("labels: %q %q", m.EntityLabel, m.CategoryLabel)
	}
	if !m.HomeCourt {
		t.Error("expected home court")
	}
	if m.Result() != ResultWin || m.ScoreText != "3 - 1" {
		t.Errorf("result %v score %q", m.Result(), m.ScoreText)
	}

	away := f.Format(MatchRecord{
		Entity: "LIIDF", MatchCode: "XYZ001", DateText: "2025-10-05", TimeText: "00:00",
		HomeTeam: "PROVINS", AwayTeam: "VEEC 2", SetScore: "3/0", Venue: "gymnase du centre",
	})
	if away.DateLabel != "Dimanche 5 octobre" {
		t.Errorf("date label without time: got %q", away.DateLabel)
	}
	if away.CategoryLabel != config.NullLabel {
		t.Errorf("unknown category: got %q", away.CategoryLabel)
	}
	if away.HomeCourt {
		t.Error("venue match must be case-sensitive")
	}
	if away.Result() != ResultLoss {
		t.Errorf("club away and home won: got %v", away.Result())
	}
	away.Outcome = OutcomeUndecided
	if away.Result() != ResultUnknown {
		t.Errorf("undecided: got %v", away.Result())
	}
}

func TestExportCaption(t *testing.T) {
	ms := []Match{
		{Record: MatchRecord{HomeTeam: "VEEC 1", AwayTeam: "MEAUX"}, DateLabel: "Samedi 4 octobre", CategoryLabel: "M18 G", ScoreText: "3 - 1"},
	}
	if got := ExportCaption("Week-end", ms, false); got != "# Week-end\nSamedi 4 octobre · M18 G · VEEC 1 vs MEAUX" {
		t.Errorf("planning caption: got %q", got)
	}
	if got := ExportCaption("", ms, true); got != "M18 G · VEEC 1 3 - 1 MEAUX" {
		t.Errorf("results caption: got %q", got)
	}
}

func TestNewFilterSpec(t *testing.T) {
	spec, err := NewFilterSpec([]string{"RMC, 2FC", "", "1MB"}, "2025-10-01", "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(spec.Categories, "|") != "RMC|2FC|1MB" {
		t.Errorf("categories: %q", spec.Categories)
	}
	if spec.DateStart == nil || !spec.DateStart.Equal(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date start: %v", spec.DateStart)
	}
	if spec.DateEnd != nil {
		t.Errorf("date end should be unbounded, got %v", spec.DateEnd)
	}

	if _, err := NewFilterSpec(nil, "", "04/10/2025"); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}
