package service

import (
	"errors"
	"testing"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

func draftCatalog(t *testing.T) *entities.Catalog {
	t.Helper()
	c, err := entities.NewCatalog([]entities.Station{
		{StationID: 10, StationName: "放出", Reading: "はなてん", LineName: "JR学研都市線", Location: "大阪府大阪市", WrongReadings: []string{"ほうしゅつ", "はなで"}},
		{StationID: 20, StationName: "十三", Reading: "じゅうそう", LineName: "阪急神戸線", Location: "大阪府大阪市", WrongReadings: []string{"じゅうさん"}},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	return c
}

// TestDraftSetFieldOverlaysCatalog verifies edits show up in rows without touching the catalog.
func TestDraftSetFieldOverlaysCatalog(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	if _, err := d.SetField(c, 20, FieldLineName, "阪急京都線"); err != nil {
		t.Fatalf("set field: %v", err)
	}

	rows := d.Rows(c)
	if len(rows) != 2 || rows[0].StationID != 10 || rows[1].StationID != 20 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[1].LineName != "阪急京都線" {
		t.Fatalf("expected edited line name, got %q", rows[1].LineName)
	}

	orig, _ := c.ByID(20)
	if orig.LineName != "阪急神戸線" {
		t.Fatalf("catalog was modified: %q", orig.LineName)
	}
}

// TestDraftSetWrongReadingsSplitsAndTrims verifies the comma separated form.
func TestDraftSetWrongReadingsSplitsAndTrims(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	s, err := d.SetField(c, 10, FieldWrongReadings, " ほうしゅつ ,はなでん,  はなと")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	want := []string{"ほうしゅつ", "はなでん", "はなと"}
	if len(s.WrongReadings) != len(want) {
		t.Fatalf("expected %v, got %v", want, s.WrongReadings)
	}
	for i := range want {
		if s.WrongReadings[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, s.WrongReadings)
		}
	}
}

// TestDraftSetWrongReading verifies single distractor edits and index checks.
func TestDraftSetWrongReading(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	s, err := d.SetWrongReading(c, 10, 1, "はなてい")
	if err != nil {
		t.Fatalf("set wrong reading: %v", err)
	}
	if s.WrongReadings[1] != "はなてい" || s.WrongReadings[0] != "ほうしゅつ" {
		t.Fatalf("unexpected wrong readings %v", s.WrongReadings)
	}

	orig, _ := c.ByID(10)
	if orig.WrongReadings[1] != "はなで" {
		t.Fatalf("catalog distractor was modified: %v", orig.WrongReadings)
	}

	if _, err := d.SetWrongReading(c, 10, 5, "x"); !errors.Is(err, ErrWrongReadingIndex) {
		t.Fatalf("expected index error, got %v", err)
	}
}

// TestDraftErrors verifies unknown stations and fields are rejected.
func TestDraftErrors(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	if _, err := d.SetField(c, 99, FieldReading, "x"); !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("expected station not found, got %v", err)
	}
	if _, err := d.SetField(c, 10, "stationId", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected unknown field, got %v", err)
	}
	if len(d.Edited(c)) != 0 {
		t.Fatalf("failed edits must not create drafts")
	}
}

// TestDraftEditedReportsIssues verifies validation issues of edited rows.
func TestDraftEditedReportsIssues(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	if _, err := d.SetField(c, 20, FieldReading, "じゅうさん"); err != nil {
		t.Fatalf("set field: %v", err)
	}

	edited := d.Edited(c)
	if len(edited) != 1 || edited[0].Station.StationID != 20 {
		t.Fatalf("expected one edited row, got %+v", edited)
	}
	if len(edited[0].Issues) != 1 || edited[0].Issues[0] != "a wrong reading equals the reading" {
		t.Fatalf("unexpected issues %v", edited[0].Issues)
	}
}

// TestDraftDiscard verifies all edits are dropped.
func TestDraftDiscard(t *testing.T) {
	c := draftCatalog(t)
	d := NewDraftService()

	if _, err := d.SetField(c, 10, FieldStationName, "はなてん駅"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	d.Discard()

	if len(d.Edited(c)) != 0 {
		t.Fatalf("expected no edits after discard")
	}
	if d.Rows(c)[0].StationName != "放出" {
		t.Fatalf("expected unedited name after discard, got %q", d.Rows(c)[0].StationName)
	}
}
