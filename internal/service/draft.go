package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/domain/entities"
)

var (
	ErrStationNotFound   = errors.New("station not found")
	ErrUnknownField      = errors.New("unknown station field")
	ErrWrongReadingIndex = errors.New("wrong reading index out of range")
)

// Editable station fields.
const (
	FieldStationName   = "stationName"
	FieldReading       = "reading"
	FieldLineName      = "lineName"
	FieldLocation      = "location"
	FieldWrongReadings = "wrongReadings"
)

// DraftRow is an edited station together with the problems it would have as a question.
type DraftRow struct {
	Station entities.Station `json:"station"`
	Issues  []string         `json:"issues"`
}

// DraftService keeps local edits of catalog stations in memory.
// Edits are never written back and do not affect quiz sessions.
type DraftService struct {
	mu    sync.RWMutex
	edits map[int]entities.Station
}

// NewDraftService creates an empty draft.
func NewDraftService() *DraftService {
	return &DraftService{edits: make(map[int]entities.Station)}
}

// Rows returns the catalog in order with edited stations replaced by their drafts.
func (d *DraftService) Rows(c *entities.Catalog) []entities.Station {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows := c.All()
	for i, s := range rows {
		if e, ok := d.edits[s.StationID]; ok {
			rows[i] = e.Clone()
		}
	}
	return rows
}

// Edited returns only the edited stations, in catalog order, with their issues.
func (d *DraftService) Edited(c *entities.Catalog) []DraftRow {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]DraftRow, 0, len(d.edits))
	for _, s := range c.All() {
		e, ok := d.edits[s.StationID]
		if !ok {
			continue
		}
		out = append(out, DraftRow{Station: e.Clone(), Issues: draftIssues(e)})
	}
	return out
}

// SetField changes one field of a station. wrongReadings takes a comma separated list.
func (d *DraftService) SetField(c *entities.Catalog, stationID int, field, value string) (entities.Station, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.draftOf(c, stationID)
	if err != nil {
		return entities.Station{}, err
	}

	switch field {
	case FieldStationName:
		s.StationName = value
	case FieldReading:
		s.Reading = value
	case FieldLineName:
		s.LineName = value
	case FieldLocation:
		s.Location = value
	case FieldWrongReadings:
		s.WrongReadings = splitReadings(value)
	default:
		return entities.Station{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	d.edits[stationID] = s
	return s.Clone(), nil
}

// SetWrongReading replaces the wrong reading at index.
func (d *DraftService) SetWrongReading(c *entities.Catalog, stationID, index int, value string) (entities.Station, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, err := d.draftOf(c, stationID)
	if err != nil {
		return entities.Station{}, err
	}
	if index < 0 || index >= len(s.WrongReadings) {
		return entities.Station{}, fmt.Errorf("%w: %d of %d", ErrWrongReadingIndex, index, len(s.WrongReadings))
	}

	s.WrongReadings[index] = value
	d.edits[stationID] = s
	return s.Clone(), nil
}

// Discard drops every edit.
func (d *DraftService) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.edits = make(map[int]entities.Station)
}

// draftOf returns a private copy of the station to edit. Callers hold d.mu.
func (d *DraftService) draftOf(c *entities.Catalog, stationID int) (entities.Station, error) {
	if e, ok := d.edits[stationID]; ok {
		return e.Clone(), nil
	}
	s, ok := c.ByID(stationID)
	if !ok {
		return entities.Station{}, fmt.Errorf("%w: %d", ErrStationNotFound, stationID)
	}
	return s, nil
}

func splitReadings(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func draftIssues(s entities.Station) []string {
	issues := []string{}
	if strings.TrimSpace(s.Reading) == "" {
		issues = append(issues, "reading is empty")
	}
	for _, w := range s.WrongReadings {
		if strings.TrimSpace(w) == "" {
			issues = append(issues, "a wrong reading is empty")
			break
		}
	}
	if err := s.Validate(); err != nil {
		switch {
		case errors.Is(err, entities.ErrNoDistractors):
			issues = append(issues, "no wrong readings")
		case errors.Is(err, entities.ErrAmbiguousReading):
			issues = append(issues, "a wrong reading equals the reading")
		}
	}
	return issues
}
