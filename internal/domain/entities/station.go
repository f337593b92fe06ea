// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog     = errors.New("catalog is empty")
	ErrDuplicateStation = errors.New("duplicate station id")
	ErrNoDistractors    = errors.New("station has no wrong readings")
	ErrAmbiguousReading = errors.New("wrong readings contain the correct reading")
)

// Station is one quiz record: a station name and how it is read.
type Station struct {
	StationID     int      `json:"stationId"`     // unique within the catalog
	StationName   string   `json:"stationName"`   // question prompt
	Reading       string   `json:"reading"`       // the single correct answer
	LineName      string   `json:"lineName"`      // railway line, display only
	Location      string   `json:"location"`      // prefecture and city, display only
	WrongReadings []string `json:"wrongReadings"` // distractors
}

// Clone returns a copy that shares no slices with s.
func (s Station) Clone() Station {
	c := s
	c.WrongReadings = append([]string(nil), s.WrongReadings...)
	return c
}

// Validate checks that the station can be asked as a quiz question.
func (s Station) Validate() error {
	if len(s.WrongReadings) == 0 {
		return fmt.Errorf("station %d: %w", s.StationID, ErrNoDistractors)
	}
	for _, w := range s.WrongReadings {
		if w == s.Reading {
			return fmt.Errorf("station %d: %w", s.StationID, ErrAmbiguousReading)
		}
	}
	return nil
}

// Catalog is an ordered, immutable collection of stations.
type Catalog struct {
	stations []Station
	byID     map[int]int
}

// NewCatalog validates stations and builds a catalog preserving their order.
func NewCatalog(stations []Station) (*Catalog, error) {
	if len(stations) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		stations: make([]Station, 0, len(stations)),
		byID:     make(map[int]int, len(stations)),
	}
	for _, s := range stations {
		if _, ok := c.byID[s.StationID]; ok {
			return nil, fmt.Errorf("station %d: %w", s.StationID, ErrDuplicateStation)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		c.byID[s.StationID] = len(c.stations)
		c.stations = append(c.stations, s.Clone())
	}

	return c, nil
}

// Len returns the number of stations.
func (c *Catalog) Len() int {
	return len(c.stations)
}

// At returns a copy of the station at position i.
func (c *Catalog) At(i int) Station {
	return c.stations[i].Clone()
}

// ByID returns a copy of the station with the given id.
func (c *Catalog) ByID(id int) (Station, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Station{}, false
	}
	return c.stations[i].Clone(), true
}

// All returns copies of all stations in catalog order.
func (c *Catalog) All() []Station {
	out := make([]Station, len(c.stations))
	for i, s := range c.stations {
		out[i] = s.Clone()
	}
	return out
}
