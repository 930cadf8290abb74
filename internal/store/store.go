package store

import (
	"sort"

	"github.com/jusunglee/metro-go/internal/models"
)

// Store holds the station adjacency and the per-line station listing.
// It is filled once during startup and only read afterwards, so readers
// take no lock. Writes must finish before the store is shared.
type Store struct {
	links        map[string][]models.Link
	lineStations map[string][]string
	onLine       map[string]map[string]bool
	linkCount    int
}

// NewStore creates a new store instance
func NewStore() *Store {
	return &Store{
		links:        make(map[string][]models.Link),
		lineStations: make(map[string][]string),
		onLine:       make(map[string]map[string]bool),
	}
}

// AddLink appends an outgoing link to a station, creating its entry
func (s *Store) AddLink(station string, link models.Link) {
	s.links[station] = append(s.links[station], link)
	s.linkCount++
}

// AddStationToLine records that a station belongs to a line, keeping the
// order in which stations were first seen
func (s *Store) AddStationToLine(station, line string) {
	seen, ok := s.onLine[line]
	if !ok {
		seen = make(map[string]bool)
		s.onLine[line] = seen
	}
	if seen[station] {
		return
	}
	seen[station] = true
	s.lineStations[line] = append(s.lineStations[line], station)
}

// Links returns the outgoing links of a station. The second result is
// false for an unknown station.
func (s *Store) Links(station string) ([]models.Link, bool) {
	links, ok := s.links[station]
	return links, ok
}

// Has reports whether the station has an adjacency entry
func (s *Store) Has(station string) bool {
	_, ok := s.links[station]
	return ok
}

// LineStations returns line name -> ordered station names
func (s *Store) LineStations() map[string][]string {
	result := make(map[string][]string, len(s.lineStations))
	for line, stations := range s.lineStations {
		result[line] = append([]string(nil), stations...)
	}
	return result
}

// Lines returns all line names, sorted
func (s *Store) Lines() []string {
	lines := make([]string, 0, len(s.lineStations))
	for line := range s.lineStations {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

// StationCount returns the number of stations with an adjacency entry
func (s *Store) StationCount() int {
	return len(s.links)
}

// LinkCount returns the number of directed links
func (s *Store) LinkCount() int {
	return s.linkCount
}
