package metro

import (
	"time"

	"github.com/jusunglee/metro-go/internal/models"
)

// Client answers route and station queries over a loaded network.
// Implementations are safe for concurrent use.
type Client interface {
	// FindPath returns the cheapest route between two stations. ok is false
	// when a station is unknown or no route connects them.
	FindPath(start, end string) (path *models.Path, ok bool)

	LineStations() map[string][]string
	Lines() []string

	Stats() Stats
}

// Stats describes the loaded network
type Stats struct {
	Lines    int       `json:"lines"`
	Stations int       `json:"stations"`
	Links    int       `json:"links"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Config holds configuration for the metro client
type Config struct {
	Sources      []string
	FetchTimeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Sources:      []string{"data/map.json"},
		FetchTimeout: 30 * time.Second,
	}
}
