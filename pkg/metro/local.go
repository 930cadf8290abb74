package metro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/internal/network"
	"github.com/jusunglee/metro-go/internal/routing"
	"github.com/jusunglee/metro-go/internal/store"
)

// LocalClient implements the Client interface over an in-memory network.
// The network is built once by NewLocal and never changes afterwards.
type LocalClient struct {
	store    *store.Store
	loadedAt time.Time
}

// NewLocal loads every configured source and builds the network
func NewLocal(ctx context.Context, config Config, logger *slog.Logger) (*LocalClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loader := network.NewLoader(config.FetchTimeout, logger)
	s, err := loader.Load(ctx, config.Sources)
	if err != nil {
		return nil, err
	}

	c := NewFromStore(s)
	logger.Info("Network loaded",
		"lines", len(s.Lines()),
		"stations", s.StationCount(),
		"links", s.LinkCount())
	return c, nil
}

// NewFromStore wraps an already built store. The store must not be
// modified afterwards.
func NewFromStore(s *store.Store) *LocalClient {
	return &LocalClient{
		store:    s,
		loadedAt: time.Now(),
	}
}

// Lazy returns a function that builds the client on its first call. Every
// caller, concurrent or not, gets the same client or the same error.
func Lazy(ctx context.Context, config Config, logger *slog.Logger) func() (*LocalClient, error) {
	return sync.OnceValues(func() (*LocalClient, error) {
		return NewLocal(ctx, config, logger)
	})
}

func (c *LocalClient) FindPath(start, end string) (*models.Path, bool) {
	return routing.FindPath(c.store, start, end)
}

func (c *LocalClient) LineStations() map[string][]string {
	return c.store.LineStations()
}

func (c *LocalClient) Lines() []string {
	return c.store.Lines()
}

func (c *LocalClient) Stats() Stats {
	return Stats{
		Lines:    len(c.store.Lines()),
		Stations: c.store.StationCount(),
		Links:    c.store.LinkCount(),
		LoadedAt: c.loadedAt,
	}
}
