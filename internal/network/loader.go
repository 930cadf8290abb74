package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jusunglee/metro-go/internal/models"
	"github.com/jusunglee/metro-go/internal/store"
)

// ErrNoSources is returned when a loader is given nothing to read
var ErrNoSources = errors.New("no network sources configured")

// Loader reads network sources from disk or over HTTP
type Loader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a loader. Remote sources are fetched with the given
// timeout.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Load reads every source and builds a store from them. Sources are fetched
// and decoded concurrently but applied in the order given, so adjacency
// order only depends on the configuration.
func (l *Loader) Load(ctx context.Context, sources []string) (*store.Store, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	decoded := make([][]models.LineDescriptor, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			data, err := l.read(ctx, source)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", source, err)
			}
			lines, err := Decode(data, FormatOf(source))
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", source, err)
			}
			decoded[i] = lines
			l.logger.Info("Network source read", "source", source, "lines", len(lines))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := store.NewStore()
	for i, lines := range decoded {
		if err := Build(lines, s); err != nil {
			return nil, fmt.Errorf("invalid network in %s: %w", sources[i], err)
		}
	}
	return s, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return l.fetch(ctx, source)
	}
	return os.ReadFile(source)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
