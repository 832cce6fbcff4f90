package staticdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/aoe4analyze/aoe4world"
	"github.com/domino14/aoe4analyze/config"
)

var (
	ErrCacheMissing = errors.New("static data cache not found")
	ErrCacheStale   = errors.New("static data cache is stale")
)

// Sources are the download locations of the three datasets.
type Sources struct {
	Units        string
	Buildings    string
	Technologies string
}

// Store reads and refreshes the cache file at Path.
type Store struct {
	Path    string
	MaxAge  time.Duration
	Sources Sources
	Client  *aoe4world.Client

	now func() time.Time
}

// NewStore creates a store from configuration.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		Path:   cfg.CachePath(),
		MaxAge: cfg.CacheMaxAge,
		Sources: Sources{
			Units:        cfg.UnitsURL,
			Buildings:    cfg.BuildingsURL,
			Technologies: cfg.TechnologiesURL,
		},
		Client: aoe4world.NewClient(cfg.HTTPTimeout, cfg.FetchAttempts),
	}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// ReadCache returns the cached data if it is younger than MaxAge. It returns
// ErrCacheMissing if there is no cache file, and ErrCacheStale if the cache
// is too old or its timestamp cannot be read.
func (s *Store) ReadCache() (*Cache, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrCacheMissing
	} else if err != nil {
		return nil, err
	}
	c := &Cache{}
	if err := json.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.Path, err)
	}
	age, err := c.Age(s.clock())
	if err != nil {
		return nil, fmt.Errorf("%w: bad fetchedAt %q", ErrCacheStale, c.FetchedAt)
	}
	if age >= s.MaxAge {
		return nil, fmt.Errorf("%w: fetched %s ago", ErrCacheStale, age.Round(time.Second))
	}
	return c, nil
}

// Load returns the cached data, refreshing it first if it is missing,
// unreadable or stale.
func (s *Store) Load(ctx context.Context) (*Cache, error) {
	c, err := s.ReadCache()
	if err == nil {
		log.Debug().Str("path", s.Path).Msg("static-data-cache-hit")
		return c, nil
	}
	log.Debug().Err(err).Str("path", s.Path).Msg("static-data-cache-miss")
	return s.Refresh(ctx)
}

// Refresh downloads all three datasets and rewrites the cache.
func (s *Store) Refresh(ctx context.Context) (*Cache, error) {
	c, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.write(c); err != nil {
		return nil, err
	}
	log.Info().Str("path", s.Path).Int("units", len(c.Units)).
		Int("buildings", len(c.Buildings)).Int("technologies", len(c.Technologies)).
		Msg("static-data-refreshed")
	return c, nil
}

func (s *Store) fetch(ctx context.Context) (*Cache, error) {
	c := &Cache{}
	g, gctx := errgroup.WithContext(ctx)
	get := func(url string, into any) {
		g.Go(func() error {
			b, err := s.Client.Get(gctx, url, nil)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(b, into); err != nil {
				return fmt.Errorf("decoding %s: %w", url, err)
			}
			return nil
		})
	}
	get(s.Sources.Units, &c.Units)
	get(s.Sources.Buildings, &c.Buildings)
	get(s.Sources.Technologies, &c.Technologies)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	c.FetchedAt = s.clock().UTC().Format(timeLayout)
	return c, nil
}

func (s *Store) write(c *Cache) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, b, 0o644)
}
