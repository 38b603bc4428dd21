package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/jstittsworth/fpl-proxy/internal/models"
)

// Cache keys of the two tracked upstream resources.
const (
	BootstrapCacheKey = "bootstrap-static"
	FixturesCacheKey  = "fixtures-future"
)

// Upstream is the FPL API as seen by the data service.
type Upstream interface {
	FetchBootstrap(ctx context.Context) (*models.Bootstrap, error)
	FetchFixtures(ctx context.Context) ([]models.Fixture, error)
}

// FPLDataSource serves the two upstream resources, cached or not.
type FPLDataSource interface {
	Bootstrap(ctx context.Context) (*models.Bootstrap, error)
	Fixtures(ctx context.Context) ([]models.Fixture, error)
}

// FPLDataService owns one staleness cache per upstream resource. It is built once
// at startup and shared by every handler.
type FPLDataService struct {
	upstream  Upstream
	bootstrap *StalenessCache[*models.Bootstrap]
	fixtures  *StalenessCache[[]models.Fixture]
	logger    *logrus.Logger
}

func NewFPLDataService(upstream Upstream, ttl time.Duration, logger *logrus.Logger) *FPLDataService {
	return &FPLDataService{
		upstream:  upstream,
		bootstrap: NewStalenessCache[*models.Bootstrap](BootstrapCacheKey, ttl, logger),
		fixtures:  NewStalenessCache[[]models.Fixture](FixturesCacheKey, ttl, logger),
		logger:    logger,
	}
}

func (s *FPLDataService) Bootstrap(ctx context.Context) (*models.Bootstrap, error) {
	bootstrap, err := s.bootstrap.GetOrRefresh(ctx, s.upstream.FetchBootstrap)
	if err != nil {
		return nil, fmt.Errorf("failed to load bootstrap: %w", err)
	}
	return bootstrap, nil
}

func (s *FPLDataService) Fixtures(ctx context.Context) ([]models.Fixture, error) {
	fixtures, err := s.fixtures.GetOrRefresh(ctx, s.upstream.FetchFixtures)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}
	return fixtures, nil
}

// CacheStatus reports both caches, bootstrap first.
func (s *FPLDataService) CacheStatus() []CacheSnapshot {
	return []CacheSnapshot{s.bootstrap.Snapshot(), s.fixtures.Snapshot()}
}

// LoadBootstrapAndFixtures fetches both resources concurrently. A failure of one does
// not cancel the other, so its cache still gets refreshed; the first error is returned.
func LoadBootstrapAndFixtures(ctx context.Context, data FPLDataSource) (*models.Bootstrap, []models.Fixture, error) {
	var (
		bootstrap *models.Bootstrap
		fixtures  []models.Fixture
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		bootstrap, err = data.Bootstrap(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		fixtures, err = data.Fixtures(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return bootstrap, fixtures, nil
}
