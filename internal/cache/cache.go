package cache

import (
	"context"
	"time"

	"cashops/backend/internal/domain"
)

// DashboardCache holds short-lived dashboard snapshots per manager. The
// dashboard is a read-only projection, so snapshot staleness within the TTL
// is acceptable.
type DashboardCache interface {
	Get(ctx context.Context, key string) (*domain.DashboardResponse, bool, error)
	Set(ctx context.Context, key string, value *domain.DashboardResponse, ttl time.Duration) error
}

type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ string) (*domain.DashboardResponse, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *domain.DashboardResponse, _ time.Duration) error {
	return nil
}
