package services

import (
	"context"

	"go.uber.org/zap"

	"nasab-backend/application/ports"
	"nasab-backend/domain/family"
	pkgerrors "nasab-backend/pkg/errors"
)

// hierarchyCacheTTL bounds staleness for cached projections; mutations
// flush the cache anyway, so this is a safety net.
const hierarchyCacheTTL = 300

// HierarchyService serves rooted tree projections over the family graph,
// memoizing them per root until the next mutation.
type HierarchyService struct {
	graph   *family.Graph
	cache   ports.Cache
	metrics ports.MetricsRecorder
	logger  *zap.Logger
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(
	graph *family.Graph,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *HierarchyService {
	return &HierarchyService{
		graph:   graph,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Project returns the displayable tree rooted at rootID. An empty rootID
// falls back to the family's default root.
func (s *HierarchyService) Project(ctx context.Context, rootID string) (*family.HierarchyNode, error) {
	if rootID == "" {
		rootID = s.graph.RootID()
	}
	if rootID == "" {
		return nil, pkgerrors.NewNotFoundError("family root")
	}

	cacheKey := "hierarchy:" + rootID
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if node, ok := cached.(*family.HierarchyNode); ok {
			return node, nil
		}
	}

	projector := family.NewProjector(s.graph.Snapshot())
	node := projector.Project(rootID)
	if node == nil {
		return nil, pkgerrors.NewNotFoundError("person " + rootID)
	}

	if trips := projector.CycleGuardTrips(); trips > 0 {
		s.metrics.IncrementCounter(ctx, "HierarchyCycleGuardTrips", float64(trips))
		s.logger.Warn("hierarchy projection truncated cyclic branches",
			zap.String("rootID", rootID),
			zap.Int("trips", trips),
		)
	}

	if err := s.cache.Set(ctx, cacheKey, node, hierarchyCacheTTL); err != nil {
		s.logger.Debug("hierarchy cache set failed", zap.Error(err))
	}

	return node, nil
}
