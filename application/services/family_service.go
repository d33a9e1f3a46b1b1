package services

import (
	"context"

	"go.uber.org/zap"

	"nasab-backend/application/ports"
	"nasab-backend/domain/events"
	"nasab-backend/domain/family"
)

// FamilyService orchestrates graph mutations with their side effects:
// advisory persistence, event publication, metrics and cache invalidation.
// The in-memory graph is authoritative; a failed write to the backing
// store degrades the mutation to local-only instead of failing it.
type FamilyService struct {
	graph     *family.Graph
	repo      ports.FamilyRepository
	publisher ports.EventPublisher
	cache     ports.Cache
	metrics   ports.MetricsRecorder
	logger    *zap.Logger
}

// NewFamilyService creates a new family service
func NewFamilyService(
	graph *family.Graph,
	repo ports.FamilyRepository,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *FamilyService {
	return &FamilyService{
		graph:     graph,
		repo:      repo,
		publisher: publisher,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}
}

// FamilyStats summarizes the stored collection for the dashboard.
type FamilyStats struct {
	FamilyID    string `json:"familyId"`
	FamilyName  string `json:"familyName"`
	Members     int    `json:"members"`
	Males       int    `json:"males"`
	Females     int    `json:"females"`
	Deceased    int    `json:"deceased"`
	Generations int    `json:"generations"`
}

// Family returns a consistent snapshot of the whole aggregate.
func (s *FamilyService) Family(ctx context.Context) *family.FamilyData {
	return s.graph.Snapshot()
}

// GetPerson returns a copy of the stored person, or nil when absent.
func (s *FamilyService) GetPerson(id string) *family.Person {
	return s.graph.Get(id)
}

// CreatePerson inserts a person into the graph and fires the surrounding
// side effects. The returned bool reports whether the backing store
// accepted the change.
func (s *FamilyService) CreatePerson(ctx context.Context, p *family.Person) (*family.Person, bool, error) {
	created, err := s.graph.Create(p)
	if err != nil {
		return nil, false, err
	}

	s.metrics.IncrementCounter(ctx, "PersonCreated", 1)
	s.afterMutation(ctx, events.NewPersonCreated(s.graph.FamilyID(), created.ID, created.Name))
	persisted := s.persist(ctx)

	return created, persisted, nil
}

// UpdatePerson replaces a stored record, reconciling relationship diffs.
func (s *FamilyService) UpdatePerson(ctx context.Context, p *family.Person) (*family.Person, bool, error) {
	updated, err := s.graph.Update(p)
	if err != nil {
		return nil, false, err
	}

	s.metrics.IncrementCounter(ctx, "PersonUpdated", 1)
	s.afterMutation(ctx, events.NewPersonUpdated(s.graph.FamilyID(), updated.ID))
	persisted := s.persist(ctx)

	return updated, persisted, nil
}

// DeletePerson removes a person and every reference to them.
func (s *FamilyService) DeletePerson(ctx context.Context, id string) (bool, error) {
	if err := s.graph.Delete(id); err != nil {
		return false, err
	}

	s.metrics.IncrementCounter(ctx, "PersonDeleted", 1)
	s.afterMutation(ctx, events.NewPersonDeleted(s.graph.FamilyID(), id))
	persisted := s.persist(ctx)

	return persisted, nil
}

// ImportPeople ingests a batch and re-synchronizes symmetric edges across
// the entire collection.
func (s *FamilyService) ImportPeople(ctx context.Context, people []*family.Person) ([]*family.Person, bool, error) {
	inserted, err := s.graph.ImportBatch(people)
	if err != nil {
		return nil, false, err
	}

	s.metrics.IncrementCounter(ctx, "PeopleImported", float64(len(inserted)))
	s.afterMutation(ctx, events.NewFamilyImported(s.graph.FamilyID(), len(inserted)))
	persisted := s.persist(ctx)

	return inserted, persisted, nil
}

// ListFamilies returns summaries of every family in the backing store.
// The loaded aggregate is substituted for its stored summary so the
// listing reflects local-only mutations too.
func (s *FamilyService) ListFamilies(ctx context.Context) ([]ports.FamilySummary, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	local := ports.FamilySummary{
		ID:         s.graph.FamilyID(),
		FamilyName: s.graph.Snapshot().FamilyName,
		RootID:     s.graph.RootID(),
		Members:    s.graph.Len(),
	}
	for i := range summaries {
		if summaries[i].ID == local.ID {
			summaries[i] = local
			return summaries, nil
		}
	}
	return append(summaries, local), nil
}

// Stats computes dashboard counters over a snapshot.
func (s *FamilyService) Stats(ctx context.Context) FamilyStats {
	snapshot := s.graph.Snapshot()

	stats := FamilyStats{
		FamilyID:   snapshot.ID,
		FamilyName: snapshot.FamilyName,
		Members:    len(snapshot.People),
	}
	for _, p := range snapshot.People {
		switch p.Gender {
		case family.GenderMale:
			stats.Males++
		case family.GenderFemale:
			stats.Females++
		}
		if p.Deceased() {
			stats.Deceased++
		}
	}

	if rootID := s.graph.RootID(); rootID != "" {
		stats.Generations = family.NewProjector(snapshot).Project(rootID).Depth()
	}

	s.metrics.RecordGauge(ctx, "FamilyMembers", float64(stats.Members))
	return stats
}

// CheckConsistency audits the symmetry invariants; used by the readiness
// endpoint and tests.
func (s *FamilyService) CheckConsistency() error {
	return s.graph.CheckSymmetry()
}

// afterMutation flushes memoized projections and publishes the domain
// event. Both are best-effort.
func (s *FamilyService) afterMutation(ctx context.Context, event events.DomainEvent) {
	s.cache.Flush(ctx)

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}

// persist writes the current snapshot to the backing store. A failure is
// logged and reported to the caller as persisted=false; the local mutation
// stands either way.
func (s *FamilyService) persist(ctx context.Context) bool {
	if err := s.repo.Save(ctx, s.graph.Snapshot()); err != nil {
		s.metrics.IncrementCounter(ctx, "PersistenceFailure", 1)
		s.logger.Warn("backing store write failed; continuing on local state",
			zap.String("familyID", s.graph.FamilyID()),
			zap.Error(err),
		)
		return false
	}
	return true
}
