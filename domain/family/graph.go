package family

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	pkgerrors "nasab-backend/pkg/errors"
)

// Graph is the single source of truth for the people collection. Every
// parent/child and partner edge is mirrored on both endpoint records, and
// only the mutation methods below are allowed to touch relationship sets,
// so every caller gets identical symmetry guarantees.
//
// Mutations are serialized behind a write lock because each one performs a
// read-diff-write sequence across multiple records. Reads copy under the
// read lock so a projection never observes a half-applied mutation.
type Graph struct {
	mu     sync.RWMutex
	data   *FamilyData
	logger *zap.Logger
}

// NewGraph creates an empty family graph.
func NewGraph(familyID, familyName string, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graph{
		data: &FamilyData{
			ID:         familyID,
			FamilyName: familyName,
			People:     make(map[string]*Person),
		},
		logger: logger,
	}
}

// NewGraphFromData builds a graph around existing family data, normalizing
// every record and re-deriving symmetric edges so that data loaded from an
// external store starts out consistent.
func NewGraphFromData(data *FamilyData, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Graph{data: data.Clone(), logger: logger}
	if g.data.People == nil {
		g.data.People = make(map[string]*Person)
	}
	for _, p := range g.data.People {
		p.Normalize()
	}
	g.resyncLocked()
	return g
}

// FamilyID returns the id of the owning family aggregate.
func (g *Graph) FamilyID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.data.ID
}

// RootID returns the default display root, falling back to any stored
// person when none is set.
func (g *Graph) RootID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.data.RootID != "" {
		if _, ok := g.data.People[g.data.RootID]; ok {
			return g.data.RootID
		}
	}
	for id := range g.data.People {
		return id
	}
	return ""
}

// Len returns the number of stored people.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.data.People)
}

// Get returns a copy of the stored person, or nil when absent.
func (g *Graph) Get(id string) *Person {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.data.People[id].Clone()
}

// Snapshot returns a deep copy of the whole aggregate for consistent reads.
func (g *Graph) Snapshot() *FamilyData {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.data.Clone()
}

// Create inserts a new person and mirrors back-edges onto every referenced
// person that already exists. Ids referencing nobody are kept on the new
// record but produce no back-edge: AI- and user-entered graphs routinely
// arrive with forward references, so dangling ids are tolerated rather
// than rejected.
func (g *Graph) Create(p *Person) (*Person, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.data.People[p.ID]; exists {
		return nil, pkgerrors.NewConflictError(fmt.Sprintf("person %q already exists", p.ID))
	}

	stored := p.Clone()
	stored.Normalize()
	g.data.People[stored.ID] = stored

	g.linkLocked(stored)
	g.warnDangling(stored)

	if g.data.RootID == "" {
		g.data.RootID = stored.ID
	}

	return stored.Clone(), nil
}

// Update replaces the stored record after reconciling relationship diffs:
// ids dropped from a set lose their back-edge, ids added gain one when the
// referenced person exists. The reconciliation is computed before any
// record is touched, so it applies as a whole or not at all.
func (g *Graph) Update(p *Person) (*Person, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	old, exists := g.data.People[p.ID]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("person " + p.ID)
	}

	updated := p.Clone()
	updated.Normalize()

	// Drop back-edges for ids no longer referenced.
	for _, parentID := range old.ParentIDs {
		if !containsID(updated.ParentIDs, parentID) {
			if parent, ok := g.data.People[parentID]; ok {
				parent.ChildrenIDs = removeID(parent.ChildrenIDs, p.ID)
			}
		}
	}
	for _, childID := range old.ChildrenIDs {
		if !containsID(updated.ChildrenIDs, childID) {
			if child, ok := g.data.People[childID]; ok {
				child.ParentIDs = removeID(child.ParentIDs, p.ID)
			}
		}
	}
	for _, partnerID := range old.PartnerIDs {
		if !containsID(updated.PartnerIDs, partnerID) {
			if partner, ok := g.data.People[partnerID]; ok {
				partner.PartnerIDs = removeID(partner.PartnerIDs, p.ID)
			}
		}
	}

	g.data.People[updated.ID] = updated
	g.linkLocked(updated)
	g.warnDangling(updated)

	return updated.Clone(), nil
}

// Delete removes the record and purges its id from every remaining
// relationship set. The purge scans the whole collection instead of
// trusting the deleted record's own lists, which also heals any
// pre-existing asymmetry involving that id.
func (g *Graph) Delete(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.data.People[id]; !exists {
		return pkgerrors.NewNotFoundError("person " + id)
	}

	delete(g.data.People, id)

	for _, p := range g.data.People {
		p.ParentIDs = removeID(p.ParentIDs, id)
		p.ChildrenIDs = removeID(p.ChildrenIDs, id)
		p.PartnerIDs = removeID(p.PartnerIDs, id)
	}

	if g.data.RootID == id {
		g.data.RootID = ""
		for remaining := range g.data.People {
			g.data.RootID = remaining
			break
		}
	}

	return nil
}

// ImportBatch inserts all records first and then re-derives symmetric edges
// for the entire collection in one pass. Batch payloads (AI extraction,
// file import) reference each other freely, so the incremental per-call
// diff used by Create is not sufficient here.
func (g *Graph) ImportBatch(people []*Person) ([]*Person, error) {
	for _, p := range people {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	inserted := make([]*Person, 0, len(people))
	for _, p := range people {
		stored := p.Clone()
		stored.Normalize()
		g.data.People[stored.ID] = stored
		inserted = append(inserted, stored)
	}

	g.resyncLocked()

	if g.data.RootID == "" && len(inserted) > 0 {
		g.data.RootID = inserted[0].ID
	}

	out := make([]*Person, 0, len(inserted))
	for _, p := range inserted {
		out = append(out, p.Clone())
	}
	return out, nil
}

// SetRoot changes the default display root.
func (g *Graph) SetRoot(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.data.People[id]; !exists {
		return pkgerrors.NewNotFoundError("person " + id)
	}
	g.data.RootID = id
	return nil
}

// CheckSymmetry audits the mirrored-edge invariants across every stored
// pair and returns a descriptive error for the first violation found.
func (g *Graph) CheckSymmetry() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, p := range g.data.People {
		for _, childID := range p.ChildrenIDs {
			child, ok := g.data.People[childID]
			if !ok {
				continue // dangling, tolerated
			}
			if !containsID(child.ParentIDs, id) {
				return fmt.Errorf("asymmetric edge: %s lists child %s but is not among its parents", id, childID)
			}
		}
		for _, parentID := range p.ParentIDs {
			parent, ok := g.data.People[parentID]
			if !ok {
				continue
			}
			if !containsID(parent.ChildrenIDs, id) {
				return fmt.Errorf("asymmetric edge: %s lists parent %s but is not among its children", id, parentID)
			}
		}
		for _, partnerID := range p.PartnerIDs {
			partner, ok := g.data.People[partnerID]
			if !ok {
				continue
			}
			if !containsID(partner.PartnerIDs, id) {
				return fmt.Errorf("asymmetric edge: %s lists partner %s without the mirror", id, partnerID)
			}
		}
		if containsID(p.ParentIDs, id) || containsID(p.ChildrenIDs, id) || containsID(p.PartnerIDs, id) {
			return fmt.Errorf("self-relationship on %s", id)
		}
	}
	return nil
}

// linkLocked adds the mirrored back-edge on every referenced person that
// exists in the store. Caller holds the write lock.
func (g *Graph) linkLocked(p *Person) {
	for _, parentID := range p.ParentIDs {
		if parent, ok := g.data.People[parentID]; ok {
			parent.ChildrenIDs = addID(parent.ChildrenIDs, p.ID)
		}
	}
	for _, childID := range p.ChildrenIDs {
		if child, ok := g.data.People[childID]; ok {
			child.ParentIDs = addID(child.ParentIDs, p.ID)
		}
	}
	for _, partnerID := range p.PartnerIDs {
		if partner, ok := g.data.People[partnerID]; ok {
			partner.PartnerIDs = addID(partner.PartnerIDs, p.ID)
		}
	}
}

// resyncLocked re-derives symmetric edges for the whole collection.
// Caller holds the write lock.
func (g *Graph) resyncLocked() {
	for _, p := range g.data.People {
		g.linkLocked(p)
	}
}

// warnDangling logs relationship ids that reference nobody. Caller holds
// the lock in either mode.
func (g *Graph) warnDangling(p *Person) {
	for _, ids := range [][]string{p.ParentIDs, p.ChildrenIDs, p.PartnerIDs} {
		for _, id := range ids {
			if _, ok := g.data.People[id]; !ok {
				g.logger.Warn("dangling relationship reference",
					zap.String("personID", p.ID),
					zap.String("referencedID", id),
				)
			}
		}
	}
}
