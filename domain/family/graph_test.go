package family

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	pkgerrors "nasab-backend/pkg/errors"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	return NewGraph("fam_test", "Test Family", zap.NewNop())
}

func mustCreate(t *testing.T, g *Graph, p *Person) *Person {
	t.Helper()
	created, err := g.Create(p)
	require.NoError(t, err)
	return created
}

func TestGraph_Create_MirrorsBackEdges(t *testing.T) {
	g := newTestGraph(t)

	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale, PartnerIDs: []string{"p1"}})
	mustCreate(t, g, &Person{ID: "p3", Name: "Mohammed", Gender: GenderMale, ParentIDs: []string{"p1", "p2"}})

	p1 := g.Get("p1")
	assert.Contains(t, p1.PartnerIDs, "p2")
	assert.Contains(t, p1.ChildrenIDs, "p3")

	p2 := g.Get("p2")
	assert.Contains(t, p2.ChildrenIDs, "p3")

	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Create_ChildrenSideMirrorsToo(t *testing.T) {
	g := newTestGraph(t)

	mustCreate(t, g, &Person{ID: "p3", Name: "Mohammed", Gender: GenderMale})
	// The new record declares the edge from the parent side
	mustCreate(t, g, &Person{ID: "p4", Name: "Aisha", Gender: GenderFemale, ChildrenIDs: []string{"p3"}})

	p3 := g.Get("p3")
	assert.Contains(t, p3.ParentIDs, "p4")
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Create_DuplicateIDConflicts(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})

	_, err := g.Create(&Person{ID: "p1", Name: "Impostor", Gender: GenderMale})
	assert.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))
	assert.Equal(t, 1, g.Len())
}

func TestGraph_Create_DanglingReferenceTolerated(t *testing.T) {
	g := newTestGraph(t)

	// p999 does not exist; the record is accepted and the id kept, but no
	// back-edge can be created
	created := mustCreate(t, g, &Person{ID: "p5", Name: "Omar", Gender: GenderMale, ParentIDs: []string{"p999"}})

	assert.Contains(t, created.ParentIDs, "p999")
	assert.Nil(t, g.Get("p999"))
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Create_SelfRelationshipStripped(t *testing.T) {
	g := newTestGraph(t)

	created := mustCreate(t, g, &Person{
		ID: "p1", Name: "Abdullah", Gender: GenderMale,
		PartnerIDs: []string{"p1"}, ParentIDs: []string{"p1"}, ChildrenIDs: []string{"p1"},
	})

	assert.Empty(t, created.PartnerIDs)
	assert.Empty(t, created.ParentIDs)
	assert.Empty(t, created.ChildrenIDs)
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Create_FirstPersonBecomesRoot(t *testing.T) {
	g := newTestGraph(t)
	assert.Equal(t, "", g.RootID())

	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	assert.Equal(t, "p1", g.RootID())
}

func TestGraph_Update_ReconcilesPartnerDiff(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "a", Name: "A", Gender: GenderFemale})
	mustCreate(t, g, &Person{ID: "b", Name: "B", Gender: GenderFemale})
	mustCreate(t, g, &Person{ID: "c", Name: "C", Gender: GenderFemale})
	mustCreate(t, g, &Person{ID: "x", Name: "X", Gender: GenderMale, PartnerIDs: []string{"a", "b"}})

	// {a, b} -> {b, c}: a loses the back-edge, c gains one, b untouched
	updated := g.Get("x")
	updated.PartnerIDs = []string{"b", "c"}
	_, err := g.Update(updated)
	require.NoError(t, err)

	assert.NotContains(t, g.Get("a").PartnerIDs, "x")
	assert.Contains(t, g.Get("b").PartnerIDs, "x")
	assert.Contains(t, g.Get("c").PartnerIDs, "x")
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Update_ReconcilesParentAndChildDiffs(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale})
	mustCreate(t, g, &Person{ID: "c1", Name: "Mohammed", Gender: GenderMale, ParentIDs: []string{"p1"}})

	// Reparent c1 from p1 to p2
	updated := g.Get("c1")
	updated.ParentIDs = []string{"p2"}
	_, err := g.Update(updated)
	require.NoError(t, err)

	assert.NotContains(t, g.Get("p1").ChildrenIDs, "c1")
	assert.Contains(t, g.Get("p2").ChildrenIDs, "c1")
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Update_Idempotent(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale, PartnerIDs: []string{"p1"}})

	before := g.Snapshot()

	// Re-submitting the unchanged record must not duplicate edges
	_, err := g.Update(g.Get("p2"))
	require.NoError(t, err)

	after := g.Snapshot()
	assert.Equal(t, before.People["p1"].PartnerIDs, after.People["p1"].PartnerIDs)
	assert.Equal(t, before.People["p2"].PartnerIDs, after.People["p2"].PartnerIDs)
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Update_NotFound(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.Update(&Person{ID: "ghost", Name: "Ghost", Gender: GenderMale})
	assert.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraph_Delete_PurgesAllReferences(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale, PartnerIDs: []string{"p1"}})
	mustCreate(t, g, &Person{ID: "p3", Name: "Mohammed", Gender: GenderMale, ParentIDs: []string{"p1", "p2"}})

	require.NoError(t, g.Delete("p1"))

	assert.Nil(t, g.Get("p1"))
	assert.NotContains(t, g.Get("p2").PartnerIDs, "p1")
	assert.NotContains(t, g.Get("p3").ParentIDs, "p1")
	assert.Contains(t, g.Get("p3").ParentIDs, "p2")
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Delete_ReassignsRoot(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale})

	require.NoError(t, g.Delete("p1"))
	assert.Equal(t, "p2", g.RootID())

	require.NoError(t, g.Delete("p2"))
	assert.Equal(t, "", g.RootID())
}

func TestGraph_Delete_NotFound(t *testing.T) {
	g := newTestGraph(t)
	err := g.Delete("ghost")
	assert.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraph_ImportBatch_ResyncsOneSidedEdges(t *testing.T) {
	g := newTestGraph(t)

	// Each relationship declared on one side only; the post-insert resync
	// must mirror all of them
	_, err := g.ImportBatch([]*Person{
		{ID: "p1", Name: "Abdullah", Gender: GenderMale, ChildrenIDs: []string{"p3"}},
		{ID: "p2", Name: "Fatima", Gender: GenderFemale, PartnerIDs: []string{"p1"}},
		{ID: "p3", Name: "Mohammed", Gender: GenderMale},
	})
	require.NoError(t, err)

	assert.Contains(t, g.Get("p1").PartnerIDs, "p2")
	assert.Contains(t, g.Get("p3").ParentIDs, "p1")
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_ImportBatch_ValidationFailsWholeBatch(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.ImportBatch([]*Person{
		{ID: "p1", Name: "Abdullah", Gender: GenderMale},
		{ID: "p2", Name: "", Gender: GenderFemale},
	})
	assert.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Equal(t, 0, g.Len())
}

func TestGraph_SetRoot(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})
	mustCreate(t, g, &Person{ID: "p2", Name: "Fatima", Gender: GenderFemale})

	require.NoError(t, g.SetRoot("p2"))
	assert.Equal(t, "p2", g.RootID())

	err := g.SetRoot("ghost")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGraph_NewGraphFromData_ResyncsLoadedData(t *testing.T) {
	// Data loaded from a store may carry one-sided or self edges
	data := &FamilyData{
		ID:         "fam_test",
		FamilyName: "Test Family",
		RootID:     "p1",
		People: map[string]*Person{
			"p1": {ID: "p1", Name: "Abdullah", Gender: GenderMale, ChildrenIDs: []string{"p2"}, PartnerIDs: []string{"p1"}},
			"p2": {ID: "p2", Name: "Mohammed", Gender: GenderMale},
		},
	}

	g := NewGraphFromData(data, zap.NewNop())

	assert.Contains(t, g.Get("p2").ParentIDs, "p1")
	assert.Empty(t, g.Get("p1").PartnerIDs)
	assert.NoError(t, g.CheckSymmetry())
}

func TestGraph_Snapshot_IsIsolated(t *testing.T) {
	g := newTestGraph(t)
	mustCreate(t, g, &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale})

	snapshot := g.Snapshot()
	snapshot.People["p1"].Name = "changed"
	delete(snapshot.People, "p1")

	assert.Equal(t, "Abdullah", g.Get("p1").Name)
}

// Symmetry must hold after any sequence of mutations, whatever the order.
func TestGraph_SymmetryHoldsUnderRandomizedOperations(t *testing.T) {
	g := newTestGraph(t)
	rng := rand.New(rand.NewSource(42))

	ids := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		id := fmt.Sprintf("p%d", i)
		p := &Person{ID: id, Name: "Person " + id, Gender: GenderMale}
		if len(ids) > 0 {
			switch rng.Intn(3) {
			case 0:
				p.ParentIDs = []string{ids[rng.Intn(len(ids))]}
			case 1:
				p.PartnerIDs = []string{ids[rng.Intn(len(ids))]}
			case 2:
				p.ChildrenIDs = []string{ids[rng.Intn(len(ids))]}
			}
		}
		mustCreate(t, g, p)
		ids = append(ids, id)
	}

	for i := 0; i < 60; i++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(3) {
		case 0:
			p := g.Get(id)
			if p == nil {
				continue
			}
			p.PartnerIDs = append(p.PartnerIDs, ids[rng.Intn(len(ids))])
			p.Normalize()
			_, err := g.Update(p)
			require.NoError(t, err)
		case 1:
			p := g.Get(id)
			if p == nil {
				continue
			}
			p.ParentIDs = nil
			_, err := g.Update(p)
			require.NoError(t, err)
		case 2:
			if g.Len() > 5 {
				if g.Get(id) != nil {
					require.NoError(t, g.Delete(id))
				}
			}
		}
		require.NoError(t, g.CheckSymmetry(), "symmetry broken after operation %d", i)
	}
}
