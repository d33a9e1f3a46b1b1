package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nasab-backend/application/services"
	"nasab-backend/domain/family"
)

func newFamilyFixture(t *testing.T, people ...*family.Person) http.Handler {
	t.Helper()
	graph := family.NewGraph("fam_test", "Test Family", zap.NewNop())
	familySvc := services.NewFamilyService(graph, &stubRepo{}, stubPublisher{}, stubCache{}, stubMetrics{}, zap.NewNop())
	hierarchySvc := services.NewHierarchyService(graph, stubCache{}, stubMetrics{}, zap.NewNop())

	if len(people) > 0 {
		_, _, err := familySvc.ImportPeople(context.Background(), people)
		require.NoError(t, err)
	}

	handler := NewFamilyHandler(familySvc, hierarchySvc, zap.NewNop())
	router := chi.NewRouter()
	router.Route("/api/v1/families/{familyID}", func(r chi.Router) {
		r.Get("/", handler.GetFamily)
		r.Get("/hierarchy", handler.GetHierarchy)
		r.Get("/stats", handler.GetStats)
	})
	return router
}

func TestFamilyHandler_GetFamily(t *testing.T) {
	router := newFamilyFixture(t,
		&family.Person{ID: "p1", Name: "Abdullah", Gender: family.GenderMale},
	)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/families/fam_test", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	var data family.FamilyData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "fam_test", data.ID)
	assert.Len(t, data.People, 1)
}

func TestFamilyHandler_GetFamily_UnknownID(t *testing.T) {
	router := newFamilyFixture(t,
		&family.Person{ID: "p1", Name: "Abdullah", Gender: family.GenderMale},
	)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/families/other_family", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFamilyHandler_GetHierarchy(t *testing.T) {
	router := newFamilyFixture(t,
		&family.Person{ID: "p1", Name: "Abdullah", Gender: family.GenderMale, ChildrenIDs: []string{"p2"}},
		&family.Person{ID: "p2", Name: "Mohammed", Gender: family.GenderMale},
	)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/families/fam_test/hierarchy", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	var node family.HierarchyNode
	require.NoError(t, json.Unmarshal(resp.Data, &node))
	assert.Equal(t, "p1", node.Person.ID)
	require.Len(t, node.Children, 1)
	assert.Equal(t, "p2", node.Children[0].Person.ID)
}

func TestFamilyHandler_GetHierarchy_ExplicitRoot(t *testing.T) {
	router := newFamilyFixture(t,
		&family.Person{ID: "p1", Name: "Abdullah", Gender: family.GenderMale, ChildrenIDs: []string{"p2"}},
		&family.Person{ID: "p2", Name: "Mohammed", Gender: family.GenderMale},
	)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/families/fam_test/hierarchy?rootId=p2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	var node family.HierarchyNode
	require.NoError(t, json.Unmarshal(resp.Data, &node))
	assert.Equal(t, "p2", node.Person.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/families/fam_test/hierarchy?rootId=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFamilyHandler_GetStats(t *testing.T) {
	router := newFamilyFixture(t,
		&family.Person{ID: "p1", Name: "Abdullah", Gender: family.GenderMale, ChildrenIDs: []string{"p2"}},
		&family.Person{ID: "p2", Name: "Layla", Gender: family.GenderFemale},
	)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/families/fam_test/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	var stats services.FamilyStats
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.Equal(t, 2, stats.Members)
	assert.Equal(t, 1, stats.Males)
	assert.Equal(t, 1, stats.Females)
	assert.Equal(t, 2, stats.Generations)
}
