package family

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "nasab-backend/pkg/errors"
)

func TestPerson_Validate(t *testing.T) {
	valid := &Person{ID: "p1", Name: "Abdullah", Gender: GenderMale}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		person *Person
	}{
		{"missing id", &Person{Name: "Abdullah", Gender: GenderMale}},
		{"missing name", &Person{ID: "p1", Gender: GenderMale}},
		{"bad gender", &Person{ID: "p1", Name: "Abdullah", Gender: "other"}},
		{"empty gender", &Person{ID: "p1", Name: "Abdullah"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.person.Validate()
			assert.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestPerson_Normalize_StripsSelfAndDuplicates(t *testing.T) {
	p := &Person{
		ID:          "p1",
		Name:        "Abdullah",
		Gender:      GenderMale,
		PartnerIDs:  []string{"p2", "p1", "p2"},
		ParentIDs:   []string{"p3", "", "p3"},
		ChildrenIDs: []string{"p1"},
	}

	p.Normalize()

	assert.Equal(t, []string{"p2"}, p.PartnerIDs)
	assert.Equal(t, []string{"p3"}, p.ParentIDs)
	assert.Empty(t, p.ChildrenIDs)
}

func TestPerson_Clone_IsDeep(t *testing.T) {
	p := &Person{
		ID:         "p1",
		Name:       "Abdullah",
		Gender:     GenderMale,
		PartnerIDs: []string{"p2"},
		Attributes: map[string]interface{}{"tribe": "Hashim"},
	}

	clone := p.Clone()
	clone.PartnerIDs[0] = "p9"
	clone.Attributes["tribe"] = "changed"

	assert.Equal(t, []string{"p2"}, p.PartnerIDs)
	assert.Equal(t, "Hashim", p.Attributes["tribe"])
}

func TestPerson_Deceased(t *testing.T) {
	assert.False(t, (&Person{}).Deceased())
	assert.True(t, (&Person{IsDeceased: true}).Deceased())
	// A death date implies deceased even without the flag
	assert.True(t, (&Person{DeathDate: "2011-06-04"}).Deceased())
}

func TestFamilyData_Clone_IsDeep(t *testing.T) {
	data := &FamilyData{
		ID:         "fam_001",
		FamilyName: "Al-Hashimi",
		RootID:     "p1",
		People: map[string]*Person{
			"p1": {ID: "p1", Name: "Abdullah", Gender: GenderMale, ChildrenIDs: []string{"p2"}},
		},
	}

	clone := data.Clone()
	clone.People["p1"].ChildrenIDs[0] = "p9"
	delete(clone.People, "p1")

	assert.Contains(t, data.People, "p1")
	assert.Equal(t, []string{"p2"}, data.People["p1"].ChildrenIDs)
}
