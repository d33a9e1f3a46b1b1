package family

import (
	pkgerrors "nasab-backend/pkg/errors"
)

// Gender is the declared gender of a person
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// IsValid reports whether the gender is one of the known values
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Person is a single member of the family graph. The three relationship
// slices are order-preserving, duplicate-free id sets; the graph store is
// the only component allowed to mutate them.
type Person struct {
	ID         string `json:"id" dynamodbav:"id"`
	Name       string `json:"name" dynamodbav:"name"`
	Gender     Gender `json:"gender" dynamodbav:"gender"`
	BirthDate  string `json:"birthDate,omitempty" dynamodbav:"birthDate,omitempty"`
	DeathDate  string `json:"deathDate,omitempty" dynamodbav:"deathDate,omitempty"`
	IsDeceased bool   `json:"isDeceased,omitempty" dynamodbav:"isDeceased,omitempty"`

	// Descriptive fields carried opaquely; the store never interprets them.
	PhotoURL    string  `json:"photoUrl,omitempty" dynamodbav:"photoUrl,omitempty"`
	NationalID  string  `json:"nationalId,omitempty" dynamodbav:"nationalId,omitempty"`
	Nationality string  `json:"nationality,omitempty" dynamodbav:"nationality,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty" dynamodbav:"phoneNumber,omitempty"`
	Location    string  `json:"location,omitempty" dynamodbav:"location,omitempty"`
	Latitude    float64 `json:"latitude,omitempty" dynamodbav:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty" dynamodbav:"longitude,omitempty"`
	JobHistory  string  `json:"jobHistory,omitempty" dynamodbav:"jobHistory,omitempty"`

	PartnerIDs  []string `json:"partnerIds" dynamodbav:"partnerIds"`
	ParentIDs   []string `json:"parentIds" dynamodbav:"parentIds"`
	ChildrenIDs []string `json:"childrenIds" dynamodbav:"childrenIds"`

	// Attributes is an open extension map for fields not otherwise modeled.
	Attributes map[string]interface{} `json:"attributes,omitempty" dynamodbav:"attributes,omitempty"`
}

// FamilyData is the aggregate owning the keyed people collection.
type FamilyData struct {
	ID         string             `json:"id" dynamodbav:"id"`
	FamilyName string             `json:"familyName" dynamodbav:"familyName"`
	RootID     string             `json:"rootId,omitempty" dynamodbav:"rootId,omitempty"`
	People     map[string]*Person `json:"people" dynamodbav:"people"`
}

// Validate checks the fields required before a person may be stored.
func (p *Person) Validate() error {
	if p == nil {
		return pkgerrors.NewValidationError("person cannot be nil")
	}
	if p.ID == "" {
		return pkgerrors.NewValidationError("person id cannot be empty")
	}
	if p.Name == "" {
		return pkgerrors.NewValidationError("person name cannot be empty")
	}
	if !p.Gender.IsValid() {
		return pkgerrors.NewValidationError("gender must be male or female")
	}
	return nil
}

// Normalize dedupes the relationship sets and strips self-references.
// Self-relationships are ignored rather than rejected so that forgiving
// inputs (AI extraction, hand-edited imports) survive ingestion.
func (p *Person) Normalize() {
	p.PartnerIDs = dedupeIDs(p.PartnerIDs, p.ID)
	p.ParentIDs = dedupeIDs(p.ParentIDs, p.ID)
	p.ChildrenIDs = dedupeIDs(p.ChildrenIDs, p.ID)
}

// Clone returns a deep copy of the person.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	out := *p
	out.PartnerIDs = append([]string(nil), p.PartnerIDs...)
	out.ParentIDs = append([]string(nil), p.ParentIDs...)
	out.ChildrenIDs = append([]string(nil), p.ChildrenIDs...)
	if p.Attributes != nil {
		out.Attributes = make(map[string]interface{}, len(p.Attributes))
		for k, v := range p.Attributes {
			out.Attributes[k] = v
		}
	}
	return &out
}

// Deceased reports whether the person should be displayed as deceased.
// A recorded death date implies deceased even if the flag was not set.
func (p *Person) Deceased() bool {
	return p.IsDeceased || p.DeathDate != ""
}

// Clone returns a deep copy of the family aggregate.
func (f *FamilyData) Clone() *FamilyData {
	if f == nil {
		return nil
	}
	out := &FamilyData{
		ID:         f.ID,
		FamilyName: f.FamilyName,
		RootID:     f.RootID,
		People:     make(map[string]*Person, len(f.People)),
	}
	for id, p := range f.People {
		out.People[id] = p.Clone()
	}
	return out
}

func dedupeIDs(ids []string, self string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || id == self || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func addID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
