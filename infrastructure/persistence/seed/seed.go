package seed

import (
	"nasab-backend/domain/family"
)

// Family builds the built-in starter family. It is used when the backing
// store has no data for the configured family id, or cannot be reached at
// startup.
func Family(familyID, familyName string) *family.FamilyData {
	people := []*family.Person{
		{
			ID:          "p1",
			Name:        "Abdullah Al-Hashimi",
			Gender:      family.GenderMale,
			BirthDate:   "1938-03-12",
			DeathDate:   "2011-06-04",
			IsDeceased:  true,
			Nationality: "Jordanian",
			Location:    "Amman",
			JobHistory:  "Merchant",
			PartnerIDs:  []string{"p2"},
			ChildrenIDs: []string{"p3", "p4"},
		},
		{
			ID:          "p2",
			Name:        "Fatima Al-Hashimi",
			Gender:      family.GenderFemale,
			BirthDate:   "1944-11-02",
			Nationality: "Jordanian",
			Location:    "Amman",
			PartnerIDs:  []string{"p1"},
			ChildrenIDs: []string{"p3", "p4"},
		},
		{
			ID:          "p3",
			Name:        "Mohammed Al-Hashimi",
			Gender:      family.GenderMale,
			BirthDate:   "1965-07-21",
			Nationality: "Jordanian",
			PhoneNumber: "+962790000001",
			Location:    "Amman",
			JobHistory:  "Civil engineer",
			ParentIDs:   []string{"p1", "p2"},
			PartnerIDs:  []string{"p5"},
			ChildrenIDs: []string{"p6", "p7"},
		},
		{
			ID:          "p4",
			Name:        "Sara Al-Hashimi",
			Gender:      family.GenderFemale,
			BirthDate:   "1968-01-30",
			Nationality: "Jordanian",
			Location:    "Irbid",
			JobHistory:  "Teacher",
			ParentIDs:   []string{"p1", "p2"},
			ChildrenIDs: []string{"p8"},
		},
		{
			ID:          "p5",
			Name:        "Aisha Nasser",
			Gender:      family.GenderFemale,
			BirthDate:   "1970-09-14",
			Nationality: "Jordanian",
			Location:    "Amman",
			JobHistory:  "Pharmacist",
			PartnerIDs:  []string{"p3"},
			ChildrenIDs: []string{"p6", "p7"},
		},
		{
			ID:          "p6",
			Name:        "Omar Al-Hashimi",
			Gender:      family.GenderMale,
			BirthDate:   "1994-05-08",
			Nationality: "Jordanian",
			Location:    "Dubai",
			JobHistory:  "Software developer",
			ParentIDs:   []string{"p3", "p5"},
		},
		{
			ID:          "p7",
			Name:        "Layla Al-Hashimi",
			Gender:      family.GenderFemale,
			BirthDate:   "1997-12-19",
			Nationality: "Jordanian",
			Location:    "Amman",
			JobHistory:  "Medical student",
			ParentIDs:   []string{"p3", "p5"},
		},
		{
			ID:          "p8",
			Name:        "Khalid Mansour",
			Gender:      family.GenderMale,
			BirthDate:   "1995-04-03",
			Nationality: "Jordanian",
			Location:    "Irbid",
			ParentIDs:   []string{"p4"},
		},
	}

	data := &family.FamilyData{
		ID:         familyID,
		FamilyName: familyName,
		RootID:     "p1",
		People:     make(map[string]*family.Person, len(people)),
	}
	for _, p := range people {
		data.People[p.ID] = p
	}
	return data
}
