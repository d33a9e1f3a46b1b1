package events

import (
	"time"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// PersonCreated is raised when a person is added to the family graph
type PersonCreated struct {
	BaseEvent
	PersonID string `json:"person_id"`
	FamilyID string `json:"family_id"`
	Name     string `json:"name"`
}

// NewPersonCreated creates a PersonCreated event
func NewPersonCreated(familyID, personID, name string) PersonCreated {
	return PersonCreated{
		BaseEvent: BaseEvent{
			AggregateID: familyID,
			EventType:   "person.created",
			Timestamp:   time.Now(),
		},
		PersonID: personID,
		FamilyID: familyID,
		Name:     name,
	}
}

// PersonUpdated is raised when a stored person record is replaced
type PersonUpdated struct {
	BaseEvent
	PersonID string `json:"person_id"`
	FamilyID string `json:"family_id"`
}

// NewPersonUpdated creates a PersonUpdated event
func NewPersonUpdated(familyID, personID string) PersonUpdated {
	return PersonUpdated{
		BaseEvent: BaseEvent{
			AggregateID: familyID,
			EventType:   "person.updated",
			Timestamp:   time.Now(),
		},
		PersonID: personID,
		FamilyID: familyID,
	}
}

// PersonDeleted is raised when a person and all references to them are removed
type PersonDeleted struct {
	BaseEvent
	PersonID string `json:"person_id"`
	FamilyID string `json:"family_id"`
}

// NewPersonDeleted creates a PersonDeleted event
func NewPersonDeleted(familyID, personID string) PersonDeleted {
	return PersonDeleted{
		BaseEvent: BaseEvent{
			AggregateID: familyID,
			EventType:   "person.deleted",
			Timestamp:   time.Now(),
		},
		PersonID: personID,
		FamilyID: familyID,
	}
}

// FamilyImported is raised after a batch of people is ingested and the
// whole collection re-synchronized
type FamilyImported struct {
	BaseEvent
	FamilyID string `json:"family_id"`
	Count    int    `json:"count"`
}

// NewFamilyImported creates a FamilyImported event
func NewFamilyImported(familyID string, count int) FamilyImported {
	return FamilyImported{
		BaseEvent: BaseEvent{
			AggregateID: familyID,
			EventType:   "family.imported",
			Timestamp:   time.Now(),
		},
		FamilyID: familyID,
		Count:    count,
	}
}
