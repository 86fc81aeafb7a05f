// Package domain contains core business entities and rules.
package domain

import "time"

// CustomerType distinguishes private customers from companies.
type CustomerType string

// Customer types.
const (
	CustomerPrivate CustomerType = "privat"
	CustomerCompany CustomerType = "företag"
)

// CostLine is a free-form cost entry on a quote. The ID is client-generated
// and only used for in-list addressing; it is not a durable key.
type CostLine struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// DietLine is an open-ended dietary requirement beyond the fixed flags.
type DietLine struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// LogEntry is one item in a quote's append-only audit trail.
// The backend owns the trail; clients never write to it.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
}

// Quote is a catering order tracked through its status lifecycle.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is assigned by the backend. Empty for an unsaved draft; a draft in
	// flight may carry a temporary client-side placeholder until the backend
	// responds.
	ID string

	// RawID is the backend's internal record identifier, when exposed.
	RawID string

	Status Status

	// Customer fields.
	CustomerName     string
	CustomerType     CustomerType
	ContactPerson    string
	ContactEmail     string
	ContactPhone     string
	CustomerIDNumber string

	// Event fields.
	EventDate     string // ISO date (YYYY-MM-DD)
	EventStart    string
	EventEnd      string
	EventLocation string
	GuestCount    int

	// Pricing fields.
	PricePerGuest    float64
	NumChefs         int
	ChefCost         float64
	NumServingStaff  int
	ServingStaffCost float64
	DiscountAmount   float64
	CustomCosts      []CostLine

	// Total is derivable from the other pricing fields; it is recomputed
	// before every save and never trusted from stale state.
	Total float64

	// Dietary fields.
	HasVegetarian  bool
	NumVegetarian  int
	HasVegan       bool
	NumVegan       int
	HasGlutenFree  bool
	NumGlutenFree  int
	HasLactoseFree bool
	NumLactoseFree int
	HasNutAllergy  bool
	NumNutAllergy  int
	CustomDiets    []DietLine

	// Free text.
	MenuDescription  string
	CustomerRequests string
	InternalComment  string

	// Audit.
	Events      []LogEntry
	Created     time.Time
	LastUpdated time.Time
	ArchivedAt  time.Time
}

// Clone returns a deep copy of the quote. Collection code always works on
// clones so optimistic entries and snapshots never alias live records.
func (q *Quote) Clone() *Quote {
	if q == nil {
		return nil
	}

	cp := *q

	if q.CustomCosts != nil {
		cp.CustomCosts = make([]CostLine, len(q.CustomCosts))
		copy(cp.CustomCosts, q.CustomCosts)
	}

	if q.CustomDiets != nil {
		cp.CustomDiets = make([]DietLine, len(q.CustomDiets))
		copy(cp.CustomDiets, q.CustomDiets)
	}

	if q.Events != nil {
		cp.Events = make([]LogEntry, len(q.Events))
		copy(cp.Events, q.Events)
	}

	return &cp
}

// NewDraft returns a blank draft quote dated for the given day.
func NewDraft(today time.Time) *Quote {
	return &Quote{
		Status:       StatusDraft,
		CustomerName: "Nytt ärende",
		CustomerType: CustomerPrivate,
		EventDate:    today.Format("2006-01-02"),
	}
}

// CopyOf derives a fresh draft from an existing quote. Identity, totals and
// audit history are stripped; the event date resets to the given day.
func CopyOf(src *Quote, today time.Time) *Quote {
	cp := src.Clone()
	cp.ID = ""
	cp.RawID = ""
	cp.Total = 0
	cp.Events = nil
	cp.Created = time.Time{}
	cp.LastUpdated = time.Time{}
	cp.ArchivedAt = time.Time{}
	cp.Status = StatusDraft
	cp.EventDate = today.Format("2006-01-02")

	return cp
}
