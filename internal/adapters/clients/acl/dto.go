package acl

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// looseNumber tolerates the backend sending numeric fields either as JSON
// numbers or as strings ("1250", "1250,50", ""). Unparseable values decode
// to zero rather than failing the whole record.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	*n = 0

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}

		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			return nil
		}

		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*n = looseNumber(v)
		}

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*n = looseNumber(v)
	}

	return nil
}

func (n looseNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// looseInt is looseNumber truncated to an integer.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	var f looseNumber
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}

	*n = looseInt(f)

	return nil
}

func (n looseInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(n))
}

// looseString tolerates identifiers arriving as numbers (client-generated
// cost line IDs are millisecond timestamps).
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	*s = ""

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return nil
		}

		*s = looseString(str)

		return nil
	}

	*s = looseString(trimmed)

	return nil
}

func (s looseString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// costLineRecord is one free-form cost entry on the wire.
type costLineRecord struct {
	ID          looseString `json:"id"`
	Description string      `json:"description"`
	Amount      looseNumber `json:"amount"`
}

// dietLineRecord is one open-ended dietary entry on the wire.
type dietLineRecord struct {
	ID    looseString `json:"id"`
	Type  string      `json:"type"`
	Count looseInt    `json:"count"`
}

// logEntryRecord is one audit trail item on the wire.
type logEntryRecord struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
}

// quoteRecord is the backend's representation of a quote. Field names follow
// the Airtable columns the n8n workflow exposes, a mix of Swedish and
// English. This type never leaves the ACL.
type quoteRecord struct {
	ID     string `json:"id,omitempty"`
	RawID  string `json:"rawId,omitempty"`
	Status string `json:"status,omitempty"`

	CustomerName     string `json:"kundNamn,omitempty"`
	CustomerType     string `json:"customerType,omitempty"`
	ContactPerson    string `json:"kontaktPerson,omitempty"`
	ContactEmail     string `json:"email,omitempty"`
	ContactPhone     string `json:"telefon,omitempty"`
	CustomerIDNumber string `json:"customerIdNumber,omitempty"`

	EventDate     string   `json:"eventDatum,omitempty"`
	EventStart    string   `json:"eventTid,omitempty"`
	EventEnd      string   `json:"eventEndTime,omitempty"`
	EventLocation string   `json:"eventLocation,omitempty"`
	GuestCount    looseInt `json:"guestCount,omitempty"`

	PricePerGuest    looseNumber `json:"pricePerGuest,omitempty"`
	NumChefs         looseInt    `json:"numChefs,omitempty"`
	ChefCost         looseNumber `json:"chefCost,omitempty"`
	NumServingStaff  looseInt    `json:"numServingStaff,omitempty"`
	ServingStaffCost looseNumber `json:"servingStaffCost,omitempty"`
	DiscountAmount   looseNumber `json:"discountAmount,omitempty"`
	Total            looseNumber `json:"totalPris,omitempty"`

	HasVegetarian  bool     `json:"hasVegetarian,omitempty"`
	NumVegetarian  looseInt `json:"numVegetarian,omitempty"`
	HasVegan       bool     `json:"hasVegan,omitempty"`
	NumVegan       looseInt `json:"numVegan,omitempty"`
	HasGlutenFree  bool     `json:"hasGlutenFree,omitempty"`
	NumGlutenFree  looseInt `json:"numGlutenFree,omitempty"`
	HasLactoseFree bool     `json:"hasLactoseFree,omitempty"`
	NumLactoseFree looseInt `json:"numLactoseFree,omitempty"`
	HasNutAllergy  bool     `json:"hasNutAllergy,omitempty"`
	NumNutAllergy  looseInt `json:"numNutAllergy,omitempty"`

	MenuDescription  string `json:"menuPreference,omitempty"`
	CustomerRequests string `json:"otherRequests,omitempty"`
	InternalComment  string `json:"internalComment,omitempty"`

	// CustomCosts may arrive inline or JSON-string-encoded in CustomCostsJSON.
	// The string form wins when both are present.
	CustomCosts     []costLineRecord `json:"customCosts,omitempty"`
	CustomCostsJSON string           `json:"customCostsJSON,omitempty"`
	CustomDiets     []dietLineRecord `json:"customDiets,omitempty"`

	Events      []logEntryRecord `json:"events,omitempty"`
	Created     string           `json:"skapad,omitempty"`
	LastUpdated string           `json:"lastUpdated,omitempty"`
	ArchivedAt  string           `json:"archivedAt,omitempty"`
}

// intakePayload is the body of a POST to the offer intake webhook. Its field
// names match what the n8n workflow's Smart Logic expects, which is NOT the
// same dialect the backend uses when returning records.
type intakePayload struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`

	CustomerName     string `json:"customer,omitempty"`
	CustomerType     string `json:"customerType,omitempty"`
	ContactPerson    string `json:"contactPerson,omitempty"`
	ContactEmail     string `json:"contactEmail,omitempty"`
	ContactPhone     string `json:"contactPhone,omitempty"`
	CustomerIDNumber string `json:"customerIdNumber,omitempty"`

	EventDate     string `json:"eventDate,omitempty"`
	EventStart    string `json:"eventStartTime,omitempty"`
	EventEnd      string `json:"eventEndTime,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	GuestCount    int    `json:"guestCount"`

	PricePerGuest    float64 `json:"pricePerGuest"`
	NumChefs         int     `json:"numChefs"`
	ChefCost         float64 `json:"chefCost"`
	NumServingStaff  int     `json:"numServingStaff"`
	ServingStaffCost float64 `json:"servingStaffCost"`
	DiscountAmount   float64 `json:"discountAmount"`
	Total            float64 `json:"totalPris"`

	HasVegetarian  bool `json:"hasVegetarian"`
	NumVegetarian  int  `json:"numVegetarian"`
	HasVegan       bool `json:"hasVegan"`
	NumVegan       int  `json:"numVegan"`
	HasGlutenFree  bool `json:"hasGlutenFree"`
	NumGlutenFree  int  `json:"numGlutenFree"`
	HasLactoseFree bool `json:"hasLactoseFree"`
	NumLactoseFree int  `json:"numLactoseFree"`
	HasNutAllergy  bool `json:"hasNutAllergy"`
	NumNutAllergy  int  `json:"numNutAllergy"`

	MenuDescription  string `json:"menuDescription,omitempty"`
	CustomerRequests string `json:"customerRequests,omitempty"`
	InternalComment  string `json:"internalComment,omitempty"`

	CustomCosts []costLineRecord `json:"customCosts"`
	CustomDiets []dietLineRecord `json:"customDiets"`

	LastUpdated string `json:"lastUpdated,omitempty"`
	ArchivedAt  string `json:"archivedAt,omitempty"`

	// Mode steers the workflow's create/update branching. Timestamp is the
	// client-side submission time, informational only.
	Mode      string `json:"mode"`
	Timestamp string `json:"timestamp"`
}

// dispatchPayload is the body of a POST to the proposal dispatch webhook.
type dispatchPayload struct {
	Action        string `json:"action"`
	OfferID       string `json:"offerId"`
	CustomerEmail string `json:"customerEmail"`
}

// parseWireTime parses the backend's ISO 8601 timestamps. Empty and
// malformed values map to the zero time; records should survive a backend
// that omits or mangles audit fields.
func parseWireTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}

func formatWireTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(time.RFC3339)
}
