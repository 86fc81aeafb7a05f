package acl

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/nordsym/guldkant/internal/domain"
)

// recordToDomain translates a backend record into a domain Quote. This is
// the core ACL translation: status tokens are normalized, loose numbers have
// already been coerced by the DTO types, and string-encoded cost lists are
// unpacked.
func recordToDomain(rec *quoteRecord) *domain.Quote {
	q := &domain.Quote{
		ID:     rec.ID,
		RawID:  rec.RawID,
		Status: domain.NormalizeStatus(rec.Status),

		CustomerName:     rec.CustomerName,
		CustomerType:     customerTypeFromWire(rec.CustomerType),
		ContactPerson:    rec.ContactPerson,
		ContactEmail:     rec.ContactEmail,
		ContactPhone:     rec.ContactPhone,
		CustomerIDNumber: rec.CustomerIDNumber,

		EventDate:     rec.EventDate,
		EventStart:    rec.EventStart,
		EventEnd:      rec.EventEnd,
		EventLocation: rec.EventLocation,
		GuestCount:    int(rec.GuestCount),

		PricePerGuest:    float64(rec.PricePerGuest),
		NumChefs:         int(rec.NumChefs),
		ChefCost:         float64(rec.ChefCost),
		NumServingStaff:  int(rec.NumServingStaff),
		ServingStaffCost: float64(rec.ServingStaffCost),
		DiscountAmount:   float64(rec.DiscountAmount),
		Total:            float64(rec.Total),

		HasVegetarian:  rec.HasVegetarian,
		NumVegetarian:  int(rec.NumVegetarian),
		HasVegan:       rec.HasVegan,
		NumVegan:       int(rec.NumVegan),
		HasGlutenFree:  rec.HasGlutenFree,
		NumGlutenFree:  int(rec.NumGlutenFree),
		HasLactoseFree: rec.HasLactoseFree,
		NumLactoseFree: int(rec.NumLactoseFree),
		HasNutAllergy:  rec.HasNutAllergy,
		NumNutAllergy:  int(rec.NumNutAllergy),

		MenuDescription:  rec.MenuDescription,
		CustomerRequests: rec.CustomerRequests,
		InternalComment:  rec.InternalComment,

		CustomCosts: costLinesFromWire(rec),
		CustomDiets: dietLinesFromWire(rec.CustomDiets),

		Created:     parseWireTime(rec.Created),
		LastUpdated: parseWireTime(rec.LastUpdated),
		ArchivedAt:  parseWireTime(rec.ArchivedAt),
	}

	for _, e := range rec.Events {
		q.Events = append(q.Events, domain.LogEntry{
			Timestamp: parseWireTime(e.Timestamp),
			Event:     e.Event,
		})
	}

	return q
}

// domainToIntake builds the intake webhook payload for a quote. The status
// travels as the backend's display label, not the canonical token; the
// workflow writes it to Airtable verbatim.
func domainToIntake(q *domain.Quote, mode string, now time.Time) *intakePayload {
	p := &intakePayload{
		ID:     q.ID,
		Status: domain.BackendLabel(q.Status),

		CustomerName:     q.CustomerName,
		CustomerType:     string(q.CustomerType),
		ContactPerson:    q.ContactPerson,
		ContactEmail:     q.ContactEmail,
		ContactPhone:     q.ContactPhone,
		CustomerIDNumber: q.CustomerIDNumber,

		EventDate:     q.EventDate,
		EventStart:    q.EventStart,
		EventEnd:      q.EventEnd,
		EventLocation: q.EventLocation,
		GuestCount:    q.GuestCount,

		PricePerGuest:    q.PricePerGuest,
		NumChefs:         q.NumChefs,
		ChefCost:         q.ChefCost,
		NumServingStaff:  q.NumServingStaff,
		ServingStaffCost: q.ServingStaffCost,
		DiscountAmount:   q.DiscountAmount,
		Total:            q.Total,

		HasVegetarian:  q.HasVegetarian,
		NumVegetarian:  q.NumVegetarian,
		HasVegan:       q.HasVegan,
		NumVegan:       q.NumVegan,
		HasGlutenFree:  q.HasGlutenFree,
		NumGlutenFree:  q.NumGlutenFree,
		HasLactoseFree: q.HasLactoseFree,
		NumLactoseFree: q.NumLactoseFree,
		HasNutAllergy:  q.HasNutAllergy,
		NumNutAllergy:  q.NumNutAllergy,

		MenuDescription:  q.MenuDescription,
		CustomerRequests: q.CustomerRequests,
		InternalComment:  q.InternalComment,

		CustomCosts: costLinesToWire(q.CustomCosts),
		CustomDiets: dietLinesToWire(q.CustomDiets),

		LastUpdated: formatWireTime(q.LastUpdated),
		ArchivedAt:  formatWireTime(q.ArchivedAt),

		Mode:      mode,
		Timestamp: now.UTC().Format(time.RFC3339),
	}

	return p
}

func customerTypeFromWire(s string) domain.CustomerType {
	if domain.CustomerType(strings.ToLower(strings.TrimSpace(s))) == domain.CustomerCompany {
		return domain.CustomerCompany
	}

	return domain.CustomerPrivate
}

// costLinesFromWire prefers the JSON-string-encoded column when it holds an
// array; anything unparseable degrades to the inline list or nothing.
func costLinesFromWire(rec *quoteRecord) []domain.CostLine {
	lines := rec.CustomCosts

	if encoded := strings.TrimSpace(rec.CustomCostsJSON); strings.HasPrefix(encoded, "[") {
		var parsed []costLineRecord
		if err := json.Unmarshal([]byte(encoded), &parsed); err == nil {
			lines = parsed
		}
	}

	if len(lines) == 0 {
		return nil
	}

	out := make([]domain.CostLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.CostLine{
			ID:          string(l.ID),
			Description: l.Description,
			Amount:      float64(l.Amount),
		})
	}

	return out
}

func dietLinesFromWire(lines []dietLineRecord) []domain.DietLine {
	if len(lines) == 0 {
		return nil
	}

	out := make([]domain.DietLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, domain.DietLine{
			ID:    string(l.ID),
			Type:  l.Type,
			Count: int(l.Count),
		})
	}

	return out
}

func costLinesToWire(lines []domain.CostLine) []costLineRecord {
	out := make([]costLineRecord, 0, len(lines))
	for _, l := range lines {
		out = append(out, costLineRecord{
			ID:          looseString(l.ID),
			Description: l.Description,
			Amount:      looseNumber(l.Amount),
		})
	}

	return out
}

func dietLinesToWire(lines []domain.DietLine) []dietLineRecord {
	out := make([]dietLineRecord, 0, len(lines))
	for _, l := range lines {
		out = append(out, dietLineRecord{
			ID:    looseString(l.ID),
			Type:  l.Type,
			Count: looseInt(l.Count),
		})
	}

	return out
}
