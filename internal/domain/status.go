package domain

import "strings"

// Status is a canonical lifecycle state token. Canonical values are
// lowercase with hyphens; the backend is inconsistent about casing and
// spacing, so every inbound status passes through NormalizeStatus.
type Status string

// Canonical lifecycle states.
const (
	StatusDraft        Status = "utkast"
	StatusProposalSent Status = "förslag-skickat"
	StatusApproved     Status = "godkänd"
	StatusCompleted    Status = "genomförd"
	StatusPaid         Status = "betald"
	StatusLost         Status = "förlorad-affär"
	StatusArchived     Status = "arkiverad"
)

// legacyStatuses maps alternate spellings seen in backend data to
// canonical values.
var legacyStatuses = map[string]Status{
	"accepterad": StatusApproved,
	"förlorad":   StatusLost,
}

// backendLabels maps canonical tokens to the human-readable labels the
// backend workflow expects on save.
var backendLabels = map[Status]string{
	StatusApproved:     "Accepterad",
	StatusProposalSent: "Förslag Skickat",
	StatusLost:         "Förlorad Affär",
	StatusCompleted:    "Genomförd",
	StatusPaid:         "Betald",
	StatusDraft:        "utkast",
}

// NormalizeStatus converts a raw backend status string to its canonical
// form: lowercased, whitespace runs replaced with a single hyphen, legacy
// spellings mapped. An empty status normalizes to draft.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusDraft
	}

	s = strings.Join(strings.Fields(s), "-")

	if canonical, ok := legacyStatuses[s]; ok {
		return canonical
	}

	return Status(s)
}

// BackendLabel returns the label the backend expects for a canonical
// status. Unknown statuses pass through unchanged.
func BackendLabel(s Status) string {
	if label, ok := backendLabels[s]; ok {
		return label
	}

	return string(s)
}

// IsActive reports whether the status belongs to the active set shown on
// the dashboard (as opposed to the archive).
func (s Status) IsActive() bool {
	switch s {
	case StatusDraft, StatusProposalSent, StatusApproved, StatusCompleted, StatusPaid:
		return true
	default:
		return false
	}
}

// IsArchived reports whether the status belongs to the archive set.
func (s Status) IsArchived() bool {
	return s == StatusLost || s == StatusArchived
}
