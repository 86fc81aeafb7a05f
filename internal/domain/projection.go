package domain

import (
	"sort"
	"strings"
	"time"
)

// Filter selectors understood by Project beyond exact status tokens.
const (
	FilterAll     = "alla"
	FilterArchive = "arkiv"
)

// upcomingLimit caps the upcoming-events widget view.
const upcomingLimit = 5

// Project derives the filtered dashboard view of a collection.
//
// A quote is included when both predicates hold: its normalized status
// matches the filter (FilterAll = active set, FilterArchive = archive set,
// anything else = that exact status) and the search term is a
// case-insensitive substring of the customer name or quote ID. An empty
// term matches everything. Input order is preserved; callers wanting a
// sorted view layer their own ordering on top.
func Project(quotes []*Quote, filter, term string) []*Quote {
	term = strings.ToLower(term)

	out := make([]*Quote, 0, len(quotes))

	for _, q := range quotes {
		status := NormalizeStatus(string(q.Status))

		var statusMatch bool
		switch filter {
		case FilterAll, "":
			statusMatch = status.IsActive()
		case FilterArchive:
			statusMatch = status.IsArchived()
		default:
			statusMatch = string(status) == filter
		}

		if !statusMatch {
			continue
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(q.CustomerName), term) &&
			!strings.Contains(strings.ToLower(q.ID), term) {
			continue
		}

		out = append(out, q)
	}

	return out
}

// ActionableQuotes returns drafts and sent proposals, most recently
// updated first. This is the "needs attention" dashboard widget view.
func ActionableQuotes(quotes []*Quote) []*Quote {
	out := make([]*Quote, 0, len(quotes))

	for _, q := range quotes {
		s := NormalizeStatus(string(q.Status))
		if s == StatusDraft || s == StatusProposalSent {
			out = append(out, q)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})

	return out
}

// UpcomingEvents returns at most five active quotes with event dates on or
// after the given day, soonest first.
func UpcomingEvents(quotes []*Quote, today time.Time) []*Quote {
	cutoff := today.Format("2006-01-02")

	out := make([]*Quote, 0, upcomingLimit)

	for _, q := range quotes {
		if !NormalizeStatus(string(q.Status)).IsActive() {
			continue
		}

		if q.EventDate >= cutoff {
			out = append(out, q)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventDate < out[j].EventDate
	})

	if len(out) > upcomingLimit {
		out = out[:upcomingLimit]
	}

	return out
}

// Summary aggregates the active pipeline for the dashboard header.
type Summary struct {
	ActiveCount   int
	PipelineValue float64
}

// Summarize counts active quotes and sums their totals.
func Summarize(quotes []*Quote) Summary {
	var s Summary

	for _, q := range quotes {
		if NormalizeStatus(string(q.Status)).IsActive() {
			s.ActiveCount++
			s.PipelineValue += q.Total
		}
	}

	return s
}
