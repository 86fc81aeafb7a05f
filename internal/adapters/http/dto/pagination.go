package dto

// CollectionResponse is the envelope for list endpoints. Pagination is
// cursor-driven on the backend side; the collection endpoint only reports
// whether another page can be loaded, never the cursor itself.
type CollectionResponse[T any] struct {
	// Items is the array of items for the current view.
	Items []T `json:"items"`

	// HasMore indicates whether the backend likely has more records.
	HasMore bool `json:"hasMore"`
}

// NewCollectionResponse creates a collection response. A nil items slice
// serializes as an empty array, not null.
func NewCollectionResponse[T any](items []T, hasMore bool) *CollectionResponse[T] {
	if items == nil {
		items = []T{}
	}

	return &CollectionResponse[T]{
		Items:   items,
		HasMore: hasMore,
	}
}
