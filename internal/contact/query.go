package contact

import (
	"context"
	"sort"
)

// ListFilter narrows the List result set.
type ListFilter struct {
	UnreadOnly bool
}

// ListResult carries the filtered submissions plus collection-wide counts.
// UnreadCount always reflects the full collection, not the filter.
type ListResult struct {
	Submissions []Submission `json:"submissions"`
	Count       int          `json:"count"`
	UnreadCount int          `json:"unreadCount"`
}

// Query serves the admin listing and read-state operations.
type Query struct {
	store Store
}

// NewQuery constructs a Query service over the given store.
func NewQuery(store Store) *Query {
	return &Query{store: store}
}

// List returns submissions sorted by SubmittedAt descending. Storage
// order is only insertion order, which is weaker after cap eviction, so
// the sort is recomputed on every call.
func (q *Query) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	submissions, err := q.store.ReadSubmissions(ctx)
	if err != nil {
		return ListResult{}, storageErr("read submissions", err)
	}

	unread := 0
	for _, s := range submissions {
		if !s.Read {
			unread++
		}
	}

	filtered := submissions
	if filter.UnreadOnly {
		filtered = make([]Submission, 0, unread)
		for _, s := range submissions {
			if !s.Read {
				filtered = append(filtered, s)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	if filtered == nil {
		filtered = []Submission{}
	}
	return ListResult{
		Submissions: filtered,
		Count:       len(filtered),
		UnreadCount: unread,
	}, nil
}

// SetRead toggles the read flag of one submission and writes the
// collection back. Returns ErrNotFound for an unknown id.
func (q *Query) SetRead(ctx context.Context, id string, read bool) (Submission, error) {
	submissions, err := q.store.ReadSubmissions(ctx)
	if err != nil {
		return Submission{}, storageErr("read submissions", err)
	}

	idx := -1
	for i := range submissions {
		if submissions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Submission{}, ErrNotFound
	}

	submissions[idx].Read = read
	if err := q.store.WriteSubmissions(ctx, submissions); err != nil {
		return Submission{}, storageErr("write submissions", err)
	}
	return submissions[idx], nil
}
