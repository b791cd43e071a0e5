package store

import (
	"context"
	"slices"

	"startupconnect/internal/seed"
)

// Reset replaces every collection with a copy of ds and ends the session.
// Nil collections in ds become empty.
func (s *Store) Reset(ctx context.Context, ds seed.Dataset) error {
	return s.mutate(ctx, "reset", func(t *tx) error {
		next := state{
			users:         cloneEach(orEmpty(ds.Users)),
			startups:      cloneEach(orEmpty(ds.Startups)),
			ideas:         cloneEach(orEmpty(ds.Ideas)),
			conversations: cloneEach(orEmpty(ds.Conversations)),
			notifications: slices.Clone(orEmpty(ds.Notifications)),
			requests:      slices.Clone(orEmpty(ds.ConnectionRequests)),
		}
		next.normalize()
		if t.sessionID != "" {
			t.emit(EventSessionChanged, t.sessionID, t.sessionID)
		}
		*t.state = next
		return nil
	})
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

