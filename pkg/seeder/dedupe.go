package seeder

import (
	"context"
	"sort"
)

// Dedupe removes all but one event from every identity-key group. The
// keeper is the member with the smallest id in UUID string order, so the
// selection is stable and a second run removes nothing.
func (e *Engine) Dedupe(ctx context.Context) (int64, error) {
	groups, err := e.store.DuplicateGroups(ctx)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool {
			return ids[i].String() < ids[j].String()
		})
		n, err := e.store.DeleteEvents(ctx, ids[1:])
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}