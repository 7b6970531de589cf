// Package recent builds and navigates the recently opened files list.
//
// It has no knowledge of the terminal or the vault: Build merges the
// workspace's live recency list with the persisted one, and View is the
// immutable state record the picker renders from.
package recent

import "strings"

// DefaultHistoryLength is the number of entries kept when no setting exists.
const DefaultHistoryLength = 15

// Build merges the live recently-active list with the persisted list.
//
// Live entries always come first. Persisted entries not already live follow
// in their persisted order, and the merged result is truncated to limit.
// When nothing was persisted the live list is returned untouched, since the
// workspace already caps it.
func Build(live, persisted []string, limit int) []string {
	if len(persisted) == 0 {
		return append([]string{}, live...)
	}

	seen := make(map[string]struct{}, len(live))
	for _, p := range live {
		seen[p] = struct{}{}
	}

	merged := make([]string, 0, len(live)+len(persisted))
	merged = append(merged, live...)
	for _, p := range persisted {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}

	if limit < 0 {
		limit = 0
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// Filter returns the entries of list containing query, ignoring case.
// An empty query matches everything.
func Filter(list []string, query string) []string {
	needle := strings.ToUpper(query)
	out := make([]string, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToUpper(p), needle) {
			out = append(out, p)
		}
	}
	return out
}
