package scheduler

import "sort"

// SortCandidates returns the candidates ordered high, medium, low. Order
// within a tier is preserved. The input slice is not modified.
func SortCandidates(candidates []TaskCandidate) []TaskCandidate {
	sorted := make([]TaskCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}
