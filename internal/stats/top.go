package stats

import "sort"

// TopCounts orders a count map by count descending, then key ascending,
// and keeps at most n entries (all when n <= 0). Zero counts are dropped.
func TopCounts(counts map[string]int, n int) []WordCount {
	items := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		if count <= 0 {
			continue
		}
		items = append(items, WordCount{Word: word, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Word < items[j].Word
		}
		return items[i].Count > items[j].Count
	})
	if n > 0 && n < len(items) {
		items = items[:n]
	}
	return items
}
