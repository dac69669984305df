package stats

import "sort"

// counter counts keys and remembers the order they were first seen in,
// so rankings break ties by first occurrence.
type counter struct {
	counts map[string]int
	order  []string
}

type rankedKey struct {
	key   string
	count int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns keys accepted by keep, count descending. A limit <= 0 means no limit.
func (c *counter) ranked(keep func(key string, count int) bool, limit int) []rankedKey {
	out := make([]rankedKey, 0, len(c.order))
	for _, key := range c.order {
		count := c.counts[key]
		if keep != nil && !keep(key, count) {
			continue
		}
		out = append(out, rankedKey{key: key, count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// snapshotMap copies the counts into a fresh map.
func (c *counter) snapshotMap() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
