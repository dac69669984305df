package statsui

import "github.com/verte-zerg/dictstat/internal/stats"

// snapshotCache holds the newest report. Only the Update loop touches it.
type snapshotCache struct {
	report stats.Report
	seq    uint64
	ok     bool
}

// offer stores report unless a newer one is already cached.
func (c *snapshotCache) offer(seq uint64, report stats.Report) bool {
	if c.ok && seq < c.seq {
		return false
	}
	c.report = report
	c.seq = seq
	c.ok = true
	return true
}
