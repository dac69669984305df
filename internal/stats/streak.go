package stats

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Streaks computes the current and longest runs of consecutive days in
// dayKeys. The current streak only counts when today or yesterday, relative
// to now, has a session.
func Streaks(dayKeys []string, now time.Time) (current, longest int) {
	if len(dayKeys) == 0 {
		return 0, 0
	}
	used := make(map[string]struct{}, len(dayKeys))
	for _, key := range dayKeys {
		used[key] = struct{}{}
	}
	sorted := make([]string, 0, len(used))
	for key := range used {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	run := 0
	for i, key := range sorted {
		if i > 0 && shiftDay(sorted[i-1], 1) == key {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := now.Format(dayLayout)
	yesterday := shiftDay(today, -1)
	start := ""
	if _, ok := used[today]; ok {
		start = today
	} else if _, ok := used[yesterday]; ok {
		start = yesterday
	}
	for day := start; day != ""; day = shiftDay(day, -1) {
		if _, ok := used[day]; !ok {
			break
		}
		current++
	}
	return current, longest
}

// shiftDay moves a day key by delta calendar days. Invalid keys yield "".
func shiftDay(key string, delta int) string {
	t, err := time.Parse(dayLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, delta).Format(dayLayout)
}
