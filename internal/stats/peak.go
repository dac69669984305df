package stats

import "time"

// Peak is the busiest slot of the activity matrix.
type Peak struct {
	Weekday  time.Weekday
	Hour     int
	Sessions int
}

// PeakSlot returns the weekday/hour cell with the most sessions. Ties go to
// the earliest cell, Sunday midnight first. ok is false for an empty matrix.
func PeakSlot(matrix [7][24]int) (peak Peak, ok bool) {
	for day := range matrix {
		for hour, n := range matrix[day] {
			if n > peak.Sessions {
				peak = Peak{Weekday: time.Weekday(day), Hour: hour, Sessions: n}
			}
		}
	}
	return peak, peak.Sessions > 0
}

// SessionsByHour sums the matrix over weekdays.
func SessionsByHour(matrix [7][24]int) [24]int {
	var out [24]int
	for day := range matrix {
		for hour, n := range matrix[day] {
			out[hour] += n
		}
	}
	return out
}

// SessionsByWeekday sums the matrix over hours.
func SessionsByWeekday(matrix [7][24]int) [7]int {
	var out [7]int
	for day := range matrix {
		for _, n := range matrix[day] {
			out[day] += n
		}
	}
	return out
}
