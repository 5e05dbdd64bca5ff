package worklog

import "math"

// BilledMinutes converts a worked interval into billable minutes: the raw
// minutes rounded up to the next multiple of the configured increment.
// Exact multiples are kept as-is; 30 worked minutes at a 15-minute
// increment bill as 30, not 45.
func BilledMinutes(startTime, stopTime int64, roundUpMinutes int) float64 {
	if stopTime <= startTime {
		return 0
	}
	if roundUpMinutes < 1 {
		roundUpMinutes = 1
	}
	minutes := float64(stopTime-startTime) / 60.0
	increment := float64(roundUpMinutes)
	return math.Ceil(minutes/increment) * increment
}

// BillableHours converts a worked interval into billable hours using
// BilledMinutes.
func BillableHours(startTime, stopTime int64, roundUpMinutes int) float64 {
	return BilledMinutes(startTime, stopTime, roundUpMinutes) / 60.0
}
