package app

import (
	"strings"
	"time"
)

// CheckBooking validates a candidate booking against the day classification
// and the availability index. Rules run in a fixed order and the first
// failure determines the reason:
//
//  1. required fields present and non-empty
//  2. start time strictly before end time
//  3. date is an ordinary (bookable) day
//  4. no overlap with a known reservation
//
// Operating hours are deliberately not checked here; slot generation is the
// only source of offered times.
func CheckBooking(req BookingRequest, date time.Time, kind DayKind, ix *AvailabilityIndex) CheckResult {
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" ||
		strings.TrimSpace(req.RequesterName) == "" {
		return CheckResult{Reason: ReasonMissingFields}
	}

	start, err := at(date, req.StartTime)
	if err != nil {
		return CheckResult{Reason: ReasonInvalidRange}
	}
	end, err := at(date, req.EndTime)
	if err != nil {
		return CheckResult{Reason: ReasonInvalidRange}
	}
	if !start.Before(end) {
		return CheckResult{Reason: ReasonInvalidRange}
	}

	if !kind.Bookable() {
		return CheckResult{Reason: ReasonHolidayOrWeekend}
	}

	if ix.IsRangeConflicting(date, req.StartTime, req.EndTime) {
		return CheckResult{Reason: ReasonTimeOverlap}
	}

	return CheckResult{OK: true}
}
