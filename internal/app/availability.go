package app

import "time"

// AvailabilityIndex answers point and range queries over the reservations
// fetched for the visible window, plus any optimistic marks the reconciler
// chose to include. Queries are pure reads; the index never mutates its
// reservation set and never performs I/O.
type AvailabilityIndex struct {
	reservations []Reservation
}

// NewAvailabilityIndex builds an index over the given reservations. Intervals
// with start >= end are dropped rather than poisoning every query.
func NewAvailabilityIndex(reservations []Reservation) *AvailabilityIndex {
	ix := &AvailabilityIndex{reservations: make([]Reservation, 0, len(reservations))}
	for _, r := range reservations {
		if r.Start.Before(r.End) {
			ix.reservations = append(ix.reservations, r)
		}
	}
	return ix
}

// IsPointBooked reports whether some reservation's half-open interval
// contains date@hhmm. Unparseable times report as free.
func (ix *AvailabilityIndex) IsPointBooked(date time.Time, hhmm string) bool {
	instant, err := at(date, hhmm)
	if err != nil {
		return false
	}
	for _, r := range ix.reservations {
		if !instant.Before(r.Start) && instant.Before(r.End) {
			return true
		}
	}
	return false
}

// IsRangeConflicting reports whether some reservation overlaps
// [date@startHHMM, date@endHHMM). Two half-open intervals overlap iff
// s1 < e2 && s2 < e1, so touching endpoints do not conflict.
func (ix *AvailabilityIndex) IsRangeConflicting(date time.Time, startHHMM, endHHMM string) bool {
	start, err := at(date, startHHMM)
	if err != nil {
		return false
	}
	end, err := at(date, endHHMM)
	if err != nil {
		return false
	}
	for _, r := range ix.reservations {
		if r.Start.Before(end) && r.End.After(start) {
			return true
		}
	}
	return false
}

// CountAvailableSlots counts the slots in the sequence that are free on the
// given date. Weekend and holiday dates have no available slots.
func (ix *AvailabilityIndex) CountAvailableSlots(date time.Time, kind DayKind, slots []string) int {
	if !kind.Bookable() {
		return 0
	}
	n := 0
	for _, s := range slots {
		if !ix.IsPointBooked(date, s) {
			n++
		}
	}
	return n
}
