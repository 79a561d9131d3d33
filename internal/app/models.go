package app

import "time"

// Reservation is a booked interval as known to the remote Notion store.
// Start is always before End; intervals are half-open [Start, End).
type Reservation struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// BookingRequest is a candidate booking as submitted by a client.
// Date is "2006-01-02", times are "15:04" in the room's local offset.
type BookingRequest struct {
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	RequesterName string `json:"requester_name"`
}

// BookingKey identifies a booking by its exact date and time range.
// Used for optimistic marks between a create and the next re-fetch.
type BookingKey struct {
	Date  string
	Start string
	End   string
}

// DayKind classifies a calendar date for booking purposes.
type DayKind string

const (
	DayOrdinary DayKind = "ordinary"
	DayWeekend  DayKind = "weekend"
	DayHoliday  DayKind = "holiday"
)

// Bookable reports whether a day of this kind accepts bookings at all.
func (k DayKind) Bookable() bool { return k == DayOrdinary }

// RejectReason explains why a booking request was refused before any
// network call was made.
type RejectReason string

const (
	ReasonMissingFields    RejectReason = "missing_fields"
	ReasonInvalidRange     RejectReason = "invalid_range"
	ReasonHolidayOrWeekend RejectReason = "holiday_or_weekend"
	ReasonTimeOverlap      RejectReason = "time_overlap"
)

// CheckResult is the outcome of validating a booking request.
type CheckResult struct {
	OK     bool
	Reason RejectReason
}

// DayView is the per-date availability summary for the visible window.
type DayView struct {
	Date           string  `json:"date"`
	Weekday        string  `json:"weekday"`
	Kind           DayKind `json:"kind"`
	AvailableSlots int     `json:"available_slots"`
}

// WindowView is the rendered visible window.
type WindowView struct {
	WeekOffset int       `json:"week_offset"`
	Days       []DayView `json:"days"`
}

// SlotView is the booked/free status of a single slot on one date.
type SlotView struct {
	Time   string `json:"time"`
	Booked bool   `json:"booked"`
}

// DaySlotsView is the full slot breakdown for one date.
type DaySlotsView struct {
	Date  string     `json:"date"`
	Kind  DayKind    `json:"kind"`
	Slots []SlotView `json:"slots"`
}
