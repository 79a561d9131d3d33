package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityIndex_IsPointBooked(t *testing.T) {
	ix := NewAvailabilityIndex([]Reservation{
		{Start: datetime(2025, 6, 2, 13, 0), End: datetime(2025, 6, 2, 14, 0), Label: "meeting"},
	})
	date := day(2025, 6, 2)

	assert.True(t, ix.IsPointBooked(date, "13:00"), "interval start is contained")
	assert.True(t, ix.IsPointBooked(date, "13:30"))
	assert.False(t, ix.IsPointBooked(date, "14:00"), "interval end is excluded")
	assert.False(t, ix.IsPointBooked(date, "12:30"))
	assert.False(t, ix.IsPointBooked(day(2025, 6, 3), "13:30"), "other dates unaffected")
}

func TestAvailabilityIndex_IsRangeConflicting(t *testing.T) {
	ix := NewAvailabilityIndex([]Reservation{
		{Start: datetime(2025, 6, 2, 11, 0), End: datetime(2025, 6, 2, 12, 0)},
	})
	date := day(2025, 6, 2)

	assert.False(t, ix.IsRangeConflicting(date, "10:00", "11:00"), "touching start is not a conflict")
	assert.False(t, ix.IsRangeConflicting(date, "12:00", "13:00"), "touching end is not a conflict")
	assert.True(t, ix.IsRangeConflicting(date, "10:30", "11:30"))
	assert.True(t, ix.IsRangeConflicting(date, "11:15", "11:45"), "contained range conflicts")
	assert.True(t, ix.IsRangeConflicting(date, "10:00", "13:00"), "covering range conflicts")
}

func TestAvailabilityIndex_QueriesAreIdempotent(t *testing.T) {
	ix := NewAvailabilityIndex([]Reservation{
		{Start: datetime(2025, 6, 2, 13, 0), End: datetime(2025, 6, 2, 14, 0)},
	})
	date := day(2025, 6, 2)

	first := ix.IsRangeConflicting(date, "13:30", "14:30")
	second := ix.IsRangeConflicting(date, "13:30", "14:30")
	assert.Equal(t, first, second)
	assert.Equal(t, ix.IsPointBooked(date, "13:30"), ix.IsPointBooked(date, "13:30"))
}

func TestAvailabilityIndex_CountAvailableSlots(t *testing.T) {
	slots := SlotTimes(10, 23, 30)
	ix := NewAvailabilityIndex([]Reservation{
		{Start: datetime(2025, 6, 2, 13, 0), End: datetime(2025, 6, 2, 14, 0)},
	})

	// 13:00 and 13:30 fall inside the reservation
	assert.Equal(t, len(slots)-2, ix.CountAvailableSlots(day(2025, 6, 2), DayOrdinary, slots))
	assert.Equal(t, len(slots), ix.CountAvailableSlots(day(2025, 6, 3), DayOrdinary, slots))
	assert.Equal(t, 0, ix.CountAvailableSlots(day(2025, 6, 7), DayWeekend, slots))
	assert.Equal(t, 0, ix.CountAvailableSlots(day(2025, 7, 21), DayHoliday, slots))
}

func TestNewAvailabilityIndex_DropsDegenerateIntervals(t *testing.T) {
	ix := NewAvailabilityIndex([]Reservation{
		{Start: datetime(2025, 6, 2, 13, 0), End: datetime(2025, 6, 2, 13, 0)},
	})
	assert.False(t, ix.IsPointBooked(day(2025, 6, 2), "13:00"))
}
