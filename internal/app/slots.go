package app

import (
	"fmt"
	"time"
)

// SlotTimes expands operating hours into the ordered bookable time points,
// stepping by stepMinutes. The sequence runs from startHour:00 up to and
// including endHour:00; nothing past the closing hour is emitted.
func SlotTimes(startHour, endHour, stepMinutes int) []string {
	var times []string
	for hour := startHour; hour <= endHour; hour++ {
		for minute := 0; minute < 60; minute += stepMinutes {
			if hour == endHour && minute > 0 {
				break
			}
			times = append(times, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return times
}

// SlotTimes returns the room's bookable time points.
func (rc RoomConfig) SlotTimes() []string {
	return SlotTimes(rc.StartHour, rc.EndHour, rc.SlotMinutes)
}

// at anchors a "15:04" time-of-day on the given date in its location.
func at(date time.Time, hhmm string) (time.Time, error) {
	tod, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, tod.Hour(), tod.Minute(), 0, 0, date.Location()), nil
}
