package app

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// WindowDates returns windowDays consecutive dates starting at the Monday of
// the week containing today + weekOffset*7 days. Dates are midnight values in
// today's location.
func WindowDates(today time.Time, weekOffset, windowDays int) []time.Time {
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7 // Monday-first week
	}
	y, m, d := today.Date()
	monday := time.Date(y, m, d, 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, 1-weekday+weekOffset*7)

	dates := make([]time.Time, windowDays)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// Classify labels a date as ordinary, weekend or holiday. The holiday set is
// keyed by formatted date, so dates outside the configured year simply never
// match. A holiday on a weekend reports as holiday.
func Classify(date time.Time, holidays map[string]struct{}, weekendsClosed bool) DayKind {
	if _, ok := holidays[date.Format(dateLayout)]; ok {
		return DayHoliday
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		if weekendsClosed {
			return DayWeekend
		}
	}
	return DayOrdinary
}

// ClassifyDay applies the room's own holiday set and weekend rule.
func (rc RoomConfig) ClassifyDay(date time.Time) DayKind {
	return Classify(date, rc.Holidays, rc.WeekendsClosed)
}
