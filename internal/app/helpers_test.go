package app

import (
	"io"
	"log/slog"
	"time"
)

var jst = time.FixedZone("JST", 9*60*60)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, jst)
}

func datetime(year int, month time.Month, d, hour, min int) time.Time {
	return time.Date(year, month, d, hour, min, 0, 0, jst)
}

func testRoom() RoomConfig {
	return RoomConfig{
		Title:          "会議室A",
		StartHour:      10,
		EndHour:        23,
		SlotMinutes:    30,
		WindowDays:     7,
		WeekendsClosed: true,
		Holidays:       map[string]struct{}{"2025-07-21": {}, "2025-05-04": {}},
		Location:       jst,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
