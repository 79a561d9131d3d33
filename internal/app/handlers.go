package app

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

// App carries the wired dependencies the handlers need.
type App struct {
	Cfg    Config
	Rec    *Reconciler
	Logger *slog.Logger
}

// GET /api/config
// Client-facing room configuration plus the generated slot times, so the
// UI never invents a time the generator would not offer.
func (a *App) ConfigHandler(c *gin.Context) {
	room := a.Cfg.Room
	holidays := make([]string, 0, len(room.Holidays))
	for h := range room.Holidays {
		holidays = append(holidays, h)
	}
	sort.Strings(holidays)
	c.JSON(http.StatusOK, gin.H{
		"title":           room.Title,
		"start_hour":      room.StartHour,
		"end_hour":        room.EndHour,
		"slot_minutes":    room.SlotMinutes,
		"window_days":     room.WindowDays,
		"weekends_closed": room.WeekendsClosed,
		"holidays":        holidays,
		"slot_times":      room.SlotTimes(),
	})
}

// GET /api/window?week_offset=N
func (a *App) WindowHandler(c *gin.Context) {
	offsetStr := c.DefaultQuery("week_offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_offset"})
		return
	}
	c.JSON(http.StatusOK, a.Rec.LoadWindow(c.Request.Context(), offset))
}

// GET /api/slots?date=YYYY-MM-DD
func (a *App) SlotsHandler(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date required (YYYY-MM-DD)"})
		return
	}
	view, err := a.Rec.SlotsForDate(c.Request.Context(), dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/bookings
func (a *App) CreateBookingHandler(c *gin.Context) {
	var req BookingRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.Rec.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch result.Status {
	case SubmitRejected:
		status := http.StatusBadRequest
		if result.Reason == ReasonTimeOverlap {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"status": result.Status, "reason": result.Reason})
	case SubmitWriteFailed:
		c.JSON(http.StatusBadGateway, gin.H{"status": result.Status, "error": "failed to create reservation"})
	default:
		c.JSON(http.StatusCreated, result)
	}
}

// GET /api/state
func (a *App) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": a.Rec.State()})
}
