package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ReservationStore is the remote calendar store as seen by the reconciler.
// Query returns every reservation whose interval touches the inclusive date
// range; Create writes one reservation.
type ReservationStore interface {
	QueryReservations(ctx context.Context, firstDate, lastDate time.Time) ([]Reservation, error)
	CreateReservation(ctx context.Context, r Reservation) error
}

type ReconcilerState string

const (
	StateIdle       ReconcilerState = "idle"
	StateFetching   ReconcilerState = "fetching"
	StateSubmitting ReconcilerState = "submitting"
)

var ErrSubmissionInFlight = errors.New("another submission is in flight")

const remoteCallTimeout = 10 * time.Second

var weekdayKanji = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// SubmitStatus is the terminal outcome of a booking submission.
type SubmitStatus string

const (
	SubmitRejected    SubmitStatus = "rejected"
	SubmitCreated     SubmitStatus = "created"
	SubmitWriteFailed SubmitStatus = "write_failed"
)

type SubmitResult struct {
	Status SubmitStatus `json:"status"`
	Reason RejectReason `json:"reason,omitempty"`
}

// Reconciler owns the reservation cache for the visible window and the
// optimistic marks, and orchestrates fetch → validate → create → re-fetch.
// It is the only writer of both; everything it hands out is a copy or a
// fresh AvailabilityIndex.
type Reconciler struct {
	store   ReservationStore
	room    RoomConfig
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration

	mu           sync.Mutex
	weekOffset   int
	window       []time.Time
	reservations []Reservation
	marks        map[BookingKey]struct{}
	issuedSeq    uint64
	fetching     int
	submitting   bool
}

func NewReconciler(store ReservationStore, room RoomConfig, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:   store,
		room:    room,
		logger:  logger,
		now:     time.Now,
		timeout: remoteCallTimeout,
		marks:   make(map[BookingKey]struct{}),
	}
}

// State reports the current reconciler state. A submission takes precedence
// over its trailing re-fetch in reporting.
func (r *Reconciler) State() ReconcilerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.submitting:
		return StateSubmitting
	case r.fetching > 0:
		return StateFetching
	default:
		return StateIdle
	}
}

// LoadWindow moves the visible window to the given week offset, re-fetches
// reservations for it and renders the per-day availability summary. A fetch
// failure is fail-open: the window renders as if nothing were booked.
func (r *Reconciler) LoadWindow(ctx context.Context, weekOffset int) WindowView {
	if err := r.refresh(ctx, weekOffset); err != nil {
		r.logger.Error("window fetch failed", "week_offset", weekOffset, "error", err)
	}
	return r.windowView()
}

// SlotsForDate renders per-slot booked/free status for one date, fetching
// the date's window first if it is not the currently held one.
func (r *Reconciler) SlotsForDate(ctx context.Context, dateStr string) (DaySlotsView, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, r.room.Location)
	if err != nil {
		return DaySlotsView{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	r.mu.Lock()
	held := containsDate(r.window, date)
	r.mu.Unlock()
	if !held {
		if err := r.refresh(ctx, r.weekOffsetFor(date)); err != nil {
			r.logger.Error("window fetch failed", "date", dateStr, "error", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kind := r.room.ClassifyDay(date)
	ix := r.indexLocked()
	view := DaySlotsView{Date: dateStr, Kind: kind}
	for _, s := range r.room.SlotTimes() {
		view.Slots = append(view.Slots, SlotView{
			Time:   s,
			Booked: !kind.Bookable() || ix.IsPointBooked(date, s),
		})
	}
	return view, nil
}

// Submit validates the request and, if it passes, writes it to the store,
// records an optimistic mark and re-fetches the visible window before
// returning. A write failure leaves all held state untouched.
func (r *Reconciler) Submit(ctx context.Context, req BookingRequest) (SubmitResult, error) {
	var date time.Time
	if req.Date != "" {
		var err error
		date, err = time.ParseInLocation(dateLayout, req.Date, r.room.Location)
		if err != nil {
			return SubmitResult{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
		}
	}

	r.mu.Lock()
	if r.submitting {
		r.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInFlight
	}
	check := CheckBooking(req, date, r.room.ClassifyDay(date), r.indexLocked())
	if !check.OK {
		r.mu.Unlock()
		return SubmitResult{Status: SubmitRejected, Reason: check.Reason}, nil
	}
	r.submitting = true
	weekOffset := r.weekOffset
	r.mu.Unlock()

	// Times were validated by the checker.
	start, _ := at(date, req.StartTime)
	end, _ := at(date, req.EndTime)
	label := fmt.Sprintf("%s (%s-%s)", strings.TrimSpace(req.RequesterName), req.StartTime, req.EndTime)

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	err := r.store.CreateReservation(cctx, Reservation{Start: start, End: end, Label: label})
	cancel()

	r.mu.Lock()
	r.submitting = false
	if err != nil {
		r.mu.Unlock()
		r.logger.Error("create reservation failed", "error", err)
		return SubmitResult{Status: SubmitWriteFailed}, nil
	}
	r.marks[BookingKey{Date: req.Date, Start: req.StartTime, End: req.EndTime}] = struct{}{}
	r.mu.Unlock()

	// Resync with the authoritative store before the booking is settled. The
	// optimistic mark bridges the gap if the write is not visible yet.
	if err := r.refresh(ctx, weekOffset); err != nil {
		r.logger.Warn("post-create refresh failed", "error", err)
	}
	return SubmitResult{Status: SubmitCreated}, nil
}

// refresh replaces the held reservation set with a fresh fetch for the
// window at weekOffset. Responses for superseded requests are discarded:
// each fetch carries a sequence number and only the latest may apply. On
// fetch failure the set is cleared (nothing known).
func (r *Reconciler) refresh(ctx context.Context, weekOffset int) error {
	r.mu.Lock()
	r.issuedSeq++
	seq := r.issuedSeq
	window := WindowDates(r.now().In(r.room.Location), weekOffset, r.room.WindowDays)
	r.weekOffset = weekOffset
	r.window = window
	r.fetching++
	r.mu.Unlock()

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	fetched, err := r.store.QueryReservations(cctx, window[0], window[len(window)-1])
	cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetching--
	if seq != r.issuedSeq {
		// A newer window request superseded this fetch.
		return nil
	}
	if err != nil {
		r.reservations = nil
		return fmt.Errorf("query reservations: %w", err)
	}
	r.reservations = fetched
	r.dropCoveredMarks()
	return nil
}

func (r *Reconciler) windowView() WindowView {
	r.mu.Lock()
	defer r.mu.Unlock()
	slots := r.room.SlotTimes()
	ix := r.indexLocked()
	view := WindowView{WeekOffset: r.weekOffset}
	for _, date := range r.window {
		kind := r.room.ClassifyDay(date)
		view.Days = append(view.Days, DayView{
			Date:           date.Format(dateLayout),
			Weekday:        weekdayKanji[date.Weekday()],
			Kind:           kind,
			AvailableSlots: ix.CountAvailableSlots(date, kind, slots),
		})
	}
	return view
}

// indexLocked snapshots remote reservations plus optimistic marks into a
// fresh index. Callers hold r.mu.
func (r *Reconciler) indexLocked() *AvailabilityIndex {
	all := make([]Reservation, 0, len(r.reservations)+len(r.marks))
	all = append(all, r.reservations...)
	for k := range r.marks {
		if res, ok := r.markReservation(k); ok {
			all = append(all, res)
		}
	}
	return NewAvailabilityIndex(all)
}

// dropCoveredMarks removes optimistic marks whose interval the freshly
// fetched remote set already covers. Callers hold r.mu.
func (r *Reconciler) dropCoveredMarks() {
	ix := NewAvailabilityIndex(r.reservations)
	for k := range r.marks {
		date, err := time.ParseInLocation(dateLayout, k.Date, r.room.Location)
		if err != nil {
			delete(r.marks, k)
			continue
		}
		if ix.IsRangeConflicting(date, k.Start, k.End) {
			delete(r.marks, k)
		}
	}
}

func (r *Reconciler) markReservation(k BookingKey) (Reservation, bool) {
	date, err := time.ParseInLocation(dateLayout, k.Date, r.room.Location)
	if err != nil {
		return Reservation{}, false
	}
	start, err := at(date, k.Start)
	if err != nil {
		return Reservation{}, false
	}
	end, err := at(date, k.End)
	if err != nil {
		return Reservation{}, false
	}
	return Reservation{Start: start, End: end, Label: "pending"}, true
}

func (r *Reconciler) weekOffsetFor(date time.Time) int {
	curMonday := WindowDates(r.now().In(r.room.Location), 0, 1)[0]
	targetMonday := WindowDates(date, 0, 1)[0]
	return int(targetMonday.Sub(curMonday) / (7 * 24 * time.Hour))
}

func containsDate(window []time.Time, date time.Time) bool {
	for _, d := range window {
		if d.Equal(date) {
			return true
		}
	}
	return false
}
