package handlers

import (
	"net/http"
	"strconv"
	"time"

	"bookly/services/calendar"
	"bookly/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the availability check directly, without going
// through the chat pipeline.
type AvailabilityHandler struct {
	Gateway    calendar.Gateway
	CalendarID string
	Opts       calendar.FreeSlotOptions
}

func NewAvailabilityHandler(gw calendar.Gateway, calendarID string, opts calendar.FreeSlotOptions) *AvailabilityHandler {
	return &AvailabilityHandler{Gateway: gw, CalendarID: calendarID, Opts: opts.WithDefaults()}
}

// HandleAvailability reports free slots for a single day. Query params:
// date (YYYY-MM-DD, default tomorrow) and duration (minutes).
func (h *AvailabilityHandler) HandleAvailability(c *gin.Context) {
	day := time.Now().AddDate(0, 0, 1)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	opts := h.Opts
	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "expected positive minutes")
			return
		}
		opts.DurationMinutes = minutes
	}

	windowStart := time.Date(day.Year(), day.Month(), day.Day(), opts.BusinessOpenHour, 0, 0, 0, day.Location())
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), opts.BusinessCloseHour, 0, 0, 0, day.Location())

	report := calendar.CheckAvailability(c.Request.Context(), h.Gateway, h.CalendarID, windowStart, windowEnd, opts)
	c.JSON(http.StatusOK, gin.H{
		"date":   day.Format("2006-01-02"),
		"report": report.Report,
		"slots":  report.Slots,
	})
}
