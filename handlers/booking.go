package handlers

import (
	"errors"
	"net/http"

	"bookpage/services/flow"
	"bookpage/services/lifecycle"
	"bookpage/upstream"

	"github.com/gin-gonic/gin"
)

// BookingHandler carries the services behind the public booking endpoints.
type BookingHandler struct {
	Flow      flow.FlowService
	Lifecycle lifecycle.LifecycleService
}

func NewBookingHandler(flowSvc flow.FlowService, lifecycleSvc lifecycle.LifecycleService) *BookingHandler {
	return &BookingHandler{Flow: flowSvc, Lifecycle: lifecycleSvc}
}

// respondError converts the error taxonomy into a user-visible JSON response.
// Nothing here crashes the flow or discards the draft; the session stays
// where it was.
func respondError(c *gin.Context, err error) {
	msg := upstream.UserMessage(err)
	switch {
	case upstream.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	case upstream.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": msg})
	case upstream.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": msg})
	case upstream.IsNetwork(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// StartSession creates a new booking flow session for a business.
func (h *BookingHandler) StartSession(c *gin.Context) {
	var input struct {
		Slug     string `json:"slug" binding:"required"`
		FlowType string `json:"flowType"` // "service" (default) or "party"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	sess, err := h.Flow.StartSession(c.Request.Context(), input.Slug, input.FlowType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// GetSession returns the current state of a flow session.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sess, err := h.Flow.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Continue runs one forward step transition; on the final step it submits
// the booking.
func (h *BookingHandler) Continue(c *gin.Context) {
	var input flow.StepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Flow.Continue(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Back moves the session one step backwards, keeping collected answers.
func (h *BookingHandler) Back(c *gin.Context) {
	sess, err := h.Flow.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// Abandon discards the session and its draft.
func (h *BookingHandler) Abandon(c *gin.Context) {
	if err := h.Flow.Abandon(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "abandoned"})
}

// Dates returns the lookahead calendar for the session.
func (h *BookingHandler) Dates(c *gin.Context) {
	dates, err := h.Flow.Dates(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// Slots returns one date's availability for the session. A stale response
// (the customer already switched dates) comes back as 409 so the web client
// drops it.
func (h *BookingHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	result, err := h.Flow.Slots(c.Request.Context(), c.Param("sessionID"), date)
	if errors.Is(err, flow.ErrSuperseded) {
		c.JSON(http.StatusConflict, gin.H{"error": "superseded"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBooking returns a booking for the confirmation/management screens.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.Lifecycle.Fetch(c.Request.Context(), c.Param("slug"), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Reschedule moves a booking to a new date and time.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Lifecycle.Reschedule(c.Request.Context(), c.Param("slug"), c.Param("bookingID"), input.Date, input.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel cancels a booking. The displayed status only changes once the
// upstream store confirms; a failure here leaves it untouched.
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.Lifecycle.Cancel(c.Request.Context(), c.Param("slug"), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
