package handlers

import (
	"net/http"
	"strconv"

	journalRepo "bookpage/database/repository/journal"

	"github.com/gin-gonic/gin"
)

// JournalHandler serves the gateway's booking activity journal for the
// management screens.
type JournalHandler struct {
	Journal journalRepo.BookingJournalRepository
}

func NewJournalHandler(repo journalRepo.BookingJournalRepository) *JournalHandler {
	return &JournalHandler{Journal: repo}
}

// Recent lists the latest journal entries for a business.
func (h *JournalHandler) Recent(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := h.Journal.GetRecentBySlug(c.Request.Context(), c.Param("slug"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read booking journal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// ByBooking lists the journal entries for a single booking, oldest first.
func (h *JournalHandler) ByBooking(c *gin.Context) {
	entries, err := h.Journal.GetByBookingID(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read booking journal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
