package routes

import (
	"bookpage/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	booking := r.Group("/api/booking")
	{
		booking.POST("/session", bh.StartSession)
		booking.GET("/session/:sessionID", bh.GetSession)
		booking.POST("/session/:sessionID/continue", bh.Continue)
		booking.POST("/session/:sessionID/back", bh.Back)
		booking.DELETE("/session/:sessionID", bh.Abandon)
		booking.GET("/session/:sessionID/dates", bh.Dates)
		booking.GET("/session/:sessionID/availability", bh.Slots)

		booking.GET("/:slug/booking/:bookingID", bh.GetBooking)
		booking.PUT("/:slug/booking/:bookingID", bh.Reschedule)
		booking.DELETE("/:slug/booking/:bookingID", bh.Cancel)
	}
}

// RegisterJournalRoutes registers the booking activity journal endpoints.
func RegisterJournalRoutes(r *gin.Engine, jh *handlers.JournalHandler) {
	journal := r.Group("/api/journal")
	{
		journal.GET("/:slug", jh.Recent)
		journal.GET("/:slug/booking/:bookingID", jh.ByBooking)
	}
}
