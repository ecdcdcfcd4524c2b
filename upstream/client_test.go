package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookpage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestGetBusiness(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/book/corner-salon", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Corner Salon",
			"services": [{"id": "svc-haircut", "name": "Haircut", "durationMinutes": 30, "priceMinorUnits": 2500}],
			"hours": {"monday": {"open": "09:00", "close": "18:00"}, "sunday": {"closed": true}},
			"settings": {"advanceBookingDays": 14, "bookingIntervalMinutes": 30, "autoConfirm": true}
		}`))
	})

	biz, err := client.GetBusiness(context.Background(), "corner-salon")
	require.NoError(t, err)
	assert.Equal(t, "corner-salon", biz.Slug)
	assert.Equal(t, "Corner Salon", biz.Name)
	require.Len(t, biz.Services, 1)
	assert.Equal(t, 30, biz.Services[0].DurationMinutes)
	assert.Equal(t, 14, biz.Policy.AdvanceBookingDays)
	assert.True(t, biz.Policy.AutoConfirm)

	monday, ok := biz.Hours.ForWeekday(time.Monday)
	require.True(t, ok)
	assert.Equal(t, "09:00", monday.Open)
	sunday, ok := biz.Hours.ForWeekday(time.Sunday)
	require.True(t, ok)
	assert.True(t, sunday.Closed)
}

func TestGetDates_QueryEncoding(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book/corner-salon/dates", r.URL.Path)
		assert.Equal(t, "svc-haircut", r.URL.Query().Get("serviceId"))
		assert.Equal(t, "14", r.URL.Query().Get("days"))
		w.Write([]byte(`{"dates": {"2026-03-10": true, "2026-03-11": false}}`))
	})

	dates, err := client.GetDates(context.Background(), "corner-salon", DatesQuery{ServiceID: "svc-haircut", Days: 14})
	require.NoError(t, err)
	assert.True(t, dates["2026-03-10"])
	assert.False(t, dates["2026-03-11"])
}

func TestGetAvailability(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026-03-10", r.URL.Query().Get("date"))
		w.Write([]byte(`{"slots": [{"time": "09:00", "available": true}, {"time": "09:30", "available": false}]}`))
	})

	slots, err := client.GetAvailability(context.Background(), "corner-salon", AvailabilityQuery{Date: "2026-03-10"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, models.Slot{Time: "09:00", Available: true}, slots[0])
	assert.False(t, slots[1].Available)
}

func TestCreateBooking_SendsDraft(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/book/corner-salon/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft models.BookingDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "svc-haircut", draft.ServiceID)
		assert.Equal(t, "dana@example.com", draft.Customer.Email)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "bk-1", "reference": "CRN-7341", "status": "pending", "date": "2026-03-10", "time": "14:00"}`))
	})

	booking, err := client.CreateBooking(context.Background(), "corner-salon", models.BookingDraft{
		ServiceID: "svc-haircut",
		Date:      "2026-03-10",
		Time:      "14:00",
		Customer:  &models.Customer{Name: "Dana Reyes", Email: "dana@example.com", Phone: "+15550100"},
	})
	require.NoError(t, err)
	assert.Equal(t, "CRN-7341", booking.Reference)
	assert.Equal(t, models.BookingPending, booking.Status)
}

func TestStatusErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
		detail string
	}{
		{"bad request", http.StatusBadRequest, `{"detail": "Email is invalid."}`, IsValidation, "Email is invalid."},
		{"unprocessable", http.StatusUnprocessableEntity, `{"detail": "Party size too large."}`, IsValidation, "Party size too large."},
		{"not found", http.StatusNotFound, `{"detail": "No such business."}`, IsNotFound, "No such business."},
		{"conflict", http.StatusConflict, `{"detail": "Slot already booked."}`, IsConflict, "Slot already booked."},
		{"server error", http.StatusInternalServerError, `{"detail": "boom"}`, IsNetwork, "boom"},
		{"conflict without detail", http.StatusConflict, `{}`, IsConflict, "That time is no longer available. Please pick another slot."},
		{"not found with garbage body", http.StatusNotFound, `<html>`, IsNotFound, "Booking not found."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := client.GetBooking(context.Background(), "corner-salon", "bk-1")
			require.Error(t, err)
			assert.True(t, tc.check(err))
			assert.Equal(t, tc.detail, UserMessage(err))
		})
	}
}

func TestUnreachableHostIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens here anymore

	client := NewClient(srv.URL, 500*time.Millisecond)
	_, err := client.GetBusiness(context.Background(), "corner-salon")
	assert.True(t, IsNetwork(err))
}

func TestUnreadableBodyIsNetworkError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	_, err := client.GetBusiness(context.Background(), "corner-salon")
	assert.True(t, IsNetwork(err))
}

func TestCancelBookingUsesDelete(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/book/corner-salon/booking/bk-1", r.URL.Path)
		w.Write([]byte(`{"id": "bk-1", "status": "cancelled"}`))
	})

	booking, err := client.CancelBooking(context.Background(), "corner-salon", "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, booking.Status)
}
