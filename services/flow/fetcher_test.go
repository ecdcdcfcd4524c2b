package flow

import (
	"context"
	"sync"
	"testing"

	"bookpage/models"
	"bookpage/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots_UpstreamAuthoritative(t *testing.T) {
	api := &stubAPI{
		business: testBusiness(),
		availabilityFn: func(q upstream.AvailabilityQuery) ([]models.Slot, error) {
			assert.Equal(t, "2026-03-10", q.Date)
			assert.Equal(t, "svc-haircut", q.ServiceID)
			return []models.Slot{
				{Time: "11:00", Available: true},
				{Time: "11:30", Available: false},
				{Time: "14:00", Available: true},
				{Time: "18:30", Available: true},
			}, nil
		},
	}
	svc := testFlowService(api, &stubCreator{})
	sess, err := svc.StartSession(context.Background(), "corner-salon", "")
	require.NoError(t, err)
	_, err = svc.Continue(context.Background(), sess.SessionID, StepInput{ServiceID: "svc-haircut"})
	require.NoError(t, err)

	res, err := svc.Slots(context.Background(), sess.SessionID, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", res.Date)
	assert.Len(t, res.Slots, 4)

	// Grouping follows the slot times, including the unavailable one.
	require.Len(t, res.Groups, 3)
	assert.Equal(t, models.DayPartMorning, res.Groups[0].Part)
	assert.Len(t, res.Groups[0].Slots, 2)
	assert.Equal(t, models.DayPartAfternoon, res.Groups[1].Part)
	assert.Equal(t, models.DayPartEvening, res.Groups[2].Part)
}

func TestSlots_FallsBackToLocalComputation(t *testing.T) {
	api := &stubAPI{
		business: testBusiness(),
		availabilityFn: func(q upstream.AvailabilityQuery) ([]models.Slot, error) {
			return nil, upstream.NewNetworkError("availability source down")
		},
	}
	svc := testFlowService(api, &stubCreator{})
	sess, err := svc.StartSession(context.Background(), "corner-salon", "")
	require.NoError(t, err)
	_, err = svc.Continue(context.Background(), sess.SessionID, StepInput{ServiceID: "svc-haircut"})
	require.NoError(t, err)

	// 2026-03-10 is a Tuesday: 09:00-18:00 at 30-minute intervals, 30-minute
	// service, so the last start is 17:30.
	res, err := svc.Slots(context.Background(), sess.SessionID, "2026-03-10")
	require.NoError(t, err)
	require.NotEmpty(t, res.Slots)
	assert.Equal(t, "09:00", res.Slots[0].Time)
	assert.Equal(t, "17:30", res.Slots[len(res.Slots)-1].Time)
	for _, slot := range res.Slots {
		assert.True(t, slot.Available)
	}
}

func TestSlots_LastRequestWins(t *testing.T) {
	entered := make(chan string, 2)
	block := make(chan struct{})
	api := &stubAPI{
		business: testBusiness(),
		availabilityFn: func(q upstream.AvailabilityQuery) ([]models.Slot, error) {
			entered <- q.Date
			if q.Date == "2026-03-10" {
				<-block
			}
			return []models.Slot{{Time: "10:00", Available: true}}, nil
		},
	}
	svc := testFlowService(api, &stubCreator{})
	sess, err := svc.StartSession(context.Background(), "corner-salon", "")
	require.NoError(t, err)
	_, err = svc.Continue(context.Background(), sess.SessionID, StepInput{ServiceID: "svc-haircut"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var staleErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, staleErr = svc.Slots(context.Background(), sess.SessionID, "2026-03-10")
	}()

	// Wait until the first fetch is in flight, then issue a newer one.
	require.Equal(t, "2026-03-10", <-entered)
	res, err := svc.Slots(context.Background(), sess.SessionID, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-11", res.Date)

	close(block)
	wg.Wait()
	assert.ErrorIs(t, staleErr, ErrSuperseded)
}

func TestDates_LocalWindowWithUpstreamOverlay(t *testing.T) {
	api := &stubAPI{
		business: testBusiness(),
		datesFn: func(q upstream.DatesQuery) (map[string]bool, error) {
			// The server knows 2026-03-04 is fully booked.
			return map[string]bool{"2026-03-04": false}, nil
		},
	}
	svc := testFlowService(api, &stubCreator{})
	sess, err := svc.StartSession(context.Background(), "corner-salon", "")
	require.NoError(t, err)

	dates, err := svc.Dates(context.Background(), sess.SessionID)
	require.NoError(t, err)
	require.Len(t, dates, 14)
	assert.Equal(t, "2026-03-02", dates[0].Date)
	assert.Equal(t, "2026-03-15", dates[13].Date)

	byDate := make(map[string]bool, len(dates))
	for _, d := range dates {
		byDate[d.Date] = d.HasAnySlot
	}
	assert.False(t, byDate["2026-03-04"], "upstream flag overrides local computation")
	assert.True(t, byDate["2026-03-03"])
	assert.False(t, byDate["2026-03-08"], "sunday is closed")
}

func TestDates_UpstreamFailureUsesLocalOnly(t *testing.T) {
	api := &stubAPI{
		business: testBusiness(),
		datesFn: func(q upstream.DatesQuery) (map[string]bool, error) {
			return nil, upstream.NewNetworkError("dates source down")
		},
	}
	svc := testFlowService(api, &stubCreator{})
	sess, err := svc.StartSession(context.Background(), "corner-salon", "")
	require.NoError(t, err)

	dates, err := svc.Dates(context.Background(), sess.SessionID)
	require.NoError(t, err)
	require.Len(t, dates, 14)
	for _, d := range dates {
		if d.Date == "2026-03-08" || d.Date == "2026-03-15" {
			assert.False(t, d.HasAnySlot, d.Date)
		} else {
			assert.True(t, d.HasAnySlot, d.Date)
		}
	}
}
