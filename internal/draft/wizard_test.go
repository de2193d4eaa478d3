package draft

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVenues answers Exists from a fixed set of IDs.
type stubVenues struct {
	ids map[uint64]bool
	err error
}

func (s *stubVenues) Exists(_ context.Context, id uint64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ids[id], nil
}

// fixedNow pins the wizard clock to 2026-06-15 so date rules are stable.
func fixedNow() time.Time {
	return time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
}

func testWizard(ids ...uint64) *Wizard {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return &Wizard{Venues: &stubVenues{ids: set}, Now: fixedNow}
}

func TestValidateStepBasicInfo(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		wantErrs []string
	}{
		{
			name:   "valid payload",
			fields: Fields{"venue_id": "1", "date": "2026-07-01", "time": "20:00"},
		},
		{
			name:     "everything missing",
			fields:   Fields{},
			wantErrs: []string{"venue_id", "date", "time"},
		},
		{
			name:     "unknown venue",
			fields:   Fields{"venue_id": "99", "date": "2026-07-01", "time": "20:00"},
			wantErrs: []string{"venue_id"},
		},
		{
			name:     "date today is too soon",
			fields:   Fields{"venue_id": "1", "date": "2026-06-15", "time": "20:00"},
			wantErrs: []string{"date"},
		},
		{
			name:     "garbage date",
			fields:   Fields{"venue_id": "1", "date": "July 1st", "time": "20:00"},
			wantErrs: []string{"date"},
		},
		{
			name:     "time without minutes",
			fields:   Fields{"venue_id": "1", "date": "2026-07-01", "time": "20"},
			wantErrs: []string{"time"},
		},
		{
			name:     "impossible time",
			fields:   Fields{"venue_id": "1", "date": "2026-07-01", "time": "25:00"},
			wantErrs: []string{"time"},
		},
	}

	w := testWizard(1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validated, errs, err := w.ValidateStep(context.Background(), StepBasicInfo, tt.fields)
			require.NoError(t, err)
			if len(tt.wantErrs) == 0 {
				require.Nil(t, errs)
				assert.Equal(t, tt.fields["venue_id"], validated["venue_id"])
				assert.Equal(t, tt.fields["date"], validated["date"])
				assert.Equal(t, tt.fields["time"], validated["time"])
				return
			}
			require.Nil(t, validated)
			assert.Len(t, errs, len(tt.wantErrs))
			for _, field := range tt.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateStepDetails(t *testing.T) {
	w := testWizard()

	t.Run("status required", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepDetails, Fields{})
		require.NoError(t, err)
		assert.Contains(t, errs, "status")
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepDetails, Fields{"status": "postponed"})
		require.NoError(t, err)
		assert.Contains(t, errs, "status")
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepDetails,
			Fields{"status": "on-sale", "price": "-5"})
		require.NoError(t, err)
		assert.Contains(t, errs, "price")
	})

	t.Run("price and description optional", func(t *testing.T) {
		validated, errs, err := w.ValidateStep(context.Background(), StepDetails,
			Fields{"status": "coming-soon"})
		require.NoError(t, err)
		require.Nil(t, errs)
		assert.Equal(t, "coming-soon", validated["status"])
	})

	t.Run("overlong description rejected", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepDetails,
			Fields{"status": "on-sale", "description": strings.Repeat("x", 1001)})
		require.NoError(t, err)
		assert.Contains(t, errs, "description")
	})
}

func TestValidateStepTickets(t *testing.T) {
	w := testWizard()

	t.Run("ticket url optional", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepTickets, Fields{})
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("relative url rejected", func(t *testing.T) {
		_, errs, err := w.ValidateStep(context.Background(), StepTickets,
			Fields{"ticket_url": "/tickets/123"})
		require.NoError(t, err)
		assert.Contains(t, errs, "ticket_url")
	})

	t.Run("https url accepted", func(t *testing.T) {
		validated, errs, err := w.ValidateStep(context.Background(), StepTickets,
			Fields{"ticket_url": "https://tickets.example.com/lunar-blood"})
		require.NoError(t, err)
		require.Nil(t, errs)
		assert.Equal(t, "https://tickets.example.com/lunar-blood", validated["ticket_url"])
	})
}

// Validation only ever returns the requested step's fields, so a payload
// smuggling later-step values cannot sneak them past step 1.
func TestValidateStepIgnoresForeignFields(t *testing.T) {
	w := testWizard(1)
	validated, errs, err := w.ValidateStep(context.Background(), StepBasicInfo, Fields{
		"venue_id": "1",
		"date":     "2026-07-01",
		"time":     "20:00",
		"status":   "nonsense",
	})
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.NotContains(t, validated, "status")
}

func TestValidateStepVenueLookupFailure(t *testing.T) {
	w := &Wizard{
		Venues: &stubVenues{err: errors.New("connection refused")},
		Now:    fixedNow,
	}
	_, errs, err := w.ValidateStep(context.Background(), StepBasicInfo,
		Fields{"venue_id": "1", "date": "2026-07-01", "time": "20:00"})
	require.Error(t, err)
	assert.Nil(t, errs)
}

// A publish request against a draft that never passed the earlier steps must
// surface every missing field, not just the current step's.
func TestValidatePublishGuardsSkippedSteps(t *testing.T) {
	w := testWizard(1)
	show, errs, err := w.ValidatePublish(context.Background(), Fields{
		"ticket_url": "https://tickets.example.com/x",
	})
	require.NoError(t, err)
	require.Nil(t, show)
	assert.Contains(t, errs, "venue_id")
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "status")
}

func TestValidatePublishMaterializesShow(t *testing.T) {
	w := testWizard(3)
	show, errs, err := w.ValidatePublish(context.Background(), Fields{
		"venue_id":    "3",
		"date":        "2026-08-20",
		"time":        "19:30",
		"status":      "on-sale",
		"price":       "25.50",
		"description": "Album release show",
		"ticket_url":  "https://tickets.example.com/release",
	})
	require.NoError(t, err)
	require.Nil(t, errs)
	require.NotNil(t, show)
	assert.Equal(t, uint64(3), show.VenueID)
	assert.Equal(t, "2026-08-20", show.Date)
	assert.Equal(t, "19:30", show.Time)
	assert.Equal(t, "on-sale", show.Status)
	require.NotNil(t, show.Price)
	assert.InDelta(t, 25.50, *show.Price, 0.001)
	require.NotNil(t, show.TicketURL)
	assert.Equal(t, "https://tickets.example.com/release", *show.TicketURL)
	require.NotNil(t, show.Description)
	assert.Equal(t, "Album release show", *show.Description)
}

func TestValidatePublishOptionalFieldsStayNil(t *testing.T) {
	w := testWizard(1)
	show, errs, err := w.ValidatePublish(context.Background(), Fields{
		"venue_id": "1",
		"date":     "2026-07-01",
		"time":     "20:00",
		"status":   "coming-soon",
	})
	require.NoError(t, err)
	require.Nil(t, errs)
	require.NotNil(t, show)
	assert.Nil(t, show.Price)
	assert.Nil(t, show.TicketURL)
	assert.Nil(t, show.Description)
}
