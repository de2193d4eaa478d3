package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarblood/band-site/internal/draft"
	"github.com/lunarblood/band-site/internal/repository"
)

// allVenues reports every venue ID as existing.
type allVenues struct{}

func (allVenues) Exists(context.Context, uint64) (bool, error) { return true, nil }

// wizardFixture wires a ShowHandler around an in-memory draft store.  The
// repositories never see a query in these tests; everything under test stops
// at the draft layer.
type wizardFixture struct {
	handler *ShowHandler
	store   draft.Store
	e       *echo.Echo
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	store := draft.NewMemoryStore()
	log := logrus.New()
	log.SetOutput(noopWriter{})
	h := NewShowHandler(
		repository.NewShowRepo(nil),
		repository.NewVenueRepo(nil),
		&draft.Wizard{Venues: allVenues{}, Now: func() time.Time {
			return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
		}},
		draft.NewCoordinator(store, time.Hour),
		log,
	)
	return &wizardFixture{handler: h, store: store, e: echo.New()}
}

type noopWriter struct{}

func (noopWriter) Write(p []byte) (int, error) { return len(p), nil }

// post builds an echo context for POST /shows with a JSON body and the given
// visitor session.
func (f *wizardFixture) post(session, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/shows", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set("session_id", session)
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestWizardSaveDraftMergesWithoutValidation(t *testing.T) {
	f := newWizardFixture(t)

	// An incomplete, even invalid, payload is accepted verbatim.
	c, rec := f.post("s1", `{"action":"save_draft","step":"1","date":"not-a-date"}`)
	require.NoError(t, f.handler.Store(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Draft saved successfully", decodeBody(t, rec)["message"])

	got, err := f.handler.Drafts.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "not-a-date", got["date"])
}

func TestWizardSaveDraftAccumulates(t *testing.T) {
	f := newWizardFixture(t)

	c, _ := f.post("s1", `{"action":"save_draft","venue_id":"1"}`)
	require.NoError(t, f.handler.Store(c))
	c, _ = f.post("s1", `{"action":"save_draft","date":"2026-07-01"}`)
	require.NoError(t, f.handler.Store(c))

	got, err := f.handler.Drafts.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "1", got["venue_id"])
	assert.Equal(t, "2026-07-01", got["date"])
}

func TestWizardNextAdvancesAndPersists(t *testing.T) {
	f := newWizardFixture(t)

	c, rec := f.post("s1", `{"action":"next","step":"1","venue_id":"1","date":"2026-07-01","time":"20:00"}`)
	require.NoError(t, f.handler.Store(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeBody(t, rec)["next_step"])

	got, err := f.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "2", got[draft.FieldCurrentStep])
	assert.Equal(t, "20:00", got["time"])
}

func TestWizardNextRejectsInvalidStepPayload(t *testing.T) {
	f := newWizardFixture(t)

	c, rec := f.post("s1", `{"action":"next","step":"1","venue_id":"1","date":"2020-01-01","time":"20:00"}`)
	require.NoError(t, f.handler.Store(c))
	require.Equal(t, 422, rec.Code)
	body := decodeBody(t, rec)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "date")

	// A failed step must leave the draft untouched.
	got, err := f.store.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWizardPublishRejectsSkippedSteps(t *testing.T) {
	f := newWizardFixture(t)

	// Jump straight to publish with a near-empty draft.
	c, rec := f.post("s1", `{"action":"publish","step":"3","ticket_url":"https://t.example.com/1"}`)
	require.NoError(t, f.handler.Store(c))
	require.Equal(t, 422, rec.Code)

	errs, ok := decodeBody(t, rec)["errors"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"venue_id", "date", "time", "status"} {
		assert.Contains(t, errs, field)
	}
}

func TestWizardUnknownActionRejected(t *testing.T) {
	f := newWizardFixture(t)
	c, rec := f.post("s1", `{"action":"teleport"}`)
	require.NoError(t, f.handler.Store(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardMissingSessionRejected(t *testing.T) {
	f := newWizardFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/shows", strings.NewReader(`{"action":"save_draft"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	require.NoError(t, f.handler.Store(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardStepClamping(t *testing.T) {
	tests := []struct {
		raw  string
		want draft.Step
	}{
		{"", draft.StepBasicInfo},
		{"0", draft.StepBasicInfo},
		{"2", draft.StepDetails},
		{"7", draft.StepTickets},
		{"banana", draft.StepBasicInfo},
	}
	for _, tt := range tests {
		req := showWizardReq{}
		if tt.raw != "" {
			v := tt.raw
			req.Step = &v
		}
		assert.Equal(t, tt.want, req.step(), "raw=%q", tt.raw)
	}
}
