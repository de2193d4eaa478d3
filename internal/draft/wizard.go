package draft

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lunarblood/band-site/internal/model"
)

// Step identifies one of the three wizard steps.
type Step int

const (
	StepBasicInfo Step = 1 // venue, date, time
	StepDetails   Step = 2 // status, price, description
	StepTickets   Step = 3 // ticket link, publish
)

// Valid reports whether s is one of the three defined steps.
func (s Step) Valid() bool { return s >= StepBasicInfo && s <= StepTickets }

// stepFields maps each step to the draft fields it owns.  ValidateStep only
// ever looks at (and returns) the fields of the requested step.
var stepFields = map[Step][]string{
	StepBasicInfo: {"venue_id", "date", "time"},
	StepDetails:   {"status", "price", "description"},
	StepTickets:   {"ticket_url"},
}

// FieldErrors maps a field name to a human-readable problem with its value.
// An empty map means the payload passed.
type FieldErrors map[string]string

// VenueFinder checks venue references during validation.  The venue
// repository satisfies it; tests substitute a stub.
type VenueFinder interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

// Wizard is the step/validation state machine for the show-creation flow.
// It is stateless; the draft being validated lives in the store and the
// current step travels with it.
type Wizard struct {
	Venues VenueFinder
	Now    func() time.Time // defaults to time.Now, injectable for tests
}

// NewWizard constructs a Wizard backed by the given venue finder.
func NewWizard(venues VenueFinder) *Wizard {
	return &Wizard{Venues: venues, Now: time.Now}
}

func (w *Wizard) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// ValidateStep applies one step's rules to the payload and returns the
// validated subset of fields for that step.  On failure it returns a
// field->message map and the caller must re-render the step without
// advancing.  The non-nil error return is reserved for infrastructure
// failures (venue lookup), never for bad input.
func (w *Wizard) ValidateStep(ctx context.Context, step Step, f Fields) (Fields, FieldErrors, error) {
	errs := FieldErrors{}
	switch step {
	case StepBasicInfo:
		if err := w.checkVenue(ctx, f, errs); err != nil {
			return nil, nil, err
		}
		w.checkDate(f, errs)
		checkTime(f, errs)
	case StepDetails:
		checkStatus(f, errs)
		checkPrice(f, errs)
		checkDescription(f, errs)
	case StepTickets:
		checkTicketURL(f, errs)
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}
	validated := Fields{}
	for _, name := range stepFields[step] {
		if v, ok := f[name]; ok {
			validated[name] = v
		}
	}
	return validated, nil, nil
}

// ValidatePublish re-validates the union of every step's rules regardless of
// how far the draft claims to have advanced.  This is the step-skip guard: a
// publish request forged with step=3 against a draft that never passed step
// 1 fails here with the aggregate field errors.  On success it materializes
// the show input ready for insertion.
func (w *Wizard) ValidatePublish(ctx context.Context, f Fields) (*model.Show, FieldErrors, error) {
	errs := FieldErrors{}
	if err := w.checkVenue(ctx, f, errs); err != nil {
		return nil, nil, err
	}
	w.checkDate(f, errs)
	checkTime(f, errs)
	checkStatus(f, errs)
	checkPrice(f, errs)
	checkDescription(f, errs)
	checkTicketURL(f, errs)
	if len(errs) > 0 {
		return nil, errs, nil
	}

	venueID, _ := strconv.ParseUint(strings.TrimSpace(f["venue_id"]), 10, 64)
	show := &model.Show{
		VenueID: venueID,
		Date:    strings.TrimSpace(f["date"]),
		Time:    strings.TrimSpace(f["time"]),
		Status:  strings.TrimSpace(f["status"]),
	}
	if v := strings.TrimSpace(f["ticket_url"]); v != "" {
		show.TicketURL = &v
	}
	if v := strings.TrimSpace(f["price"]); v != "" {
		p, _ := strconv.ParseFloat(v, 64)
		show.Price = &p
	}
	if v := f["description"]; v != "" {
		show.Description = &v
	}
	return show, nil, nil
}

// ----- per-field rules -----

func (w *Wizard) checkVenue(ctx context.Context, f Fields, errs FieldErrors) error {
	raw := strings.TrimSpace(f["venue_id"])
	if raw == "" {
		errs["venue_id"] = "venue_id is required"
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		errs["venue_id"] = "selected venue is invalid"
		return nil
	}
	ok, err := w.Venues.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		// A dangling reference is a field error, not a server fault.
		errs["venue_id"] = "selected venue does not exist"
	}
	return nil
}

func (w *Wizard) checkDate(f Fields, errs FieldErrors) {
	raw := strings.TrimSpace(f["date"])
	if raw == "" {
		errs["date"] = "date is required"
		return
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		errs["date"] = "date must be a valid date (YYYY-MM-DD)"
		return
	}
	// Strictly later than today: same-day shows cannot be created.
	now := w.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !d.After(today) {
		errs["date"] = "date must be later than today"
	}
}

func checkTime(f Fields, errs FieldErrors) {
	raw := strings.TrimSpace(f["time"])
	if raw == "" {
		errs["time"] = "time is required"
		return
	}
	if len(raw) != 5 || raw[2] != ':' {
		errs["time"] = "time must be in HH:MM format"
		return
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		errs["time"] = "time must be in HH:MM format"
	}
}

func checkStatus(f Fields, errs FieldErrors) {
	raw := strings.TrimSpace(f["status"])
	if raw == "" {
		errs["status"] = "status is required"
		return
	}
	if !model.ValidShowStatus(raw) {
		errs["status"] = "status must be one of: " + strings.Join(model.ShowStatuses, ", ")
	}
}

func checkPrice(f Fields, errs FieldErrors) {
	raw := strings.TrimSpace(f["price"])
	if raw == "" {
		return // optional
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs["price"] = "price must be a number"
		return
	}
	if p < 0 {
		errs["price"] = "price must be zero or greater"
	}
}

func checkDescription(f Fields, errs FieldErrors) {
	if utf8.RuneCountInString(f["description"]) > 1000 {
		errs["description"] = "description must be at most 1000 characters"
	}
}

func checkTicketURL(f Fields, errs FieldErrors) {
	raw := strings.TrimSpace(f["ticket_url"])
	if raw == "" {
		return // optional
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs["ticket_url"] = "ticket_url must be a valid URL"
	}
}
