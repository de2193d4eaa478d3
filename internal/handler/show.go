package handler // handler package contains show and wizard handlers

import (
	"context"  // context backs the post-commit event publish
	"net/http" // http defines status codes
	"strconv"  // strconv parses the wizard step
	"strings"  // strings trims form values
	"time"     // time formats the event timestamp

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/draft"      // draft implements the wizard and autosave
	"github.com/lunarblood/band-site/internal/middleware" // middleware exposes the visitor session ID
	"github.com/lunarblood/band-site/internal/model"      // model defines the show record
	"github.com/lunarblood/band-site/internal/queue"      // queue defines the published event payloads
	"github.com/lunarblood/band-site/internal/repository" // repository persists shows and venues
	queue_publisher "github.com/lunarblood/band-site/internal/service"
)

// ShowHandler bundles everything the show endpoints and the creation wizard
// need: the repositories, the validation state machine and the autosave
// coordinator keyed by visitor session.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Venues *repository.VenueRepo
	Wizard *draft.Wizard
	Drafts *draft.Coordinator
	Log    *logrus.Logger
}

// NewShowHandler constructs a ShowHandler and panics on nil dependencies.
func NewShowHandler(shows *repository.ShowRepo, venues *repository.VenueRepo,
	wizard *draft.Wizard, drafts *draft.Coordinator, log *logrus.Logger) *ShowHandler {
	if shows == nil || venues == nil || wizard == nil || drafts == nil || log == nil {
		panic("nil dependency passed to NewShowHandler")
	}
	return &ShowHandler{Shows: shows, Venues: venues, Wizard: wizard, Drafts: drafts, Log: log}
}

// showWizardReq is the bind target for wizard posts and show updates.  Field
// values are pointers so an absent field is distinguishable from an empty
// one; only fields actually present in the payload reach the draft merge.
type showWizardReq struct {
	Step        *string `json:"step" form:"step"`
	Action      string  `json:"action" form:"action"`
	VenueID     *string `json:"venue_id" form:"venue_id"`
	Date        *string `json:"date" form:"date"`
	Time        *string `json:"time" form:"time"`
	Status      *string `json:"status" form:"status"`
	Price       *string `json:"price" form:"price"`
	Description *string `json:"description" form:"description"`
	TicketURL   *string `json:"ticket_url" form:"ticket_url"`
}

// fields collects the provided show fields into a draft payload.
func (req *showWizardReq) fields() draft.Fields {
	f := draft.Fields{}
	put := func(name string, v *string) {
		if v != nil {
			f[name] = *v
		}
	}
	put("venue_id", req.VenueID)
	put("date", req.Date)
	put("time", req.Time)
	put("status", req.Status)
	put("price", req.Price)
	put("description", req.Description)
	put("ticket_url", req.TicketURL)
	return f
}

// step parses the submitted step, defaulting to 1 and clamping to the
// wizard's range so a tampered value cannot address an undefined step.
func (req *showWizardReq) step() draft.Step {
	if req.Step == nil {
		return draft.StepBasicInfo
	}
	n, err := strconv.Atoi(strings.TrimSpace(*req.Step))
	if err != nil || n < int(draft.StepBasicInfo) {
		return draft.StepBasicInfo
	}
	if n > int(draft.StepTickets) {
		return draft.StepTickets
	}
	return draft.Step(n)
}

// List handles GET /shows and returns every show with its venue, most recent
// first.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.ListAll(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("shows: list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	if shows == nil {
		shows = []model.Show{}
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// Get handles GET /shows/:id.
func (h *ShowHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	show, err := h.Shows.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		h.Log.WithError(err).Error("shows: get failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	return c.JSON(http.StatusOK, echo.Map{"show": show})
}

// CreateForm handles GET /shows/create.  It returns the requested step (or
// the step the draft last advanced to), the venue choices and the visitor's
// current draft with any in-flight autosave edits overlaid, so a reload
// lands exactly where the visitor left off.
func (h *ShowHandler) CreateForm(c echo.Context) error {
	ctx := c.Request().Context()
	session := middleware.SessionID(c)
	if session == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session"})
	}
	fields, err := h.Drafts.Load(ctx, session)
	if err != nil {
		h.Log.WithError(err).Error("wizard: draft load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load draft"})
	}
	step := fields.Step()
	if raw := strings.TrimSpace(c.QueryParam("step")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && draft.Step(n).Valid() {
			step = n
		}
	}
	venues, err := h.Venues.List(ctx)
	if err != nil {
		h.Log.WithError(err).Error("wizard: venue list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"step":           step,
		"venues":         venues,
		"draft":          fields,
		"autosave_state": h.Drafts.State(session),
	})
}

// Store handles POST /shows, the single endpoint driving the wizard.  The
// "action" field selects the behavior:
//
//	save_draft  merge the submitted fields into the draft, no validation
//	next        validate the current step; on success persist its fields
//	            and advance
//	publish     re-validate the whole draft and create the show
func (h *ShowHandler) Store(c echo.Context) error {
	session := middleware.SessionID(c)
	if session == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing session"})
	}
	var req showWizardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch req.Action {
	case "save_draft":
		return h.saveDraft(c, session, &req)
	case "", "next":
		return h.nextStep(c, session, &req)
	case "publish":
		return h.publish(c, session, &req)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown action"})
	}
}

// saveDraft records the raw fields for the debounced background write.  No
// validation runs here; a draft is allowed to hold anything the visitor has
// typed so far.
func (h *ShowHandler) saveDraft(c echo.Context, session string, req *showWizardReq) error {
	fields := req.fields()
	if req.Step != nil {
		fields[draft.FieldCurrentStep] = strconv.Itoa(int(req.step()))
	}
	h.Drafts.Record(session, fields)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Draft saved successfully",
		"state":   h.Drafts.State(session),
	})
}

// nextStep validates the current step and, on success, persists its fields
// together with the advanced step marker.  Field errors re-render the step
// without touching the draft.
func (h *ShowHandler) nextStep(c echo.Context, session string, req *showWizardReq) error {
	ctx := c.Request().Context()
	step := req.step()
	validated, errs, err := h.Wizard.ValidateStep(ctx, step, req.fields())
	if err != nil {
		h.Log.WithError(err).Error("wizard: step validation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to validate step"})
	}
	if errs != nil {
		return validationFailed(c, errs)
	}
	next := step + 1
	if next > draft.StepTickets {
		next = draft.StepTickets
	}
	validated[draft.FieldCurrentStep] = strconv.Itoa(int(next))
	if err := h.Drafts.Save(ctx, session, validated); err != nil {
		h.Log.WithError(err).Error("wizard: draft save failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save draft"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Step saved.",
		"next_step": next,
	})
}

// publish folds the submitted fields into the stored draft, re-validates
// every step's rules against the union and creates the show.  The full
// re-validation is what stops a forged step=3 post from skipping the earlier
// steps.  On success the draft is cleared and a show.published event goes
// out.
func (h *ShowHandler) publish(c echo.Context, session string, req *showWizardReq) error {
	ctx := c.Request().Context()
	if err := h.Drafts.Save(ctx, session, req.fields()); err != nil {
		h.Log.WithError(err).Error("wizard: draft save failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save draft"})
	}
	merged, err := h.Drafts.Load(ctx, session)
	if err != nil {
		h.Log.WithError(err).Error("wizard: draft load failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load draft"})
	}
	show, errs, err := h.Wizard.ValidatePublish(ctx, merged)
	if err != nil {
		h.Log.WithError(err).Error("wizard: publish validation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to validate show"})
	}
	if errs != nil {
		return validationFailed(c, errs)
	}
	if err := h.Shows.Create(ctx, show); err != nil {
		h.Log.WithError(err).Error("wizard: show create failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create show"})
	}
	if err := h.Drafts.Clear(ctx, session); err != nil {
		// The show exists; a stale draft is an annoyance, not a failure.
		h.Log.WithError(err).Warn("wizard: draft clear failed")
	}
	h.announce(show)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Show created successfully!",
		"show":    show,
	})
}

// announce emits the show.published event.  Broker trouble is logged inside
// the publisher and otherwise ignored; the show is already committed.
func (h *ShowHandler) announce(show *model.Show) {
	event := queue.ShowPublishedEvent{
		ShowID:      show.ID,
		VenueID:     show.VenueID,
		Date:        show.Date,
		Time:        show.Time,
		Status:      show.Status,
		Price:       show.Price,
		PublishedAt: show.CreatedAt.UTC().Format(time.RFC3339),
	}
	if venue, err := h.Venues.GetByID(context.Background(), show.VenueID); err == nil {
		event.VenueName = venue.Name
		event.VenueCity = venue.City
	}
	_ = queue_publisher.PublishShowPublished(context.Background(), h.Log, event)
}

// EditForm handles GET /shows/:id/edit and returns the show plus the venue
// choices for the edit form.
func (h *ShowHandler) EditForm(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	show, err := h.Shows.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		h.Log.WithError(err).Error("shows: get failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load show"})
	}
	venues, err := h.Venues.List(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("shows: venue list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	return c.JSON(http.StatusOK, echo.Map{"show": show, "venues": venues})
}

// Update handles PUT /shows/:id with the same full rule set publish uses.
func (h *ShowHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req showWizardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	show, errs, err := h.Wizard.ValidatePublish(ctx, req.fields())
	if err != nil {
		h.Log.WithError(err).Error("shows: update validation failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to validate show"})
	}
	if errs != nil {
		return validationFailed(c, errs)
	}
	show.ID = id
	if err := h.Shows.Update(ctx, show); err != nil {
		switch err {
		case repository.ErrShowNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		case repository.ErrNoChange:
			// Same values resubmitted; report success rather than a conflict.
		default:
			h.Log.WithError(err).Error("shows: update failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update show"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Show updated successfully.",
		"show":    show,
	})
}

// Delete handles DELETE /shows/:id.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Shows.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrShowNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		h.Log.WithError(err).Error("shows: delete failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete show"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Show deleted successfully."})
}
