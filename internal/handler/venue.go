package handler // handler package contains venue management handlers

import (
	"net/http" // http defines status codes
	"net/url"  // url validates website/image fields
	"strconv"  // strconv parses the capacity field
	"strings"  // strings helps with trimming whitespace

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers

	"github.com/lunarblood/band-site/internal/draft"      // draft supplies the field-error map type
	"github.com/lunarblood/band-site/internal/model"      // model defines the venue record
	"github.com/lunarblood/band-site/internal/repository" // repository persists venues and shows
)

// VenueHandler bundles the repositories the venue endpoints need.
type VenueHandler struct {
	Venues *repository.VenueRepo
	Shows  *repository.ShowRepo
}

// NewVenueHandler constructs a VenueHandler and panics on nil dependencies.
func NewVenueHandler(venues *repository.VenueRepo, shows *repository.ShowRepo) *VenueHandler {
	if venues == nil || shows == nil {
		panic("nil repository passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues, Shows: shows}
}

// venueReq is the bind target for create and update.  Optional fields are
// strings here and become NULLs when blank.
type venueReq struct {
	Name        string `json:"name" form:"name"`
	City        string `json:"city" form:"city"`
	State       string `json:"state" form:"state"`
	Country     string `json:"country" form:"country"`
	Address     string `json:"address" form:"address"`
	Capacity    string `json:"capacity" form:"capacity"`
	Website     string `json:"website" form:"website"`
	Phone       string `json:"phone" form:"phone"`
	Description string `json:"description" form:"description"`
	Image       string `json:"image" form:"image"`
}

// validate applies the venue field rules and, on success, maps the request
// into a model.Venue ready for the repository.
func (req *venueReq) validate() (*model.Venue, draft.FieldErrors) {
	errs := draft.FieldErrors{}
	name := strings.TrimSpace(req.Name)
	city := strings.TrimSpace(req.City)
	country := strings.TrimSpace(req.Country)
	address := strings.TrimSpace(req.Address)
	if name == "" {
		errs["name"] = "name is required"
	} else if len(name) > 255 {
		errs["name"] = "name must be at most 255 characters"
	}
	if city == "" {
		errs["city"] = "city is required"
	}
	if country == "" {
		errs["country"] = "country is required"
	}
	if address == "" {
		errs["address"] = "address is required"
	}

	v := &model.Venue{Name: name, City: city, Country: country, Address: address}
	if s := strings.TrimSpace(req.State); s != "" {
		v.State = &s
	}
	if cap := strings.TrimSpace(req.Capacity); cap != "" {
		n, err := strconv.ParseUint(cap, 10, 32)
		if err != nil || n < 1 {
			errs["capacity"] = "capacity must be a positive integer"
		} else {
			c := uint32(n)
			v.Capacity = &c
		}
	}
	if w := strings.TrimSpace(req.Website); w != "" {
		if !validURL(w) {
			errs["website"] = "website must be a valid URL"
		} else {
			v.Website = &w
		}
	}
	if p := strings.TrimSpace(req.Phone); p != "" {
		if len(p) > 255 {
			errs["phone"] = "phone must be at most 255 characters"
		} else {
			v.Phone = &p
		}
	}
	if d := req.Description; d != "" {
		v.Description = &d
	}
	if img := strings.TrimSpace(req.Image); img != "" {
		if !validURL(img) {
			errs["image"] = "image must be a valid URL"
		} else {
			v.Image = &img
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return v, nil
}

// validURL accepts http(s) URLs with a host.
func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// List handles GET /venues and returns all venues with their show counts.
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venues"})
	}
	if venues == nil {
		venues = []model.Venue{}
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}

// Get handles GET /venues/:id and returns one venue with its shows.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	venue, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load venue"})
	}
	shows, err := h.Shows.ListByVenue(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	if shows == nil {
		shows = []model.Show{}
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": venue, "shows": shows})
}

// Create handles POST /venues.
func (h *VenueHandler) Create(c echo.Context) error {
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	venue, errs := req.validate()
	if errs != nil {
		return validationFailed(c, errs)
	}
	if err := h.Venues.Create(c.Request().Context(), venue); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create venue"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Venue created successfully.",
		"venue":   venue,
	})
}

// Update handles PUT /venues/:id.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req venueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	venue, errs := req.validate()
	if errs != nil {
		return validationFailed(c, errs)
	}
	venue.ID = id
	if err := h.Venues.Update(c.Request().Context(), venue); err != nil {
		switch err {
		case repository.ErrVenueNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		case repository.ErrNoChange:
			// Same values resubmitted; report success rather than a conflict.
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update venue"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Venue updated successfully.",
		"venue":   venue,
	})
}

// Delete handles DELETE /venues/:id.  Every show booked at the venue is
// removed with it.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete venue"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Venue deleted successfully."})
}
