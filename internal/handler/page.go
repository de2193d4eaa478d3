package handler // handler package contains the public marketing endpoints

import (
	"net/http" // http defines status codes

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/model"      // model defines albums, shows and venues
	"github.com/lunarblood/band-site/internal/repository" // repository loads the page data
)

// bandName and bandBlurb are the static identity served on the home and
// about endpoints.
const (
	bandName  = "Lunar Blood"
	bandBlurb = "Lunar Blood is a four-piece band forging heavy riffs and " +
		"melodic atmosphere into something entirely their own. Formed in the " +
		"basement and raised on the road."
)

// bandMembers is the fixed lineup shown on the about page.
var bandMembers = []echo.Map{
	{"name": "Mara Voss", "role": "vocals"},
	{"name": "Dylan Reyes", "role": "guitar"},
	{"name": "Casper Lind", "role": "bass"},
	{"name": "Juno Park", "role": "drums"},
}

// PageHandler serves the public marketing pages: home, listen, tour and
// about.  Everything here is read-only and cacheable.
type PageHandler struct {
	Albums *repository.AlbumRepo
	Shows  *repository.ShowRepo
	Log    *logrus.Logger
}

// NewPageHandler constructs a PageHandler and panics on nil dependencies.
func NewPageHandler(albums *repository.AlbumRepo, shows *repository.ShowRepo, log *logrus.Logger) *PageHandler {
	if albums == nil || shows == nil || log == nil {
		panic("nil dependency passed to NewPageHandler")
	}
	return &PageHandler{Albums: albums, Shows: shows, Log: log}
}

// Home handles GET /.  It returns the band blurb, the featured release and
// the next upcoming show, any of which may be absent without failing the
// page.
func (h *PageHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	resp := echo.Map{
		"band":  bandName,
		"blurb": bandBlurb,
	}
	featured, err := h.Albums.ListFeatured(ctx)
	if err != nil {
		h.Log.WithError(err).Error("home: featured albums failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load page"})
	}
	if len(featured) > 0 {
		resp["featured_album"] = featured[0]
	}
	upcoming, err := h.Shows.ListUpcoming(ctx, 1)
	if err != nil {
		h.Log.WithError(err).Error("home: next show failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load page"})
	}
	if len(upcoming) > 0 {
		resp["next_show"] = upcoming[0]
	}
	return c.JSON(http.StatusOK, resp)
}

// Listen handles GET /listen and returns every release with its tracks,
// newest first.
func (h *PageHandler) Listen(c echo.Context) error {
	albums, err := h.Albums.ListAll(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("listen: album list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load albums"})
	}
	if albums == nil {
		albums = []model.Album{}
	}
	return c.JSON(http.StatusOK, echo.Map{"albums": albums})
}

// Tour handles GET /tour and returns upcoming shows soonest first.  Past
// shows never appear here; the admin show list is where history lives.
func (h *PageHandler) Tour(c echo.Context) error {
	shows, err := h.Shows.ListUpcoming(c.Request().Context(), 0)
	if err != nil {
		h.Log.WithError(err).Error("tour: upcoming shows failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shows"})
	}
	if shows == nil {
		shows = []model.Show{}
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// About handles GET /about with the static band bio and lineup.
func (h *PageHandler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"band":    bandName,
		"blurb":   bandBlurb,
		"members": bandMembers,
	})
}
