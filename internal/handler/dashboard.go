package handler // handler package contains the admin dashboard endpoints

import (
	"context"  // context threads request deadlines to the queries
	"net/http" // http defines status codes
	"time"     // time stamps the snapshot

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/model"      // model defines the listed records
	"github.com/lunarblood/band-site/internal/repository" // repository supplies the counts
)

// dashboardStats is the counter block at the top of the dashboard.
type dashboardStats struct {
	Venues           uint64 `json:"venues"`
	ShowsTotal       uint64 `json:"shows_total"`
	ShowsUpcoming    uint64 `json:"shows_upcoming"`
	ProductsActive   uint64 `json:"products_active"`
	ProductsLowStock uint64 `json:"products_low_stock"`
}

// dashboardSnapshot is the full payload both dashboard endpoints produce.
type dashboardSnapshot struct {
	Stats         dashboardStats  `json:"stats"`
	UpcomingShows []model.Show    `json:"upcoming_shows"`
	LowStock      []model.Product `json:"low_stock"`
	GeneratedAt   string          `json:"generated_at"`
}

// DashboardHandler aggregates the admin overview: counters, the next shows
// and products running out of stock.
type DashboardHandler struct {
	Venues   *repository.VenueRepo
	Shows    *repository.ShowRepo
	Products *repository.ProductRepo
	Log      *logrus.Logger
}

// NewDashboardHandler constructs a DashboardHandler and panics on nil
// dependencies.
func NewDashboardHandler(venues *repository.VenueRepo, shows *repository.ShowRepo,
	products *repository.ProductRepo, log *logrus.Logger) *DashboardHandler {
	if venues == nil || shows == nil || products == nil || log == nil {
		panic("nil dependency passed to NewDashboardHandler")
	}
	return &DashboardHandler{Venues: venues, Shows: shows, Products: products, Log: log}
}

// snapshot collects every dashboard figure.  The first failing query aborts
// the collection.
func (h *DashboardHandler) snapshot(ctx context.Context) (*dashboardSnapshot, error) {
	var (
		snap dashboardSnapshot
		err  error
	)
	if snap.Stats.Venues, err = h.Venues.Count(ctx); err != nil {
		return nil, err
	}
	if snap.Stats.ShowsTotal, err = h.Shows.Count(ctx); err != nil {
		return nil, err
	}
	if snap.Stats.ShowsUpcoming, err = h.Shows.CountUpcoming(ctx); err != nil {
		return nil, err
	}
	if snap.Stats.ProductsActive, err = h.Products.CountActive(ctx); err != nil {
		return nil, err
	}
	if snap.Stats.ProductsLowStock, err = h.Products.CountLowStock(ctx, lowStockThreshold); err != nil {
		return nil, err
	}
	if snap.UpcomingShows, err = h.Shows.ListUpcoming(ctx, 5); err != nil {
		return nil, err
	}
	if snap.LowStock, err = h.Products.ListLowStock(ctx, lowStockThreshold, 5); err != nil {
		return nil, err
	}
	if snap.UpcomingShows == nil {
		snap.UpcomingShows = []model.Show{}
	}
	if snap.LowStock == nil {
		snap.LowStock = []model.Product{}
	}
	snap.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return &snap, nil
}

// Index handles GET /dashboard.  When the data cannot be loaded the page
// still renders with zeroed figures and an initialError message, so the
// admin shell itself never 500s.
func (h *DashboardHandler) Index(c echo.Context) error {
	snap, err := h.snapshot(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("dashboard: snapshot failed")
		empty := dashboardSnapshot{
			UpcomingShows: []model.Show{},
			LowStock:      []model.Product{},
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		return c.JSON(http.StatusOK, echo.Map{
			"dashboard":    empty,
			"initialError": "Dashboard data is temporarily unavailable.",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"dashboard": snap})
}

// Data handles GET /dashboard/data, the refresh endpoint the dashboard polls.
// Unlike Index it reports failures as errors so the client can keep showing
// the previous snapshot.
func (h *DashboardHandler) Data(c echo.Context) error {
	snap, err := h.snapshot(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("dashboard: snapshot failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load dashboard data"})
	}
	return c.JSON(http.StatusOK, snap)
}
