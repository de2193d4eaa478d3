package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/labstack/echo/v4"   // echo is the web framework handling routing
	"github.com/redis/go-redis/v9"  // redis backs the rate limiter and response cache

	"github.com/lunarblood/band-site/internal/config"     // config loads the per-bucket limiter settings
	"github.com/lunarblood/band-site/internal/handler"    // handler implements the endpoints
	"github.com/lunarblood/band-site/internal/middleware" // middleware provides auth, session, limiting, caching
)

// Handlers bundles every handler the router wires up.  main builds one of
// these after constructing the repositories.
type Handlers struct {
	Pages     *handler.PageHandler
	Venues    *handler.VenueHandler
	Shows     *handler.ShowHandler
	Shop      *handler.ShopHandler
	Dashboard *handler.DashboardHandler
	Auth      *handler.AuthHandler
	Sitemap   *handler.SitemapHandler
}

// Register wires the complete route table onto e.  rdb may be nil, in which
// case the rate limiter and the response cache silently disable themselves
// and every route still works.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, h Handlers) {
	// Security headers apply to every response, including errors.
	e.Use(middleware.SecurityHeaders())

	// Three limiter buckets: the general API bucket, a tight one for the
	// payment endpoint and a tighter one for the contact form.
	apiLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	payLimit := middleware.NewTokenBucket(config.LoadPaymentRateLimit(), rdb)
	contactLimit := middleware.NewTokenBucket(config.LoadContactRateLimit(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// The visitor session cookie keys the wizard draft; only the routes that
	// touch drafts need it.
	session := middleware.VisitorSession(cfg.SessionTTLDays)

	// Operational endpoints stay outside every limiter.
	e.GET("/healthz", handler.Health)
	e.GET("/api/health", handler.Health)
	e.GET("/sitemap.xml", h.Sitemap.Serve)

	// Public marketing pages are read-only and cacheable.
	pages := e.Group("", apiLimit, cache)
	pages.GET("/", h.Pages.Home)
	pages.GET("/about", h.Pages.About)
	pages.GET("/listen", h.Pages.Listen)
	pages.GET("/tour", h.Pages.Tour)
	pages.GET("/shop", h.Shop.List)
	pages.GET("/shop/:id", h.Shop.Get)

	// Checkout flow.  The payment endpoint gets its own small bucket so a
	// card-testing burst cannot hide inside the general API allowance.
	e.GET("/checkout", h.Shop.Checkout, apiLimit)
	e.GET("/order-success", h.Shop.OrderSuccess, apiLimit)
	e.POST("/api/process-payment", h.Shop.ProcessPayment, payLimit)
	e.POST("/api/contact", h.Shop.Contact, contactLimit)

	// Venue management.
	venues := e.Group("/venues", apiLimit)
	venues.GET("", h.Venues.List)
	venues.POST("", h.Venues.Create)
	venues.GET("/:id", h.Venues.Get)
	venues.PUT("/:id", h.Venues.Update)
	venues.DELETE("/:id", h.Venues.Delete)

	// Show management and the creation wizard.  The wizard routes carry the
	// visitor session so each browser owns exactly one draft.
	shows := e.Group("/shows", apiLimit, session)
	shows.GET("", h.Shows.List)
	shows.GET("/create", h.Shows.CreateForm)
	shows.POST("", h.Shows.Store)
	shows.GET("/:id", h.Shows.Get)
	shows.GET("/:id/edit", h.Shows.EditForm)
	shows.PUT("/:id", h.Shows.Update)
	shows.DELETE("/:id", h.Shows.Delete)

	// Auth endpoints issue and exchange tokens; none of them require an
	// existing session.
	auth := e.Group("/v1/auth", apiLimit)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/refresh-access", h.Auth.RefreshAccess)
	auth.POST("/logout", h.Auth.Logout)

	// Protected endpoints.  Both roles may view the dashboard; the role
	// middleware rejects tokens carrying anything else.
	protected := e.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN", "EDITOR"))
	protected.GET("/me", h.Auth.Me)

	dashboard := e.Group("/dashboard", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole("ADMIN", "EDITOR"))
	dashboard.GET("", h.Dashboard.Index)
	dashboard.GET("/data", h.Dashboard.Data)
}
