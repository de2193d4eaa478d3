package handler // handler package contains the sitemap endpoint

import (
	"encoding/xml" // xml renders the sitemap protocol document
	"fmt"          // fmt builds absolute URLs
	"net/http"     // http defines status codes
	"strings"      // strings normalizes the base URL

	"github.com/labstack/echo/v4" // echo provides the web context
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/repository" // repository lists venues and products
)

// sitemapURL is one <url> entry in the sitemap protocol document.
type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapDoc is the <urlset> root.
type sitemapDoc struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapHandler renders /sitemap.xml from the static pages plus every venue
// and active product.
type SitemapHandler struct {
	BaseURL  string
	Venues   *repository.VenueRepo
	Products *repository.ProductRepo
	Log      *logrus.Logger
}

// NewSitemapHandler constructs a SitemapHandler and panics on nil
// dependencies.
func NewSitemapHandler(baseURL string, venues *repository.VenueRepo,
	products *repository.ProductRepo, log *logrus.Logger) *SitemapHandler {
	if venues == nil || products == nil || log == nil {
		panic("nil dependency passed to NewSitemapHandler")
	}
	return &SitemapHandler{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Venues:   venues,
		Products: products,
		Log:      log,
	}
}

// staticPages lists the fixed marketing routes with their crawl hints.
var staticPages = []sitemapURL{
	{Loc: "/", ChangeFreq: "weekly", Priority: "1.0"},
	{Loc: "/tour", ChangeFreq: "daily", Priority: "0.9"},
	{Loc: "/listen", ChangeFreq: "weekly", Priority: "0.8"},
	{Loc: "/shop", ChangeFreq: "weekly", Priority: "0.8"},
	{Loc: "/about", ChangeFreq: "monthly", Priority: "0.5"},
}

// Serve handles GET /sitemap.xml.
func (h *SitemapHandler) Serve(c echo.Context) error {
	ctx := c.Request().Context()
	doc := sitemapDoc{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range staticPages {
		p.Loc = h.BaseURL + p.Loc
		doc.URLs = append(doc.URLs, p)
	}
	venues, err := h.Venues.List(ctx)
	if err != nil {
		h.Log.WithError(err).Error("sitemap: venue list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build sitemap"})
	}
	for _, v := range venues {
		doc.URLs = append(doc.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/venues/%d", h.BaseURL, v.ID),
			LastMod:    v.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}
	products, err := h.Products.ListActive(ctx)
	if err != nil {
		h.Log.WithError(err).Error("sitemap: product list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build sitemap"})
	}
	for _, p := range products {
		doc.URLs = append(doc.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/shop/%d", h.BaseURL, p.ID),
			LastMod:    p.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		h.Log.WithError(err).Error("sitemap: marshal failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build sitemap"})
	}
	return c.Blob(http.StatusOK, "text/xml; charset=utf-8", append([]byte(xml.Header), body...))
}
