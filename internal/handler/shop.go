package handler // handler package contains the shop and checkout endpoints

import (
	"net/http" // http defines status codes
	"strconv"  // strconv parses quantities
	"strings"  // strings trims and inspects form values
	"time"     // time stamps the order event

	"github.com/labstack/echo/v4" // echo provides the web context and JSON helpers
	"github.com/sirupsen/logrus"  // logrus is the structured logger

	"github.com/lunarblood/band-site/internal/draft"      // draft supplies the field-error map type
	"github.com/lunarblood/band-site/internal/model"      // model defines the product record
	"github.com/lunarblood/band-site/internal/queue"      // queue defines the order event payload
	"github.com/lunarblood/band-site/internal/repository" // repository loads products
	queue_publisher "github.com/lunarblood/band-site/internal/service"
	"github.com/lunarblood/band-site/internal/utils" // utils generates order references
)

// ShopHandler serves the merch shop, the mock checkout and the contact form.
// No card data is ever stored or forwarded; the payment step only validates
// shape and mints an order reference.
type ShopHandler struct {
	Products *repository.ProductRepo
	Log      *logrus.Logger
}

// NewShopHandler constructs a ShopHandler and panics on nil dependencies.
func NewShopHandler(products *repository.ProductRepo, log *logrus.Logger) *ShopHandler {
	if products == nil || log == nil {
		panic("nil dependency passed to NewShopHandler")
	}
	return &ShopHandler{Products: products, Log: log}
}

// List handles GET /shop and returns every active product.
func (h *ShopHandler) List(c echo.Context) error {
	products, err := h.Products.ListActive(c.Request().Context())
	if err != nil {
		h.Log.WithError(err).Error("shop: product list failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load products"})
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(http.StatusOK, echo.Map{"products": products})
}

// Get handles GET /shop/:id.  Inactive products are indistinguishable from
// missing ones.
func (h *ShopHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	product, err := h.Products.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		h.Log.WithError(err).Error("shop: product get failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"product": product})
}

// Checkout handles GET /checkout.  It resolves the product being bought and
// echoes the order summary the payment form renders: product, quantity, size
// and total.
func (h *ShopHandler) Checkout(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product_id"})
	}
	qty, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil || qty < 1 {
		qty = 1
	}
	product, err := h.Products.GetActiveByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		h.Log.WithError(err).Error("checkout: product get failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load product"})
	}
	resp := echo.Map{
		"product":  product,
		"quantity": qty,
		"total":    product.Price * float64(qty),
	}
	if size := strings.TrimSpace(c.QueryParam("size")); size != "" {
		resp["size"] = size
	}
	return c.JSON(http.StatusOK, resp)
}

// paymentReq is the bind target for the mock payment form.
type paymentReq struct {
	ProductID  string `json:"product_id" form:"product_id"`
	Quantity   string `json:"quantity" form:"quantity"`
	Size       string `json:"size" form:"size"`
	Email      string `json:"email" form:"email"`
	FirstName  string `json:"firstName" form:"firstName"`
	LastName   string `json:"lastName" form:"lastName"`
	Address    string `json:"address" form:"address"`
	City       string `json:"city" form:"city"`
	State      string `json:"state" form:"state"`
	Zip        string `json:"zip" form:"zip"`
	CardNumber string `json:"cardNumber" form:"cardNumber"`
	Expiry     string `json:"expiry" form:"expiry"`
	CVV        string `json:"cvv" form:"cvv"`
}

// validate applies the payment form rules.  The card fields are checked for
// shape only; nothing is charged and nothing card-shaped leaves the request.
func (req *paymentReq) validate() draft.FieldErrors {
	errs := draft.FieldErrors{}
	requireAll := map[string]string{
		"email":     req.Email,
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"address":   req.Address,
		"city":      req.City,
		"state":     req.State,
		"zip":       req.Zip,
	}
	for name, v := range requireAll {
		if strings.TrimSpace(v) == "" {
			errs[name] = name + " is required"
		}
	}
	if e := strings.TrimSpace(req.Email); e != "" && !validEmail(e) {
		errs["email"] = "email must be a valid email address"
	}
	card := strings.ReplaceAll(strings.TrimSpace(req.CardNumber), " ", "")
	if card == "" {
		errs["cardNumber"] = "cardNumber is required"
	} else if !digitsOnly(card) || len(card) < 13 || len(card) > 19 {
		errs["cardNumber"] = "cardNumber must be 13 to 19 digits"
	}
	expiry := strings.TrimSpace(req.Expiry)
	if expiry == "" {
		errs["expiry"] = "expiry is required"
	} else if _, err := time.Parse("01/06", expiry); err != nil {
		errs["expiry"] = "expiry must be in MM/YY format"
	}
	cvv := strings.TrimSpace(req.CVV)
	if cvv == "" {
		errs["cvv"] = "cvv is required"
	} else if !digitsOnly(cvv) || len(cvv) < 3 || len(cvv) > 4 {
		errs["cvv"] = "cvv must be 3 or 4 digits"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// digitsOnly reports whether s is non-empty ASCII digits.
func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// validEmail applies the minimal local@domain.tld shape check.
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1 && !strings.Contains(s, " ")
}

// ProcessPayment handles POST /process-payment.  On valid input it mints an
// order reference, emits an order.placed event and reports success.  The
// checkout is a mock end to end; no payment provider is involved.
func (h *ShopHandler) ProcessPayment(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := req.validate(); errs != nil {
		return validationFailed(c, errs)
	}
	ref := utils.NewOrderRef()

	event := queue.OrderPlacedEvent{
		OrderRef: ref,
		Email:    strings.TrimSpace(req.Email),
		Size:     strings.TrimSpace(req.Size),
		PlacedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(req.ProductID), 10, 64); err == nil {
		event.ProductID = id
		qty, err := strconv.Atoi(strings.TrimSpace(req.Quantity))
		if err != nil || qty < 1 {
			qty = 1
		}
		event.Quantity = qty
		if p, err := h.Products.GetActiveByID(c.Request().Context(), id); err == nil {
			event.Total = p.Price * float64(qty)
		}
	}
	_ = queue_publisher.PublishOrderPlaced(c.Request().Context(), h.Log, event)

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Payment processed successfully",
		"order_id": ref,
	})
}

// OrderSuccess handles GET /order-success and echoes the order reference
// back for the confirmation page.
func (h *ShopHandler) OrderSuccess(c echo.Context) error {
	ref := strings.TrimSpace(c.QueryParam("order_id"))
	if ref == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing order_id"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"order_id": ref,
		"message":  "Thank you for your order!",
	})
}

// contactReq is the bind target for the contact form.
type contactReq struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Contact handles POST /contact.  Messages are logged rather than mailed;
// the band reads the log.
func (h *ShopHandler) Contact(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	errs := draft.FieldErrors{}
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	msg := strings.TrimSpace(req.Message)
	if name == "" {
		errs["name"] = "name is required"
	}
	if email == "" {
		errs["email"] = "email is required"
	} else if !validEmail(email) {
		errs["email"] = "email must be a valid email address"
	}
	if msg == "" {
		errs["message"] = "message is required"
	} else if len([]rune(msg)) > 1000 {
		errs["message"] = "message must be at most 1000 characters"
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}
	h.Log.WithFields(logrus.Fields{
		"name":  name,
		"email": email,
	}).Info("contact: message received")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Thanks for reaching out. We'll get back to you soon.",
	})
}
