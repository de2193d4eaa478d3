package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/lunarblood/band-site/internal/draft" // draft holds the wizard field errors type
)

// lowStockThreshold is the stock level at or below which a product shows up
// on the dashboard's low-stock list.
const lowStockThreshold = 5

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// parseIDParam reads a numeric :id path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// validationFailed renders a 422 with the per-field error map.  Callers must
// not advance any state when returning this.
func validationFailed(c echo.Context, errs draft.FieldErrors) error {
	return c.JSON(422, echo.Map{
		"message": "validation failed",
		"errors":  errs,
	})
}
