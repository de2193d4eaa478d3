package utils

import (
	"strings"

	"github.com/google/uuid"
)

// orderRefLength is the number of characters after the "LB-" prefix.
const orderRefLength = 9

// NewOrderRef returns a human-friendly order reference like "LB-3F9A10C2B".
// References are derived from a random UUID, so collisions are not a
// practical concern for a mock checkout.
func NewOrderRef() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "LB-" + hex[:orderRefLength]
}
