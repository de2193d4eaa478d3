// Package draft implements the show-creation wizard: the per-step
// validation state machine, the session-scoped draft store and the
// debounced autosave coordinator that sits between field edits and the
// store.
package draft

import "strconv"

// Fields holds a partial show draft as field name -> raw form value.  All
// values travel as strings exactly as the form submits them; validation
// parses them into their real types.  A draft may contain any subset of the
// known fields, including none.
type Fields map[string]string

// FieldCurrentStep is the reserved field tracking how far the visitor has
// advanced through the wizard (1..3).
const FieldCurrentStep = "current_step"

// knownFields is the whitelist of field names a draft may carry.  Saves
// silently drop anything else, so a tampered payload cannot grow the draft
// beyond the wizard's vocabulary.
var knownFields = map[string]bool{
	"venue_id":       true,
	"date":           true,
	"time":           true,
	"status":         true,
	"price":          true,
	"description":    true,
	"ticket_url":     true,
	FieldCurrentStep: true,
}

// Step returns the saved wizard step, defaulting to 1 when the draft is new
// or the stored value is unusable.
func (f Fields) Step() int {
	n, err := strconv.Atoi(f[FieldCurrentStep])
	if err != nil || n < 1 {
		return 1
	}
	if n > int(StepTickets) {
		return int(StepTickets)
	}
	return n
}

// Clone returns an independent copy of f.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// merge overlays src onto dst, last write wins per field, dropping unknown
// field names.  dst must not be nil.
func merge(dst, src Fields) {
	for k, v := range src {
		if knownFields[k] {
			dst[k] = v
		}
	}
}
