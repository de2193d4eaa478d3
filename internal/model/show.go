package model

import "time"

// Show status literals.  A show moves between these states manually via the
// edit form; there is no automatic transition.
const (
	ShowStatusComingSoon = "coming-soon"
	ShowStatusOnSale     = "on-sale"
	ShowStatusSoldOut    = "sold-out"
	ShowStatusCancelled  = "cancelled"
)

// ShowStatuses lists every valid status literal in display order.
var ShowStatuses = []string{
	ShowStatusComingSoon,
	ShowStatusOnSale,
	ShowStatusSoldOut,
	ShowStatusCancelled,
}

// ValidShowStatus reports whether s is one of the enumerated status literals.
func ValidShowStatus(s string) bool {
	for _, v := range ShowStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Show represents one booked gig.  A show always belongs to a venue and is
// created either through the edit form or by publishing a completed wizard
// draft.  Date and Time are kept in their wire formats ("2006-01-02" and
// "15:04") since that is how both the API and the DB queries use them.
//
// Fields:
//
//	ID          – primary key identifier.
//	VenueID     – venue the show takes place at.
//	Date        – calendar date of the show ("YYYY-MM-DD").
//	Time        – start time of day ("HH:MM", 24-hour).
//	Status      – one of the ShowStatus* literals.
//	TicketURL   – optional link to the ticket seller.
//	Price       – optional ticket price, zero or greater.
//	Description – optional free-form text, at most 1000 characters.
//	Venue       – joined venue record when the query loads it.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Show struct {
	ID          uint64    `json:"id"`              // shows.id
	VenueID     uint64    `json:"venue_id"`        // shows.venue_id
	Date        string    `json:"date"`            // shows.date
	Time        string    `json:"time"`            // shows.time
	Status      string    `json:"status"`          // shows.status
	TicketURL   *string   `json:"ticket_url"`      // shows.ticket_url (nullable)
	Price       *float64  `json:"price"`           // shows.price (nullable)
	Description *string   `json:"description"`     // shows.description (nullable)
	Venue       *Venue    `json:"venue,omitempty"` // joined venue, not a column
	CreatedAt   time.Time `json:"created_at"`      // shows.created_at
	UpdatedAt   time.Time `json:"updated_at"`      // shows.updated_at
}
