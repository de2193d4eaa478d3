package model

import "time"

// Venue represents a place the band can play: a club, a hall, a festival
// ground.  Venues have an independent lifecycle and are referenced by zero
// or more shows.  Deleting a venue removes its shows as well.  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – venue name.
//	City        – city the venue is in.
//	State       – optional state/region.
//	Country     – country the venue is in.
//	Address     – street address.
//	Capacity    – optional capacity, must be positive when present.
//	Website     – optional website URL.
//	Phone       – optional contact phone.
//	Description – optional free-form text.
//	Image       – optional image URL.
//	ShowsCount  – number of shows booked at the venue (filled by list queries).
//	CreatedAt   – timestamp when the venue was created.
//	UpdatedAt   – timestamp of last update.
type Venue struct {
	ID          uint64    `json:"id"`                    // venues.id
	Name        string    `json:"name"`                  // venues.name
	City        string    `json:"city"`                  // venues.city
	State       *string   `json:"state"`                 // venues.state (nullable)
	Country     string    `json:"country"`               // venues.country
	Address     string    `json:"address"`               // venues.address
	Capacity    *uint32   `json:"capacity"`              // venues.capacity (nullable)
	Website     *string   `json:"website"`               // venues.website (nullable)
	Phone       *string   `json:"phone"`                 // venues.phone (nullable)
	Description *string   `json:"description"`           // venues.description (nullable)
	Image       *string   `json:"image"`                 // venues.image (nullable)
	ShowsCount  uint64    `json:"shows_count,omitempty"` // derived, not a column
	CreatedAt   time.Time `json:"created_at"`            // venues.created_at
	UpdatedAt   time.Time `json:"updated_at"`            // venues.updated_at
}
