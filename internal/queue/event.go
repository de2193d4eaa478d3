// Package queue defines message payloads exchanged over the message broker.
package queue

// ShowPublishedQueue and OrderPlacedQueue are the durable queue names the
// site publishes to and the consumer reads from.
const (
	ShowPublishedQueue = "show.published"
	OrderPlacedQueue   = "order.placed"
)

// ShowPublishedEvent is published when a wizard draft materializes into a
// show.  It carries enough information for downstream consumers to announce
// the gig or trigger analytics without querying the primary database.
type ShowPublishedEvent struct {
	ShowID      uint64   `json:"show_id"`
	VenueID     uint64   `json:"venue_id"`
	VenueName   string   `json:"venue_name"`
	VenueCity   string   `json:"venue_city"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Status      string   `json:"status"`
	Price       *float64 `json:"price,omitempty"`
	PublishedAt string   `json:"published_at"`
}

// OrderPlacedEvent is published when the mock checkout accepts a payment.
// No card data ever enters the event.
type OrderPlacedEvent struct {
	OrderRef  string  `json:"order_ref"`
	ProductID uint64  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Total     float64 `json:"total"`
	Email     string  `json:"email"`
	PlacedAt  string  `json:"placed_at"`
}
