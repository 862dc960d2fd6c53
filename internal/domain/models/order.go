// internal/domain/models/order.go
package models

import "time"

// Status values for Order.Status.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
	OrderRefunded  = "refunded"
)

// Order is a ticket purchase. OrganizerID denormalizes the owning event's
// organizer so financial summaries can be computed without joining events.
type Order struct {
	ID           string  `bson:"_id" json:"id"`
	EventID      string  `bson:"event_id" json:"event_id"`
	OrganizerID  string  `bson:"organizer_id" json:"organizer_id"`
	BuyerID      string  `bson:"buyer_id" json:"buyer_id"`
	TicketTypeID string  `bson:"ticket_type_id" json:"ticket_type_id"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	UnitPrice    float64 `bson:"unit_price" json:"unit_price"`
	TotalAmount  float64 `bson:"total_amount" json:"total_amount"`
	Currency     string  `bson:"currency" json:"currency"`
	Status       string  `bson:"status" json:"status"` // pending | completed | cancelled | refunded

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
