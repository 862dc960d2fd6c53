// internal/domain/models/event.go
package models

import "time"

// Status values for Event.Status.
const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventCancelled = "cancelled"
	EventCompleted = "completed"
)

// Event is a bookable event owned by an organizer. Events are created in
// draft and become publicly listable only through an explicit publish
// transition. Deleting an event is a soft delete (IsActive=false).
//
// Neither CurrentAttendees<=MaxAttendees nor TicketType.Sold<=Quantity is
// enforced at write time; oversell is possible and intentional until the
// product decides between a hard cap and a soft warning.
type Event struct {
	ID          string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Category    string `bson:"category" json:"category"`
	Location    string `bson:"location" json:"location"`

	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`

	Price    float64 `bson:"price" json:"price"`
	Currency string  `bson:"currency" json:"currency"`

	MaxAttendees     int `bson:"max_attendees" json:"max_attendees"`
	CurrentAttendees int `bson:"current_attendees" json:"current_attendees"`

	OrganizerID string `bson:"organizer_id" json:"organizer_id"`
	Status      string `bson:"status" json:"status"` // draft | published | cancelled | completed
	IsActive    bool   `bson:"is_active" json:"is_active"`
	IsFeatured  bool   `bson:"is_featured" json:"is_featured"`

	TicketTypes []TicketType `bson:"ticket_types" json:"ticket_types"`
	Tags        []string     `bson:"tags" json:"tags"`

	// Folded shadow fields backing case- and diacritic-insensitive matching
	// on the document store. The document backend maintains them on every
	// write; the file backend folds at query time and never stores them, so
	// they are excluded from JSON.
	TitleCI       string `bson:"title_ci,omitempty" json:"-"`
	DescriptionCI string `bson:"description_ci,omitempty" json:"-"`
	CategoryCI    string `bson:"category_ci,omitempty" json:"-"`
	LocationCI    string `bson:"location_ci,omitempty" json:"-"`

	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// TicketType is a purchasable ticket tier embedded on an event.
type TicketType struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Sold     int     `bson:"sold" json:"sold"`
}
