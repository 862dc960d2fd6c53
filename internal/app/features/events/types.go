package events

import (
	"strings"
	"time"

	"github.com/shuzaifak/crowd/internal/app/system/normalize"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

var orderStatuses = map[string]bool{
	models.OrderPending:   true,
	models.OrderCompleted: true,
}

type createEventRequest struct {
	Title        string              `json:"title" validate:"required,max=200" label:"Title"`
	Description  string              `json:"description" validate:"max=10000" label:"Description"`
	Category     string              `json:"category" validate:"max=100" label:"Category"`
	Location     string              `json:"location" validate:"max=200" label:"Location"`
	StartDate    time.Time           `json:"start_date"`
	EndDate      time.Time           `json:"end_date"`
	Price        float64             `json:"price"`
	Currency     string              `json:"currency"`
	MaxAttendees int                 `json:"max_attendees"`
	IsFeatured   bool                `json:"is_featured"`
	TicketTypes  []models.TicketType `json:"ticket_types"`
	Tags         []string            `json:"tags"`
}

// check covers what the tag rules cannot: dates, numeric ranges, and the
// embedded ticket tiers.
func (req createEventRequest) check() (msg, field string, ok bool) {
	if req.StartDate.IsZero() {
		return "Start date is required.", "start_date", false
	}
	if req.EndDate.IsZero() {
		return "End date is required.", "end_date", false
	}
	if !req.EndDate.After(req.StartDate) {
		return "End date must be after the start date.", "end_date", false
	}
	if req.Price < 0 {
		return "Price must not be negative.", "price", false
	}
	if req.MaxAttendees < 0 {
		return "Max attendees must not be negative.", "max_attendees", false
	}
	if c := normalize.Currency(req.Currency); c != "" && !isCurrencyCode(c) {
		return "Currency must be a three-letter code.", "currency", false
	}
	return checkTicketTypes(req.TicketTypes)
}

type eventPatchRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Category     *string              `json:"category"`
	Location     *string              `json:"location"`
	StartDate    *time.Time           `json:"start_date"`
	EndDate      *time.Time           `json:"end_date"`
	Price        *float64             `json:"price"`
	Currency     *string              `json:"currency"`
	MaxAttendees *int                 `json:"max_attendees"`
	IsFeatured   *bool                `json:"is_featured"`
	TicketTypes  *[]models.TicketType `json:"ticket_types"`
	Tags         *[]string            `json:"tags"`
}

// check validates the provided fields against the stored event, so a patch
// that moves only one end of the date range still cannot invert it.
func (req eventPatchRequest) check(current *models.Event) (msg, field string, ok bool) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return "Title is required.", "title", false
	}
	start := current.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := current.EndDate
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if !end.After(start) {
		return "End date must be after the start date.", "end_date", false
	}
	if req.Price != nil && *req.Price < 0 {
		return "Price must not be negative.", "price", false
	}
	if req.MaxAttendees != nil && *req.MaxAttendees < 0 {
		return "Max attendees must not be negative.", "max_attendees", false
	}
	if req.Currency != nil {
		if c := normalize.Currency(*req.Currency); c != "" && !isCurrencyCode(c) {
			return "Currency must be a three-letter code.", "currency", false
		}
	}
	if req.TicketTypes != nil {
		return checkTicketTypes(*req.TicketTypes)
	}
	return "", "", true
}

type orderRequest struct {
	TicketTypeID string `json:"ticket_type_id" validate:"required,uuid" label:"Ticket type id"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
}

func (req orderRequest) check() (msg, field string, ok bool) {
	if req.Quantity < 1 {
		return "Quantity must be at least 1.", "quantity", false
	}
	if req.Status != "" && !orderStatuses[normalize.Status(req.Status)] {
		return "Status must be one of: pending, completed.", "status", false
	}
	return "", "", true
}

func checkTicketTypes(tiers []models.TicketType) (msg, field string, ok bool) {
	for _, tt := range tiers {
		if strings.TrimSpace(tt.Name) == "" {
			return "Every ticket type needs a name.", "ticket_types", false
		}
		if tt.Price < 0 {
			return "Ticket type prices must not be negative.", "ticket_types", false
		}
		if tt.Quantity < 0 {
			return "Ticket type quantities must not be negative.", "ticket_types", false
		}
	}
	return "", "", true
}

// isCurrencyCode reports whether s is three ASCII letters. Folding happens
// before the check, so only uppercase arrives here.
func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
