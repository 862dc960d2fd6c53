package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data. Records go through
// the store contract, so the same helpers work against either backend.
type Fixtures struct {
	store store.Store
	t     *testing.T
}

// NewFixtures creates a new Fixtures instance over the given store.
func NewFixtures(t *testing.T, s store.Store) *Fixtures {
	t.Helper()
	return &Fixtures{store: s, t: t}
}

// Store returns the underlying store for direct access in tests.
func (f *Fixtures) Store() store.Store {
	return f.store
}

// CreateUser creates an active test user with the given name and email.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	user, err := f.store.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: "test-hash",
		FullName:     fullName,
	})
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateOrganizer creates a test user and flips it to an organizer account.
func (f *Fixtures) CreateOrganizer(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()

	user := f.CreateUser(ctx, fullName, email)
	isOrganizer := true
	user, err := f.store.UpdateUser(ctx, user.ID, store.UserPatch{IsOrganizer: &isOrganizer})
	if err != nil {
		f.t.Fatalf("failed to promote test user to organizer: %v", err)
	}

	return user
}

// CreateEvent creates a draft event owned by the given organizer, with a
// General (50 x 100) and a VIP (120 x 10) ticket tier.
func (f *Fixtures) CreateEvent(ctx context.Context, organizerID, title string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event, err := f.store.CreateEvent(ctx, models.Event{
		Title:       title,
		Description: "An evening of demos",
		Category:    "Technology",
		Location:    "Berlin",
		StartDate:   now.Add(72 * time.Hour),
		EndDate:     now.Add(76 * time.Hour),
		Currency:    "USD",
		OrganizerID: organizerID,
		TicketTypes: []models.TicketType{
			{Name: "General", Price: 50, Quantity: 100},
			{Name: "VIP", Price: 120, Quantity: 10},
		},
	})
	if err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}

	return event
}

// CreatePublishedEvent creates an event and publishes it.
func (f *Fixtures) CreatePublishedEvent(ctx context.Context, organizerID, title string) models.Event {
	f.t.Helper()

	event := f.CreateEvent(ctx, organizerID, title)
	event, err := f.store.PublishEvent(ctx, event.ID)
	if err != nil {
		f.t.Fatalf("failed to publish test event: %v", err)
	}

	return event
}

// CreateOrder buys tickets of the event's first tier for the given buyer and
// stamps the order with the given status.
func (f *Fixtures) CreateOrder(ctx context.Context, event models.Event, buyerID string, quantity int, status string) models.Order {
	f.t.Helper()

	if len(event.TicketTypes) == 0 {
		f.t.Fatal("test event has no ticket types")
	}

	order, err := f.store.CreateOrder(ctx, models.Order{
		EventID:      event.ID,
		BuyerID:      buyerID,
		TicketTypeID: event.TicketTypes[0].ID,
		Quantity:     quantity,
		Status:       status,
	})
	if err != nil {
		f.t.Fatalf("failed to create test order: %v", err)
	}

	return order
}

// CreateBankAccount creates a valid US checking account for the given user.
func (f *Fixtures) CreateBankAccount(ctx context.Context, userID string) models.BankAccount {
	f.t.Helper()

	account, err := f.store.CreateBankAccount(ctx, models.BankAccount{
		UserID:            userID,
		Country:           "US",
		BankName:          "First Example Bank",
		AccountHolderName: "Ava Nguyen",
		AccountNumber:     "000123456789",
		RoutingNumber:     "021000021",
		Currency:          "USD",
	})
	if err != nil {
		f.t.Fatalf("failed to create test bank account: %v", err)
	}

	return account
}
