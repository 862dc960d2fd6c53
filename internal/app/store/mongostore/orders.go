// internal/app/store/mongostore/orders.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// CreateOrder records a ticket purchase and bumps the sold counters on the
// event with a positional $inc, so concurrent purchases of different tiers
// never clobber each other. Pricing and the organizer reference are derived
// from the event itself, never trusted from the draft. Quantity is assumed
// positive; the handler validates it. The counter bump and the order insert
// are separate writes, so a failed insert can leave the counters ahead by
// one purchase.
func (s *Store) CreateOrder(ctx context.Context, draft models.Order) (models.Order, error) {
	event, err := s.GetEventByID(ctx, draft.EventID)
	if err != nil {
		return models.Order{}, err
	}
	if event == nil {
		return models.Order{}, store.ErrNotFound
	}
	var tt *models.TicketType
	for i := range event.TicketTypes {
		if event.TicketTypes[i].ID == draft.TicketTypeID {
			tt = &event.TicketTypes[i]
			break
		}
	}
	if tt == nil {
		return models.Order{}, store.ErrNotFound
	}

	now := time.Now().UTC()
	res, err := s.events().UpdateOne(ctx,
		bson.M{"_id": event.ID, "is_active": true, "ticket_types.id": tt.ID},
		bson.M{
			"$inc": bson.M{
				"ticket_types.$.sold": draft.Quantity,
				"current_attendees":   draft.Quantity,
			},
			"$set": bson.M{"updated_at": now},
		})
	if err != nil {
		return models.Order{}, store.Wrap("update", colEvents, err)
	}
	if res.MatchedCount == 0 {
		return models.Order{}, store.ErrNotFound
	}

	draft.OrganizerID = event.OrganizerID
	draft.UnitPrice = tt.Price
	draft.TotalAmount = tt.Price * float64(draft.Quantity)
	draft.Currency = event.Currency
	rec := store.NewOrderRecord(draft, now)
	if _, err := s.orders().InsertOne(ctx, rec); err != nil {
		return models.Order{}, store.Wrap("insert", colOrders, err)
	}
	return rec, nil
}

func (s *Store) GetUserOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders(), bson.M{"buyer_id": buyerID}, sortNewest())
}

func (s *Store) GetOrganizerOrders(ctx context.Context, organizerID string) ([]models.Order, error) {
	return findAll[models.Order](ctx, s.orders(), bson.M{"organizer_id": organizerID}, sortNewest())
}
