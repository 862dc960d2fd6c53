// internal/app/store/filestore/orders.go
package filestore

import (
	"context"
	"sort"
	"time"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// CreateOrder records a ticket purchase and bumps the sold counters on the
// event. Pricing and the organizer reference are derived from the event
// itself, never trusted from the draft. Quantity is assumed positive; the
// handler validates it. Events and orders live in separate files, so the
// two writes are not atomic; a failed order save can leave the counters
// ahead by one purchase.
func (s *Store) CreateOrder(_ context.Context, draft models.Order) (models.Order, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return models.Order{}, err
	}
	i := indexOf(events, func(e *models.Event) bool { return e.ID == draft.EventID && e.IsActive })
	if i < 0 {
		return models.Order{}, store.ErrNotFound
	}
	event := &events[i]
	j := indexOf(event.TicketTypes, func(tt *models.TicketType) bool { return tt.ID == draft.TicketTypeID })
	if j < 0 {
		return models.Order{}, store.ErrNotFound
	}

	now := time.Now().UTC()
	tt := &event.TicketTypes[j]
	tt.Sold += draft.Quantity
	event.CurrentAttendees += draft.Quantity
	event.UpdatedAt = now

	draft.OrganizerID = event.OrganizerID
	draft.UnitPrice = tt.Price
	draft.TotalAmount = tt.Price * float64(draft.Quantity)
	draft.Currency = event.Currency
	rec := store.NewOrderRecord(draft, now)

	if err := save(s, colEvents, events); err != nil {
		return models.Order{}, err
	}
	orders, err := load[models.Order](s, colOrders)
	if err != nil {
		return models.Order{}, err
	}
	orders = append(orders, rec)
	if err := save(s, colOrders, orders); err != nil {
		return models.Order{}, err
	}
	return rec, nil
}

func (s *Store) GetUserOrders(_ context.Context, buyerID string) ([]models.Order, error) {
	return s.listOrders(func(o *models.Order) bool { return o.BuyerID == buyerID })
}

func (s *Store) GetOrganizerOrders(_ context.Context, organizerID string) ([]models.Order, error) {
	return s.listOrders(func(o *models.Order) bool { return o.OrganizerID == organizerID })
}

func (s *Store) listOrders(keep func(*models.Order) bool) ([]models.Order, error) {
	orders, err := load[models.Order](s, colOrders)
	if err != nil {
		return nil, err
	}
	out := orders[:0:0]
	for i := range orders {
		if keep(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].CreatedAt.Equal(out[b].CreatedAt) {
			return out[a].CreatedAt.After(out[b].CreatedAt)
		}
		return out[a].ID > out[b].ID
	})
	return out, nil
}
