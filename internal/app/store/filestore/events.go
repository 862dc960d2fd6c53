// internal/app/store/filestore/events.go
package filestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/system/paging"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

func (s *Store) CreateEvent(_ context.Context, draft models.Event) (models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return models.Event{}, err
	}
	rec := store.NewEventRecord(draft, time.Now().UTC())
	events = append(events, rec)
	if err := save(s, colEvents, events); err != nil {
		return models.Event{}, err
	}
	return rec, nil
}

// GetAllEvents returns every non-deleted event, newest first.
func (s *Store) GetAllEvents(_ context.Context) ([]models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return nil, err
	}
	out := events[:0:0]
	for _, e := range events {
		if e.IsActive {
			out = append(out, e)
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

// GetEventByID resolves an event; soft-deleted ones read as absent.
func (s *Store) GetEventByID(_ context.Context, id string) (*models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return nil, err
	}
	i := indexOf(events, func(e *models.Event) bool { return e.ID == id && e.IsActive })
	if i < 0 {
		return nil, nil
	}
	return &events[i], nil
}

func (s *Store) UpdateEvent(_ context.Context, id string, patch store.EventPatch) (models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return models.Event{}, err
	}
	i := indexOf(events, func(e *models.Event) bool { return e.ID == id && e.IsActive })
	if i < 0 {
		return models.Event{}, store.ErrNotFound
	}
	applyEventPatch(&events[i], patch)
	events[i].UpdatedAt = time.Now().UTC()
	if err := save(s, colEvents, events); err != nil {
		return models.Event{}, err
	}
	return events[i], nil
}

func applyEventPatch(e *models.Event, p store.EventPatch) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.Location != nil {
		e.Location = strings.TrimSpace(*p.Location)
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = *p.EndDate
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	if p.MaxAttendees != nil {
		e.MaxAttendees = *p.MaxAttendees
	}
	if p.IsFeatured != nil {
		e.IsFeatured = *p.IsFeatured
	}
	if p.TicketTypes != nil {
		e.TicketTypes = store.MergeTicketTypes(e.TicketTypes, *p.TicketTypes)
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
}

// PublishEvent transitions an event to published. Republishing is a no-op
// that keeps the original PublishedAt.
func (s *Store) PublishEvent(_ context.Context, id string) (models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return models.Event{}, err
	}
	i := indexOf(events, func(e *models.Event) bool { return e.ID == id && e.IsActive })
	if i < 0 {
		return models.Event{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	events[i].Status = models.EventPublished
	if events[i].PublishedAt == nil {
		published := now
		events[i].PublishedAt = &published
	}
	events[i].UpdatedAt = now
	if err := save(s, colEvents, events); err != nil {
		return models.Event{}, err
	}
	return events[i], nil
}

func (s *Store) DeleteEvent(_ context.Context, id string) error {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return err
	}
	i := indexOf(events, func(e *models.Event) bool { return e.ID == id && e.IsActive })
	if i < 0 {
		return store.ErrNotFound
	}
	events[i].IsActive = false
	events[i].UpdatedAt = time.Now().UTC()
	return save(s, colEvents, events)
}

// GetPublicEvents lists published, still-upcoming events soonest first,
// then pages the filtered result.
func (s *Store) GetPublicEvents(_ context.Context, filter store.EventFilter) ([]models.Event, error) {
	events, err := load[models.Event](s, colEvents)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := events[:0:0]
	for _, e := range events {
		if e.Status != models.EventPublished || !e.IsActive || !e.StartDate.After(now) {
			continue
		}
		if !foldContains(e.Category, filter.Category) {
			continue
		}
		if !foldContains(e.Location, filter.Location) {
			continue
		}
		if q := strings.TrimSpace(filter.Search); q != "" {
			if !foldContains(e.Title, q) && !foldContains(e.Description, q) && !foldContains(e.Category, q) {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].StartDate.Equal(out[b].StartDate) {
			return out[a].StartDate.Before(out[b].StartDate)
		}
		return out[a].ID < out[b].ID
	})
	return paging.Slice(out, paging.Window{Offset: filter.Offset, Limit: filter.Limit}), nil
}
