// internal/app/store/mongostore/events.go
package mongostore

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/waffle/pantry/text"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

func (s *Store) CreateEvent(ctx context.Context, draft models.Event) (models.Event, error) {
	rec := store.NewEventRecord(draft, time.Now().UTC())
	foldEventShadow(&rec)
	if _, err := s.events().InsertOne(ctx, rec); err != nil {
		return models.Event{}, store.Wrap("insert", colEvents, err)
	}
	return rec, nil
}

// foldEventShadow refreshes the folded copies of the searchable fields.
func foldEventShadow(e *models.Event) {
	e.TitleCI = text.Fold(e.Title)
	e.DescriptionCI = text.Fold(e.Description)
	e.CategoryCI = text.Fold(e.Category)
	e.LocationCI = text.Fold(e.Location)
}

// GetAllEvents returns every non-deleted event, newest first.
func (s *Store) GetAllEvents(ctx context.Context) ([]models.Event, error) {
	return findAll[models.Event](ctx, s.events(), bson.M{"is_active": true}, sortNewest())
}

// GetEventByID resolves an event; soft-deleted ones read as absent.
func (s *Store) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	return findOne[models.Event](ctx, s.events(), bson.M{"_id": id, "is_active": true})
}

func (s *Store) UpdateEvent(ctx context.Context, id string, patch store.EventPatch) (models.Event, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
		set["description_ci"] = text.Fold(*patch.Description)
	}
	if patch.Category != nil {
		category := strings.TrimSpace(*patch.Category)
		set["category"] = category
		set["category_ci"] = text.Fold(category)
	}
	if patch.Location != nil {
		location := strings.TrimSpace(*patch.Location)
		set["location"] = location
		set["location_ci"] = text.Fold(location)
	}
	if patch.StartDate != nil {
		set["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["end_date"] = *patch.EndDate
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Currency != nil {
		set["currency"] = *patch.Currency
	}
	if patch.MaxAttendees != nil {
		set["max_attendees"] = *patch.MaxAttendees
	}
	if patch.IsFeatured != nil {
		set["is_featured"] = *patch.IsFeatured
	}
	if patch.TicketTypes != nil {
		// Merging needs the stored Sold counts, so replacing tiers costs a
		// read first.
		current, err := s.GetEventByID(ctx, id)
		if err != nil {
			return models.Event{}, err
		}
		if current == nil {
			return models.Event{}, store.ErrNotFound
		}
		set["ticket_types"] = store.MergeTicketTypes(current.TicketTypes, *patch.TicketTypes)
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	return findOneAndUpdate[models.Event](ctx, s.events(),
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": set})
}

// PublishEvent transitions an event to published. Republishing is a no-op
// that keeps the original PublishedAt.
func (s *Store) PublishEvent(ctx context.Context, id string) (models.Event, error) {
	current, err := s.GetEventByID(ctx, id)
	if err != nil {
		return models.Event{}, err
	}
	if current == nil {
		return models.Event{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	set := bson.M{"status": models.EventPublished, "updated_at": now}
	if current.PublishedAt == nil {
		set["published_at"] = now
	}
	return findOneAndUpdate[models.Event](ctx, s.events(),
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": set})
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.events().UpdateOne(ctx,
		bson.M{"_id": id, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return store.Wrap("update", colEvents, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// GetPublicEvents lists published, still-upcoming events soonest first, then
// pages the filtered result. Substring filters run against the folded shadow
// fields so matching ignores case and diacritics, same as the file backend.
func (s *Store) GetPublicEvents(ctx context.Context, filter store.EventFilter) ([]models.Event, error) {
	match := bson.M{
		"status":     models.EventPublished,
		"is_active":  true,
		"start_date": bson.M{"$gt": time.Now().UTC()},
	}
	if re, ok := foldedContainsRegex(filter.Category); ok {
		match["category_ci"] = re
	}
	if re, ok := foldedContainsRegex(filter.Location); ok {
		match["location_ci"] = re
	}
	if re, ok := foldedContainsRegex(filter.Search); ok {
		match["$or"] = bson.A{
			bson.M{"title_ci": re},
			bson.M{"description_ci": re},
			bson.M{"category_ci": re},
		}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "start_date", Value: 1},
		{Key: "_id", Value: 1},
	})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return findAll[models.Event](ctx, s.events(), match, opts)
}

// foldedContainsRegex builds an unanchored literal match for needle against a
// folded shadow field. A blank needle means no filter.
func foldedContainsRegex(needle string) (primitive.Regex, bool) {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return primitive.Regex{}, false
	}
	return primitive.Regex{Pattern: regexp.QuoteMeta(text.Fold(needle))}, true
}
