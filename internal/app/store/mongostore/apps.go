// internal/app/store/mongostore/apps.go
package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/google/uuid"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetApps returns the marketplace catalog in seed order. Seeding itself
// happens once, during schema setup.
func (s *Store) GetApps(ctx context.Context) ([]models.App, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[models.App](ctx, s.apps(), bson.M{}, opts)
}

func (s *Store) GetUserInstallations(ctx context.Context, userID string) ([]models.UserAppInstallation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "installed_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	return findAll[models.UserAppInstallation](ctx, s.userApps(),
		bson.M{"user_id": userID, "is_active": true}, opts)
}

// InstallApp activates an app for a user. A row deactivated by an earlier
// uninstall is reactivated under its original id; the unique (user, app)
// index guarantees the pair never gets a second row, even under concurrent
// installs.
func (s *Store) InstallApp(ctx context.Context, userID, appID string) (models.UserAppInstallation, error) {
	app, err := findOne[models.App](ctx, s.apps(), bson.M{"_id": appID})
	if err != nil {
		return models.UserAppInstallation{}, err
	}
	if app == nil {
		return models.UserAppInstallation{}, store.ErrNotFound
	}

	existing, err := findOne[models.UserAppInstallation](ctx, s.userApps(),
		bson.M{"user_id": userID, "app_id": appID})
	if err != nil {
		return models.UserAppInstallation{}, err
	}
	now := time.Now().UTC()
	if existing != nil {
		if existing.IsActive {
			return models.UserAppInstallation{}, store.ErrAlreadyInstalled
		}
		return findOneAndUpdate[models.UserAppInstallation](ctx, s.userApps(),
			bson.M{"_id": existing.ID},
			bson.M{
				"$set":   bson.M{"is_active": true, "updated_at": now},
				"$unset": bson.M{"uninstalled_at": ""},
			})
	}

	rec := store.NewInstallationRecord(userID, appID, now)
	if _, err := s.userApps().InsertOne(ctx, rec); err != nil {
		if wafflemongo.IsDup(err) {
			return models.UserAppInstallation{}, store.ErrAlreadyInstalled
		}
		return models.UserAppInstallation{}, store.Wrap("insert", colUserApps, err)
	}
	return rec, nil
}

func (s *Store) UninstallApp(ctx context.Context, userID, appID string) error {
	now := time.Now().UTC()
	res, err := s.userApps().UpdateOne(ctx,
		bson.M{"user_id": userID, "app_id": appID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":      false,
			"uninstalled_at": now,
			"updated_at":     now,
		}})
	if err != nil {
		return store.Wrap("update", colUserApps, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotInstalled
	}
	return nil
}

// RateApp folds one rating into the catalog row's running aggregate and
// returns a receipt. Individual ratings are not retained. Rating an app the
// user has not installed is allowed.
func (s *Store) RateApp(ctx context.Context, userID, appID string, rating int, comment string) (models.AppRating, error) {
	app, err := findOne[models.App](ctx, s.apps(), bson.M{"_id": appID})
	if err != nil {
		return models.AppRating{}, err
	}
	if app == nil {
		return models.AppRating{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	newRating := (app.Rating*float64(app.RatingCount) + float64(rating)) / float64(app.RatingCount+1)
	if _, err := s.apps().UpdateOne(ctx,
		bson.M{"_id": appID},
		bson.M{"$set": bson.M{
			"rating":       newRating,
			"rating_count": app.RatingCount + 1,
			"updated_at":   now,
		}}); err != nil {
		return models.AppRating{}, store.Wrap("update", colApps, err)
	}
	return models.AppRating{
		ID:        uuid.NewString(),
		UserID:    userID,
		AppID:     appID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
	}, nil
}

// SeedCatalog inserts the built-in app catalog if the collection is empty.
// Called once from schema setup; subsequent startups find the catalog
// present and do nothing.
func (s *Store) SeedCatalog(ctx context.Context) error {
	n, err := s.apps().CountDocuments(ctx, bson.M{})
	if err != nil {
		return store.Wrap("count", colApps, err)
	}
	if n > 0 {
		return nil
	}
	apps := store.SeedApps()
	docs := make([]any, len(apps))
	for i := range apps {
		docs[i] = apps[i]
	}
	if _, err := s.apps().InsertMany(ctx, docs); err != nil {
		// A concurrent starter may have seeded first.
		if wafflemongo.IsDup(err) {
			return nil
		}
		return store.Wrap("seed", colApps, err)
	}
	return nil
}
