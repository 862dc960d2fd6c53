// internal/app/store/filestore/apps.go
package filestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// GetApps returns the marketplace catalog. The first read of a fresh data
// directory writes the built-in seed catalog.
func (s *Store) GetApps(_ context.Context) ([]models.App, error) {
	return load[models.App](s, colApps)
}

func (s *Store) GetUserInstallations(_ context.Context, userID string) ([]models.UserAppInstallation, error) {
	installs, err := load[models.UserAppInstallation](s, colUserApps)
	if err != nil {
		return nil, err
	}
	out := installs[:0:0]
	for _, in := range installs {
		if in.UserID == userID && in.IsActive {
			out = append(out, in)
		}
	}
	return out, nil
}

// InstallApp activates an app for a user. A row deactivated by an earlier
// uninstall is reactivated under its original id; the (user, app) pair never
// gets a second row.
func (s *Store) InstallApp(_ context.Context, userID, appID string) (models.UserAppInstallation, error) {
	apps, err := load[models.App](s, colApps)
	if err != nil {
		return models.UserAppInstallation{}, err
	}
	if indexOf(apps, func(a *models.App) bool { return a.ID == appID }) < 0 {
		return models.UserAppInstallation{}, store.ErrNotFound
	}

	installs, err := load[models.UserAppInstallation](s, colUserApps)
	if err != nil {
		return models.UserAppInstallation{}, err
	}
	now := time.Now().UTC()
	if i := indexOf(installs, func(in *models.UserAppInstallation) bool {
		return in.UserID == userID && in.AppID == appID
	}); i >= 0 {
		if installs[i].IsActive {
			return models.UserAppInstallation{}, store.ErrAlreadyInstalled
		}
		installs[i].IsActive = true
		installs[i].UninstalledAt = nil
		installs[i].UpdatedAt = now
		if err := save(s, colUserApps, installs); err != nil {
			return models.UserAppInstallation{}, err
		}
		return installs[i], nil
	}

	rec := store.NewInstallationRecord(userID, appID, now)
	installs = append(installs, rec)
	if err := save(s, colUserApps, installs); err != nil {
		return models.UserAppInstallation{}, err
	}
	return rec, nil
}

func (s *Store) UninstallApp(_ context.Context, userID, appID string) error {
	installs, err := load[models.UserAppInstallation](s, colUserApps)
	if err != nil {
		return err
	}
	i := indexOf(installs, func(in *models.UserAppInstallation) bool {
		return in.UserID == userID && in.AppID == appID && in.IsActive
	})
	if i < 0 {
		return store.ErrNotInstalled
	}
	now := time.Now().UTC()
	installs[i].IsActive = false
	installs[i].UninstalledAt = &now
	installs[i].UpdatedAt = now
	return save(s, colUserApps, installs)
}

// RateApp folds one rating into the catalog row's running aggregate and
// returns a receipt. Individual ratings are not retained. Rating an app the
// user has not installed is allowed.
func (s *Store) RateApp(_ context.Context, userID, appID string, rating int, comment string) (models.AppRating, error) {
	apps, err := load[models.App](s, colApps)
	if err != nil {
		return models.AppRating{}, err
	}
	i := indexOf(apps, func(a *models.App) bool { return a.ID == appID })
	if i < 0 {
		return models.AppRating{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	app := &apps[i]
	app.Rating = (app.Rating*float64(app.RatingCount) + float64(rating)) / float64(app.RatingCount+1)
	app.RatingCount++
	app.UpdatedAt = now
	if err := save(s, colApps, apps); err != nil {
		return models.AppRating{}, err
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
