// internal/domain/models/app.go
package models

import "time"

// App is a catalog entry in the marketplace. Rating and RatingCount hold the
// running aggregate of submitted ratings.
type App struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category"`
	Rating      float64   `bson:"rating" json:"rating"`
	RatingCount int       `bson:"rating_count" json:"rating_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// UserAppInstallation links a user to an installed app. The (UserID, AppID)
// pair is unique across active and inactive rows: uninstalling deactivates
// the row and reinstalling reactivates it, preserving the original id and
// install history.
type UserAppInstallation struct {
	ID            string     `bson:"_id" json:"id"`
	UserID        string     `bson:"user_id" json:"user_id"`
	AppID         string     `bson:"app_id" json:"app_id"`
	IsActive      bool       `bson:"is_active" json:"is_active"`
	InstalledAt   time.Time  `bson:"installed_at" json:"installed_at"`
	UninstalledAt *time.Time `bson:"uninstalled_at,omitempty" json:"uninstalled_at,omitempty"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// AppRating is the receipt returned when a user rates an app. Individual
// ratings are not persisted; only the catalog aggregate is.
type AppRating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AppID     string    `json:"app_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
