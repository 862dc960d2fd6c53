// internal/app/store/seed.go
package store

import (
	"time"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// catalogShippedAt stamps the built-in marketplace rows so both backends
// seed byte-identical records.
var catalogShippedAt = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

// SeedApps returns the built-in marketplace catalog. The file backend writes
// it when the apps file is first touched; the mongo backend inserts it during
// schema setup when the collection is empty. Ids are fixed so installations
// stay valid across reseeds and backends.
func SeedApps() []models.App {
	apps := []models.App{
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e01",
			Name:        "Email Campaigns Pro",
			Description: "Design, schedule, and track email blasts for your events.",
			Category:    "marketing",
		},
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e02",
			Name:        "Social Scheduler",
			Description: "Queue event announcements across social platforms.",
			Category:    "marketing",
		},
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e03",
			Name:        "QR Check-In",
			Description: "Scan tickets at the door and track live attendance.",
			Category:    "operations",
		},
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e04",
			Name:        "Insight Dashboard",
			Description: "Sales funnels, conversion rates, and revenue charts per event.",
			Category:    "analytics",
		},
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e05",
			Name:        "Referral Boost",
			Description: "Reward attendees for bringing friends with tracked referral links.",
			Category:    "growth",
		},
		{
			ID:          "5f1c2c64-0b3a-4a6e-9d0e-6c1f5a2b9e06",
			Name:        "Feedback Forms",
			Description: "Post-event surveys with response summaries.",
			Category:    "operations",
		},
	}
	for i := range apps {
		apps[i].CreatedAt = catalogShippedAt
		apps[i].UpdatedAt = catalogShippedAt
	}
	return apps
}
