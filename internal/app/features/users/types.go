package users

import (
	"time"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// updateMeRequest is the merge-patch body for PATCH /users/me. Absent fields
// keep their stored values; email, role, and password are not writable here.
type updateMeRequest struct {
	FullName    *string             `json:"full_name"`
	IsOrganizer *bool               `json:"is_organizer"`
	Profile     *models.Profile     `json:"profile"`
	SocialStats *models.SocialStats `json:"social_stats"`
}

// campaignRequest is the JSON body for creating a marketing campaign.
// Counters (spent, reach, clicks, conversions) always start at zero.
type campaignRequest struct {
	Name      string    `json:"name" validate:"required,max=200" label:"Name"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Budget    float64   `json:"budget"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// campaignPatchRequest updates a marketing campaign. Absent fields keep
// their stored values.
type campaignPatchRequest struct {
	Name        *string    `json:"name"`
	Status      *string    `json:"status"`
	Budget      *float64   `json:"budget"`
	Spent       *float64   `json:"spent"`
	Reach       *int       `json:"reach"`
	Clicks      *int       `json:"clicks"`
	Conversions *int       `json:"conversions"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// postRequest is the JSON body for creating a social post. A post with a
// scheduled_for timestamp starts scheduled; otherwise it starts as a draft.
type postRequest struct {
	Platform     string     `json:"platform" validate:"required,platform" label:"Platform"`
	Content      string     `json:"content" validate:"required,max=5000" label:"Content"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduled_for"`
}

// adRequest is the JSON body for creating an ad campaign.
type adRequest struct {
	Name      string    `json:"name" validate:"required,max=200" label:"Name"`
	Platform  string    `json:"platform" validate:"required,platform" label:"Platform"`
	Status    string    `json:"status"`
	Budget    float64   `json:"budget"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// teamMemberRequest is the JSON body for adding a collaborator.
type teamMemberRequest struct {
	Email  string `json:"email" validate:"required,email" label:"Email"`
	Name   string `json:"name" validate:"required,max=120" label:"Name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// teamMemberPatchRequest updates a collaborator. Absent fields keep their
// stored values.
type teamMemberPatchRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}
