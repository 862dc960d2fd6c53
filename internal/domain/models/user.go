// internal/domain/models/user.go
package models

import "time"

// Role values for User.Role.
const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// User is an account on the platform. Marketing campaigns, social posts, ad
// campaigns, and team data are embedded sub-documents: they are always read
// and written together with the owning user, never queried independently.
// Bank accounts and payouts live in their own collections (they need indexed
// lookup and soft-delete semantics of their own) and reference the user by id.
//
// Users are never hard-deleted; deactivation flips IsActive instead.
type User struct {
	ID           string `bson:"_id" json:"id"`
	Email        string `bson:"email" json:"email"` // stored normalized (lowercase, trimmed)
	PasswordHash string `bson:"password_hash" json:"password_hash,omitempty"`
	FullName     string `bson:"full_name" json:"full_name"`
	Role         string `bson:"role" json:"role"` // user | organizer | admin
	IsOrganizer  bool   `bson:"is_organizer" json:"is_organizer"`
	IsActive     bool   `bson:"is_active" json:"is_active"`

	Profile       Profile  `bson:"profile" json:"profile"`
	LikedEventIDs []string `bson:"liked_event_ids" json:"liked_event_ids"`

	MarketingCampaigns []MarketingCampaign `bson:"marketing_campaigns" json:"marketing_campaigns"`
	SocialPosts        []SocialPost        `bson:"social_posts" json:"social_posts"`
	AdCampaigns        []AdCampaign        `bson:"ad_campaigns" json:"ad_campaigns"`
	TeamMembers        []TeamMember        `bson:"team_members" json:"team_members"`
	SocialStats        SocialStats         `bson:"social_stats" json:"social_stats"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Profile holds the public-facing parts of a user account. It is replaced
// wholesale on update (merge-patch does not recurse into nested objects).
type Profile struct {
	Bio       string      `bson:"bio" json:"bio"`
	Website   string      `bson:"website" json:"website"`
	AvatarURL string      `bson:"avatar_url" json:"avatar_url"`
	Social    SocialLinks `bson:"social" json:"social"`
}

// SocialLinks are optional profile links.
type SocialLinks struct {
	Twitter   string `bson:"twitter" json:"twitter"`
	Instagram string `bson:"instagram" json:"instagram"`
	Facebook  string `bson:"facebook" json:"facebook"`
	LinkedIn  string `bson:"linkedin" json:"linkedin"`
}

// SocialStats is a denormalized snapshot of a user's social reach, zeroed at
// signup and refreshed by profile updates.
type SocialStats struct {
	Followers      int     `bson:"followers" json:"followers"`
	Following      int     `bson:"following" json:"following"`
	TotalPosts     int     `bson:"total_posts" json:"total_posts"`
	EngagementRate float64 `bson:"engagement_rate" json:"engagement_rate"`
}

// Status values shared by the embedded marketing documents.
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

// MarketingCampaign is an embedded marketing campaign owned by one user.
type MarketingCampaign struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"` // email | social | ads
	Status      string    `bson:"status" json:"status"`
	Budget      float64   `bson:"budget" json:"budget"`
	Spent       float64   `bson:"spent" json:"spent"`
	Reach       int       `bson:"reach" json:"reach"`
	Clicks      int       `bson:"clicks" json:"clicks"`
	Conversions int       `bson:"conversions" json:"conversions"`
	StartDate   time.Time `bson:"start_date" json:"start_date"`
	EndDate     time.Time `bson:"end_date" json:"end_date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// SocialPost is an embedded scheduled or published social-media post.
type SocialPost struct {
	ID           string     `bson:"id" json:"id"`
	Platform     string     `bson:"platform" json:"platform"`
	Content      string     `bson:"content" json:"content"`
	Status       string     `bson:"status" json:"status"` // draft | scheduled | posted
	Likes        int        `bson:"likes" json:"likes"`
	Shares       int        `bson:"shares" json:"shares"`
	Comments     int        `bson:"comments" json:"comments"`
	ScheduledFor *time.Time `bson:"scheduled_for,omitempty" json:"scheduled_for,omitempty"`
	PostedAt     *time.Time `bson:"posted_at,omitempty" json:"posted_at,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
}

// AdCampaign is an embedded paid-advertising campaign.
type AdCampaign struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Platform    string    `bson:"platform" json:"platform"`
	Status      string    `bson:"status" json:"status"`
	Budget      float64   `bson:"budget" json:"budget"`
	Spent       float64   `bson:"spent" json:"spent"`
	Impressions int       `bson:"impressions" json:"impressions"`
	Clicks      int       `bson:"clicks" json:"clicks"`
	StartDate   time.Time `bson:"start_date" json:"start_date"`
	EndDate     time.Time `bson:"end_date" json:"end_date"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// Status values for TeamMember.Status.
const (
	TeamInvited = "invited"
	TeamActive  = "active"
)

// TeamMember is a collaborator on an organizer's account.
type TeamMember struct {
	ID        string     `bson:"id" json:"id"`
	Email     string     `bson:"email" json:"email"`
	Name      string     `bson:"name" json:"name"`
	Role      string     `bson:"role" json:"role"`
	Status    string     `bson:"status" json:"status"` // invited | active
	JoinedAt  *time.Time `bson:"joined_at,omitempty" json:"joined_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
