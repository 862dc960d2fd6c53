// internal/app/store/records.go
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// NormalizeEmail lowercases and trims an address. Emails are stored and
// compared in this form, which is what makes the duplicate check
// case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// OrganizerRole maps the organizer flag onto an account role. Admin accounts
// keep their role either way.
func OrganizerRole(current string, isOrganizer bool) string {
	switch {
	case isOrganizer && current == models.RoleUser:
		return models.RoleOrganizer
	case !isOrganizer && current == models.RoleOrganizer:
		return models.RoleUser
	}
	return current
}

// Summarize folds a user's orders and payouts into a financial summary.
// Earnings count completed orders; the balance subtracts completed payouts
// only, so a pending payout does not reduce what the user sees as available.
// Both backends fetch and delegate here so the math cannot drift.
func Summarize(userID string, orders []models.Order, payouts []models.Payout, settings Settings, now time.Time) FinancialSummary {
	sum := FinancialSummary{
		MinimumPayout:  settings.MinimumPayout,
		NextPayoutDate: NextPayoutDate(now, settings.PayoutWeekday),
	}
	for _, o := range orders {
		if o.OrganizerID != userID {
			continue
		}
		switch o.Status {
		case models.OrderCompleted:
			sum.TotalEarnings += o.TotalAmount
		case models.OrderPending:
			sum.PendingBalance += o.TotalAmount
		}
	}
	for _, p := range payouts {
		if p.UserID == userID && p.Status == models.PayoutCompleted {
			sum.TotalPaidOut += p.Amount
		}
	}
	sum.AvailableBalance = sum.TotalEarnings - sum.TotalPaidOut
	return sum
}

// Record constructors shared by both backends so a freshly created record is
// byte-identical whichever implementation persisted it: same id shape, same
// defaults, same empty (never nil) embedded arrays.

// NewUserRecord builds the stored form of a signup draft.
func NewUserRecord(draft models.User, now time.Time) models.User {
	draft.ID = uuid.NewString()
	if draft.Role == "" {
		draft.Role = models.RoleUser
	}
	draft.IsActive = true
	if draft.LikedEventIDs == nil {
		draft.LikedEventIDs = []string{}
	}
	if draft.MarketingCampaigns == nil {
		draft.MarketingCampaigns = []models.MarketingCampaign{}
	}
	if draft.SocialPosts == nil {
		draft.SocialPosts = []models.SocialPost{}
	}
	if draft.AdCampaigns == nil {
		draft.AdCampaigns = []models.AdCampaign{}
	}
	if draft.TeamMembers == nil {
		draft.TeamMembers = []models.TeamMember{}
	}
	draft.SocialStats = models.SocialStats{}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}

// NewEventRecord builds the stored form of an event draft. Events always
// start unpublished regardless of what the draft claims.
func NewEventRecord(draft models.Event, now time.Time) models.Event {
	draft.ID = uuid.NewString()
	draft.Status = models.EventDraft
	draft.IsActive = true
	draft.CurrentAttendees = 0
	draft.PublishedAt = nil
	if draft.TicketTypes == nil {
		draft.TicketTypes = []models.TicketType{}
	}
	for i := range draft.TicketTypes {
		draft.TicketTypes[i].ID = uuid.NewString()
		draft.TicketTypes[i].Sold = 0
	}
	if draft.Tags == nil {
		draft.Tags = []string{}
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}

// MergeTicketTypes applies a wholesale ticket-type replacement while
// preserving what the client cannot know: an incoming entry that matches an
// existing id keeps that entry's Sold count; new entries get fresh ids and a
// zero count.
func MergeTicketTypes(existing, incoming []models.TicketType) []models.TicketType {
	sold := make(map[string]int, len(existing))
	for _, tt := range existing {
		sold[tt.ID] = tt.Sold
	}
	out := make([]models.TicketType, 0, len(incoming))
	for _, tt := range incoming {
		if tt.ID == "" {
			tt.ID = uuid.NewString()
			tt.Sold = 0
		} else if n, ok := sold[tt.ID]; ok {
			tt.Sold = n
		} else {
			tt.Sold = 0
		}
		out = append(out, tt)
	}
	return out
}

// NewOrderRecord builds the stored form of an order draft. With no payment
// gateway in the loop, an order settles immediately unless the caller marks
// it pending.
func NewOrderRecord(draft models.Order, now time.Time) models.Order {
	draft.ID = uuid.NewString()
	if draft.Status == "" {
		draft.Status = models.OrderCompleted
	}
	if draft.Currency == "" {
		draft.Currency = "USD"
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}

// NewBankAccountRecord builds the stored form of a bank-account draft.
// The caller validates and encrypts; this only shapes the record.
func NewBankAccountRecord(draft models.BankAccount, now time.Time) models.BankAccount {
	draft.ID = uuid.NewString()
	draft.IsActive = true
	draft.DeletedAt = nil
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}

// NewPayoutRecord builds a pending payout for an already validated request.
// The snapshot must be masked before it gets here.
func NewPayoutRecord(userID string, account models.BankAccount, amount float64, snapshot models.BankSnapshot, arrivalDays int, now time.Time) models.Payout {
	currency := account.Currency
	if currency == "" {
		currency = "USD"
	}
	return models.Payout{
		ID:               uuid.NewString(),
		UserID:           userID,
		BankAccountID:    account.ID,
		Amount:           amount,
		Currency:         currency,
		Status:           models.PayoutPending,
		BankSnapshot:     snapshot,
		EstimatedArrival: now.AddDate(0, 0, arrivalDays),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// NewInstallationRecord builds a fresh app installation.
func NewInstallationRecord(userID, appID string, now time.Time) models.UserAppInstallation {
	return models.UserAppInstallation{
		ID:          uuid.NewString(),
		UserID:      userID,
		AppID:       appID,
		IsActive:    true,
		InstalledAt: now,
		UpdatedAt:   now,
	}
}

// NewCampaignRecord shapes an embedded marketing campaign.
func NewCampaignRecord(draft models.MarketingCampaign, now time.Time) models.MarketingCampaign {
	draft.ID = uuid.NewString()
	if draft.Status == "" {
		draft.Status = models.CampaignDraft
	}
	draft.Spent = 0
	draft.Reach = 0
	draft.Clicks = 0
	draft.Conversions = 0
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}

// NewSocialPostRecord shapes an embedded social post.
func NewSocialPostRecord(draft models.SocialPost, now time.Time) models.SocialPost {
	draft.ID = uuid.NewString()
	if draft.Status == "" {
		if draft.ScheduledFor != nil {
			draft.Status = "scheduled"
		} else {
			draft.Status = models.CampaignDraft
		}
	}
	draft.Likes = 0
	draft.Shares = 0
	draft.Comments = 0
	draft.CreatedAt = now
	return draft
}

// NewAdCampaignRecord shapes an embedded ad campaign.
func NewAdCampaignRecord(draft models.AdCampaign, now time.Time) models.AdCampaign {
	draft.ID = uuid.NewString()
	if draft.Status == "" {
		draft.Status = models.CampaignDraft
	}
	draft.Spent = 0
	draft.Impressions = 0
	draft.Clicks = 0
	draft.CreatedAt = now
	return draft
}

// NewTeamMemberRecord shapes an embedded team member. Members added directly
// are active immediately; invited ones stay unjoined until flipped.
func NewTeamMemberRecord(draft models.TeamMember, now time.Time) models.TeamMember {
	draft.ID = uuid.NewString()
	if draft.Status == "" {
		draft.Status = models.TeamActive
	}
	if draft.Status == models.TeamActive && draft.JoinedAt == nil {
		joined := now
		draft.JoinedAt = &joined
	}
	draft.CreatedAt = now
	draft.UpdatedAt = now
	return draft
}
