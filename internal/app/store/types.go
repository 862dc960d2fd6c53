// internal/app/store/types.go
package store

import (
	"strings"
	"time"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Patch types implement merge-patch: a nil field means "leave unchanged", a
// set field overwrites. Nested objects (Profile, TicketTypes, Tags) are
// replaced wholesale, never merged recursively.

// UserPatch updates the mutable parts of a user account.
type UserPatch struct {
	FullName    *string
	IsOrganizer *bool
	Profile     *models.Profile
	SocialStats *models.SocialStats
}

// EventPatch updates the mutable parts of an event. Status transitions go
// through PublishEvent/DeleteEvent, not through a patch.
type EventPatch struct {
	Title        *string
	Description  *string
	Category     *string
	Location     *string
	StartDate    *time.Time
	EndDate      *time.Time
	Price        *float64
	Currency     *string
	MaxAttendees *int
	IsFeatured   *bool
	TicketTypes  *[]models.TicketType
	Tags         *[]string
}

// BankAccountPatch updates a bank account. Provided sensitive fields are
// format-validated and re-encrypted; absent ones keep their stored
// ciphertext.
type BankAccountPatch struct {
	BankName          *string
	AccountHolderName *string
	AccountType       *string
	Currency          *string
	AccountNumber     *string
	RoutingNumber     *string
	SortCode          *string
	IBAN              *string
	IFSCCode          *string
	BSB               *string
	IsPrimary         *bool
}

// Apply merges the patch into a decrypted account. Both backends patch the
// plaintext record and re-encrypt it whole, so the merge rules live here
// rather than in either implementation.
func (p BankAccountPatch) Apply(a *models.BankAccount) {
	if p.BankName != nil {
		a.BankName = strings.TrimSpace(*p.BankName)
	}
	if p.AccountHolderName != nil {
		a.AccountHolderName = strings.TrimSpace(*p.AccountHolderName)
	}
	if p.AccountType != nil {
		a.AccountType = *p.AccountType
	}
	if p.Currency != nil {
		a.Currency = *p.Currency
	}
	if p.AccountNumber != nil {
		a.AccountNumber = strings.TrimSpace(*p.AccountNumber)
	}
	if p.RoutingNumber != nil {
		a.RoutingNumber = strings.TrimSpace(*p.RoutingNumber)
	}
	if p.SortCode != nil {
		a.SortCode = strings.TrimSpace(*p.SortCode)
	}
	if p.IBAN != nil {
		a.IBAN = strings.TrimSpace(*p.IBAN)
	}
	if p.IFSCCode != nil {
		a.IFSCCode = strings.TrimSpace(*p.IFSCCode)
	}
	if p.BSB != nil {
		a.BSB = strings.TrimSpace(*p.BSB)
	}
	if p.IsPrimary != nil {
		a.IsPrimary = *p.IsPrimary
	}
}

// CampaignPatch updates an embedded marketing campaign.
type CampaignPatch struct {
	Name        *string
	Status      *string
	Budget      *float64
	Spent       *float64
	Reach       *int
	Clicks      *int
	Conversions *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// TeamMemberPatch updates an embedded team member.
type TeamMemberPatch struct {
	Name   *string
	Role   *string
	Status *string
}

// EventFilter narrows the public-event listing. Category and Location are
// case-insensitive substring matches; Search matches title, description, or
// category. Offset/Limit page the filtered, date-sorted result; a Limit of 0
// means no cap.
type EventFilter struct {
	Category string
	Location string
	Search   string
	Offset   int
	Limit    int
}

// FinancialSummary is computed from orders and payouts on demand; it is
// never persisted.
type FinancialSummary struct {
	TotalEarnings    float64   `json:"total_earnings"`
	AvailableBalance float64   `json:"available_balance"`
	PendingBalance   float64   `json:"pending_balance"`
	TotalPaidOut     float64   `json:"total_paid_out"`
	MinimumPayout    float64   `json:"minimum_payout"`
	NextPayoutDate   time.Time `json:"next_payout_date"`
}

// Settings is the payout policy both backends apply.
type Settings struct {
	// MinimumPayout is the smallest amount InitiatePayout accepts.
	MinimumPayout float64
	// PayoutWeekday is the weekly day payouts are scheduled for.
	PayoutWeekday time.Weekday
	// ArrivalDays is how many days after initiation a payout is estimated
	// to land.
	ArrivalDays int
}

// DefaultSettings returns the payout policy used when configuration does not
// override it.
func DefaultSettings() Settings {
	return Settings{
		MinimumPayout: 25,
		PayoutWeekday: time.Friday,
		ArrivalDays:   3,
	}
}

// NextPayoutDate returns the next occurrence of weekday strictly after now,
// at midnight UTC. A summary requested on the payout day itself points at
// next week's run.
func NextPayoutDate(now time.Time, weekday time.Weekday) time.Time {
	now = now.UTC()
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	next := now.AddDate(0, 0, days)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)
}
