// internal/app/store/store.go
//
// The storage contract shared by the JSON-file backend and the MongoDB
// backend. Handlers depend on this package only; which implementation backs
// it is decided once, at startup, from configuration.
//
// Contract conventions:
//   - Lookups of a single record return (nil, nil) when it does not exist.
//   - Mutating operations return ErrNotFound for a missing target.
//   - Returned records are detached copies; mutating them never changes
//     stored state.
//   - Record ids are opaque strings, identical in shape across backends.
package store

import (
	"context"

	"github.com/shuzaifak/crowd/internal/domain/models"
)

// Backend selects a storage implementation.
type Backend string

const (
	BackendFile  Backend = "file"
	BackendMongo Backend = "mongo"
)

// ParseBackend maps a configuration string to a Backend. Matching is exact
// apart from letter case; anything unrecognized is an error rather than a
// silent default.
func ParseBackend(s string) (Backend, error) {
	switch Backend(normalizeBackend(s)) {
	case BackendFile:
		return BackendFile, nil
	case BackendMongo:
		return BackendMongo, nil
	}
	return "", &UnknownBackendError{Value: s}
}

// UnknownBackendError reports a store_backend value that names no known
// implementation.
type UnknownBackendError struct {
	Value string
}

func (e *UnknownBackendError) Error() string {
	return "unknown store backend " + e.Value + ` (want "file" or "mongo")`
}

func normalizeBackend(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			continue
		}
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}

// UserStore manages accounts and their embedded marketing and team
// sub-documents.
type UserStore interface {
	CreateUser(ctx context.Context, draft models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (models.User, error)
	LikeEvent(ctx context.Context, userID, eventID string) (models.User, error)
	UnlikeEvent(ctx context.Context, userID, eventID string) (models.User, error)

	ListMarketingCampaigns(ctx context.Context, userID string) ([]models.MarketingCampaign, error)
	AddMarketingCampaign(ctx context.Context, userID string, draft models.MarketingCampaign) (models.MarketingCampaign, error)
	UpdateMarketingCampaign(ctx context.Context, userID, campaignID string, patch CampaignPatch) (models.MarketingCampaign, error)
	DeleteMarketingCampaign(ctx context.Context, userID, campaignID string) error

	ListSocialPosts(ctx context.Context, userID string) ([]models.SocialPost, error)
	AddSocialPost(ctx context.Context, userID string, draft models.SocialPost) (models.SocialPost, error)
	ListAdCampaigns(ctx context.Context, userID string) ([]models.AdCampaign, error)
	AddAdCampaign(ctx context.Context, userID string, draft models.AdCampaign) (models.AdCampaign, error)

	ListTeamMembers(ctx context.Context, ownerID string) ([]models.TeamMember, error)
	AddTeamMember(ctx context.Context, ownerID string, draft models.TeamMember) (models.TeamMember, error)
	UpdateTeamMember(ctx context.Context, ownerID, memberID string, patch TeamMemberPatch) (models.TeamMember, error)
	RemoveTeamMember(ctx context.Context, ownerID, memberID string) error
}

// EventStore manages events and their ticket orders.
type EventStore interface {
	CreateEvent(ctx context.Context, draft models.Event) (models.Event, error)
	GetAllEvents(ctx context.Context) ([]models.Event, error)
	GetEventByID(ctx context.Context, id string) (*models.Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (models.Event, error)
	PublishEvent(ctx context.Context, id string) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetPublicEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
}

// OrderStore records ticket purchases.
type OrderStore interface {
	CreateOrder(ctx context.Context, draft models.Order) (models.Order, error)
	GetUserOrders(ctx context.Context, buyerID string) ([]models.Order, error)
	GetOrganizerOrders(ctx context.Context, organizerID string) ([]models.Order, error)
}

// BankAccountStore manages payout destinations. Implementations run the
// banking codec: validation and field encryption on create/update, so a
// sensitive field is never persisted in plaintext.
type BankAccountStore interface {
	GetUserBankAccounts(ctx context.Context, userID string) ([]models.BankAccount, error)
	GetBankAccountByID(ctx context.Context, id string) (*models.BankAccount, error)
	CreateBankAccount(ctx context.Context, draft models.BankAccount) (models.BankAccount, error)
	UpdateBankAccount(ctx context.Context, id string, patch BankAccountPatch) (models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, id string) error
	SetPrimaryBankAccount(ctx context.Context, userID, accountID string) (models.BankAccount, error)
}

// PayoutStore computes balances and records withdrawals.
type PayoutStore interface {
	GetFinancialSummary(ctx context.Context, userID string) (FinancialSummary, error)
	InitiatePayout(ctx context.Context, userID, accountID string, amount float64) (models.Payout, error)
	GetUserPayouts(ctx context.Context, userID string) ([]models.Payout, error)
	// UpdatePayoutStatus moves a payout through its lifecycle (pending,
	// processing, completed, failed, cancelled). Completed payouts start
	// counting against the available balance.
	UpdatePayoutStatus(ctx context.Context, payoutID, status string) (models.Payout, error)
}

// AppStore manages the marketplace catalog and per-user installations.
type AppStore interface {
	GetApps(ctx context.Context) ([]models.App, error)
	GetUserInstallations(ctx context.Context, userID string) ([]models.UserAppInstallation, error)
	InstallApp(ctx context.Context, userID, appID string) (models.UserAppInstallation, error)
	UninstallApp(ctx context.Context, userID, appID string) error
	RateApp(ctx context.Context, userID, appID string, rating int, comment string) (models.AppRating, error)
}

// Store is the full contract a backend must satisfy.
type Store interface {
	UserStore
	EventStore
	OrderStore
	BankAccountStore
	PayoutStore
	AppStore

	// Ping verifies the backend is reachable and usable.
	Ping(ctx context.Context) error
	// Close releases backend resources. The store is unusable afterwards.
	Close(ctx context.Context) error
}
