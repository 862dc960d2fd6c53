// internal/app/store/filestore/users.go
package filestore

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

func (s *Store) CreateUser(_ context.Context, draft models.User) (models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.User{}, err
	}
	draft.Email = store.NormalizeEmail(draft.Email)
	for i := range users {
		if users[i].IsActive && strings.EqualFold(users[i].Email, draft.Email) {
			return models.User{}, store.ErrDuplicateEmail
		}
	}
	rec := store.NewUserRecord(draft, time.Now().UTC())
	users = append(users, rec)
	if err := save(s, colUsers, users); err != nil {
		return models.User{}, err
	}
	rec.PasswordHash = ""
	return rec, nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, func(u *models.User) bool { return u.ID == id }); i >= 0 {
		return &users[i], nil
	}
	return nil, nil
}

// FindUserByEmail prefers an active account when an old deactivated one
// still holds the same address.
func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	email = store.NormalizeEmail(email)
	var inactive *models.User
	for i := range users {
		if !strings.EqualFold(users[i].Email, email) {
			continue
		}
		if users[i].IsActive {
			return &users[i], nil
		}
		if inactive == nil {
			inactive = &users[i]
		}
	}
	return inactive, nil
}

func (s *Store) UpdateUser(_ context.Context, id string, patch store.UserPatch) (models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.User{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == id })
	if i < 0 {
		return models.User{}, store.ErrNotFound
	}
	applyUserPatch(&users[i], patch)
	users[i].UpdatedAt = time.Now().UTC()
	if err := save(s, colUsers, users); err != nil {
		return models.User{}, err
	}
	return users[i], nil
}

// applyUserPatch merges a patch into a user. Toggling the organizer flag
// keeps Role in step so role-gated routes see the change immediately.
func applyUserPatch(u *models.User, p store.UserPatch) {
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.IsOrganizer != nil {
		u.IsOrganizer = *p.IsOrganizer
		u.Role = store.OrganizerRole(u.Role, *p.IsOrganizer)
	}
	if p.Profile != nil {
		u.Profile = *p.Profile
	}
	if p.SocialStats != nil {
		u.SocialStats = *p.SocialStats
	}
}

func (s *Store) LikeEvent(_ context.Context, userID, eventID string) (models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.User{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.User{}, store.ErrNotFound
	}
	if !slices.Contains(users[i].LikedEventIDs, eventID) {
		users[i].LikedEventIDs = append(users[i].LikedEventIDs, eventID)
		users[i].UpdatedAt = time.Now().UTC()
		if err := save(s, colUsers, users); err != nil {
			return models.User{}, err
		}
	}
	return users[i], nil
}

func (s *Store) UnlikeEvent(_ context.Context, userID, eventID string) (models.User, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.User{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.User{}, store.ErrNotFound
	}
	if j := slices.Index(users[i].LikedEventIDs, eventID); j >= 0 {
		users[i].LikedEventIDs = slices.Delete(users[i].LikedEventIDs, j, j+1)
		users[i].UpdatedAt = time.Now().UTC()
		if err := save(s, colUsers, users); err != nil {
			return models.User{}, err
		}
	}
	return users[i], nil
}

func (s *Store) ListMarketingCampaigns(_ context.Context, userID string) ([]models.MarketingCampaign, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return slices.Clone(users[i].MarketingCampaigns), nil
}

func (s *Store) AddMarketingCampaign(_ context.Context, userID string, draft models.MarketingCampaign) (models.MarketingCampaign, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.MarketingCampaign{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.MarketingCampaign{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	rec := store.NewCampaignRecord(draft, now)
	users[i].MarketingCampaigns = append(users[i].MarketingCampaigns, rec)
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.MarketingCampaign{}, err
	}
	return rec, nil
}

func (s *Store) UpdateMarketingCampaign(_ context.Context, userID, campaignID string, patch store.CampaignPatch) (models.MarketingCampaign, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.MarketingCampaign{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.MarketingCampaign{}, store.ErrNotFound
	}
	j := indexOf(users[i].MarketingCampaigns, func(c *models.MarketingCampaign) bool { return c.ID == campaignID })
	if j < 0 {
		return models.MarketingCampaign{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	c := &users[i].MarketingCampaigns[j]
	applyCampaignPatch(c, patch)
	c.UpdatedAt = now
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.MarketingCampaign{}, err
	}
	return *c, nil
}

func applyCampaignPatch(c *models.MarketingCampaign, p store.CampaignPatch) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Budget != nil {
		c.Budget = *p.Budget
	}
	if p.Spent != nil {
		c.Spent = *p.Spent
	}
	if p.Reach != nil {
		c.Reach = *p.Reach
	}
	if p.Clicks != nil {
		c.Clicks = *p.Clicks
	}
	if p.Conversions != nil {
		c.Conversions = *p.Conversions
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
}

func (s *Store) DeleteMarketingCampaign(_ context.Context, userID, campaignID string) error {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return store.ErrNotFound
	}
	j := indexOf(users[i].MarketingCampaigns, func(c *models.MarketingCampaign) bool { return c.ID == campaignID })
	if j < 0 {
		return store.ErrNotFound
	}
	users[i].MarketingCampaigns = slices.Delete(users[i].MarketingCampaigns, j, j+1)
	users[i].UpdatedAt = time.Now().UTC()
	return save(s, colUsers, users)
}

func (s *Store) ListSocialPosts(_ context.Context, userID string) ([]models.SocialPost, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return slices.Clone(users[i].SocialPosts), nil
}

func (s *Store) AddSocialPost(_ context.Context, userID string, draft models.SocialPost) (models.SocialPost, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.SocialPost{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.SocialPost{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	rec := store.NewSocialPostRecord(draft, now)
	users[i].SocialPosts = append(users[i].SocialPosts, rec)
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.SocialPost{}, err
	}
	return rec, nil
}

func (s *Store) ListAdCampaigns(_ context.Context, userID string) ([]models.AdCampaign, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return slices.Clone(users[i].AdCampaigns), nil
}

func (s *Store) AddAdCampaign(_ context.Context, userID string, draft models.AdCampaign) (models.AdCampaign, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.AdCampaign{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == userID })
	if i < 0 {
		return models.AdCampaign{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	rec := store.NewAdCampaignRecord(draft, now)
	users[i].AdCampaigns = append(users[i].AdCampaigns, rec)
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.AdCampaign{}, err
	}
	return rec, nil
}

func (s *Store) ListTeamMembers(_ context.Context, ownerID string) ([]models.TeamMember, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == ownerID })
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return slices.Clone(users[i].TeamMembers), nil
}

func (s *Store) AddTeamMember(_ context.Context, ownerID string, draft models.TeamMember) (models.TeamMember, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.TeamMember{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == ownerID })
	if i < 0 {
		return models.TeamMember{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	draft.Email = store.NormalizeEmail(draft.Email)
	rec := store.NewTeamMemberRecord(draft, now)
	users[i].TeamMembers = append(users[i].TeamMembers, rec)
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.TeamMember{}, err
	}
	return rec, nil
}

func (s *Store) UpdateTeamMember(_ context.Context, ownerID, memberID string, patch store.TeamMemberPatch) (models.TeamMember, error) {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return models.TeamMember{}, err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == ownerID })
	if i < 0 {
		return models.TeamMember{}, store.ErrNotFound
	}
	j := indexOf(users[i].TeamMembers, func(m *models.TeamMember) bool { return m.ID == memberID })
	if j < 0 {
		return models.TeamMember{}, store.ErrNotFound
	}
	now := time.Now().UTC()
	m := &users[i].TeamMembers[j]
	applyTeamMemberPatch(m, patch, now)
	m.UpdatedAt = now
	users[i].UpdatedAt = now
	if err := save(s, colUsers, users); err != nil {
		return models.TeamMember{}, err
	}
	return *m, nil
}

func applyTeamMemberPatch(m *models.TeamMember, p store.TeamMemberPatch, now time.Time) {
	if p.Name != nil {
		m.Name = strings.TrimSpace(*p.Name)
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Status != nil {
		m.Status = *p.Status
		if m.Status == models.TeamActive && m.JoinedAt == nil {
			joined := now
			m.JoinedAt = &joined
		}
	}
}

func (s *Store) RemoveTeamMember(_ context.Context, ownerID, memberID string) error {
	users, err := load[models.User](s, colUsers)
	if err != nil {
		return err
	}
	i := indexOf(users, func(u *models.User) bool { return u.ID == ownerID })
	if i < 0 {
		return store.ErrNotFound
	}
	j := indexOf(users[i].TeamMembers, func(m *models.TeamMember) bool { return m.ID == memberID })
	if j < 0 {
		return store.ErrNotFound
	}
	users[i].TeamMembers = slices.Delete(users[i].TeamMembers, j, j+1)
	users[i].UpdatedAt = time.Now().UTC()
	return save(s, colUsers, users)
}
