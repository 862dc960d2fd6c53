// internal/app/store/mongostore/users.go
package mongostore

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"

	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/domain/models"
)

// CreateUser inserts a new account. The partial unique index on active
// emails turns a duplicate signup into ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, draft models.User) (models.User, error) {
	draft.Email = store.NormalizeEmail(draft.Email)
	rec := store.NewUserRecord(draft, time.Now().UTC())
	if _, err := s.users().InsertOne(ctx, rec); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, store.ErrDuplicateEmail
		}
		return models.User{}, store.Wrap("insert", colUsers, err)
	}
	rec.PasswordHash = ""
	return rec, nil
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users(), bson.M{"_id": id})
}

// FindUserByEmail prefers an active account when an old deactivated one
// still holds the same address.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = store.NormalizeEmail(email)
	u, err := findOne[models.User](ctx, s.users(), bson.M{"email": email, "is_active": true})
	if err != nil || u != nil {
		return u, err
	}
	return findOne[models.User](ctx, s.users(), bson.M{"email": email})
}

// UpdateUser merges a patch with a field-level $set, so concurrent patches
// to different fields of the same user both land. Toggling the organizer
// flag keeps Role in step so role-gated routes see the change immediately.
func (s *Store) UpdateUser(ctx context.Context, id string, patch store.UserPatch) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.FullName != nil {
		set["full_name"] = strings.TrimSpace(*patch.FullName)
	}
	if patch.Profile != nil {
		set["profile"] = *patch.Profile
	}
	if patch.SocialStats != nil {
		set["social_stats"] = *patch.SocialStats
	}
	if patch.IsOrganizer != nil {
		current, err := findOne[models.User](ctx, s.users(), bson.M{"_id": id})
		if err != nil {
			return models.User{}, err
		}
		if current == nil {
			return models.User{}, store.ErrNotFound
		}
		set["is_organizer"] = *patch.IsOrganizer
		set["role"] = store.OrganizerRole(current.Role, *patch.IsOrganizer)
	}
	return findOneAndUpdate[models.User](ctx, s.users(), bson.M{"_id": id}, bson.M{"$set": set})
}

// LikeEvent adds eventID to the user's liked set. The $ne guard makes the
// push idempotent without touching the document when the id is already
// there.
func (s *Store) LikeEvent(ctx context.Context, userID, eventID string) (models.User, error) {
	updated, err := findOneAndUpdate[models.User](ctx, s.users(),
		bson.M{"_id": userID, "liked_event_ids": bson.M{"$ne": eventID}},
		bson.M{
			"$push": bson.M{"liked_event_ids": eventID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err == nil {
		return updated, nil
	}
	if !isNotFound(err) {
		return models.User{}, err
	}
	// No match means the user is missing or the event is already liked.
	return s.requireUser(ctx, userID)
}

func (s *Store) UnlikeEvent(ctx context.Context, userID, eventID string) (models.User, error) {
	updated, err := findOneAndUpdate[models.User](ctx, s.users(),
		bson.M{"_id": userID, "liked_event_ids": eventID},
		bson.M{
			"$pull": bson.M{"liked_event_ids": eventID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err == nil {
		return updated, nil
	}
	if !isNotFound(err) {
		return models.User{}, err
	}
	return s.requireUser(ctx, userID)
}

// requireUser resolves a user that must exist for the calling mutation.
func (s *Store) requireUser(ctx context.Context, userID string) (models.User, error) {
	u, err := findOne[models.User](ctx, s.users(), bson.M{"_id": userID})
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, store.ErrNotFound
	}
	return *u, nil
}

func (s *Store) ListMarketingCampaigns(ctx context.Context, userID string) ([]models.MarketingCampaign, error) {
	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.MarketingCampaigns == nil {
		return []models.MarketingCampaign{}, nil
	}
	return u.MarketingCampaigns, nil
}

func (s *Store) AddMarketingCampaign(ctx context.Context, userID string, draft models.MarketingCampaign) (models.MarketingCampaign, error) {
	now := time.Now().UTC()
	rec := store.NewCampaignRecord(draft, now)
	if err := s.pushEmbedded(ctx, userID, "marketing_campaigns", rec, now); err != nil {
		return models.MarketingCampaign{}, err
	}
	return rec, nil
}

func (s *Store) UpdateMarketingCampaign(ctx context.Context, userID, campaignID string, patch store.CampaignPatch) (models.MarketingCampaign, error) {
	now := time.Now().UTC()
	set := bson.M{
		"marketing_campaigns.$.updated_at": now,
		"updated_at":                       now,
	}
	if patch.Name != nil {
		set["marketing_campaigns.$.name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Status != nil {
		set["marketing_campaigns.$.status"] = *patch.Status
	}
	if patch.Budget != nil {
		set["marketing_campaigns.$.budget"] = *patch.Budget
	}
	if patch.Spent != nil {
		set["marketing_campaigns.$.spent"] = *patch.Spent
	}
	if patch.Reach != nil {
		set["marketing_campaigns.$.reach"] = *patch.Reach
	}
	if patch.Clicks != nil {
		set["marketing_campaigns.$.clicks"] = *patch.Clicks
	}
	if patch.Conversions != nil {
		set["marketing_campaigns.$.conversions"] = *patch.Conversions
	}
	if patch.StartDate != nil {
		set["marketing_campaigns.$.start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		set["marketing_campaigns.$.end_date"] = *patch.EndDate
	}

	updated, err := findOneAndUpdate[models.User](ctx, s.users(),
		bson.M{"_id": userID, "marketing_campaigns.id": campaignID},
		bson.M{"$set": set})
	if err != nil {
		return models.MarketingCampaign{}, err
	}
	for i := range updated.MarketingCampaigns {
		if updated.MarketingCampaigns[i].ID == campaignID {
			return updated.MarketingCampaigns[i], nil
		}
	}
	return models.MarketingCampaign{}, store.ErrNotFound
}

func (s *Store) DeleteMarketingCampaign(ctx context.Context, userID, campaignID string) error {
	return s.pullEmbedded(ctx, userID, "marketing_campaigns", campaignID)
}

func (s *Store) ListSocialPosts(ctx context.Context, userID string) ([]models.SocialPost, error) {
	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.SocialPosts == nil {
		return []models.SocialPost{}, nil
	}
	return u.SocialPosts, nil
}

func (s *Store) AddSocialPost(ctx context.Context, userID string, draft models.SocialPost) (models.SocialPost, error) {
	now := time.Now().UTC()
	rec := store.NewSocialPostRecord(draft, now)
	if err := s.pushEmbedded(ctx, userID, "social_posts", rec, now); err != nil {
		return models.SocialPost{}, err
	}
	return rec, nil
}

func (s *Store) ListAdCampaigns(ctx context.Context, userID string) ([]models.AdCampaign, error) {
	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.AdCampaigns == nil {
		return []models.AdCampaign{}, nil
	}
	return u.AdCampaigns, nil
}

func (s *Store) AddAdCampaign(ctx context.Context, userID string, draft models.AdCampaign) (models.AdCampaign, error) {
	now := time.Now().UTC()
	rec := store.NewAdCampaignRecord(draft, now)
	if err := s.pushEmbedded(ctx, userID, "ad_campaigns", rec, now); err != nil {
		return models.AdCampaign{}, err
	}
	return rec, nil
}

func (s *Store) ListTeamMembers(ctx context.Context, ownerID string) ([]models.TeamMember, error) {
	u, err := s.requireUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if u.TeamMembers == nil {
		return []models.TeamMember{}, nil
	}
	return u.TeamMembers, nil
}

func (s *Store) AddTeamMember(ctx context.Context, ownerID string, draft models.TeamMember) (models.TeamMember, error) {
	now := time.Now().UTC()
	draft.Email = store.NormalizeEmail(draft.Email)
	rec := store.NewTeamMemberRecord(draft, now)
	if err := s.pushEmbedded(ctx, ownerID, "team_members", rec, now); err != nil {
		return models.TeamMember{}, err
	}
	return rec, nil
}

func (s *Store) UpdateTeamMember(ctx context.Context, ownerID, memberID string, patch store.TeamMemberPatch) (models.TeamMember, error) {
	now := time.Now().UTC()
	set := bson.M{
		"team_members.$.updated_at": now,
		"updated_at":                now,
	}
	if patch.Name != nil {
		set["team_members.$.name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		set["team_members.$.role"] = *patch.Role
	}
	if patch.Status != nil {
		set["team_members.$.status"] = *patch.Status
		if *patch.Status == models.TeamActive {
			// JoinedAt is written once, the first time the member goes
			// active.
			current, err := s.requireUser(ctx, ownerID)
			if err != nil {
				return models.TeamMember{}, err
			}
			var member *models.TeamMember
			for i := range current.TeamMembers {
				if current.TeamMembers[i].ID == memberID {
					member = &current.TeamMembers[i]
					break
				}
			}
			if member == nil {
				return models.TeamMember{}, store.ErrNotFound
			}
			if member.JoinedAt == nil {
				set["team_members.$.joined_at"] = now
			}
		}
	}

	updated, err := findOneAndUpdate[models.User](ctx, s.users(),
		bson.M{"_id": ownerID, "team_members.id": memberID},
		bson.M{"$set": set})
	if err != nil {
		return models.TeamMember{}, err
	}
	for i := range updated.TeamMembers {
		if updated.TeamMembers[i].ID == memberID {
			return updated.TeamMembers[i], nil
		}
	}
	return models.TeamMember{}, store.ErrNotFound
}

func (s *Store) RemoveTeamMember(ctx context.Context, ownerID, memberID string) error {
	return s.pullEmbedded(ctx, ownerID, "team_members", memberID)
}

// pushEmbedded appends one record to an embedded array on the user document.
func (s *Store) pushEmbedded(ctx context.Context, userID, field string, rec any, now time.Time) error {
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{field: rec},
		"$set":  bson.M{"updated_at": now},
	})
	if err != nil {
		return store.Wrap("update", colUsers, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// pullEmbedded removes the embedded record with the given id. The filter
// requires the record to be present, so a missing user and a missing record
// both come back as ErrNotFound.
func (s *Store) pullEmbedded(ctx context.Context, userID, field, recordID string) error {
	res, err := s.users().UpdateOne(ctx,
		bson.M{"_id": userID, field + ".id": recordID},
		bson.M{
			"$pull": bson.M{field: bson.M{"id": recordID}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return store.Wrap("update", colUsers, err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
