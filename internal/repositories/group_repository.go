package repositories

import (
	"context"
	"errors"
	"sort"

	"task-service/internal/models"
	"task-service/internal/store"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupRepository abstracts group and membership persistence.
type GroupRepository interface {
	CreateGroup(ctx context.Context, creatorID int, name string, memberIDs []int) (models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	ListGroupsForUser(ctx context.Context, userID int) ([]models.Group, error)
	IsMember(ctx context.Context, groupID int, userID int) (bool, error)
	DeleteGroup(ctx context.Context, groupID int) error
}

// GroupRepo is a document-store implementation of GroupRepository.
type GroupRepo struct {
	store *store.Store
}

// NewGroupRepo constructs a GroupRepo.
func NewGroupRepo(s *store.Store) *GroupRepo {
	return &GroupRepo{store: s}
}

// CreateGroup creates a group with the creator and the given members. The
// member list is deduplicated; the creator is always included.
func (r *GroupRepo) CreateGroup(ctx context.Context, creatorID int, name string, memberIDs []int) (models.Group, error) {
	var group models.Group
	err := r.store.Update(func(doc *store.Document) error {
		group = models.Group{
			ID:        doc.NextGroupID(),
			Name:      name,
			CreatedBy: creatorID,
		}
		doc.Groups = append(doc.Groups, group)

		memberSet := map[int]struct{}{creatorID: {}}
		for _, id := range memberIDs {
			memberSet[id] = struct{}{}
		}
		ids := make([]int, 0, len(memberSet))
		for id := range memberSet {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		for _, id := range ids {
			doc.GroupMembers = append(doc.GroupMembers, models.GroupMember{GroupID: group.ID, UserID: id})
		}
		return nil
	})
	return group, err
}

// ListGroups returns every group.
func (r *GroupRepo) ListGroups(ctx context.Context) ([]models.Group, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Groups, nil
}

// ListGroupsForUser returns groups that include the user.
func (r *GroupRepo) ListGroupsForUser(ctx context.Context, userID int) ([]models.Group, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	joined := map[int]struct{}{}
	for _, gm := range doc.GroupMembers {
		if gm.UserID == userID {
			joined[gm.GroupID] = struct{}{}
		}
	}

	var groups []models.Group
	for _, g := range doc.Groups {
		if _, ok := joined[g.ID]; ok {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// IsMember checks membership. A nonexistent group simply has no members.
func (r *GroupRepo) IsMember(ctx context.Context, groupID int, userID int) (bool, error) {
	doc, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for _, gm := range doc.GroupMembers {
		if gm.GroupID == groupID && gm.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteGroup removes the group and cascades its memberships and messages.
func (r *GroupRepo) DeleteGroup(ctx context.Context, groupID int) error {
	return r.store.Update(func(doc *store.Document) error {
		groups := doc.Groups[:0]
		found := false
		for _, g := range doc.Groups {
			if g.ID == groupID {
				found = true
				continue
			}
			groups = append(groups, g)
		}
		if !found {
			return ErrGroupNotFound
		}
		doc.Groups = groups

		members := doc.GroupMembers[:0]
		for _, gm := range doc.GroupMembers {
			if gm.GroupID != groupID {
				members = append(members, gm)
			}
		}
		doc.GroupMembers = members

		messages := doc.Messages[:0]
		for _, m := range doc.Messages {
			if m.GroupID != groupID {
				messages = append(messages, m)
			}
		}
		doc.Messages = messages
		return nil
	})
}
