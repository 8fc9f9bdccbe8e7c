package usecase

import (
	"errors"
	"log"
	"sync"

	"lanchat/internal/repository"
)

var (
	ErrDuplicateGroupId = errors.New("group id already exists")
	ErrUnknownGroup     = errors.New("group does not exist")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrNoSuchInvite     = errors.New("no such group invite")
)

// GroupUsecase is the group directory: group existence, ordered
// membership and the pending invite queue. Same locking and persistence
// discipline as the user directory.
type GroupUsecase interface {
	CreateGroup(groupId, creatorId string) error
	SendInvite(inviterId, invitedId, groupId string) error
	AcceptInvite(invitedId, groupId string) error
	RejectInvite(invitedId, groupId string) error
	GetGroupMembers(groupId string) ([]string, bool)
	GetUserGroups(userId string) []string
	GetPendingInvites(userId string) []string
}

type groupUsecase struct {
	mu      sync.Mutex
	groups  map[string][]string // groupId -> member ids, join order
	pending map[string][]string // invitedId -> group ids

	groupRepo repository.GroupRepository
}

func NewGroupUsecase(groupRepo repository.GroupRepository) (GroupUsecase, error) {
	groups, err := groupRepo.LoadGroups()
	if err != nil {
		return nil, err
	}
	pending, err := groupRepo.LoadGroupInvites()
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d groups, %d pending invite queues", len(groups), len(pending))

	return &groupUsecase{
		groups:    groups,
		pending:   pending,
		groupRepo: groupRepo,
	}, nil
}

func (g *groupUsecase) CreateGroup(groupId, creatorId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.groups[groupId]; exists {
		return ErrDuplicateGroupId
	}
	g.groups[groupId] = []string{creatorId}
	g.persistGroups()
	return nil
}

// SendInvite queues an invite for invitedId. The inviter's own membership
// is deliberately not checked. Re-inviting an already-pending (user,
// group) pair is a no-op success so clients may resend freely.
func (g *groupUsecase) SendInvite(inviterId, invitedId, groupId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	members, exists := g.groups[groupId]
	if !exists {
		return ErrUnknownGroup
	}
	if contains(members, invitedId) {
		return ErrAlreadyMember
	}
	if contains(g.pending[invitedId], groupId) {
		return nil
	}

	g.pending[invitedId] = append(g.pending[invitedId], groupId)
	g.persistGroupInvites()
	return nil
}

func (g *groupUsecase) AcceptInvite(invitedId, groupId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.removePendingLocked(invitedId, groupId) {
		return ErrNoSuchInvite
	}
	g.groups[groupId] = append(g.groups[groupId], invitedId)
	g.persistGroups()
	g.persistGroupInvites()
	return nil
}

func (g *groupUsecase) RejectInvite(invitedId, groupId string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.removePendingLocked(invitedId, groupId) {
		return ErrNoSuchInvite
	}
	g.persistGroupInvites()
	return nil
}

func (g *groupUsecase) GetGroupMembers(groupId string) ([]string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	members, exists := g.groups[groupId]
	if !exists {
		return nil, false
	}
	return append([]string(nil), members...), true
}

// GetUserGroups scans the whole membership table. O(groups), fine at this
// scale.
func (g *groupUsecase) GetUserGroups(userId string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var groupIds []string
	for groupId, members := range g.groups {
		if contains(members, userId) {
			groupIds = append(groupIds, groupId)
		}
	}
	return groupIds
}

func (g *groupUsecase) GetPendingInvites(userId string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.pending[userId]...)
}

func (g *groupUsecase) removePendingLocked(invitedId, groupId string) bool {
	invites := g.pending[invitedId]
	if !contains(invites, groupId) {
		return false
	}
	invites = remove(invites, groupId)
	if len(invites) == 0 {
		delete(g.pending, invitedId)
	} else {
		g.pending[invitedId] = invites
	}
	return true
}

func (g *groupUsecase) persistGroups() {
	if err := g.groupRepo.SaveGroups(g.groups); err != nil {
		log.Printf("save groups: %v", err)
	}
}

func (g *groupUsecase) persistGroupInvites() {
	if err := g.groupRepo.SaveGroupInvites(g.pending); err != nil {
		log.Printf("save group invites: %v", err)
	}
}
