package websocket

import (
	"lanchat/internal/entity"
)

// Snapshot frames. Clients treat these as full replacements of their
// local state, so each builder renders the complete current view.

func (h *WebsocketHandler) friendListMessage(userId string) entity.Message {
	friendIds := h.userUc.GetFriends(userId)

	entries := make([]entity.UserStatus, 0, len(friendIds))
	for _, friendId := range friendIds {
		friend, ok := h.userUc.GetUser(friendId)
		if !ok {
			continue
		}
		entries = append(entries, entity.UserStatus{
			Id:       friend.Id,
			Username: friend.Username,
			IsOnline: h.hub.IsOnline(friendId),
		})
	}
	return entity.NewMessage(entity.KindFriendList, entity.ServerId, userId, joinUserStatuses(entries))
}

func (h *WebsocketHandler) groupListMessage(userId string) entity.Message {
	groupIds := h.groupUc.GetUserGroups(userId)
	return entity.NewMessage(entity.KindGetGroups, entity.ServerId, userId, joinIds(groupIds))
}

func (h *WebsocketHandler) pendingRequestsMessage(userId string) entity.Message {
	friendRequests := h.userUc.GetPendingRequests(userId)
	groupInvites := h.groupUc.GetPendingInvites(userId)
	return entity.NewMessage(entity.KindGetPendingRequests, entity.ServerId, userId,
		joinPending(friendRequests, groupInvites))
}

// groupMembersMessage carries the group id in the sender slot and the
// requester in the receiver slot.
func (h *WebsocketHandler) groupMembersMessage(groupId, requesterId string) entity.Message {
	memberIds, _ := h.groupUc.GetGroupMembers(groupId)

	entries := make([]entity.UserStatus, 0, len(memberIds))
	for _, memberId := range memberIds {
		member, ok := h.userUc.GetUser(memberId)
		if !ok {
			continue
		}
		entries = append(entries, entity.UserStatus{
			Id:       member.Id,
			Username: member.Username,
			IsOnline: h.hub.IsOnline(memberId),
		})
	}
	return entity.NewMessage(entity.KindGetGroupMembers, groupId, requesterId, joinUserStatuses(entries))
}

// pushFriendList refreshes userId's friend list if a session is bound.
func (h *WebsocketHandler) pushFriendList(userId string) {
	h.sendTo(userId, h.friendListMessage(userId))
}

// pushGroupList refreshes userId's group list if a session is bound.
func (h *WebsocketHandler) pushGroupList(userId string) {
	h.sendTo(userId, h.groupListMessage(userId))
}

// notifyFriendsStatusChange fans the updated friend list out to every
// online friend of userId after a presence change.
func (h *WebsocketHandler) notifyFriendsStatusChange(userId string) {
	for _, friendId := range h.userUc.GetFriends(userId) {
		h.pushFriendList(friendId)
	}
}
