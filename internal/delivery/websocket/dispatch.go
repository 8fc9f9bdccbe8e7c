package websocket

import (
	"lanchat/infrastructure/ws"
	"lanchat/internal/entity"
)

// handleLogin authenticates, enforces single-login and, on success, binds
// the session and pushes the initial snapshots plus a presence fan-out to
// online friends.
func (h *WebsocketHandler) handleLogin(c *ws.UserClient, msg entity.Message) {
	if !h.allowAuthAttempt(c.IP) {
		h.send(c, entity.NewMessage(entity.KindLoginFail, entity.ServerId, msg.SenderId,
			"Too many login attempts. Please wait a minute."))
		return
	}

	id, password, err := parseLoginContent(msg.Content)
	if err != nil {
		h.send(c, entity.NewMessage(entity.KindLoginFail, entity.ServerId, msg.SenderId,
			"Invalid ID or password."))
		return
	}

	user, err := h.userUc.Authenticate(id, password)
	if err != nil {
		h.send(c, entity.NewMessage(entity.KindLoginFail, entity.ServerId, id,
			"Invalid ID or password."))
		return
	}
	if h.hub.IsOnline(id) {
		h.send(c, entity.NewMessage(entity.KindLoginFail, entity.ServerId, id,
			"User already online."))
		return
	}

	c.UserId = id
	h.hub.Bind(id, c)
	h.userUc.SetOnline(id, true)

	h.send(c, entity.NewMessage(entity.KindLoginSuccess, entity.ServerId, id, user.Username))
	h.send(c, h.friendListMessage(id))
	h.send(c, h.groupListMessage(id))
	h.send(c, h.pendingRequestsMessage(id))
	h.notifyFriendsStatusChange(id)
}

func (h *WebsocketHandler) handleRegister(c *ws.UserClient, msg entity.Message) {
	id, username, password, err := parseRegisterContent(msg.Content)
	if err != nil {
		h.send(c, entity.NewMessage(entity.KindRegisterFail, entity.ServerId, msg.SenderId,
			"Invalid registration data."))
		return
	}

	if err := h.userUc.Register(id, username, password); err != nil {
		h.send(c, entity.NewMessage(entity.KindRegisterFail, entity.ServerId, id,
			"ID already exists."))
		return
	}
	h.send(c, entity.NewMessage(entity.KindRegisterSuccess, entity.ServerId, id,
		"Registration successful."))
}

func (h *WebsocketHandler) handleFriendRequest(c *ws.UserClient, msg entity.Message) {
	senderId, receiverId := msg.SenderId, msg.ReceiverId

	if err := h.userUc.SendFriendRequest(senderId, receiverId); err != nil {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, senderId,
			"Failed to send friend request to "+receiverId+". (Already friends or request pending)"))
		return
	}

	h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, senderId,
		"Friend request sent to "+receiverId+"."))
	h.sendTo(receiverId, entity.NewMessage(entity.KindFriendRequest, senderId, receiverId,
		"You have a new friend request from "+senderId+"."))
}

func (h *WebsocketHandler) handleFriendAccept(c *ws.UserClient, msg entity.Message) {
	acceptorId, requesterId := msg.SenderId, msg.ReceiverId

	if err := h.userUc.AcceptFriendRequest(acceptorId, requesterId); err != nil {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, acceptorId,
			"Failed to accept friend request from "+requesterId+"."))
		return
	}

	h.send(c, entity.NewMessage(entity.KindAddFriendSuccess, entity.ServerId, acceptorId,
		"You are now friends with "+requesterId+"."))
	if h.sendTo(requesterId, entity.NewMessage(entity.KindFriendAccept, acceptorId, requesterId,
		acceptorId+" accepted your friend request.")) {
		h.pushFriendList(requesterId)
	}
	h.send(c, h.friendListMessage(acceptorId))
}

func (h *WebsocketHandler) handleFriendReject(c *ws.UserClient, msg entity.Message) {
	rejectorId, requesterId := msg.SenderId, msg.ReceiverId

	if err := h.userUc.RejectFriendRequest(rejectorId, requesterId); err != nil {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, rejectorId,
			"Failed to reject friend request from "+requesterId+"."))
		return
	}

	h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, rejectorId,
		"You rejected friend request from "+requesterId+"."))
	h.sendTo(requesterId, entity.NewMessage(entity.KindFriendReject, rejectorId, requesterId,
		rejectorId+" rejected your friend request."))
}

func (h *WebsocketHandler) handleDeleteFriend(c *ws.UserClient, msg entity.Message) {
	requesterId, targetId := msg.SenderId, msg.ReceiverId

	if err := h.userUc.DeleteFriend(requesterId, targetId); err != nil {
		h.send(c, entity.NewMessage(entity.KindDeleteFriendFail, entity.ServerId, requesterId,
			"Failed to delete friend: "+targetId))
		return
	}

	h.send(c, entity.NewMessage(entity.KindDeleteFriendSuccess, entity.ServerId, requesterId,
		"Friend deleted: "+targetId))
	if h.sendTo(targetId, entity.NewMessage(entity.KindServerMessage, entity.ServerId, targetId,
		"You are no longer friends with: "+requesterId)) {
		h.pushFriendList(targetId)
	}
	h.send(c, h.friendListMessage(requesterId))
}

// handleTextMessage routes a direct message between friends. The frame is
// forwarded verbatim; the sender gets no echo. The conversation log is
// appended whether or not the receiver was online.
func (h *WebsocketHandler) handleTextMessage(c *ws.UserClient, msg entity.Message) {
	if !h.userUc.AreFriends(msg.SenderId, msg.ReceiverId) {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"You can only send messages to friends."))
		return
	}

	if !h.sendTo(msg.ReceiverId, msg) {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"User "+msg.ReceiverId+" is offline."))
	}
	h.chatLogUc.RecordDirect(msg)
}

// handleGroupMessage fans a member's message out to every other bound
// member, keeping the sender's timestamp.
func (h *WebsocketHandler) handleGroupMessage(c *ws.UserClient, msg entity.Message) {
	members, exists := h.groupUc.GetGroupMembers(msg.ReceiverId)
	if !exists {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"Group "+msg.ReceiverId+" does not exist."))
		return
	}
	if !memberOf(members, msg.SenderId) {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"You are not a member of group "+msg.ReceiverId+"."))
		return
	}

	for _, memberId := range members {
		if memberId != msg.SenderId {
			h.sendTo(memberId, msg)
		}
	}
	h.chatLogUc.RecordGroup(msg)
}

// handleImageMessage branches on whether the receiver id names a group.
// Either way the log entry keeps only the filename placeholder.
func (h *WebsocketHandler) handleImageMessage(c *ws.UserClient, msg entity.Message) {
	if members, isGroup := h.groupUc.GetGroupMembers(msg.ReceiverId); isGroup {
		if !memberOf(members, msg.SenderId) {
			h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
				"You are not a member of group "+msg.ReceiverId+"."))
			return
		}
		for _, memberId := range members {
			if memberId != msg.SenderId {
				h.sendTo(memberId, msg)
			}
		}
		h.chatLogUc.RecordGroup(msg)
		return
	}

	if !h.userUc.AreFriends(msg.SenderId, msg.ReceiverId) {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"You can only send images to friends."))
		return
	}
	if !h.sendTo(msg.ReceiverId, msg) {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, msg.SenderId,
			"User "+msg.ReceiverId+" is offline."))
	}
	h.chatLogUc.RecordDirect(msg)
}

func (h *WebsocketHandler) handleGroupInvite(c *ws.UserClient, msg entity.Message) {
	inviterId, invitedId, groupId := msg.SenderId, msg.ReceiverId, msg.Content

	if err := h.groupUc.SendInvite(inviterId, invitedId, groupId); err != nil {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, inviterId,
			"Failed to send group invite to "+invitedId+"."))
		return
	}

	h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, inviterId,
		"Group invite sent to "+invitedId+"."))
	h.sendTo(invitedId, entity.NewMessage(entity.KindGroupInvite, inviterId, invitedId, groupId))
}

// handleGroupAccept adds the acceptor to the group, refreshes every bound
// member's group list and announces the join to the others.
func (h *WebsocketHandler) handleGroupAccept(c *ws.UserClient, msg entity.Message) {
	acceptorId, groupId := msg.SenderId, msg.Content

	if err := h.groupUc.AcceptInvite(acceptorId, groupId); err != nil {
		h.send(c, entity.NewMessage(entity.KindGroupJoinFail, entity.ServerId, acceptorId,
			"Failed to join group "+groupId+"."))
		return
	}

	h.send(c, entity.NewMessage(entity.KindGroupJoinSuccess, entity.ServerId, acceptorId, groupId))

	members, _ := h.groupUc.GetGroupMembers(groupId)
	for _, memberId := range members {
		h.pushGroupList(memberId)
		if memberId != acceptorId {
			h.sendTo(memberId, entity.NewMessage(entity.KindServerMessage, entity.ServerId, memberId,
				acceptorId+" has joined group "+groupId+"."))
		}
	}
}

func (h *WebsocketHandler) handleGroupReject(c *ws.UserClient, msg entity.Message) {
	rejectorId, groupId := msg.SenderId, msg.Content

	if err := h.groupUc.RejectInvite(rejectorId, groupId); err != nil {
		h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, rejectorId,
			"Failed to reject group invite to "+groupId+"."))
		return
	}
	h.send(c, entity.NewMessage(entity.KindServerMessage, entity.ServerId, rejectorId,
		"You rejected group invite to "+groupId+"."))
}

// handleCreateGroup creates the group and refreshes the group list of
// every bound session, not just interested parties.
func (h *WebsocketHandler) handleCreateGroup(c *ws.UserClient, msg entity.Message) {
	creatorId, groupId := msg.SenderId, msg.Content

	if groupId == "" {
		h.send(c, entity.NewMessage(entity.KindCreateGroupFail, entity.ServerId, creatorId,
			"Group ID already exists or invalid."))
		return
	}
	if err := h.groupUc.CreateGroup(groupId, creatorId); err != nil {
		h.send(c, entity.NewMessage(entity.KindCreateGroupFail, entity.ServerId, creatorId,
			"Group ID already exists or invalid."))
		return
	}

	h.send(c, entity.NewMessage(entity.KindCreateGroupSuccess, entity.ServerId, creatorId, groupId))
	for _, client := range h.hub.Bindings() {
		h.send(client, h.groupListMessage(client.UserId))
	}
}

func (h *WebsocketHandler) handleGetGroups(c *ws.UserClient, msg entity.Message) {
	h.send(c, h.groupListMessage(msg.SenderId))
}

func (h *WebsocketHandler) handleGetGroupMembers(c *ws.UserClient, msg entity.Message) {
	h.send(c, h.groupMembersMessage(msg.Content, msg.SenderId))
}

func (h *WebsocketHandler) handleGetPendingRequests(c *ws.UserClient, msg entity.Message) {
	h.send(c, h.pendingRequestsMessage(msg.SenderId))
}

func (h *WebsocketHandler) handleFriendList(c *ws.UserClient, msg entity.Message) {
	h.send(c, h.friendListMessage(msg.SenderId))
}

func memberOf(members []string, userId string) bool {
	for _, m := range members {
		if m == userId {
			return true
		}
	}
	return false
}
