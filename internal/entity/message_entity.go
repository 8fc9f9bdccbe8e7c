package entity

import "time"

// MessageKind discriminates protocol frames. Values are spelled on the
// wire exactly as listed here.
type MessageKind string

const (
	KindLogin               MessageKind = "LOGIN"
	KindRegister            MessageKind = "REGISTER"
	KindLoginSuccess        MessageKind = "LOGIN_SUCCESS"
	KindLoginFail           MessageKind = "LOGIN_FAIL"
	KindRegisterSuccess     MessageKind = "REGISTER_SUCCESS"
	KindRegisterFail        MessageKind = "REGISTER_FAIL"
	KindTextMessage         MessageKind = "TEXT_MESSAGE"
	KindImageMessage        MessageKind = "IMAGE_MESSAGE"
	KindGroupMessage        MessageKind = "GROUP_MESSAGE"
	KindFriendRequest       MessageKind = "FRIEND_REQUEST"
	KindFriendAccept        MessageKind = "FRIEND_ACCEPT"
	KindFriendReject        MessageKind = "FRIEND_REJECT"
	KindDeleteFriend        MessageKind = "DELETE_FRIEND"
	KindFriendList          MessageKind = "FRIEND_LIST"
	KindAddFriendSuccess    MessageKind = "ADD_FRIEND_SUCCESS"
	KindAddFriendFail       MessageKind = "ADD_FRIEND_FAIL"
	KindDeleteFriendSuccess MessageKind = "DELETE_FRIEND_SUCCESS"
	KindDeleteFriendFail    MessageKind = "DELETE_FRIEND_FAIL"
	KindGroupInvite         MessageKind = "GROUP_INVITE"
	KindGroupAccept         MessageKind = "GROUP_ACCEPT"
	KindGroupReject         MessageKind = "GROUP_REJECT"
	KindCreateGroup         MessageKind = "CREATE_GROUP"
	KindCreateGroupSuccess  MessageKind = "CREATE_GROUP_SUCCESS"
	KindCreateGroupFail     MessageKind = "CREATE_GROUP_FAIL"
	KindGetGroups           MessageKind = "GET_GROUPS"
	KindGetGroupMembers     MessageKind = "GET_GROUP_MEMBERS"
	KindGroupJoinSuccess    MessageKind = "GROUP_JOIN_SUCCESS"
	KindGroupJoinFail       MessageKind = "GROUP_JOIN_FAIL"
	KindServerMessage       MessageKind = "SERVER_MESSAGE"
	KindGetPendingRequests  MessageKind = "GET_PENDING_REQUESTS"
)

// ServerId is the reserved sender/receiver id for server-originated frames.
const ServerId = "Server"

// Message is one protocol frame. ReceiverId holds a user id, a group id,
// or ServerId depending on the kind.
type Message struct {
	Kind       MessageKind `json:"kind"`
	SenderId   string      `json:"senderId"`
	ReceiverId string      `json:"receiverId"`
	Timestamp  int64       `json:"timestamp"`
	Content    string      `json:"content"`
}

// NewMessage builds a frame stamped with the current time in epoch millis.
func NewMessage(kind MessageKind, senderId, receiverId, content string) Message {
	return Message{
		Kind:       kind,
		SenderId:   senderId,
		ReceiverId: receiverId,
		Timestamp:  time.Now().UnixMilli(),
		Content:    content,
	}
}
