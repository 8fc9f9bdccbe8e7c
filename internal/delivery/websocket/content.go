package websocket

import (
	"errors"
	"strings"

	"lanchat/internal/entity"
)

// The protocol packs structured payloads into the frame content string:
// comma-joined credentials, semicolon-joined lists, colon-joined status
// triples, and a literal "||" between the two pending-request lists.

var errMalformedContent = errors.New("malformed frame content")

// parseLoginContent splits "id,password".
func parseLoginContent(content string) (id, password string, err error) {
	parts := strings.SplitN(content, ",", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", errMalformedContent
	}
	return parts[0], parts[1], nil
}

// parseRegisterContent splits "id,username,password".
func parseRegisterContent(content string) (id, username, password string, err error) {
	parts := strings.SplitN(content, ",", 3)
	if len(parts) != 3 || parts[0] == "" {
		return "", "", "", errMalformedContent
	}
	return parts[0], parts[1], parts[2], nil
}

// joinUserStatuses encodes "id:username:online|offline" entries joined by
// semicolons, as carried by FRIEND_LIST and GET_GROUP_MEMBERS replies.
func joinUserStatuses(entries []entity.UserStatus) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		status := "offline"
		if e.IsOnline {
			status = "online"
		}
		parts = append(parts, e.Id+":"+e.Username+":"+status)
	}
	return strings.Join(parts, ";")
}

// joinIds encodes a semicolon-joined id list.
func joinIds(ids []string) string {
	return strings.Join(ids, ";")
}

// joinPending encodes the GET_PENDING_REQUESTS payload: friend-request
// sender ids, then group-invite ids, separated by "||".
func joinPending(friendRequests, groupInvites []string) string {
	return joinIds(friendRequests) + "||" + joinIds(groupInvites)
}
