package repository

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lanchat/internal/entity"
)

// DirectConversationKey names the log shared by two users. The ids are
// ordered lexicographically so both sides resolve to the same file.
func DirectConversationKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

// GroupConversationKey names the log of a group conversation.
func GroupConversationKey(groupId string) string {
	return "group_" + groupId
}

// ChatLogRepository appends conversation history lines. Logs are
// append-only; there is no rotation or size bound.
type ChatLogRepository interface {
	Append(conversationKey string, e entity.ChatLogEntry) error
}

type chatLogRepository struct {
	dir string
}

func NewChatLogRepository(dir string) ChatLogRepository {
	return &chatLogRepository{dir: dir}
}

func (r *chatLogRepository) Append(conversationKey string, e entity.ChatLogEntry) error {
	ts := time.UnixMilli(e.Timestamp).Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%s [%s] to [%s]: %s", ts, e.SenderId, e.ReceiverId, e.Content)
	return appendLine(r.logPath(conversationKey), line)
}

func (r *chatLogRepository) logPath(conversationKey string) string {
	// Conversation keys are built from user/group ids; strip path
	// separators so an id cannot escape the data directory.
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(conversationKey)
	return filepath.Join(r.dir, "chat_history_"+safe+".txt")
}
