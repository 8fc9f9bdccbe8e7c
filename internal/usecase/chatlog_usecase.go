package usecase

import (
	"log"
	"strings"

	"lanchat/internal/entity"
	"lanchat/internal/repository"
)

// ChatLogUsecase appends routed messages to their conversation log.
// Image payloads are redacted to a filename placeholder before they hit
// disk; the encoded payload is never persisted.
type ChatLogUsecase interface {
	RecordDirect(msg entity.Message)
	RecordGroup(msg entity.Message)
}

type chatLogUsecase struct {
	chatLogRepo repository.ChatLogRepository
}

func NewChatLogUsecase(chatLogRepo repository.ChatLogRepository) ChatLogUsecase {
	return &chatLogUsecase{chatLogRepo: chatLogRepo}
}

func (c *chatLogUsecase) RecordDirect(msg entity.Message) {
	key := repository.DirectConversationKey(msg.SenderId, msg.ReceiverId)
	c.record(key, msg)
}

func (c *chatLogUsecase) RecordGroup(msg entity.Message) {
	c.record(repository.GroupConversationKey(msg.ReceiverId), msg)
}

func (c *chatLogUsecase) record(key string, msg entity.Message) {
	content := msg.Content
	if msg.Kind == entity.KindImageMessage {
		content = "[图片: " + imageFilename(msg.Content) + "]"
	}
	entry := entity.ChatLogEntry{
		Timestamp:  msg.Timestamp,
		SenderId:   msg.SenderId,
		ReceiverId: msg.ReceiverId,
		Content:    content,
	}
	if err := c.chatLogRepo.Append(key, entry); err != nil {
		log.Printf("append chat log %s: %v", key, err)
	}
}

// imageFilename strips the base64 payload from "filename:payload" image
// content.
func imageFilename(content string) string {
	if i := strings.Index(content, ":"); i >= 0 {
		return content[:i]
	}
	return content
}
