package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lanchat/internal/entity"
	"lanchat/internal/repository"
)

func TestRecordDirectUsesOnePairFile(t *testing.T) {
	dir := t.TempDir()
	uc := NewChatLogUsecase(repository.NewChatLogRepository(dir))

	uc.RecordDirect(entity.NewMessage(entity.KindTextMessage, "u2", "u1", "hi"))
	uc.RecordDirect(entity.NewMessage(entity.KindTextMessage, "u1", "u2", "hello"))

	data, err := os.ReadFile(filepath.Join(dir, "chat_history_u1_u2.txt"))
	if err != nil {
		t.Fatalf("pair log missing: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Fatalf("both directions must share one file:\n%s", data)
	}
}

func TestRecordGroup(t *testing.T) {
	dir := t.TempDir()
	uc := NewChatLogUsecase(repository.NewChatLogRepository(dir))

	uc.RecordGroup(entity.NewMessage(entity.KindGroupMessage, "u1", "g1", "hello group"))

	data, err := os.ReadFile(filepath.Join(dir, "chat_history_group_g1.txt"))
	if err != nil {
		t.Fatalf("group log missing: %v", err)
	}
	if !strings.Contains(string(data), "[u1] to [g1]: hello group") {
		t.Fatalf("unexpected log line: %s", data)
	}
}

func TestImagePayloadRedacted(t *testing.T) {
	dir := t.TempDir()
	uc := NewChatLogUsecase(repository.NewChatLogRepository(dir))

	msg := entity.Message{
		Kind:       entity.KindImageMessage,
		SenderId:   "u1",
		ReceiverId: "u2",
		Timestamp:  time.Now().UnixMilli(),
		Content:    "cat.png:aGVsbG8gd29ybGQ=",
	}
	uc.RecordDirect(msg)

	data, err := os.ReadFile(filepath.Join(dir, "chat_history_u1_u2.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[图片: cat.png]") {
		t.Fatalf("placeholder missing: %s", data)
	}
	if strings.Contains(string(data), "aGVsbG8") {
		t.Fatalf("base64 payload leaked to disk: %s", data)
	}
}
