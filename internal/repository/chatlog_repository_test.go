package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lanchat/internal/entity"
)

func TestDirectConversationKeyOrdersIds(t *testing.T) {
	if DirectConversationKey("u2", "u1") != DirectConversationKey("u1", "u2") {
		t.Fatal("key must be session-independent")
	}
	if DirectConversationKey("u1", "u2") != "u1_u2" {
		t.Fatalf("unexpected key %q", DirectConversationKey("u1", "u2"))
	}
}

func TestAppendWritesFormattedLine(t *testing.T) {
	dir := t.TempDir()
	repo := NewChatLogRepository(dir)

	ts := time.Date(2026, 9, 1, 10, 30, 0, 0, time.Local).UnixMilli()
	entry := entity.ChatLogEntry{
		Timestamp:  ts,
		SenderId:   "u1",
		ReceiverId: "u2",
		Content:    "hello",
	}
	if err := repo.Append(DirectConversationKey("u1", "u2"), entry); err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "chat_history_u1_u2.txt"))
	if err != nil {
		t.Fatal(err)
	}
	want := "2026-09-01 10:30:00 [u1] to [u2]: hello\n"
	if string(data) != want {
		t.Fatalf("log line %q, want %q", string(data), want)
	}
}

func TestAppendIsAppendOnly(t *testing.T) {
	dir := t.TempDir()
	repo := NewChatLogRepository(dir)
	key := GroupConversationKey("g1")

	for _, content := range []string{"one", "two"} {
		entry := entity.ChatLogEntry{
			Timestamp:  time.Now().UnixMilli(),
			SenderId:   "u1",
			ReceiverId: "g1",
			Content:    content,
		}
		if err := repo.Append(key, entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "chat_history_group_g1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "one") || !strings.HasSuffix(lines[1], "two") {
		t.Fatalf("entries out of order: %v", lines)
	}
}
