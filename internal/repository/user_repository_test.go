package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"lanchat/internal/entity"
)

func TestLoadUsersMissingFile(t *testing.T) {
	repo := NewUserRepository(t.TempDir())

	users, err := repo.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty user table, got %d entries", len(users))
	}
}

func TestUsersRoundTrip(t *testing.T) {
	repo := NewUserRepository(t.TempDir())

	in := map[string]entity.User{
		"u1": {Id: "u1", Username: "Alice", Password: "pw1"},
		"u2": {Id: "u2", Username: "Bob", Password: "pw2"},
	}
	if err := repo.SaveUsers(in); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}

	out, err := repo.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %v != %v", out, in)
	}
}

func TestLoadUsersSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "u1|Alice|pw1\ngarbage line\nu2|Bob\nu3|Carol|pw3\n"
	if err := os.WriteFile(filepath.Join(dir, usersFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	users, err := NewUserRepository(dir).LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users["u3"].Username != "Carol" {
		t.Fatalf("u3 not loaded: %v", users)
	}
}

func TestFriendshipsSavedOncePerPair(t *testing.T) {
	dir := t.TempDir()
	repo := NewUserRepository(dir)

	graph := map[string][]string{
		"u1": {"u2"},
		"u2": {"u1"},
	}
	if err := repo.SaveFriendships(graph); err != nil {
		t.Fatalf("SaveFriendships: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, friendshipsFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "u1|u2\n" {
		t.Fatalf("expected single ordered pair line, got %q", string(data))
	}

	loaded, err := repo.LoadFriendships()
	if err != nil {
		t.Fatalf("LoadFriendships: %v", err)
	}
	if !reflect.DeepEqual(loaded, graph) {
		t.Fatalf("graph not bidirectional after load: %v", loaded)
	}
}

func TestFriendRequestsRoundTrip(t *testing.T) {
	repo := NewUserRepository(t.TempDir())

	pending := map[string][]string{
		"u2": {"u1", "u3"},
	}
	if err := repo.SaveFriendRequests(pending); err != nil {
		t.Fatalf("SaveFriendRequests: %v", err)
	}

	loaded, err := repo.LoadFriendRequests()
	if err != nil {
		t.Fatalf("LoadFriendRequests: %v", err)
	}
	if len(loaded["u2"]) != 2 {
		t.Fatalf("expected 2 pending senders for u2, got %v", loaded)
	}
}
