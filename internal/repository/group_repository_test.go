package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGroupsRoundTripKeepsMemberOrder(t *testing.T) {
	repo := NewGroupRepository(t.TempDir())

	in := map[string][]string{
		"g1": {"u3", "u1", "u2"},
		"g2": {"u1"},
	}
	if err := repo.SaveGroups(in); err != nil {
		t.Fatalf("SaveGroups: %v", err)
	}

	out, err := repo.LoadGroups()
	if err != nil {
		t.Fatalf("LoadGroups: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %v != %v", out, in)
	}
}

func TestLoadGroupsSkipsMemberlessLines(t *testing.T) {
	dir := t.TempDir()
	content := "g1|u1|u2\ng2\n"
	if err := os.WriteFile(filepath.Join(dir, groupsFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	groups, err := NewGroupRepository(dir).LoadGroups()
	if err != nil {
		t.Fatalf("LoadGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %v", groups)
	}
}

func TestGroupInvitesRoundTrip(t *testing.T) {
	repo := NewGroupRepository(t.TempDir())

	pending := map[string][]string{
		"u2": {"g1", "g2"},
	}
	if err := repo.SaveGroupInvites(pending); err != nil {
		t.Fatalf("SaveGroupInvites: %v", err)
	}

	loaded, err := repo.LoadGroupInvites()
	if err != nil {
		t.Fatalf("LoadGroupInvites: %v", err)
	}
	if len(loaded["u2"]) != 2 {
		t.Fatalf("expected 2 pending invites for u2, got %v", loaded)
	}
}
