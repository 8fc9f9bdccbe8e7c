package usecase

import (
	"errors"
	"reflect"
	"testing"

	"lanchat/internal/repository"
)

func newGroupUc(t *testing.T, dir string) GroupUsecase {
	t.Helper()
	uc, err := NewGroupUsecase(repository.NewGroupRepository(dir))
	if err != nil {
		t.Fatalf("NewGroupUsecase: %v", err)
	}
	return uc
}

func TestCreateGroup(t *testing.T) {
	uc := newGroupUc(t, t.TempDir())

	if err := uc.CreateGroup("g1", "u1"); err != nil {
		t.Fatal(err)
	}
	if err := uc.CreateGroup("g1", "u2"); !errors.Is(err, ErrDuplicateGroupId) {
		t.Fatalf("duplicate group id: %v", err)
	}

	members, ok := uc.GetGroupMembers("g1")
	if !ok || !reflect.DeepEqual(members, []string{"u1"}) {
		t.Fatalf("creator must be sole member, got %v", members)
	}
}

func TestSendInvite(t *testing.T) {
	uc := newGroupUc(t, t.TempDir())
	if err := uc.CreateGroup("g1", "u1"); err != nil {
		t.Fatal(err)
	}

	if err := uc.SendInvite("u1", "u2", "ghost"); !errors.Is(err, ErrUnknownGroup) {
		t.Fatalf("unknown group: %v", err)
	}
	if err := uc.SendInvite("u1", "u1", "g1"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("inviting a member: %v", err)
	}

	if err := uc.SendInvite("u1", "u2", "g1"); err != nil {
		t.Fatal(err)
	}
	// Resending the same invite is a silent success, not an error.
	if err := uc.SendInvite("u1", "u2", "g1"); err != nil {
		t.Fatalf("duplicate invite: %v", err)
	}
	if invites := uc.GetPendingInvites("u2"); len(invites) != 1 {
		t.Fatalf("expected one queued invite, got %v", invites)
	}
}

func TestAcceptInviteAppendsInJoinOrder(t *testing.T) {
	uc := newGroupUc(t, t.TempDir())
	if err := uc.CreateGroup("g1", "u1"); err != nil {
		t.Fatal(err)
	}

	for _, id := range []string{"u2", "u3"} {
		if err := uc.SendInvite("u1", id, "g1"); err != nil {
			t.Fatal(err)
		}
		if err := uc.AcceptInvite(id, "g1"); err != nil {
			t.Fatal(err)
		}
	}

	members, _ := uc.GetGroupMembers("g1")
	if !reflect.DeepEqual(members, []string{"u1", "u2", "u3"}) {
		t.Fatalf("join order not preserved: %v", members)
	}

	if err := uc.AcceptInvite("u2", "g1"); !errors.Is(err, ErrNoSuchInvite) {
		t.Fatalf("double accept: %v", err)
	}
}

func TestRejectInviteLeavesMembershipUnchanged(t *testing.T) {
	uc := newGroupUc(t, t.TempDir())
	if err := uc.CreateGroup("g1", "u1"); err != nil {
		t.Fatal(err)
	}
	if err := uc.SendInvite("u1", "u2", "g1"); err != nil {
		t.Fatal(err)
	}

	if err := uc.RejectInvite("u2", "g1"); err != nil {
		t.Fatal(err)
	}
	members, _ := uc.GetGroupMembers("g1")
	if len(members) != 1 {
		t.Fatalf("reject changed membership: %v", members)
	}
	if err := uc.RejectInvite("u2", "g1"); !errors.Is(err, ErrNoSuchInvite) {
		t.Fatalf("double reject: %v", err)
	}
}

func TestGetUserGroups(t *testing.T) {
	uc := newGroupUc(t, t.TempDir())
	for _, gid := range []string{"g1", "g2", "g3"} {
		if err := uc.CreateGroup(gid, "u1"); err != nil {
			t.Fatal(err)
		}
	}
	if err := uc.SendInvite("u1", "u2", "g2"); err != nil {
		t.Fatal(err)
	}
	if err := uc.AcceptInvite("u2", "g2"); err != nil {
		t.Fatal(err)
	}

	if got := uc.GetUserGroups("u2"); !reflect.DeepEqual(got, []string{"g2"}) {
		t.Fatalf("GetUserGroups(u2) = %v", got)
	}
	if got := uc.GetUserGroups("u1"); len(got) != 3 {
		t.Fatalf("GetUserGroups(u1) = %v", got)
	}
	if got := uc.GetUserGroups("ghost"); len(got) != 0 {
		t.Fatalf("GetUserGroups(ghost) = %v", got)
	}
}

func TestGroupDirectorySurvivesReload(t *testing.T) {
	dir := t.TempDir()
	uc := newGroupUc(t, dir)
	if err := uc.CreateGroup("g1", "u1"); err != nil {
		t.Fatal(err)
	}
	if err := uc.SendInvite("u1", "u2", "g1"); err != nil {
		t.Fatal(err)
	}

	reloaded := newGroupUc(t, dir)
	members, ok := reloaded.GetGroupMembers("g1")
	if !ok || len(members) != 1 {
		t.Fatalf("group lost across reload: %v", members)
	}
	if invites := reloaded.GetPendingInvites("u2"); len(invites) != 1 {
		t.Fatalf("invite lost across reload: %v", invites)
	}
}
