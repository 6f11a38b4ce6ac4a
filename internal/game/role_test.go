package game

import (
	"errors"
	"testing"
)

func TestDefaultRolePermissions(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		kind    RoleKind
		allowed []ActionKind
		denied  []ActionKind
	}{
		{RoleVillager, []ActionKind{ActionSuspect, ActionVote}, []ActionKind{ActionKill, ActionInvestigate, ActionSave, ActionProtect}},
		{RoleWerewolf, []ActionKind{ActionSuspect, ActionVote, ActionKill}, []ActionKind{ActionInvestigate, ActionSave, ActionProtect}},
		{RoleSeer, []ActionKind{ActionSuspect, ActionVote, ActionInvestigate}, []ActionKind{ActionKill, ActionSave, ActionProtect}},
		{RoleBodyguard, []ActionKind{ActionSuspect, ActionVote, ActionProtect}, []ActionKind{ActionKill, ActionInvestigate, ActionSave}},
		{RoleWitch, []ActionKind{ActionSuspect, ActionVote, ActionSave, ActionKill}, []ActionKind{ActionInvestigate, ActionProtect}},
	}
	for _, tt := range tests {
		role := reg.MustGet(tt.kind)
		for _, a := range tt.allowed {
			if !CanPerform(role, a) {
				t.Errorf("%s should be able to %s", tt.kind, a)
			}
		}
		for _, a := range tt.denied {
			if reg.CanPerform(tt.kind, a) {
				t.Errorf("%s should not be able to %s", tt.kind, a)
			}
		}
	}
}

func TestCountsAsVillager(t *testing.T) {
	reg := DefaultRegistry()
	for _, kind := range reg.Kinds() {
		role := reg.MustGet(kind)
		want := kind != RoleWerewolf
		if role.CountsAsVillager() != want {
			t.Errorf("CountsAsVillager(%s) = %v, want %v", kind, role.CountsAsVillager(), want)
		}
	}
}

func TestRegisterCustomRole(t *testing.T) {
	reg := DefaultRegistry()
	const RoleHunter RoleKind = "Hunter"
	if _, err := reg.Get(RoleHunter); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if reg.CanPerform(RoleHunter, ActionVote) {
		t.Fatal("unknown role should permit nothing")
	}

	reg.Register(NewRole(RoleHunter, "Hunter", "Takes someone down on the way out", 3, FactionVillagers, ActionKill, ActionKill))
	hunter, err := reg.Get(RoleHunter)
	if err != nil {
		t.Fatalf("should find registered role: %v", err)
	}
	if len(hunter.Actions()) != 3 {
		t.Fatalf("expected 3 actions, got %v", hunter.Actions())
	}
	if !hunter.CanPerform(ActionKill) || !hunter.CanPerform(ActionVote) {
		t.Fatal("hunter should be able to kill and vote")
	}
	if !hunter.CountsAsVillager() {
		t.Fatal("hunter should count as villager")
	}
}

func TestRoleActionsIsCopy(t *testing.T) {
	role := DefaultRegistry().MustGet(RoleVillager)
	actions := role.Actions()
	actions[0] = ActionKill
	if role.CanPerform(ActionKill) {
		t.Fatal("mutating Actions() result should not change the role")
	}
}
