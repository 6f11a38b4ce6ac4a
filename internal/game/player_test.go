package game

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTakeAction(t *testing.T) {
	r := newTestRoster()
	villager, wolf := r.villagers[0], r.wolves[0]

	if villager.TakeAction(Action{Kind: ActionKill, Target: wolf}) {
		t.Fatal("villager should not be able to kill")
	}
	if len(villager.Actions()) != 0 {
		t.Fatalf("expected no recorded actions, got %v", villager.Actions())
	}

	if !villager.TakeAction(Action{Kind: ActionSuspect, Target: wolf}) {
		t.Fatal("villager should be able to suspect")
	}
	if !wolf.TakeAction(Action{Kind: ActionKill, Target: villager}) {
		t.Fatal("werewolf should be able to kill")
	}
	got := villager.Actions()
	if len(got) != 1 || got[0].Kind != ActionSuspect || got[0].Target != wolf {
		t.Fatalf("expected one suspect action, got %v", got)
	}
}

func TestPlayerString(t *testing.T) {
	r := newTestRoster()
	if got := r.seer.String(); got != "Sue (Seer)" {
		t.Fatalf("expected Sue (Seer), got %s", got)
	}
	a := Action{Kind: ActionInvestigate, Target: r.wolves[0]}
	if got := a.String(); got != "Investigate John (Werewolf)" {
		t.Fatalf("unexpected action string %q", got)
	}
}

func TestSessionActLogsRefusal(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRoster()
	s := newStartedSession(t, r.all, WithLogger(zerolog.New(&buf)))

	if s.Act(r.villagers[0], Action{Kind: ActionKill, Target: r.wolves[0]}) {
		t.Fatal("villager kill should be refused")
	}
	if !strings.Contains(buf.String(), "action not permitted") {
		t.Fatalf("expected refusal to be logged, got %s", buf.String())
	}

	stranger := NewPlayer(99, "Stranger", DefaultRegistry().MustGet(RoleWerewolf))
	if s.Act(stranger, Action{Kind: ActionKill, Target: r.villagers[0]}) {
		t.Fatal("non-member action should be refused")
	}
	if !s.Act(r.seer, Action{Kind: ActionInvestigate, Target: r.wolves[0]}) {
		t.Fatal("seer investigate should be accepted")
	}
}
