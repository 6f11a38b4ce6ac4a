package bot

import (
	"slices"
	"testing"

	"github.com/kiliankoe/werewolf/internal/game"
)

func newSession(t *testing.T) (*game.Session, []*game.Player) {
	t.Helper()
	reg := game.DefaultRegistry()
	kinds := []game.RoleKind{game.RoleWerewolf, game.RoleWerewolf, game.RoleSeer, game.RoleVillager, game.RoleVillager, game.RoleBodyguard, game.RoleWitch}
	var players []*game.Player
	for i, k := range kinds {
		players = append(players, game.NewPlayer(i+1, string(k), reg.MustGet(k)))
	}
	s, err := game.NewSession(players)
	if err != nil {
		t.Fatalf("should be able to create session: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("should be able to start: %v", err)
	}
	return s, players
}

func TestRandomIsDeterministicPerSeed(t *testing.T) {
	s, players := newSession(t)
	a, b := NewRandom(11), NewRandom(11)
	for range 20 {
		if a.VillageVote(s, players[0], players) != b.VillageVote(s, players[0], players) {
			t.Fatal("same seed should give the same picks")
		}
	}
}

func TestRandomVillageVoteAvoidsSelf(t *testing.T) {
	s, players := newSession(t)
	r := NewRandom(3)
	for range 50 {
		if got := r.VillageVote(s, players[2], players); got == players[2] {
			t.Fatal("should not vote for oneself")
		}
	}
	if got := r.VillageVote(s, players[2], players[2:3]); got != players[2] {
		t.Fatalf("sole candidate should be picked, got %v", got)
	}
	if got := r.WerewolfVote(s, players[0], nil); got != nil {
		t.Fatalf("expected abstention without candidates, got %v", got)
	}
}

func TestRandomProtectNeverRepeats(t *testing.T) {
	s, players := newSession(t)
	r := NewRandom(5)
	guard := players[5]
	for night := 0; night < 3; night++ {
		a, err := s.NewNight()
		if err != nil {
			t.Fatalf("should be able to open night: %v", err)
		}
		a.Protected = r.Protect(s, guard)
		if a.Protected == nil || s.WasProtectedLastNight(a.Protected) {
			t.Fatalf("night %d: repeated or missing pick %v", a.Night, a.Protected)
		}
		res, err := s.ResolveNight(a)
		if err != nil {
			t.Fatalf("should be able to resolve night: %v", err)
		}
		if !res.ProtectionApplied {
			t.Fatalf("night %d: protection should apply", a.Night)
		}
		d, _ := s.NewDay()
		s.ResolveDay(d)
	}
}

func TestRandomWitchRespectsPotions(t *testing.T) {
	s, players := newSession(t)
	r := NewRandom(1)
	r.SaveChance, r.KillChance = 1, 1
	witch, victim := players[6], players[3]

	save, kill := r.WitchMoves(s, witch, victim)
	if !save {
		t.Fatal("expected save with certain chance")
	}
	if kill == witch || (kill != nil && kill == victim) {
		t.Fatalf("unexpected kill target %v", kill)
	}
	if save, _ := r.WitchMoves(s, witch, nil); save {
		t.Fatal("no save without a victim")
	}

	a, _ := s.NewNight()
	a.WerewolfVictim = victim
	a.WitchSave = true
	a.WitchKill = players[0]
	if _, err := s.ResolveNight(a); err != nil {
		t.Fatalf("should be able to resolve night: %v", err)
	}
	save, kill = r.WitchMoves(s, witch, players[4])
	if save || kill != nil {
		t.Fatalf("spent potions should not be offered again, got %v %v", save, kill)
	}
}

func TestRandomInvestigateSkipsSeer(t *testing.T) {
	s, players := newSession(t)
	r := NewRandom(9)
	seer := players[2]
	for range 30 {
		got := r.Investigate(s, seer)
		if got == seer || !slices.Contains(players, got) {
			t.Fatalf("unexpected investigation target %v", got)
		}
	}
}
