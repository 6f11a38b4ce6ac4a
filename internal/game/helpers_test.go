package game

import "testing"

type testRoster struct {
	wolves    []*Player
	villagers []*Player
	seer      *Player
	bodyguard *Player
	witch     *Player
	all       []*Player
}

// newTestRoster builds the 11 player table: 4 werewolves, 1 seer,
// 4 villagers, 1 bodyguard and 1 witch.
func newTestRoster() testRoster {
	reg := DefaultRegistry()
	var r testRoster
	add := func(name string, kind RoleKind) *Player {
		p := NewPlayer(len(r.all)+1, name, reg.MustGet(kind))
		r.all = append(r.all, p)
		return p
	}
	for _, n := range []string{"John", "Jane", "Tom", "Jerry"} {
		r.wolves = append(r.wolves, add(n, RoleWerewolf))
	}
	r.seer = add("Sue", RoleSeer)
	for _, n := range []string{"Mary", "Harry", "Larry", "Carry"} {
		r.villagers = append(r.villagers, add(n, RoleVillager))
	}
	r.bodyguard = add("Andy", RoleBodyguard)
	r.witch = add("Vikky", RoleWitch)
	return r
}

func newStartedSession(t *testing.T, players []*Player, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(players, opts...)
	if err != nil {
		t.Fatalf("should be able to create session: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("should be able to start session: %v", err)
	}
	return s
}

func openNight(t *testing.T, s *Session) *NightActions {
	t.Helper()
	a, err := s.NewNight()
	if err != nil {
		t.Fatalf("should be able to open night: %v", err)
	}
	return a
}

func resolveNight(t *testing.T, s *Session, a *NightActions) NightResult {
	t.Helper()
	r, err := s.ResolveNight(a)
	if err != nil {
		t.Fatalf("should be able to resolve night: %v", err)
	}
	return r
}

// quietDay opens and resolves a day with no victim.
func quietDay(t *testing.T, s *Session) {
	t.Helper()
	d, err := s.NewDay()
	if err != nil {
		t.Fatalf("should be able to open day: %v", err)
	}
	if _, err := s.ResolveDay(d); err != nil {
		t.Fatalf("should be able to resolve day: %v", err)
	}
}

func contains(players []*Player, p *Player) bool {
	for _, q := range players {
		if q.ID == p.ID {
			return true
		}
	}
	return false
}
