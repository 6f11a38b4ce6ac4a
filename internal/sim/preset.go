package sim

import "github.com/kiliankoe/werewolf/internal/game"

type seat struct {
	name string
	kind game.RoleKind
}

var presetSeats = []seat{
	{"John", game.RoleWerewolf},
	{"Jane", game.RoleWerewolf},
	{"Tom", game.RoleWerewolf},
	{"Jerry", game.RoleWerewolf},
	{"Sue", game.RoleSeer},
	{"Mary", game.RoleVillager},
	{"Harry", game.RoleVillager},
	{"Larry", game.RoleVillager},
	{"Carry", game.RoleVillager},
	{"Andy", game.RoleBodyguard},
	{"Vikky", game.RoleWitch},
}

// Preset returns a fresh 11 player table: 4 werewolves, a seer, 4 villagers,
// a bodyguard and a witch, with IDs 1 to 11 in seating order.
func Preset(reg *game.Registry) []*game.Player {
	players := make([]*game.Player, len(presetSeats))
	for i, st := range presetSeats {
		players[i] = game.NewPlayer(i+1, st.name, reg.MustGet(st.kind))
	}
	return players
}

// Balance sums the balance points of the roster's roles.
func Balance(players []*game.Player) int {
	total := 0
	for _, p := range players {
		total += p.Role().BalancePoints
	}
	return total
}
