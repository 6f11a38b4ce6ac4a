// Package bot chooses moves for players who are not driven by a human.
package bot

import (
	"math/rand"
	"slices"

	"github.com/kiliankoe/werewolf/internal/game"
)

// Strategy picks moves for the night roles and ballots for both votes.
// Returning nil means the player does nothing.
type Strategy interface {
	WerewolfVote(s *game.Session, voter *game.Player, candidates []*game.Player) *game.Player
	VillageVote(s *game.Session, voter *game.Player, candidates []*game.Player) *game.Player
	Protect(s *game.Session, bodyguard *game.Player) *game.Player
	Investigate(s *game.Session, seer *game.Player) *game.Player
	// WitchMoves is asked after the werewolf vote; victim may be nil.
	WitchMoves(s *game.Session, witch, victim *game.Player) (save bool, kill *game.Player)
}

// Random plays uniformly random legal-looking moves from a seeded source.
type Random struct {
	rng *rand.Rand

	// SaveChance and KillChance are the odds of spending each potion on a
	// night it is available.
	SaveChance float64
	KillChance float64
}

func NewRandom(seed int64) *Random {
	return &Random{
		rng:        rand.New(rand.NewSource(seed)),
		SaveChance: 0.5,
		KillChance: 0.25,
	}
}

func (r *Random) pick(players []*game.Player) *game.Player {
	if len(players) == 0 {
		return nil
	}
	return players[r.rng.Intn(len(players))]
}

func others(players []*game.Player, self *game.Player) []*game.Player {
	return slices.DeleteFunc(slices.Clone(players), func(p *game.Player) bool { return p.ID == self.ID })
}

func (r *Random) WerewolfVote(_ *game.Session, _ *game.Player, candidates []*game.Player) *game.Player {
	return r.pick(candidates)
}

// VillageVote avoids voting for oneself unless one is the only candidate.
func (r *Random) VillageVote(_ *game.Session, voter *game.Player, candidates []*game.Player) *game.Player {
	if rest := others(candidates, voter); len(rest) > 0 {
		return r.pick(rest)
	}
	return r.pick(candidates)
}

// Protect never repeats last night's pick.
func (r *Random) Protect(s *game.Session, _ *game.Player) *game.Player {
	alive := slices.DeleteFunc(s.Alive(), s.WasProtectedLastNight)
	return r.pick(alive)
}

func (r *Random) Investigate(s *game.Session, seer *game.Player) *game.Player {
	return r.pick(others(s.Alive(), seer))
}

func (r *Random) WitchMoves(s *game.Session, witch, victim *game.Player) (bool, *game.Player) {
	save := victim != nil && !s.SavePotionUsed() && r.rng.Float64() < r.SaveChance
	var kill *game.Player
	if !s.KillPotionUsed() && r.rng.Float64() < r.KillChance {
		kill = r.pick(others(s.Alive(), witch))
		if victim != nil && kill != nil && kill.ID == victim.ID && save {
			kill = nil
		}
	}
	return save, kill
}
