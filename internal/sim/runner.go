// Package sim plays whole games by driving a Session with a bot Strategy.
package sim

import (
	"errors"
	"fmt"

	"github.com/kiliankoe/werewolf/internal/bot"
	"github.com/kiliankoe/werewolf/internal/game"
	"github.com/rs/zerolog"
)

// MaxRounds caps the number of nights a single game may run.
const MaxRounds = 100

var ErrNoProgress = errors.New("game did not finish")

// Summary is the outcome of one played game.
type Summary struct {
	SessionID string
	Winner    game.Faction
	Winners   []*game.Player
	Nights    int
	Days      int
	Deaths    []game.Death
}

type Runner struct {
	strategy bot.Strategy
	log      zerolog.Logger
}

func NewRunner(strategy bot.Strategy, log zerolog.Logger) *Runner {
	return &Runner{strategy: strategy, log: log}
}

// Play starts s and alternates nights and days until a faction wins.
func (r *Runner) Play(s *game.Session) (Summary, error) {
	if err := s.Start(); err != nil {
		return Summary{}, err
	}
	defer s.End()

	for range MaxRounds {
		if s.IsGameOver() {
			break
		}
		if err := r.playNight(s); err != nil {
			return Summary{}, err
		}
		if s.IsGameOver() {
			break
		}
		if err := r.playDay(s); err != nil {
			return Summary{}, err
		}
	}
	if !s.IsGameOver() {
		return Summary{}, fmt.Errorf("%w after %d nights", ErrNoProgress, s.Night())
	}

	sum := Summary{
		SessionID: s.ID,
		Winner:    s.Winner(),
		Winners:   s.Winners(),
		Nights:    s.Night(),
		Days:      s.Day(),
		Deaths:    s.Deaths(),
	}
	r.log.Info().Str("session", s.ID).Str("winner", string(sum.Winner)).Int("nights", sum.Nights).Int("days", sum.Days).Msg("game finished")
	return sum, nil
}

func (r *Runner) playNight(s *game.Session) error {
	a, err := s.NewNight()
	if err != nil {
		return err
	}

	e, err := s.ElectVictim(game.VoteWerewolf, func(voter *game.Player, candidates []*game.Player) *game.Player {
		return r.strategy.WerewolfVote(s, voter, candidates)
	})
	if err != nil {
		return err
	}
	a.WerewolfVictim = e.Victim

	if guard := s.Bodyguard(); guard != nil && guard.IsAlive() {
		a.Protected = r.strategy.Protect(s, guard)
	}
	if seer := s.Seer(); seer != nil && seer.IsAlive() {
		a.SeerTarget = r.strategy.Investigate(s, seer)
	}
	if witch := s.Witch(); witch != nil && witch.IsAlive() {
		a.WitchSave, a.WitchKill = r.strategy.WitchMoves(s, witch, e.Victim)
	}

	res, err := s.ResolveNight(a)
	if err != nil {
		return err
	}
	if target, wolf, ok := res.SeerAnnouncement(); ok {
		r.log.Debug().Str("session", s.ID).Str("target", target.String()).Bool("werewolf", wolf).Msg("seer announcement")
	}
	return nil
}

func (r *Runner) playDay(s *game.Session) error {
	d, err := s.NewDay()
	if err != nil {
		return err
	}
	e, err := s.ElectVictim(game.VoteVillage, func(voter *game.Player, candidates []*game.Player) *game.Player {
		return r.strategy.VillageVote(s, voter, candidates)
	})
	if err != nil {
		return err
	}
	d.Victim = e.Victim
	_, err = s.ResolveDay(d)
	return err
}
