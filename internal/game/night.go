package game

import "fmt"

// NightActions is filled in by the driver between NewNight and ResolveNight.
type NightActions struct {
	Night int

	WerewolfVictim *Player // elected by the werewolf vote
	Protected      *Player // bodyguard's pick
	WitchSave      bool    // spend the save potion on the werewolf victim
	WitchKill      *Player // spend the kill potion on this player
	SeerTarget     *Player
}

// NightResult is the resolved night: the inputs plus what actually happened.
type NightResult struct {
	NightActions

	ProtectionApplied bool
	SaveApplied       bool
	SaveRejected      bool
	KillApplied       bool
	KillRejected      bool

	SeerFinding         bool // the seer's target is a werewolf
	SeerFindingRevealed bool // false when there was no reading or the seer died tonight

	HasKilledWerewolfVictim bool
	HasKilledWitchVictim    bool
	Killed                  []*Player
}

// SeerAnnouncement returns the seer's reading for the morning announcement.
// ok is false when nothing may be announced.
func (r NightResult) SeerAnnouncement() (target *Player, isWerewolf bool, ok bool) {
	if !r.SeerFindingRevealed {
		return nil, false, false
	}
	return r.SeerTarget, r.SeerFinding, true
}

// ResolveNight applies the night's actions. Precedence, independent of the
// order the driver filled the record in:
//
//  1. the werewolf victim dies unless the witch saves them or the bodyguard
//     protects them;
//  2. the witch's kill target dies unless the bodyguard protects them.
//
// Inputs from dead role holders, spent potions and a bodyguard repeating last
// night's pick are dropped and flagged on the result.
func (s *Session) ResolveNight(a *NightActions) (NightResult, error) {
	if err := s.requireOpenPhase(PhaseNight); err != nil {
		return NightResult{}, err
	}
	if a == nil {
		return NightResult{}, fmt.Errorf("%w: no night actions", ErrWrongPhase)
	}
	if a.Night != s.night {
		return NightResult{}, fmt.Errorf("%w: actions for night %d, current night is %d", ErrWrongPhase, a.Night, s.night)
	}
	r := NightResult{NightActions: *a}
	log := s.log.With().Int("night", s.night).Logger()

	victim := a.WerewolfVictim
	if victim != nil && (!s.isMember(victim) || !victim.alive || victim.IsWerewolf()) {
		log.Warn().Str("victim", victim.String()).Msg("werewolf victim not eligible, ignored")
		victim = nil
	}

	if p := a.Protected; p != nil {
		guard := s.Bodyguard()
		switch {
		case guard == nil || !guard.alive:
			log.Warn().Msg("no living bodyguard, protection ignored")
		case !s.isMember(p) || !p.alive:
			log.Warn().Str("target", p.String()).Msg("cannot protect a dead player")
		case s.WasProtectedLastNight(p):
			log.Warn().Str("target", p.String()).Msg("bodyguard cannot protect the same player two nights in a row")
		case s.Act(guard, Action{Kind: ActionProtect, Target: p}):
			r.ProtectionApplied = true
		}
	}
	protects := func(p *Player) bool { return r.ProtectionApplied && samePlayer(a.Protected, p) }

	witch := s.Witch()
	witchActive := witch != nil && witch.alive
	if a.WitchSave {
		switch {
		case !witchActive:
			r.SaveRejected = true
			log.Warn().Msg("no living witch, save ignored")
		case s.savePotionUsed:
			r.SaveRejected = true
			log.Warn().Msg("save potion already used")
		case victim == nil:
			log.Info().Msg("witch save has no victim, potion kept")
		case s.Act(witch, Action{Kind: ActionSave, Target: victim}):
			s.savePotionUsed = true
			r.SaveApplied = true
		default:
			r.SaveRejected = true
		}
	}

	var witchTarget *Player
	if t := a.WitchKill; t != nil {
		switch {
		case !witchActive:
			r.KillRejected = true
			log.Warn().Msg("no living witch, kill ignored")
		case s.killPotionUsed:
			r.KillRejected = true
			log.Warn().Msg("kill potion already used")
		case !s.isMember(t) || !t.alive:
			r.KillRejected = true
			log.Warn().Str("target", t.String()).Msg("witch target already dead")
		case s.Act(witch, Action{Kind: ActionKill, Target: t}):
			s.killPotionUsed = true
			r.KillApplied = true
			witchTarget = t
		default:
			r.KillRejected = true
		}
	}

	if t := a.SeerTarget; t != nil {
		seer := s.Seer()
		switch {
		case seer == nil || !seer.alive:
			log.Warn().Msg("no living seer, investigation ignored")
		case !s.isMember(t) || !t.alive:
			log.Warn().Str("target", t.String()).Msg("cannot investigate a dead player")
		case s.Act(seer, Action{Kind: ActionInvestigate, Target: t}):
			r.SeerFinding = t.IsWerewolf()
			r.SeerFindingRevealed = true
		}
	}

	// A player poisoned and mauled in the same night dies once, as the
	// werewolf victim.
	if victim != nil && !r.SaveApplied && !protects(victim) && s.kill(victim, CauseWerewolf) {
		r.HasKilledWerewolfVictim = true
		r.Killed = append(r.Killed, victim)
	}
	if witchTarget != nil && !protects(witchTarget) && s.kill(witchTarget, CauseWitch) {
		r.HasKilledWitchVictim = true
		r.Killed = append(r.Killed, witchTarget)
	}

	if r.SeerFindingRevealed {
		if seer := s.Seer(); !seer.alive {
			r.SeerFindingRevealed = false
			log.Info().Msg("seer died tonight, reading lost")
		} else {
			log.Info().Str("target", r.SeerTarget.String()).Bool("werewolf", r.SeerFinding).Msg("seer reading")
		}
	}

	s.nights = append(s.nights, r)
	s.resolved = true
	s.tally = nil
	log.Info().Strs("killed", names(r.Killed)).Msg("night resolved")
	return r, nil
}
