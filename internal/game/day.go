package game

import "fmt"

// DayActions is filled in by the driver between NewDay and ResolveDay.
type DayActions struct {
	Day    int
	Victim *Player // elected by the village vote
}

type DayResult struct {
	DayActions

	HasKilledVictim bool
	Killed          []*Player
}

// ResolveDay executes the village's elected victim. There is no save during
// the day; an ineligible victim is ignored.
func (s *Session) ResolveDay(a *DayActions) (DayResult, error) {
	if err := s.requireOpenPhase(PhaseDay); err != nil {
		return DayResult{}, err
	}
	if a == nil {
		return DayResult{}, fmt.Errorf("%w: no day actions", ErrWrongPhase)
	}
	if a.Day != s.day {
		return DayResult{}, fmt.Errorf("%w: actions for day %d, current day is %d", ErrWrongPhase, a.Day, s.day)
	}
	r := DayResult{DayActions: *a}
	log := s.log.With().Int("day", s.day).Logger()

	if v := a.Victim; v != nil {
		if s.isMember(v) && s.kill(v, CauseVillage) {
			r.HasKilledVictim = true
			r.Killed = append(r.Killed, v)
		} else {
			log.Warn().Str("victim", v.String()).Msg("village victim not eligible, ignored")
		}
	}

	s.days = append(s.days, r)
	s.resolved = true
	s.tally = nil
	log.Info().Strs("killed", names(r.Killed)).Msg("day resolved")
	return r, nil
}
