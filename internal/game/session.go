package game

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultMaxRevotes = 3

// Session owns one game: the fixed roster, the phase machine, the resolved
// history and the one-shot witch potions. It is not safe for concurrent use.
type Session struct {
	ID string

	players []*Player
	byID    map[int]*Player
	deaths  []Death

	phase    Phase
	resolved bool // current phase has been resolved
	over     bool
	day      int
	night    int

	startedAt time.Time
	endedAt   time.Time

	nights []NightResult
	days   []DayResult

	savePotionUsed bool
	killPotionUsed bool

	winner  Faction
	winners []*Player

	tally       *Tally
	voteHistory []VoteRound
	maxRevotes  int

	log zerolog.Logger
	now func() time.Time
}

type Option func(*Session)

// WithLogger sets the narrative log sink. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithMaxRevotes bounds how many tied revotes that fail to narrow the pool
// are held before the lowest-ID fallback.
func WithMaxRevotes(n int) Option {
	return func(s *Session) { s.maxRevotes = max(n, 0) }
}

// NewSession validates the roster: non-empty, unique IDs, at least one
// werewolf and at least one non-werewolf.
func NewSession(players []*Player, opts ...Option) (*Session, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidRoster)
	}
	byID := make(map[int]*Player, len(players))
	var wolves, villagers int
	for _, p := range players {
		if p == nil {
			return nil, fmt.Errorf("%w: nil player", ErrInvalidRoster)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %d", ErrInvalidRoster, p.ID)
		}
		if !p.alive || len(p.actions) > 0 {
			return nil, fmt.Errorf("%w: player %s was used in another game", ErrInvalidRoster, p)
		}
		byID[p.ID] = p
		if p.IsWerewolf() {
			wolves++
		} else {
			villagers++
		}
	}
	if wolves == 0 || villagers == 0 {
		return nil, fmt.Errorf("%w: need at least one werewolf and one non-werewolf", ErrInvalidRoster)
	}

	s := &Session{
		ID:         uuid.NewString(),
		players:    slices.Clone(players),
		byID:       byID,
		phase:      PhaseNotStarted,
		maxRevotes: DefaultMaxRevotes,
		log:        zerolog.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("session", s.ID).Logger()
	return s, nil
}

func (s *Session) Start() error {
	if s.phase != PhaseNotStarted {
		return ErrWrongPhase
	}
	s.startedAt = s.now().UTC()
	s.day = 1
	s.night = 0
	s.phase = PhaseStarted
	s.resolved = true
	s.log.Info().Time("at", s.startedAt).Int("day", s.day).Int("players", len(s.players)).Msg("game starts")
	return nil
}

// End records the end time once. Later phase advances fail with ErrGameOver.
func (s *Session) End() {
	if s.endedAt.IsZero() {
		s.endedAt = s.now().UTC()
		s.log.Info().Time("at", s.endedAt).Msg("game ends")
	}
	s.phase = PhaseEnded
	s.tally = nil
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Day() int   { return s.day }
func (s *Session) Night() int { return s.night }

func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) EndedAt() time.Time   { return s.endedAt }

// NewNight opens the next night. The previous day must be resolved; the
// first night follows Start directly.
func (s *Session) NewNight() (*NightActions, error) {
	if err := s.requireAdvance(PhaseStarted, PhaseDay); err != nil {
		return nil, err
	}
	s.night++
	s.phase = PhaseNight
	s.resolved = false
	s.tally = nil
	s.log.Info().Int("night", s.night).Strs("alive", names(s.Alive())).Msg("night falls")
	return &NightActions{Night: s.night}, nil
}

// NewDay opens the next day. The previous night must be resolved.
func (s *Session) NewDay() (*DayActions, error) {
	if err := s.requireAdvance(PhaseNight); err != nil {
		return nil, err
	}
	s.day++
	s.phase = PhaseDay
	s.resolved = false
	s.tally = nil
	s.log.Info().Int("day", s.day).Strs("alive", names(s.Alive())).Msg("day breaks")
	return &DayActions{Day: s.day}, nil
}

func (s *Session) requireAdvance(from ...Phase) error {
	switch {
	case s.phase == PhaseNotStarted:
		return ErrNotStarted
	case s.phase == PhaseEnded || s.IsGameOver():
		return ErrGameOver
	case !slices.Contains(from, s.phase) || !s.resolved:
		return ErrWrongPhase
	}
	return nil
}

func (s *Session) requireOpenPhase(p Phase) error {
	switch {
	case s.phase == PhaseNotStarted:
		return ErrNotStarted
	case s.phase == PhaseEnded:
		return ErrGameOver
	case s.phase != p || s.resolved:
		return ErrWrongPhase
	}
	return nil
}

func (s *Session) round() int {
	if s.phase == PhaseNight {
		return s.night
	}
	return s.day
}

// IsGameOver evaluates the win condition. Villagers win once no werewolf is
// alive; werewolves win once they are at least as many as everyone else.
func (s *Session) IsGameOver() bool {
	if s.over {
		return true
	}
	if s.phase == PhaseNotStarted {
		return false
	}
	wolves, villagers := s.Werewolves(), s.Villagers()
	switch {
	case len(wolves) == 0:
		s.winner, s.winners = FactionVillagers, villagers
		s.log.Info().Strs("winners", names(villagers)).Msg("villagers win, all werewolves are dead")
	case len(wolves) >= len(villagers):
		s.winner, s.winners = FactionWerewolves, wolves
		s.log.Info().Strs("winners", names(wolves)).Msg("werewolves win, they outnumber the villagers")
	default:
		return false
	}
	s.over = true
	s.phase = PhaseEnded
	s.tally = nil
	return true
}

// Winner is the winning faction, empty while the game continues.
func (s *Session) Winner() Faction { return s.winner }

func (s *Session) Winners() []*Player { return slices.Clone(s.winners) }

// Act records a on p if p's role permits it. Refusals are logged.
func (s *Session) Act(p *Player, a Action) bool {
	if !s.isMember(p) {
		return false
	}
	if !p.TakeAction(a) {
		s.log.Warn().Str("player", p.String()).Str("action", a.String()).Msg("action not permitted")
		return false
	}
	s.log.Info().Str("player", p.String()).Str("action", a.String()).Msg("action taken")
	return true
}

func (s *Session) kill(p *Player, cause string) bool {
	if p == nil || !p.alive {
		return false
	}
	p.alive = false
	s.deaths = append(s.deaths, Death{Player: p, Cause: cause, Phase: s.phase, Round: s.round(), At: s.now().UTC()})
	s.log.Info().Str("player", p.String()).Str("reason", cause).Msg("player killed")
	return true
}

func (s *Session) isMember(p *Player) bool {
	return p != nil && s.byID[p.ID] == p
}

func (s *Session) Player(id int) *Player { return s.byID[id] }

// Players is the full roster in seating order.
func (s *Session) Players() []*Player { return slices.Clone(s.players) }

func (s *Session) Alive() []*Player {
	return s.filter(func(p *Player) bool { return p.alive })
}

// Dead returns the dead in order of death.
func (s *Session) Dead() []*Player {
	out := make([]*Player, len(s.deaths))
	for i, d := range s.deaths {
		out[i] = d.Player
	}
	return out
}

func (s *Session) Deaths() []Death { return slices.Clone(s.deaths) }

// Werewolves returns the alive werewolves.
func (s *Session) Werewolves() []*Player {
	return s.filter(func(p *Player) bool { return p.alive && p.IsWerewolf() })
}

// Villagers returns every alive player counted on the village side.
func (s *Session) Villagers() []*Player {
	return s.filter(func(p *Player) bool { return p.alive && p.role.CountsAsVillager() })
}

func (s *Session) IsWerewolf(p *Player) bool { return s.isMember(p) && p.IsWerewolf() }

func (s *Session) Seer() *Player      { return s.holder(RoleSeer) }
func (s *Session) Bodyguard() *Player { return s.holder(RoleBodyguard) }
func (s *Session) Witch() *Player     { return s.holder(RoleWitch) }

// holder returns the first player of kind in seating order, alive or not.
func (s *Session) holder(kind RoleKind) *Player {
	for _, p := range s.players {
		if p.role.Kind == kind {
			return p
		}
	}
	return nil
}

func (s *Session) filter(keep func(*Player) bool) []*Player {
	var out []*Player
	for _, p := range s.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Session) SavePotionUsed() bool { return s.savePotionUsed }
func (s *Session) KillPotionUsed() bool { return s.killPotionUsed }

func (s *Session) NightHistory() []NightResult { return slices.Clone(s.nights) }
func (s *Session) DayHistory() []DayResult     { return slices.Clone(s.days) }

// LastNight is the most recently resolved night, or nil.
func (s *Session) LastNight() *NightResult {
	if len(s.nights) == 0 {
		return nil
	}
	r := s.nights[len(s.nights)-1]
	return &r
}

// WasProtectedLastNight reports whether p was the bodyguard's accepted
// target in the last resolved night.
func (s *Session) WasProtectedLastNight(p *Player) bool {
	last := s.LastNight()
	return last != nil && last.ProtectionApplied && samePlayer(last.Protected, p)
}
