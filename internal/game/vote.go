package game

import (
	"cmp"
	"fmt"
	"slices"
)

type VoteKind string

const (
	// VoteWerewolf is the night vote: alive werewolves choose a victim.
	VoteWerewolf VoteKind = "Werewolf"
	// VoteVillage is the day vote: every alive player elects a victim.
	VoteVillage VoteKind = "Village"
)

// Vote is the running count for one target.
type Vote struct {
	Target *Player
	Votes  int
}

func (v Vote) String() string { return fmt.Sprintf("%s (%d)", v.Target, v.Votes) }

// VoteRound is a closed tally kept in the session's vote history.
type VoteRound struct {
	Kind  VoteKind
	Phase Phase
	Round int
	Votes []Vote
}

// Tally accumulates one round of votes. Targets are keyed by player ID.
type Tally struct {
	kind       VoteKind
	candidates map[int]bool // nil means any alive player
	counts     map[int]*Vote
	order      []int
	ballots    map[int]int // voter ID -> target ID
}

func newTally(kind VoteKind, candidates []*Player) *Tally {
	t := &Tally{
		kind:    kind,
		counts:  make(map[int]*Vote),
		ballots: make(map[int]int),
	}
	if len(candidates) > 0 {
		t.candidates = make(map[int]bool, len(candidates))
		for _, c := range candidates {
			t.candidates[c.ID] = true
		}
	}
	return t
}

func (t *Tally) Kind() VoteKind { return t.kind }

func (t *Tally) allows(target *Player) bool {
	return t.candidates == nil || t.candidates[target.ID]
}

func (t *Tally) add(voter, target *Player) {
	if v, ok := t.counts[target.ID]; ok {
		v.Votes++
	} else {
		t.counts[target.ID] = &Vote{Target: target, Votes: 1}
		t.order = append(t.order, target.ID)
	}
	t.ballots[voter.ID] = target.ID
}

func (t *Tally) remove(voter, target *Player) bool {
	if id, ok := t.ballots[voter.ID]; !ok || id != target.ID {
		return false
	}
	delete(t.ballots, voter.ID)
	v := t.counts[target.ID]
	v.Votes--
	if v.Votes <= 0 {
		delete(t.counts, target.ID)
		t.order = slices.DeleteFunc(t.order, func(id int) bool { return id == target.ID })
	}
	return true
}

// Snapshot returns the current counts in first-vote order.
func (t *Tally) Snapshot() []Vote {
	out := make([]Vote, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.counts[id])
	}
	return out
}

// Leaders returns the targets holding the highest count, ordered by ID.
// It is empty when no votes were cast.
func (t *Tally) Leaders() []*Player {
	highest := 0
	for _, v := range t.counts {
		highest = max(highest, v.Votes)
	}
	if highest == 0 {
		return nil
	}
	var out []*Player
	for _, v := range t.counts {
		if v.Votes == highest {
			out = append(out, v.Target)
		}
	}
	slices.SortFunc(out, func(a, b *Player) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// StartVote opens a fresh tally. With no candidates the werewolf vote may
// target any alive non-werewolf and the village vote any alive player.
func (s *Session) StartVote(kind VoteKind, candidates ...*Player) error {
	if err := s.requireOpenPhase(votePhase(kind)); err != nil {
		return err
	}
	if len(candidates) == 0 {
		candidates = s.defaultCandidates(kind)
	}
	s.tally = newTally(kind, candidates)
	s.log.Debug().Str("vote", string(kind)).Strs("candidates", names(candidates)).Msg("vote opened")
	return nil
}

// CastVote adds voter's ballot for target. Rule violations wrap
// ErrInvalidVote or are ErrAlreadyVoted and leave the tally unchanged.
func (s *Session) CastVote(voter, target *Player) error {
	if s.phase == PhaseNotStarted {
		return ErrNotStarted
	}
	if s.tally == nil {
		return ErrNoVoteOpen
	}
	if err := s.checkBallot(voter, target); err != nil {
		s.log.Warn().Err(err).Str("vote", string(s.tally.kind)).Msg("vote rejected")
		return err
	}
	if _, ok := s.tally.ballots[voter.ID]; ok {
		s.log.Warn().Str("voter", voter.String()).Msg("vote rejected: already voted")
		return ErrAlreadyVoted
	}
	s.tally.add(voter, target)
	s.log.Info().Str("vote", string(s.tally.kind)).Str("voter", voter.String()).Str("target", target.String()).Msg("vote cast")
	return nil
}

// RetractVote withdraws voter's ballot for target in the open round.
func (s *Session) RetractVote(voter, target *Player) error {
	if s.phase == PhaseNotStarted {
		return ErrNotStarted
	}
	if s.tally == nil {
		return ErrNoVoteOpen
	}
	if voter == nil || target == nil || !s.tally.remove(voter, target) {
		return fmt.Errorf("%w: no ballot to retract", ErrInvalidVote)
	}
	s.log.Info().Str("voter", voter.String()).Str("target", target.String()).Msg("vote retracted")
	return nil
}

func (s *Session) checkBallot(voter, target *Player) error {
	switch {
	case voter == nil || target == nil:
		return fmt.Errorf("%w: missing voter or target", ErrInvalidVote)
	case !s.isMember(voter) || !voter.alive:
		return fmt.Errorf("%w: voter %s is dead", ErrInvalidVote, voter)
	case !voter.role.CanPerform(ActionVote):
		return fmt.Errorf("%w: %s cannot vote", ErrInvalidVote, voter)
	case s.tally.kind == VoteWerewolf && !voter.IsWerewolf():
		return fmt.Errorf("%w: %s is not a werewolf", ErrInvalidVote, voter)
	case !s.isMember(target) || !target.alive:
		return fmt.Errorf("%w: target %s is dead", ErrInvalidVote, target)
	case s.tally.kind == VoteWerewolf && target.IsWerewolf():
		return fmt.Errorf("%w: werewolves cannot target %s", ErrInvalidVote, target)
	case !s.tally.allows(target):
		return fmt.Errorf("%w: %s is not a candidate", ErrInvalidVote, target)
	}
	return nil
}

// Leaders returns the current leader set of the open vote.
func (s *Session) Leaders() []*Player {
	if s.tally == nil {
		return nil
	}
	return s.tally.Leaders()
}

// CurrentVotes returns a snapshot of the open tally.
func (s *Session) CurrentVotes() []Vote {
	if s.tally == nil {
		return nil
	}
	return s.tally.Snapshot()
}

// EndVote closes the open tally and appends it to the vote history.
func (s *Session) EndVote() (VoteRound, error) {
	if s.phase == PhaseNotStarted {
		return VoteRound{}, ErrNotStarted
	}
	if s.tally == nil {
		return VoteRound{}, ErrNoVoteOpen
	}
	round := VoteRound{
		Kind:  s.tally.kind,
		Phase: s.phase,
		Round: s.round(),
		Votes: s.tally.Snapshot(),
	}
	s.voteHistory = append(s.voteHistory, round)
	s.tally = nil
	s.log.Debug().Str("vote", string(round.Kind)).Int("targets", len(round.Votes)).Msg("vote closed")
	return round, nil
}

func (s *Session) VoteHistory() []VoteRound {
	return slices.Clone(s.voteHistory)
}

// Ballot asks voter to pick one of candidates; nil abstains.
type Ballot func(voter *Player, candidates []*Player) *Player

// Election is the outcome of ElectVictim.
type Election struct {
	Victim   *Player
	Rounds   int
	Fallback bool // true when a persistent tie was broken by lowest ID
}

// ElectVictim runs vote rounds of kind until a single leader emerges. Each
// tie is revoted by the same voters among the tied leaders only. A revote
// that fails to shrink the pool, or in which everyone abstains, counts as a
// stall; after the session's max
// revotes stalls, the tied leader with the lowest ID is chosen.
func (s *Session) ElectVictim(kind VoteKind, ballot Ballot) (Election, error) {
	if err := s.requireOpenPhase(votePhase(kind)); err != nil {
		return Election{}, err
	}
	voters := s.eligibleVoters(kind)
	candidates := s.defaultCandidates(kind)
	stalls := 0
	var e Election
	for {
		e.Rounds++
		if err := s.StartVote(kind, candidates...); err != nil {
			return e, err
		}
		for _, voter := range voters {
			target := ballot(voter, slices.Clone(candidates))
			if target == nil {
				continue
			}
			// Rejected ballots are logged by CastVote and simply dropped.
			_ = s.CastVote(voter, target)
		}
		leaders := s.Leaders()
		if _, err := s.EndVote(); err != nil {
			return e, err
		}

		if len(leaders) == 0 {
			if e.Rounds == 1 {
				s.log.Info().Str("vote", string(kind)).Msg("no votes cast")
				return e, nil
			}
			// An abstaining revote keeps the tied pool and counts as a stall.
			leaders = candidates
		}
		if len(leaders) == 1 {
			e.Victim = leaders[0]
			s.log.Info().Str("vote", string(kind)).Str("victim", e.Victim.String()).Int("rounds", e.Rounds).Msg("victim elected")
			return e, nil
		}
		if len(leaders) >= len(candidates) {
			stalls++
		}
		if stalls > s.maxRevotes {
			e.Victim = leaders[0]
			e.Fallback = true
			s.log.Warn().Str("vote", string(kind)).Strs("tied", names(leaders)).Str("victim", e.Victim.String()).Msg("tie persisted, lowest id chosen")
			return e, nil
		}
		s.log.Info().Str("vote", string(kind)).Strs("tied", names(leaders)).Msg("tie, revoting among leaders")
		candidates = leaders
	}
}

func votePhase(kind VoteKind) Phase {
	if kind == VoteWerewolf {
		return PhaseNight
	}
	return PhaseDay
}

func (s *Session) eligibleVoters(kind VoteKind) []*Player {
	if kind == VoteWerewolf {
		return s.Werewolves()
	}
	return s.Alive()
}

func (s *Session) defaultCandidates(kind VoteKind) []*Player {
	if kind == VoteWerewolf {
		return s.Villagers()
	}
	return s.Alive()
}
