package game

import (
	"errors"
	"time"
)

type Phase string

const (
	PhaseNotStarted Phase = "NotStarted"
	PhaseStarted    Phase = "Started" // between Start and the first night
	PhaseNight      Phase = "Night"
	PhaseDay        Phase = "Day"
	PhaseEnded      Phase = "Ended"
)

var (
	ErrNotStarted    = errors.New("game not started")
	ErrWrongPhase    = errors.New("wrong phase for action")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidRoster = errors.New("invalid roster")
	ErrInvalidVote   = errors.New("invalid vote")
	ErrAlreadyVoted  = errors.New("already voted")
	ErrNoVoteOpen    = errors.New("no vote open")
	ErrUnknownRole   = errors.New("unknown role")
)

// Death records why and when a player left the alive roster.
type Death struct {
	Player *Player
	Cause  string
	Phase  Phase
	Round  int
	At     time.Time
}

const (
	CauseWerewolf = "Werewolf victim"
	CauseWitch    = "Witch victim"
	CauseVillage  = "Village victim"
)
