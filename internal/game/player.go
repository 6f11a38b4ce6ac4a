package game

import "fmt"

// Action is something a player attempts against a target.
type Action struct {
	Kind   ActionKind
	Target *Player
}

func (a Action) String() string {
	if a.Target == nil {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Target)
}

// Player is one seat at the table. Equality is by ID; the role is fixed for
// the whole game and alive is only changed by the owning Session.
type Player struct {
	ID   int
	Name string

	role    Role
	alive   bool
	actions []Action
}

func NewPlayer(id int, name string, role Role) *Player {
	return &Player{ID: id, Name: name, role: role, alive: true}
}

func (p *Player) Role() Role    { return p.role }
func (p *Player) IsAlive() bool { return p.alive }

func (p *Player) IsWerewolf() bool { return p.role.IsWerewolf() }

// String is the one-line identity used in announcements.
func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.role)
}

// TakeAction records a if the player's role permits its kind and reports
// whether it was recorded.
func (p *Player) TakeAction(a Action) bool {
	if !p.role.CanPerform(a.Kind) {
		return false
	}
	p.actions = append(p.actions, a)
	return true
}

// Actions returns the recorded actions in order.
func (p *Player) Actions() []Action {
	out := make([]Action, len(p.actions))
	copy(out, p.actions)
	return out
}

func samePlayer(a, b *Player) bool {
	return a != nil && b != nil && a.ID == b.ID
}

func names(players []*Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.String()
	}
	return out
}
