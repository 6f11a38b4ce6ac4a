package game

import (
	"fmt"
	"slices"
)

// ActionKind identifies something a player may attempt.
type ActionKind string

const (
	ActionSuspect     ActionKind = "Suspect"
	ActionVote        ActionKind = "Vote"
	ActionKill        ActionKind = "Kill"
	ActionInvestigate ActionKind = "Investigate"
	ActionSave        ActionKind = "Save"
	ActionProtect     ActionKind = "Protect"
)

type RoleKind string

const (
	RoleVillager  RoleKind = "Villager"
	RoleWerewolf  RoleKind = "Werewolf"
	RoleSeer      RoleKind = "Seer"
	RoleBodyguard RoleKind = "Bodyguard"
	RoleWitch     RoleKind = "Witch"
)

// Faction groups roles for the win condition.
type Faction string

const (
	FactionVillagers  Faction = "Villagers"
	FactionWerewolves Faction = "Werewolves"
)

// Role is a role card. Every role permits Suspect and Vote; the rest of its
// action set comes from extra.
type Role struct {
	Kind          RoleKind
	Name          string
	Description   string
	BalancePoints int
	Faction       Faction

	actions []ActionKind
}

func NewRole(kind RoleKind, name, description string, balance int, faction Faction, extra ...ActionKind) Role {
	actions := []ActionKind{ActionSuspect, ActionVote}
	for _, a := range extra {
		if !slices.Contains(actions, a) {
			actions = append(actions, a)
		}
	}
	return Role{
		Kind:          kind,
		Name:          name,
		Description:   description,
		BalancePoints: balance,
		Faction:       faction,
		actions:       actions,
	}
}

func (r Role) String() string { return r.Name }

// Actions returns a copy of the permitted action kinds.
func (r Role) Actions() []ActionKind { return slices.Clone(r.actions) }

func (r Role) CanPerform(kind ActionKind) bool { return slices.Contains(r.actions, kind) }

func (r Role) IsWerewolf() bool { return r.Faction == FactionWerewolves }

// CountsAsVillager reports whether the role is counted on the village side
// of the win condition.
func (r Role) CountsAsVillager() bool { return r.Faction != FactionWerewolves }

// CanPerform reports whether role permits kind.
func CanPerform(role Role, kind ActionKind) bool { return role.CanPerform(kind) }

// Registry maps role kinds to their role cards.
type Registry struct {
	roles map[RoleKind]Role
}

func NewRegistry() *Registry {
	return &Registry{roles: make(map[RoleKind]Role)}
}

// DefaultRegistry holds the five standard roles.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewRole(RoleVillager, "Villager", "Find enemies of your village and eliminate them", 1, FactionVillagers))
	r.Register(NewRole(RoleWerewolf, "Werewolf", "Each night, along with the wolves, choose a player to eliminate", -6, FactionWerewolves, ActionKill))
	r.Register(NewRole(RoleSeer, "Seer", "Each night, learn if a player is wolf or not", 7, FactionVillagers, ActionInvestigate))
	r.Register(NewRole(RoleBodyguard, "Bodyguard", "Each night, choose a player who cannot be eliminated that night", 3, FactionVillagers, ActionProtect))
	r.Register(NewRole(RoleWitch, "Witch", "Once per game, you may save or eliminate a player during the night", 4, FactionVillagers, ActionSave, ActionKill))
	return r
}

// Register adds or replaces a role.
func (r *Registry) Register(role Role) {
	r.roles[role.Kind] = role
}

func (r *Registry) Get(kind RoleKind) (Role, error) {
	role, ok := r.roles[kind]
	if !ok {
		return Role{}, fmt.Errorf("%w: %s", ErrUnknownRole, kind)
	}
	return role, nil
}

// MustGet is Get for roles known to be registered.
func (r *Registry) MustGet(kind RoleKind) Role {
	role, err := r.Get(kind)
	if err != nil {
		panic(err)
	}
	return role
}

// CanPerform reports whether the registered role of kind permits action.
// Unknown roles permit nothing.
func (r *Registry) CanPerform(kind RoleKind, action ActionKind) bool {
	role, ok := r.roles[kind]
	return ok && role.CanPerform(action)
}

func (r *Registry) Kinds() []RoleKind {
	kinds := make([]RoleKind, 0, len(r.roles))
	for k := range r.roles {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
