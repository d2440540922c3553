package combat

import (
	"fmt"
	"strings"
)

// ActionKind identifies a combat action a fighter can perform.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionPunch
	ActionKick
	ActionUpperCut
	ActionBlock
)

var actionNames = map[ActionKind]string{
	ActionNone:     "NONE",
	ActionPunch:    "PUNCH",
	ActionKick:     "KICK",
	ActionUpperCut: "UPPERCUT",
	ActionBlock:    "BLOCK",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(k))
}

// IsAttack reports whether the action is an offensive one that can deal
// damage on contact.
func (k ActionKind) IsAttack() bool {
	switch k {
	case ActionPunch, ActionKick, ActionUpperCut:
		return true
	}
	return false
}

// ParseActionKind maps an inbound action name to its kind. Unknown
// names return ok=false; callers treat those events as unrecognized
// rather than failing.
func ParseActionKind(name string) (ActionKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PUNCH":
		return ActionPunch, true
	case "KICK":
		return ActionKick, true
	case "UPPERCUT":
		return ActionUpperCut, true
	case "BLOCK":
		return ActionBlock, true
	}
	return ActionNone, false
}

// Role distinguishes the two sides of a bout. Hit resolution only
// counts contacts between distinct roles.
type Role int

const (
	RolePlayer Role = iota
	RoleOpponent
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "PLAYER"
	case RoleOpponent:
		return "OPPONENT"
	default:
		return "UNKNOWN"
	}
}
