package tabs

import "tabkit/internal/dom"

// Action is a navigation step a key press resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionFirst
	ActionLast
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionFirst:
		return "first"
	case ActionLast:
		return "last"
	default:
		return "none"
	}
}

// keyActions maps unmodified key codes to actions.
var keyActions = map[string]Action{
	dom.KeyArrowLeft:  ActionPrevious,
	dom.KeyArrowRight: ActionNext,
	dom.KeyHome:       ActionFirst,
	dom.KeyEnd:        ActionLast,
}

// metaKeyActions is consulted first when the primary modifier is held.
var metaKeyActions = map[string]Action{
	dom.KeyArrowLeft:  ActionFirst,
	dom.KeyArrowRight: ActionLast,
}

// Resolve maps a key press to an action. Keys without a mapping resolve
// to ActionNone.
func Resolve(k dom.KeyEvent) Action {
	if k.Meta {
		if a, ok := metaKeyActions[k.Code]; ok {
			return a
		}
	}
	return keyActions[k.Code]
}
