// Package input turns raw key names and drag gestures into game intents.
// Frontends translate their native events to the names used here.
package input

import (
	"strings"

	"firesnake/game/types"
)

// Intent is what the player asked for
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentPause
	IntentStart
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentPause:
		return "pause"
	case IntentStart:
		return "start"
	case IntentQuit:
		return "quit"
	default:
		return "none"
	}
}

// Heading maps a directional intent to its heading
func (i Intent) Heading() (types.Heading, bool) {
	switch i {
	case IntentUp:
		return types.Up, true
	case IntentDown:
		return types.Down, true
	case IntentLeft:
		return types.Left, true
	case IntentRight:
		return types.Right, true
	default:
		return 0, false
	}
}

// FromHeading is the inverse of Intent.Heading
func FromHeading(h types.Heading) Intent {
	switch h {
	case types.Up:
		return IntentUp
	case types.Down:
		return IntentDown
	case types.Left:
		return IntentLeft
	case types.Right:
		return IntentRight
	default:
		return IntentNone
	}
}

// keyTable uses browser-style key names; letters are matched case-insensitively
var keyTable = map[string]Intent{
	"arrowup":    IntentUp,
	"w":          IntentUp,
	"arrowdown":  IntentDown,
	"s":          IntentDown,
	"arrowleft":  IntentLeft,
	"a":          IntentLeft,
	"arrowright": IntentRight,
	"d":          IntentRight,
	"p":          IntentPause,
	" ":          IntentPause,
	"space":      IntentPause,
	"enter":      IntentStart,
	"escape":     IntentQuit,
	"q":          IntentQuit,
}

// FromKey maps a key name to an intent; unknown keys yield IntentNone
func FromKey(name string) Intent {
	if name == " " {
		return IntentPause
	}
	return keyTable[strings.ToLower(strings.TrimSpace(name))]
}
