package ai

import (
	"errors"
	"fmt"
)

var ErrInvalidAction = errors.New("invalid AI action")

// Action is one of the three supported transformations. The zero value is
// not a valid action; use ParseAction to obtain one from user input.
type Action int

const (
	Summarize Action = iota + 1
	ActionItems
	Sentiment
)

// Actions lists every valid action in a stable order.
var Actions = []Action{Summarize, ActionItems, Sentiment}

type actionSpec struct {
	name        string
	prompt      string
	placeholder string
}

var actionSpecs = map[Action]actionSpec{
	Summarize: {
		name:        "summarize",
		prompt:      "Summarize the following note concisely:\n\n%s",
		placeholder: "This is a mock summary. Enable AI integration for real results.",
	},
	ActionItems: {
		name:        "action_items",
		prompt:      "Extract action items from the following note as a bullet list:\n\n%s",
		placeholder: "• Mock action item 1\n• Mock action item 2\n• Mock action item 3",
	},
	Sentiment: {
		name:        "sentiment",
		prompt:      "Analyze the sentiment of the following note. Reply with the sentiment and a one-sentence explanation:\n\n%s",
		placeholder: "Sentiment: Neutral (mock). Enable AI integration for real analysis.",
	},
}

// ParseAction accepts the lowercase wire names only.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if actionSpecs[a].name == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (must be one of summarize, action_items, sentiment)", ErrInvalidAction, s)
}

func (a Action) Valid() bool {
	_, ok := actionSpecs[a]
	return ok
}

func (a Action) String() string {
	if spec, ok := actionSpecs[a]; ok {
		return spec.name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Prompt builds the provider prompt for content.
func (a Action) Prompt(content string) string {
	return fmt.Sprintf(actionSpecs[a].prompt, content)
}

// Placeholder is the fixed text returned when no provider is configured.
func (a Action) Placeholder() string {
	return actionSpecs[a].placeholder
}
