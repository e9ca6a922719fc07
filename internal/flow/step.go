// Package flow sequences the wizard's steps.
//
// The Sequencer is a linear state machine over a fixed list of steps. It
// never fails: moving past either end is a silent no-op. CanAdvance gates
// forward movement on the current selection, and the Debouncer holds a
// requested transition until the screen has had time to settle.
package flow

import "github.com/muurk/cupcraft/internal/order"

// Step identifies one wizard screen.
type Step int

const (
	StepBean Step = iota
	StepGrind
	StepPreparation
	StepToppings
	StepReview
)

// Steps is the fixed order of the wizard.
var Steps = []Step{StepBean, StepGrind, StepPreparation, StepToppings, StepReview}

var stepNames = map[Step]string{
	StepBean:        "bean",
	StepGrind:       "grind",
	StepPreparation: "preparation",
	StepToppings:    "toppings",
	StepReview:      "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of Steps.
func (s Step) Valid() bool {
	return s >= StepBean && s <= StepReview
}

// Content is the heading text of a step.
type Content struct {
	Title    string
	Subtitle string
}

var contents = map[Step]Content{
	StepBean:        {"Choose Your Coffee Bean", "Select the perfect bean to start your coffee journey"},
	StepGrind:       {"Select Grind Level", "The grind affects extraction and flavor"},
	StepPreparation: {"Choose Preparation Method", "How would you like your coffee prepared?"},
	StepToppings:    {"Add Toppings", "Customize your coffee with delicious additions"},
	StepReview:      {"Review Your Order", "Check your perfect coffee selection"},
}

// Content returns the title and subtitle shown for s.
func (s Step) Content() Content {
	return contents[s]
}

// HasBack reports whether the step offers a Back action.
func (s Step) HasBack() bool {
	return s != StepBean && s.Valid()
}

// CanAdvance reports whether the user may continue from step given sel.
// The first three steps require their field to be set, toppings are
// optional, and review is terminal.
func CanAdvance(step Step, sel order.Selection) bool {
	switch step {
	case StepBean:
		return sel.Bean != nil
	case StepGrind:
		return sel.Grind != nil
	case StepPreparation:
		return sel.Preparation != nil
	case StepToppings:
		return true
	default:
		return false
	}
}
