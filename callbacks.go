package flightpath

// Signals represents a set of callbacks the Stage calls when something happens in the sequence.
// Any of them may be nil. They're called on the goroutine that calls Stage.Update.
type Signals struct {
	OnHandoffReady func(birdPosition Vector3) // Called once, when the win flight finishes its departure.
	OnGameTrigger  func()                     // Called when the game toggle switches on (a rising edge, not every frame).
	OnToggle       func(name string, on bool) // Called whenever a threshold toggle changes state.
	OnActivePhrase func(index int, text string)
	OnExit         func() // Called once, when the garden scroll reaches its end after user input.
}

func (s Signals) handoffReady(pos Vector3) {
	if s.OnHandoffReady != nil {
		s.OnHandoffReady(pos)
	}
}

func (s Signals) gameTrigger() {
	if s.OnGameTrigger != nil {
		s.OnGameTrigger()
	}
}

func (s Signals) toggle(name string, on bool) {
	if s.OnToggle != nil {
		s.OnToggle(name, on)
	}
}

func (s Signals) activePhrase(index int, text string) {
	if s.OnActivePhrase != nil {
		s.OnActivePhrase(index, text)
	}
}

func (s Signals) exit() {
	if s.OnExit != nil {
		s.OnExit()
	}
}

// Threshold turns on once scroll progress passes At. With Inclusive set, reaching At exactly counts.
type Threshold struct {
	Name      string  `yaml:"name"`
	At        float32 `yaml:"at"`
	Inclusive bool    `yaml:"inclusive"`
}

// On returns if the Threshold is on at t.
func (th Threshold) On(t float32) bool {
	if th.Inclusive {
		return t >= th.At
	}
	return t > th.At
}

// Edge remembers the last value of a boolean so changes can be reported once.
// The zero value starts off.
type Edge struct {
	state bool
}

// Set records the new state and returns if it differs from the last one.
func (e *Edge) Set(on bool) (changed bool) {
	changed = on != e.state
	e.state = on
	return changed
}

// Rising records the new state and returns true only when it goes from off to on.
func (e *Edge) Rising(on bool) bool {
	return e.Set(on) && on
}

// State returns the last recorded state.
func (e *Edge) State() bool {
	return e.state
}
