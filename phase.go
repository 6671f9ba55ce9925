package flightpath

import (
	"fmt"
	"strings"

	"github.com/solarlune/flightpath/math32"
	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Ease is the interpolation rule a PhaseWindow applies to its local progress.
type Ease int

const (
	EaseLinear     Ease = iota // Local progress as-is
	EaseSmoothstep             // x²(3-2x)
	EaseInCubic                // Starts slow, speeds up
	EaseOutCubic               // Starts fast, slows down
	EaseCurve                  // Local progress is a curve's arc-length parameter; passed through unchanged
)

var easeNames = map[Ease]string{
	EaseLinear:     "linear",
	EaseSmoothstep: "smoothstep",
	EaseInCubic:    "inCubic",
	EaseOutCubic:   "outCubic",
	EaseCurve:      "curve",
}

// tweenFuncs maps the eases gween provides; smoothstep and curve are handled directly.
var tweenFuncs = map[Ease]ease.TweenFunc{
	EaseLinear:   ease.Linear,
	EaseInCubic:  ease.InCubic,
	EaseOutCubic: ease.OutCubic,
}

// Apply eases x, which is clamped to 0 to 1 first. The result is exactly 0 at 0 and 1 at 1.
func (e Ease) Apply(x float32) float32 {
	x = math32.Clamp01(x)
	switch e {
	case EaseSmoothstep:
		return math32.Smoothstep(x)
	case EaseCurve:
		return x
	}
	if fn, ok := tweenFuncs[e]; ok {
		return fn(x, 0, 1, 1)
	}
	return x
}

func (e Ease) String() string {
	if name, ok := easeNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Ease(%d)", int(e))
}

// ParseEase returns the Ease with the given name (case-insensitive).
func ParseEase(name string) (Ease, error) {
	for e, n := range easeNames {
		if strings.EqualFold(n, name) {
			return e, nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown ease %q", name)
}

func (e *Ease) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseEase(name)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e Ease) MarshalYAML() (any, error) {
	return e.String(), nil
}

// PhaseWindow is a half-open interval [Start, End) of scroll progress with the interpolation rule used inside it.
type PhaseWindow struct {
	Name  string  `yaml:"name"`
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
	Ease  Ease    `yaml:"ease"`
}

// Validate returns ErrEmptyWindow if the window doesn't end after it starts, or if either edge isn't finite.
func (w PhaseWindow) Validate() error {
	if !math32.IsFinite(w.Start) || !math32.IsFinite(w.End) || !(w.End > w.Start) {
		return fmt.Errorf("window %q [%v, %v): %w", w.Name, w.Start, w.End, ErrEmptyWindow)
	}
	return nil
}

// Contains returns if t lies within [Start, End).
func (w PhaseWindow) Contains(t float32) bool {
	return t >= w.Start && t < w.End
}

// Local returns how far t is through the window, clamped to 0 to 1: (t - Start) / (End - Start).
func (w PhaseWindow) Local(t float32) float32 {
	if math32.IsNaN(t) {
		return 0
	}
	return math32.InverseLerp(w.Start, w.End, t)
}

// Progress returns Local(t) run through the window's Ease.
func (w PhaseWindow) Progress(t float32) float32 {
	return w.Ease.Apply(w.Local(t))
}

// Duration returns End - Start.
func (w PhaseWindow) Duration() float32 {
	return w.End - w.Start
}

func (w PhaseWindow) String() string {
	return fmt.Sprintf("%s[%v, %v) %s", w.Name, w.Start, w.End, w.Ease)
}

// Selection is what a Timeline reports for a given t: the current window and, inside an overlap,
// the next window it's cross-fading into.
type Selection struct {
	Current   int     // Index of the active window
	Next      int     // Index of the window being blended in, or -1 outside of an overlap
	Local     float32 // Local progress through the current window (0 to 1)
	NextLocal float32 // Local progress through the next window; 0 when Next is -1
	Blend     float32 // Smoothstep of progress through the overlap (0 = all Current, 1 = all Next)
}

// Blending returns if the Selection spans two windows.
func (s Selection) Blending() bool {
	return s.Next >= 0
}

// Timeline is an immutable, validated, ordered list of PhaseWindows. Selecting a window is a pure function of t.
type Timeline struct {
	windows []PhaseWindow
}

// NewTimeline validates the windows given and returns a Timeline over them. The windows must be sorted by start,
// each must end after it starts, and each must begin at or before the previous one ends (no gaps).
// A window may only overlap its direct neighbours.
func NewTimeline(windows ...PhaseWindow) (*Timeline, error) {

	if len(windows) == 0 {
		return nil, configErr("timeline", fmt.Errorf("no windows: %w", ErrEmptyWindow))
	}

	for i, w := range windows {

		if err := w.Validate(); err != nil {
			return nil, configErr("timeline."+w.Name, err)
		}

		if i == 0 {
			continue
		}

		prev := windows[i-1]

		if w.Start <= prev.Start || w.End <= prev.End {
			return nil, configErr("timeline."+w.Name, fmt.Errorf("%v after %v: %w", w, prev, ErrUnorderedWindows))
		}

		if w.Start > prev.End {
			return nil, configErr("timeline."+w.Name, fmt.Errorf("gap between %v and %v: %w", prev, w, ErrWindowGap))
		}

		if i >= 2 && w.Start < windows[i-2].End {
			return nil, configErr("timeline."+w.Name, fmt.Errorf("%v overlaps %v: %w", w, windows[i-2], ErrWindowGap))
		}

	}

	return &Timeline{windows: append([]PhaseWindow(nil), windows...)}, nil

}

// Len returns the number of windows in the Timeline.
func (tl *Timeline) Len() int {
	return len(tl.windows)
}

// Window returns the window at the index given.
func (tl *Timeline) Window(index int) PhaseWindow {
	return tl.windows[index]
}

// Windows returns a copy of the Timeline's windows.
func (tl *Timeline) Windows() []PhaseWindow {
	return append([]PhaseWindow(nil), tl.windows...)
}

// Find returns the index of the window with the name given, or -1.
func (tl *Timeline) Find(name string) int {
	for i, w := range tl.windows {
		if w.Name == name {
			return i
		}
	}
	return -1
}

// Start returns the start of the first window.
func (tl *Timeline) Start() float32 {
	return tl.windows[0].Start
}

// End returns the end of the last window.
func (tl *Timeline) End() float32 {
	return tl.windows[len(tl.windows)-1].End
}

// Select returns the active window(s) for t. Before the first window, the first window is selected at local 0;
// at or past the end of the last window, the last window is selected at local 1. NaN is treated as the start.
func (tl *Timeline) Select(t float32) Selection {

	if math32.IsNaN(t) || t < tl.windows[0].Start {
		return Selection{Current: 0, Next: -1}
	}

	last := len(tl.windows) - 1

	if t >= tl.windows[last].End {
		return Selection{Current: last, Next: -1, Local: 1}
	}

	current := last
	for i, w := range tl.windows {
		if t < w.End {
			current = i
			break
		}
	}

	sel := Selection{
		Current: current,
		Next:    -1,
		Local:   tl.windows[current].Local(t),
	}

	if current < last {
		next := tl.windows[current+1]
		if t >= next.Start {
			sel.Next = current + 1
			sel.NextLocal = next.Local(t)
			sel.Blend = math32.SmoothstepRange(next.Start, tl.windows[current].End, t)
		}
	}

	return sel

}
