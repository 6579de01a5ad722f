// ABOUTME: Normalized pointer events for the canvas, independent of device type
// ABOUTME: Tracker turns bubbletea mouse messages into events in canvas coordinates

package input

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/circles-go/internal/point"
)

// Kind identifies a normalized pointer event.
type Kind int

const (
	// PointerDown starts a press (button, touch or key).
	PointerDown Kind = iota
	// PointerUp ends a press.
	PointerUp
	// PointAt requests a point at (X, Y).
	PointAt
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerUp:
		return "pointer-up"
	case PointAt:
		return "point-at"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Event is the single event type consumed by the drawing surface.
type Event struct {
	Kind Kind
	X, Y int
}

// Point returns the event position as a canvas point.
func (e Event) Point() point.Point {
	return point.At(e.X, e.Y)
}

// Rect is a canvas area in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the absolute cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Tracker converts mouse messages into events. It remembers whether the
// left button is down so that motion with the button held draws
// continuously and a press/release pair without motion counts as a click.
// With drag off every release inside the canvas is a click.
type Tracker struct {
	canvas Rect
	drag   bool

	down  bool
	moved bool
}

// NewTracker returns a tracker over canvas. drag enables drawing on motion.
func NewTracker(canvas Rect, drag bool) *Tracker {
	return &Tracker{canvas: canvas, drag: drag}
}

// SetCanvas updates the canvas area, e.g. after a resize.
func (t *Tracker) SetCanvas(r Rect) { t.canvas = r }

// Canvas returns the current canvas area.
func (t *Tracker) Canvas() Rect { return t.canvas }

// SetDrag enables or disables drawing on motion.
func (t *Tracker) SetDrag(on bool) { t.drag = on }

// Pressed reports whether the left button is currently held.
func (t *Tracker) Pressed() bool { return t.down }

// Handle converts one mouse message. Positions outside the canvas produce
// no PointAt; a release always produces PointerUp so the pressed state
// cannot get stuck.
func (t *Tracker) Handle(msg tea.MouseMsg) []Event {
	x, y := msg.X-t.canvas.X, msg.Y-t.canvas.Y
	inside := t.canvas.Contains(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return nil
		}
		t.down, t.moved = true, false
		return []Event{{Kind: PointerDown, X: x, Y: y}}

	case tea.MouseActionMotion:
		if !t.down {
			return nil
		}
		t.moved = true
		if !t.drag || !inside {
			return nil
		}
		return []Event{{Kind: PointAt, X: x, Y: y}}

	case tea.MouseActionRelease:
		if !t.down {
			return nil
		}
		// Without drag, motion draws nothing, so the release still clicks.
		click := inside && (!t.moved || !t.drag)
		t.down, t.moved = false, false
		if click {
			return []Event{{Kind: PointAt, X: x, Y: y}, {Kind: PointerUp, X: x, Y: y}}
		}
		return []Event{{Kind: PointerUp, X: x, Y: y}}
	}
	return nil
}
