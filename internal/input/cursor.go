// ABOUTME: Keyboard cursor that moves inside the canvas and places points
// ABOUTME: Placing emits the same event a mouse click would

package input

// Cursor is a keyboard-driven position inside a canvas of Width x Height cells.
type Cursor struct {
	X, Y    int
	Visible bool

	width, height int
}

// NewCursor places a hidden cursor at the centre of a width x height canvas.
func NewCursor(width, height int) *Cursor {
	c := &Cursor{}
	c.Resize(width, height)
	return c
}

// Resize changes the bounds. A cursor that was never shown is re-centred;
// otherwise its position is clamped into the new bounds.
func (c *Cursor) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	if !c.Visible {
		c.X, c.Y = c.width/2, c.height/2
	}
	c.clamp()
}

// Move shifts the cursor by (dx, dy), clamped to the canvas, and shows it.
func (c *Cursor) Move(dx, dy int) {
	c.X += dx
	c.Y += dy
	c.Visible = true
	c.clamp()
}

// Place returns the events of a click at the cursor.
func (c *Cursor) Place() []Event {
	c.Visible = true
	return []Event{
		{Kind: PointerDown, X: c.X, Y: c.Y},
		{Kind: PointAt, X: c.X, Y: c.Y},
		{Kind: PointerUp, X: c.X, Y: c.Y},
	}
}

func (c *Cursor) clamp() {
	c.X = min(max(c.X, 0), c.width-1)
	c.Y = min(max(c.Y, 0), c.height-1)
}
