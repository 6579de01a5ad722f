// ABOUTME: Point value type for placed markers and the snapshot encode/decode helpers
// ABOUTME: Snapshots are JSON arrays of {"x": number, "y": number} objects

package point

import (
	"fmt"
	"math"

	"github.com/mailru/easyjson"
)

// Point is a canvas coordinate where a marker was placed.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Points is an ordered sequence of placed markers.
type Points []Point

// New returns the point at (x, y).
func New(x, y float64) Point {
	return Point{X: x, Y: y}
}

// At returns the point at integer cell coordinates.
func At(x, y int) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Cell returns the point rounded to the nearest integer cell.
func (p Point) Cell() (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// String formats the point as (x, y).
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Encode serializes pts as a snapshot. A nil slice encodes as [].
func Encode(pts []Point) ([]byte, error) {
	for i, p := range pts {
		if !p.finite() {
			return nil, fmt.Errorf("encoding snapshot: point %d is not finite: %v", i, p)
		}
	}
	data, err := easyjson.Marshal(Points(pts))
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. A JSON null decodes as an empty sequence; anything
// that is not an array of {x, y} objects is an error.
func Decode(data []byte) ([]Point, error) {
	var pts Points
	if err := easyjson.Unmarshal(data, &pts); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if pts == nil {
		return []Point{}, nil
	}
	return []Point(pts), nil
}
