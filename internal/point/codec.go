// ABOUTME: Hand-written easyjson marshalers for Point and Points (no reflection)
// ABOUTME: Decoding is strict: both x and y are required and must be numbers

package point

import (
	"errors"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var (
	errNullPoint    = errors.New("point is null")
	errMissingCoord = errors.New("point is missing x or y")
)

// MarshalEasyJSON writes p as {"x":..,"y":..}.
func (p Point) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"x":`)
	w.Float64(p.X)
	w.RawString(`,"y":`)
	w.Float64(p.Y)
	w.RawByte('}')
}

// UnmarshalEasyJSON reads a single {"x":..,"y":..} object. Unknown keys are skipped.
func (p *Point) UnmarshalEasyJSON(l *jlexer.Lexer) {
	if l.IsNull() {
		l.AddError(errNullPoint)
		return
	}

	var hasX, hasY bool
	l.Delim('{')
	for !l.IsDelim('}') {
		key := l.UnsafeString()
		l.WantColon()
		switch key {
		case "x":
			p.X = l.Float64()
			hasX = true
		case "y":
			p.Y = l.Float64()
			hasY = true
		default:
			l.SkipRecursive()
		}
		l.WantComma()
	}
	l.Delim('}')

	if l.Ok() && (!hasX || !hasY) {
		l.AddError(errMissingCoord)
	}
}

// MarshalEasyJSON writes the sequence as a JSON array. A nil sequence is [].
func (v Points) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawByte('[')
	for i, p := range v {
		if i > 0 {
			w.RawByte(',')
		}
		p.MarshalEasyJSON(w)
	}
	w.RawByte(']')
}

// UnmarshalEasyJSON reads a JSON array of points. Trailing data after a
// top-level array is an error.
func (v *Points) UnmarshalEasyJSON(l *jlexer.Lexer) {
	isTopLevel := l.IsStart()
	if l.IsNull() {
		l.Skip()
		*v = nil
		if isTopLevel {
			l.Consumed()
		}
		return
	}

	out := make(Points, 0, 8)
	l.Delim('[')
	for !l.IsDelim(']') {
		var p Point
		p.UnmarshalEasyJSON(l)
		out = append(out, p)
		l.WantComma()
	}
	l.Delim(']')
	if isTopLevel {
		l.Consumed()
	}

	if l.Ok() {
		*v = out
	}
}
