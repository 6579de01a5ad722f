// ABOUTME: Immutable two-stack undo/redo history; every transition returns a new value
// ABOUTME: Push discards the undone branch; Undo/Redo move exactly one element

package undo

import "slices"

// History holds the done and undone stacks. The zero value is an empty history.
// Values are never mutated in place, so a History may be shared freely.
type History[T any] struct {
	done   []T
	undone []T
}

// Restore builds a History from previously saved stacks. Both slices are copied.
func Restore[T any](done, undone []T) History[T] {
	return History[T]{
		done:   slices.Clone(done),
		undone: slices.Clone(undone),
	}
}

// Push appends v to the done stack and drops every undone entry.
func (h History[T]) Push(v T) History[T] {
	return History[T]{
		done: append(slices.Clip(h.done), v),
	}
}

// Undo moves the most recent done entry onto the undone stack. Returns the
// receiver unchanged and false if there is nothing to undo.
func (h History[T]) Undo() (History[T], bool) {
	if len(h.done) == 0 {
		return h, false
	}
	last := h.done[len(h.done)-1]
	return History[T]{
		done:   slices.Clip(h.done[:len(h.done)-1]),
		undone: append(slices.Clip(h.undone), last),
	}, true
}

// Redo moves the most recently undone entry back onto the done stack.
func (h History[T]) Redo() (History[T], bool) {
	if len(h.undone) == 0 {
		return h, false
	}
	last := h.undone[len(h.undone)-1]
	return History[T]{
		done:   append(slices.Clip(h.done), last),
		undone: slices.Clip(h.undone[:len(h.undone)-1]),
	}, true
}

// Reset returns an empty history.
func (h History[T]) Reset() History[T] {
	return History[T]{}
}

// Done returns a copy of the done stack, oldest first. Never nil.
func (h History[T]) Done() []T {
	return append(make([]T, 0, len(h.done)), h.done...)
}

// Undone returns a copy of the undone stack; the last element is the next to redo.
func (h History[T]) Undone() []T {
	return append(make([]T, 0, len(h.undone)), h.undone...)
}

// Last returns the entry Undo would move next.
func (h History[T]) Last() (T, bool) {
	if len(h.done) == 0 {
		var zero T
		return zero, false
	}
	return h.done[len(h.done)-1], true
}

// NextRedo returns the entry Redo would move next.
func (h History[T]) NextRedo() (T, bool) {
	if len(h.undone) == 0 {
		var zero T
		return zero, false
	}
	return h.undone[len(h.undone)-1], true
}

// Len returns the number of done entries.
func (h History[T]) Len() int { return len(h.done) }

// UndoneLen returns the number of undone entries.
func (h History[T]) UndoneLen() int { return len(h.undone) }

// CanUndo returns true if there are entries to undo.
func (h History[T]) CanUndo() bool {
	return len(h.done) > 0
}

// CanRedo returns true if there are entries to redo.
func (h History[T]) CanRedo() bool {
	return len(h.undone) > 0
}

// Empty reports whether both stacks are empty.
func (h History[T]) Empty() bool {
	return len(h.done) == 0 && len(h.undone) == 0
}
