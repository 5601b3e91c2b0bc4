package cms

import "slices"

// MoveElement returns a copy of list with the element at from moved to index to.
// When either index is out of range the copy keeps the input order.
func MoveElement[T any](list []T, from, to int) []T {
	out := slices.Clone(list)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}

// MoveUp moves the element at i one position towards the front. Moving the first element is a no-op.
func MoveUp[T any](list []T, i int) []T {
	return MoveElement(list, i, i-1)
}

// MoveDown moves the element at i one position towards the back. Moving the last element is a no-op.
func MoveDown[T any](list []T, i int) []T {
	return MoveElement(list, i, i+1)
}
