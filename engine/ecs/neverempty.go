package ecs

import (
	"cmp"
	"slices"
)

// NeverEmptyVec is an ordered collection of values, backed by a slice.
// It behaves like a plain dynamic array with one exception: IsEmpty
// always reports false, even when the collection holds no elements.
//
// Relationship targets whose source collection reports empty after an
// unlink lose the collection component. NeverEmptyVec is meant for
// targets which must keep the collection (and with it, their other
// required components) for their entire lifetime. Use Len to check for
// actual emptiness.
//
// The zero value is ready to use.
type NeverEmptyVec[T cmp.Ordered] struct {
	items []T
}

// NewNeverEmptyVec creates a collection with room for capacity elements.
func NewNeverEmptyVec[T cmp.Ordered](capacity int) NeverEmptyVec[T] {
	return NeverEmptyVec[T]{items: make([]T, 0, capacity)}
}

// IsEmpty always returns false. This is intentional; see the type comment.
func (v *NeverEmptyVec[T]) IsEmpty() bool {
	return false
}

// Len returns the number of elements.
func (v *NeverEmptyVec[T]) Len() int {
	return len(v.items)
}

// Cap returns the capacity of the backing slice.
func (v *NeverEmptyVec[T]) Cap() int {
	return cap(v.items)
}

// At returns the element at index i. It panics if i is out of range.
func (v *NeverEmptyVec[T]) At(i int) T {
	return v.items[i]
}

// Values returns a copy of the elements, in order.
func (v *NeverEmptyVec[T]) Values() []T {
	return slices.Clone(v.items)
}

// Iter calls fn for each element in order, until fn returns false.
func (v *NeverEmptyVec[T]) Iter(fn func(i int, x T) bool) {
	for i, x := range v.items {
		if !fn(i, x) {
			return
		}
	}
}

// Contains reports whether x is an element.
func (v *NeverEmptyVec[T]) Contains(x T) bool {
	return slices.Contains(v.items, x)
}

// Reserve makes room for at least additional more elements.
func (v *NeverEmptyVec[T]) Reserve(additional int) {
	v.items = slices.Grow(v.items, additional)
}

// Add appends x. It always succeeds.
func (v *NeverEmptyVec[T]) Add(x T) bool {
	v.items = append(v.items, x)
	return true
}

// Remove deletes the first occurrence of x, shifting subsequent elements down.
// Returns false if x is not an element.
func (v *NeverEmptyVec[T]) Remove(x T) bool {
	i := slices.Index(v.items, x)
	if i < 0 {
		return false
	}
	v.items = slices.Delete(v.items, i, i+1)
	return true
}

// Insert puts x at index i by appending it and swapping it with the element
// previously at i, which moves to the end. Indices at or beyond the end append.
func (v *NeverEmptyVec[T]) Insert(i int, x T) {
	v.items = append(v.items, x)
	last := len(v.items) - 1
	if i >= 0 && i < last {
		v.items[i], v.items[last] = v.items[last], v.items[i]
	}
}

// RemoveAt removes the element at index i, replacing it with the last element.
// Returns false if i is out of range.
func (v *NeverEmptyVec[T]) RemoveAt(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(v.items) {
		return zero, false
	}
	x := v.items[i]
	last := len(v.items) - 1
	v.items[i] = v.items[last]
	v.items[last] = zero
	v.items = v.items[:last]
	return x, true
}

// InsertStable puts x at index i, shifting subsequent elements up.
// Indices at or beyond the end append.
func (v *NeverEmptyVec[T]) InsertStable(i int, x T) {
	if i >= 0 && i < len(v.items) {
		v.items = slices.Insert(v.items, i, x)
		return
	}
	v.items = append(v.items, x)
}

// RemoveAtStable removes the element at index i, shifting subsequent elements
// down. Returns false if i is out of range.
func (v *NeverEmptyVec[T]) RemoveAtStable(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(v.items) {
		return zero, false
	}
	x := v.items[i]
	v.items = slices.Delete(v.items, i, i+1)
	return x, true
}

// Extend appends all of xs.
func (v *NeverEmptyVec[T]) Extend(xs ...T) {
	v.items = append(v.items, xs...)
}

// Clear removes all elements, keeping the capacity.
func (v *NeverEmptyVec[T]) Clear() {
	clear(v.items)
	v.items = v.items[:0]
}

// ShrinkToFit drops unused capacity.
func (v *NeverEmptyVec[T]) ShrinkToFit() {
	v.items = slices.Clip(v.items)
}

// Sort orders the elements ascending. The sort is not stable.
func (v *NeverEmptyVec[T]) Sort() {
	slices.Sort(v.items)
}

// InsertSorted inserts x after all elements less than or equal to x.
// On a sorted collection, the result stays sorted.
func (v *NeverEmptyVec[T]) InsertSorted(x T) {
	i, _ := slices.BinarySearchFunc(v.items, x, func(e, t T) int {
		if e <= t {
			return -1
		}
		return 1
	})
	v.InsertStable(i, x)
}

// Place moves the first occurrence of x to index i, using swap insertion.
// Nothing happens if x is not an element.
func (v *NeverEmptyVec[T]) Place(x T, i int) {
	current := slices.Index(v.items, x)
	if current < 0 {
		return
	}
	i = min(i, len(v.items))
	v.items = slices.Delete(v.items, current, current+1)
	v.Insert(i, x)
}

// PlaceMostRecent moves the last element to index i, using swap insertion.
func (v *NeverEmptyVec[T]) PlaceMostRecent(i int) {
	if len(v.items) == 0 {
		return
	}
	last := len(v.items) - 1
	x := v.items[last]
	v.items = v.items[:last]
	i = min(i, len(v.items))
	v.Insert(i, x)
}

// MapValues replaces every element by mapper(element), e.g. to remap entity
// identifiers after copying a world.
func (v *NeverEmptyVec[T]) MapValues(mapper func(T) T) {
	for i, x := range v.items {
		v.items[i] = mapper(x)
	}
}
