package ecs

// Resource describes a world-global singleton value of type T.
// Resources are declared once and compared by identity.
type Resource[T any] struct {
	name string
}

type resourceSlot struct {
	value   any
	changed Tick
}

// NewResource declares a resource.
func NewResource[T any](name string) *Resource[T] {
	return &Resource[T]{name: name}
}

// Name returns the resource's name.
func (r *Resource[T]) Name() string {
	return r.name
}

// Insert sets the value of the resource, stamping it as changed.
func (r *Resource[T]) Insert(w *World, v T) {
	w.resources[r] = &resourceSlot{value: v, changed: w.tick}
	tracer().Debugf("resource %s set", r.name)
}

// Get returns the resource's value, if present.
func (r *Resource[T]) Get(w *World) (T, bool) {
	slot, ok := w.resources[r]
	if !ok {
		var zero T
		return zero, false
	}
	return slot.value.(T), true
}

// Exists reports whether the resource is present.
func (r *Resource[T]) Exists(w *World) bool {
	_, ok := w.resources[r]
	return ok
}

// Remove deletes the resource. Returns false if it was not present.
func (r *Resource[T]) Remove(w *World) bool {
	if _, ok := w.resources[r]; !ok {
		return false
	}
	delete(w.resources, r)
	tracer().Debugf("resource %s removed", r.name)
	return true
}

// ChangedSince reports whether the resource is present and was set after tick since.
func (r *Resource[T]) ChangedSince(w *World, since Tick) bool {
	slot, ok := w.resources[r]
	return ok && slot.changed > since
}

// ExistsAndChanged is a system condition holding whenever the resource was
// set since the system's previous run.
func (r *Resource[T]) ExistsAndChanged() Condition {
	return func(w *World, since Tick) bool {
		return r.ChangedSince(w, since)
	}
}
