package ecs

import (
	"github.com/yohamta/donburi/component"
)

// Observer is called synchronously when a component is added to or removed
// from an entity.
type Observer func(w *World, e Entity)

// Handler reacts to an entity event. A non-nil error is passed on to the
// world's error handler and does not affect other handlers.
type Handler func(w *World, e Entity) error

// Event is an entity-targeted event type. Events are compared by identity.
type Event struct {
	name string
}

// NewEvent declares a new entity event type.
func NewEvent(name string) *Event {
	return &Event{name: name}
}

func (ev *Event) String() string {
	return ev.name
}

// Trigger is a request to dispatch an event for an entity.
type Trigger struct {
	Event  *Event
	Entity Entity
}

// OnAdd registers an observer for additions of component c.
func (w *World) OnAdd(c ComponentRef, obs Observer) {
	w.addObs[c.typeID()] = append(w.addObs[c.typeID()], obs)
}

// OnRemove registers an observer for removals of component c, including
// removals caused by despawning an entity.
func (w *World) OnRemove(c ComponentRef, obs Observer) {
	w.removeObs[c.typeID()] = append(w.removeObs[c.typeID()], obs)
}

// Observe registers a handler for event ev.
func (w *World) Observe(ev *Event, h Handler) {
	w.handlers[ev] = append(w.handlers[ev], h)
}

// Trigger queues event ev for entity e. The event is dispatched on the next
// Flush. Queueing an (event, entity) pair already pending is a no-op.
func (w *World) Trigger(ev *Event, e Entity) {
	w.pending.Add(Trigger{Event: ev, Entity: e})
}

// TriggerAll queues event ev for every entity in es.
func (w *World) TriggerAll(ev *Event, es []Entity) {
	for _, e := range es {
		w.Trigger(ev, e)
	}
}

// Pending returns the number of queued triggers.
func (w *World) Pending() int {
	return w.pending.Size()
}

func (w *World) dispatch(t Trigger) {
	for _, h := range w.handlers[t.Event] {
		if err := h(w, t.Entity); err != nil {
			w.ReportError(err)
		}
	}
}

func (w *World) notifyAdd(id component.ComponentTypeId, e Entity) {
	for _, obs := range w.addObs[id] {
		obs(w, e)
	}
}

func (w *World) notifyRemove(id component.ComponentTypeId, e Entity) {
	for _, obs := range w.removeObs[id] {
		obs(w, e)
	}
}
