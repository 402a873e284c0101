package ecs

import (
	"sort"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
)

// Entity is a unique identifier for an entity.
type Entity = donburi.Entity

// Tick is a logical timestamp. Every system run advances it.
type Tick uint64

// ErrorHandler receives errors returned by event handlers.
type ErrorHandler func(err error)

// maxFlushRounds bounds trigger cascades within a single flush.
const maxFlushRounds = 64

// World contains all entities, their components and the reactive machinery
// around them. A World is not safe for concurrent use; it follows the
// single-threaded per-frame model of its update loop.
type World struct {
	dw        donburi.World
	tick      Tick
	changes   map[component.ComponentTypeId]map[Entity]Tick
	addObs    map[component.ComponentTypeId][]Observer
	removeObs map[component.ComponentTypeId][]Observer
	handlers  map[*Event][]Handler
	pending   *linkedhashset.Set
	systems   []*systemSlot
	resources map[any]*resourceSlot
	removing  map[removal]struct{}
	despawns  map[Entity]struct{}
	onError   ErrorHandler
}

type removal struct {
	id     component.ComponentTypeId
	entity Entity
}

// entityMarker is carried by every entity spawned through a World.
var entityMarker = donburi.NewComponentType[Marker]()

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		dw:        donburi.NewWorld(),
		tick:      1,
		changes:   make(map[component.ComponentTypeId]map[Entity]Tick),
		addObs:    make(map[component.ComponentTypeId][]Observer),
		removeObs: make(map[component.ComponentTypeId][]Observer),
		handlers:  make(map[*Event][]Handler),
		pending:   linkedhashset.New(),
		resources: make(map[any]*resourceSlot),
		removing:  make(map[removal]struct{}),
		despawns:  make(map[Entity]struct{}),
		onError:   traceError,
	}
}

func traceError(err error) {
	tracer().Errorf("%v", err)
}

// Donburi returns the underlying donburi world, e.g. for donburi event types.
func (w *World) Donburi() donburi.World {
	return w.dw
}

// Tick returns the current change tick.
func (w *World) Tick() Tick {
	return w.tick
}

// SetErrorHandler replaces the handler for errors reported by event handlers.
// A nil handler restores the default, which traces errors.
func (w *World) SetErrorHandler(h ErrorHandler) {
	if h == nil {
		h = traceError
	}
	w.onError = h
}

// ReportError hands err to the world's error handler. Nil errors are ignored.
func (w *World) ReportError(err error) {
	if err == nil {
		return
	}
	w.onError(err)
}

// Spawn creates a new entity and inserts the given bundles in order.
func (w *World) Spawn(bundles ...Bundle) Entity {
	e := w.dw.Create(entityMarker)
	tracer().Debugf("spawned entity %v", e)
	for _, b := range bundles {
		b.insert(w, e)
	}
	return e
}

// Alive reports whether e refers to an existing entity.
func (w *World) Alive(e Entity) bool {
	return w.dw.Valid(e)
}

// Despawn removes an entity. Remove hooks and observers run for every
// component the entity carries, while the entity is still readable.
// Returns false if the entity did not exist.
func (w *World) Despawn(e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	w.despawns[e] = struct{}{}
	defer delete(w.despawns, e)
	for _, meta := range registeredComponents() {
		if meta.Has(w, e) {
			meta.remove(w, e)
		}
	}
	w.dw.Remove(e)
	for _, m := range w.changes {
		delete(m, e)
	}
	tracer().Debugf("despawned entity %v", e)
	return true
}

// Despawning reports whether e is in the middle of being despawned. Hooks and
// observers use it to tell a removal caused by despawning e from an
// ordinary one.
func (w *World) Despawning(e Entity) bool {
	_, ok := w.despawns[e]
	return ok
}

// Flush drains pending triggers, dispatching each to its event handlers.
// Triggers requested while draining are handled in a following round.
// Within a round, requesting the same (event, entity) twice dispatches once.
func (w *World) Flush() {
	for round := 0; !w.pending.Empty(); round++ {
		if round == maxFlushRounds {
			tracer().Errorf("trigger cascade did not settle after %d rounds, dropping %d triggers",
				maxFlushRounds, w.pending.Size())
			w.pending.Clear()
			return
		}
		batch := w.pending.Values()
		w.pending.Clear()
		for _, v := range batch {
			w.dispatch(v.(Trigger))
		}
	}
}

// Update runs one cycle: triggers queued by structural changes are handled
// first, then every system runs in priority order, each followed by a flush.
func (w *World) Update() {
	w.Flush()
	for _, slot := range w.systems {
		since := slot.lastRun
		w.tick++
		if slot.ready(w, since) {
			slot.system.Run(w, since)
		}
		slot.lastRun = w.tick
		w.tick++
		w.Flush()
	}
}

// --- Change ticks ----------------------------------------------------------

func (w *World) markChanged(id component.ComponentTypeId, e Entity) {
	m, ok := w.changes[id]
	if !ok {
		m = make(map[Entity]Tick)
		w.changes[id] = m
	}
	m[e] = w.tick
}

func (w *World) changedSince(id component.ComponentTypeId, e Entity, since Tick) bool {
	t, ok := w.changes[id][e]
	return ok && t > since
}

// changedEntities lists entities whose component id changed after since,
// in ascending entity order.
func (w *World) changedEntities(id component.ComponentTypeId, since Tick) []Entity {
	var result []Entity
	for e, t := range w.changes[id] {
		if t > since {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (w *World) forgetChange(id component.ComponentTypeId, e Entity) {
	if m, ok := w.changes[id]; ok {
		delete(m, e)
	}
}
