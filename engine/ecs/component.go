package ecs

import (
	"sync"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"
)

// Marker is the value type of tag components.
type Marker struct{}

// Hook is a component-level lifecycle callback. Hooks belong to a component
// definition and run in every world, before the world's observers.
type Hook func(w *World, e Entity)

// ComponentRef is implemented by every component, regardless of its value type.
type ComponentRef interface {
	Name() string
	Has(w *World, e Entity) bool
	typeID() component.ComponentTypeId
}

// Component describes a component type with values of type T.
// Components are usually declared once, as package-level variables.
type Component[T any] struct {
	name     string
	ctype    *donburi.ComponentType[T]
	query    *donburi.Query
	def      T
	requires []Bundle
	onAdd    []Hook
	onRemove []Hook
	// relinks makes an insert over an existing value a remove followed by an add.
	relinks bool
}

// NewComponent declares a new component type. Each call yields a distinct
// component, even for identical T.
func NewComponent[T any](name string) *Component[T] {
	ct := donburi.NewComponentType[T]()
	c := &Component[T]{
		name:  name,
		ctype: ct,
		query: donburi.NewQuery(filter.Contains(ct)),
	}
	register(c)
	return c
}

// NewTag declares a zero-size marker component.
func NewTag(name string) *Component[Marker] {
	return NewComponent[Marker](name)
}

// WithDefault sets the value used by Add, Bundle and required-component insertion.
func (c *Component[T]) WithDefault(v T) *Component[T] {
	c.def = v
	return c
}

// Require declares companions inserted (if missing) whenever c is added.
func (c *Component[T]) Require(bundles ...Bundle) *Component[T] {
	c.requires = append(c.requires, bundles...)
	return c
}

// OnAddHook appends a hook called after c has been added to an entity.
func (c *Component[T]) OnAddHook(h Hook) *Component[T] {
	c.onAdd = append(c.onAdd, h)
	return c
}

// OnRemoveHook appends a hook called before c is removed from an entity.
func (c *Component[T]) OnRemoveHook(h Hook) *Component[T] {
	c.onRemove = append(c.onRemove, h)
	return c
}

// Name returns the component's name.
func (c *Component[T]) Name() string {
	return c.name
}

// Default returns the component's default value.
func (c *Component[T]) Default() T {
	return c.def
}

func (c *Component[T]) typeID() component.ComponentTypeId {
	return c.ctype.Id()
}

// Has checks if entity e carries c.
func (c *Component[T]) Has(w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	return w.dw.Entry(e).HasComponent(c.ctype)
}

// Get returns a copy of the value of c on e.
func (c *Component[T]) Get(w *World, e Entity) (T, bool) {
	if !c.Has(w, e) {
		var zero T
		return zero, false
	}
	return *c.ctype.Get(w.dw.Entry(e)), true
}

// Lookup returns a pointer to the value of c on e, or a *LookupError
// wrapping ErrNoEntity or ErrNoComponent. Writes through the pointer
// are not change-tracked; use Mutate for that.
func (c *Component[T]) Lookup(w *World, e Entity) (*T, error) {
	if !w.Alive(e) {
		return nil, &LookupError{Entity: e, Component: c.name, Err: ErrNoEntity}
	}
	entry := w.dw.Entry(e)
	if !entry.HasComponent(c.ctype) {
		return nil, &LookupError{Entity: e, Component: c.name, Err: ErrNoComponent}
	}
	return c.ctype.Get(entry), nil
}

// Insert sets the value of c on e. If e did not carry c, required companions
// are inserted, then add hooks and add observers run. Otherwise the value is
// replaced and marked as changed. Inserting on a dead entity is a no-op.
func (c *Component[T]) Insert(w *World, e Entity, v T) {
	if !w.Alive(e) {
		tracer().Debugf("cannot insert %s: entity %v does not exist", c.name, e)
		return
	}
	entry := w.dw.Entry(e)
	if entry.HasComponent(c.ctype) {
		if !c.relinks {
			c.ctype.SetValue(entry, v)
			w.markChanged(c.typeID(), e)
			return
		}
		c.Remove(w, e)
		if !w.Alive(e) {
			return
		}
		entry = w.dw.Entry(e)
	}
	entry.AddComponent(c.ctype)
	c.ctype.SetValue(w.dw.Entry(e), v)
	w.markChanged(c.typeID(), e)
	for _, req := range c.requires {
		if !req.present(w, e) {
			req.insert(w, e)
		}
	}
	for _, h := range c.onAdd {
		h(w, e)
	}
	w.notifyAdd(c.typeID(), e)
}

// Add inserts the default value of c on e, if e does not carry c yet.
func (c *Component[T]) Add(w *World, e Entity) {
	if !c.Has(w, e) {
		c.Insert(w, e, c.def)
	}
}

// Set replaces the value of c on e without structural effects.
// Returns false if e does not carry c.
func (c *Component[T]) Set(w *World, e Entity, v T) bool {
	return c.Mutate(w, e, func(p *T) { *p = v })
}

// Mutate calls fn with a pointer to the value of c on e and marks it changed.
// Returns false if e does not carry c.
func (c *Component[T]) Mutate(w *World, e Entity, fn func(*T)) bool {
	if !c.Has(w, e) {
		return false
	}
	fn(c.ctype.Get(w.dw.Entry(e)))
	w.markChanged(c.typeID(), e)
	return true
}

// Touch marks c on e as changed without altering it.
func (c *Component[T]) Touch(w *World, e Entity) bool {
	return c.Mutate(w, e, func(*T) {})
}

// Remove detaches c from e. Remove hooks and observers run first, while
// the value is still readable. Returns false if e did not carry c.
func (c *Component[T]) Remove(w *World, e Entity) bool {
	if !c.Has(w, e) {
		return false
	}
	key := removal{id: c.typeID(), entity: e}
	if _, busy := w.removing[key]; busy {
		return false
	}
	w.removing[key] = struct{}{}
	defer delete(w.removing, key)
	for _, h := range c.onRemove {
		h(w, e)
	}
	w.notifyRemove(c.typeID(), e)
	if !c.Has(w, e) {
		return true
	}
	w.dw.Entry(e).RemoveComponent(c.ctype)
	w.forgetChange(c.typeID(), e)
	return true
}

// ChangedSince reports whether c on e has been added or changed after tick since.
func (c *Component[T]) ChangedSince(w *World, e Entity, since Tick) bool {
	return c.Has(w, e) && w.changedSince(c.typeID(), e, since)
}

// Changed lists all entities carrying c whose value was added or changed
// after tick since.
func (c *Component[T]) Changed(w *World, since Tick) []Entity {
	candidates := w.changedEntities(c.typeID(), since)
	result := candidates[:0]
	for _, e := range candidates {
		if c.Has(w, e) {
			result = append(result, e)
		}
	}
	return result
}

// Entities lists all entities carrying c.
func (c *Component[T]) Entities(w *World) []Entity {
	var result []Entity
	c.query.Each(w.dw, func(entry *donburi.Entry) {
		result = append(result, entry.Entity())
	})
	return result
}

// Count returns the number of entities carrying c.
func (c *Component[T]) Count(w *World) int {
	return c.query.Count(w.dw)
}

func (c *Component[T]) remove(w *World, e Entity) bool {
	return c.Remove(w, e)
}

// --- Bundles ---------------------------------------------------------------

// Bundle is a component value ready to be inserted, used with World.Spawn
// and Component.Require.
type Bundle interface {
	insert(w *World, e Entity)
	present(w *World, e Entity) bool
}

type valueBundle[T any] struct {
	c *Component[T]
	v T
}

func (b valueBundle[T]) insert(w *World, e Entity) {
	b.c.Insert(w, e, b.v)
}

func (b valueBundle[T]) present(w *World, e Entity) bool {
	return b.c.Has(w, e)
}

// With bundles c with value v.
func (c *Component[T]) With(v T) Bundle {
	return valueBundle[T]{c: c, v: v}
}

// Bundle bundles c with its default value.
func (c *Component[T]) Bundle() Bundle {
	return valueBundle[T]{c: c, v: c.def}
}

// --- Registry --------------------------------------------------------------

// componentMeta is the type-erased view used for entity-wide operations.
type componentMeta interface {
	ComponentRef
	remove(w *World, e Entity) bool
}

var componentRegistry struct {
	sync.Mutex
	comps []componentMeta
}

func register(c componentMeta) {
	componentRegistry.Lock()
	defer componentRegistry.Unlock()
	componentRegistry.comps = append(componentRegistry.comps, c)
}

// registeredComponents returns a snapshot of all declared components.
func registeredComponents() []componentMeta {
	componentRegistry.Lock()
	defer componentRegistry.Unlock()
	snapshot := make([]componentMeta, len(componentRegistry.comps))
	copy(snapshot, componentRegistry.comps)
	return snapshot
}
