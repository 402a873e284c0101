package ecs

import "slices"

// Relation is the value of a relationship's source component: a single,
// exclusive reference to a target entity.
type Relation struct {
	Target Entity
}

// SourceCollection is the target-side back-reference collection of a
// relationship.
type SourceCollection interface {
	Add(e Entity) bool
	Remove(e Entity) bool
	Len() int
	IsEmpty() bool
	Values() []Entity
}

// EntityVec is a plain SourceCollection. It reports empty when it has no
// elements, which removes it from its target once the last source unlinks.
type EntityVec struct {
	entities []Entity
}

func (v *EntityVec) Add(e Entity) bool {
	v.entities = append(v.entities, e)
	return true
}

func (v *EntityVec) Remove(e Entity) bool {
	i := slices.Index(v.entities, e)
	if i < 0 {
		return false
	}
	v.entities = slices.Delete(v.entities, i, i+1)
	return true
}

func (v *EntityVec) Len() int         { return len(v.entities) }
func (v *EntityVec) IsEmpty() bool    { return len(v.entities) == 0 }
func (v *EntityVec) Values() []Entity { return slices.Clone(v.entities) }

// Relationship pairs a source component holding a Relation with a target
// component holding the collection of all sources pointing at the target.
// The two sides are kept consistent by component hooks:
//
//   - inserting the source component links the source into the target's
//     collection, inserting the collection if necessary
//   - replacing the source component is observed as a removal followed by
//     an addition
//   - removing the source component unlinks it; if the collection then
//     reports IsEmpty, the collection is removed from the target
//   - removing the collection (including by despawning the target) removes
//     the source component from every source
type Relationship[C any, PC interface {
	*C
	SourceCollection
}] struct {
	Source *Component[Relation]
	Target *Component[C]
}

// NewRelationship declares a relationship with source component name
// sourceName and target component name targetName.
func NewRelationship[C any, PC interface {
	*C
	SourceCollection
}](sourceName, targetName string) *Relationship[C, PC] {
	r := &Relationship[C, PC]{
		Source: NewComponent[Relation](sourceName),
		Target: NewComponent[C](targetName),
	}
	r.Source.relinks = true
	r.Source.OnAddHook(r.link)
	r.Source.OnRemoveHook(r.unlink)
	r.Target.OnRemoveHook(r.orphan)
	return r
}

func (r *Relationship[C, PC]) link(w *World, source Entity) {
	rel, _ := r.Source.Get(w, source)
	if !w.Alive(rel.Target) {
		tracer().Infof("%s: entity %v relates to non-existent entity %v", r.Source.Name(), source, rel.Target)
		return
	}
	r.Target.Add(w, rel.Target)
	r.Target.Mutate(w, rel.Target, func(c *C) {
		PC(c).Add(source)
	})
}

func (r *Relationship[C, PC]) unlink(w *World, source Entity) {
	rel, _ := r.Source.Get(w, source)
	empty := false
	ok := r.Target.Mutate(w, rel.Target, func(c *C) {
		PC(c).Remove(source)
		empty = PC(c).IsEmpty()
	})
	if ok && empty {
		tracer().Debugf("%s of entity %v is empty, removing it", r.Target.Name(), rel.Target)
		r.Target.Remove(w, rel.Target)
	}
}

func (r *Relationship[C, PC]) orphan(w *World, target Entity) {
	for _, source := range r.Sources(w, target) {
		if rel, ok := r.Source.Get(w, source); ok && rel.Target == target {
			r.Source.Remove(w, source)
		}
	}
}

// Relate makes source point at target, replacing any previous target.
func (r *Relationship[C, PC]) Relate(w *World, source, target Entity) {
	r.Source.Insert(w, source, Relation{Target: target})
}

// Unrelate removes the relation of source. Returns false if there was none.
func (r *Relationship[C, PC]) Unrelate(w *World, source Entity) bool {
	return r.Source.Remove(w, source)
}

// TargetOf returns the entity source points at.
func (r *Relationship[C, PC]) TargetOf(w *World, source Entity) (Entity, bool) {
	rel, ok := r.Source.Get(w, source)
	return rel.Target, ok
}

// Sources returns a snapshot of all entities pointing at target.
func (r *Relationship[C, PC]) Sources(w *World, target Entity) []Entity {
	c, err := r.Target.Lookup(w, target)
	if err != nil {
		return nil
	}
	return PC(c).Values()
}
