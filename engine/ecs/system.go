package ecs

import "sort"

// System is a unit of per-cycle work. Run receives the tick of the
// system's previous run, so that it can scan for changes made since.
type System interface {
	Run(w *World, since Tick)
	Priority() int
}

// Condition decides whether a system runs in the current cycle.
type Condition func(w *World, since Tick) bool

// FuncSystem adapts a plain function to the System interface.
type FuncSystem struct {
	name     string
	priority int
	fn       func(w *World, since Tick)
}

// NewSystem creates a system from a function. Systems with lower priority
// run first.
func NewSystem(name string, priority int, fn func(w *World, since Tick)) *FuncSystem {
	return &FuncSystem{name: name, priority: priority, fn: fn}
}

// Run calls the system's function.
func (s *FuncSystem) Run(w *World, since Tick) {
	s.fn(w, since)
}

// Priority returns the system's priority.
func (s *FuncSystem) Priority() int {
	return s.priority
}

func (s *FuncSystem) String() string {
	return s.name
}

type systemSlot struct {
	system    System
	condition Condition
	lastRun   Tick
}

func (slot *systemSlot) ready(w *World, since Tick) bool {
	return slot.condition == nil || slot.condition(w, since)
}

// AddSystem registers a system. Systems with equal priority run in
// registration order. Conditions are optional; all of them must hold
// for the system to run.
func (w *World) AddSystem(s System, conditions ...Condition) {
	slot := &systemSlot{system: s}
	switch len(conditions) {
	case 0:
	case 1:
		slot.condition = conditions[0]
	default:
		slot.condition = func(w *World, since Tick) bool {
			for _, c := range conditions {
				if !c(w, since) {
					return false
				}
			}
			return true
		}
	}
	w.systems = append(w.systems, slot)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].system.Priority() < w.systems[j].system.Priority()
	})
}
