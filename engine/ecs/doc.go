/*
Package ecs is a small entity-component-system runtime for text styling.

Entity storage is delegated to donburi. On top of it this package adds the
pieces a reactive styling layer needs from its host:

  - components with required companions and lifecycle hooks
  - observers, called synchronously when a component is added or removed
  - targeted entity events (triggers), collected in a per-pass set and
    drained by World.Flush
  - change ticks per (component, entity) for batched change scans
  - systems ordered by priority, each seeing the changes since its last run
  - singleton resources with change ticks
  - relationships: a single-valued source component paired with a
    back-reference collection on the target

An update cycle first drains triggers queued by structural changes, then
runs every system, draining triggers after each of them.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ecs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rfont.ecs'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.ecs")
}
