package reactive

import (
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
)

// implicitUsers lists all ReactiveFont entities without a UsingFont reference,
// i.e. the users of the DefaultFont.
func implicitUsers(w *ecs.World) []ecs.Entity {
	var users []ecs.Entity
	for _, e := range ReactiveFont.Entities(w) {
		if !UsingFont.Has(w, e) {
			users = append(users, e)
		}
	}
	return users
}

// notifyUsers triggers ev for the explicit users of a collection and, if it
// is the DefaultFont, for the implicit ones.
func notifyUsers(w *ecs.World, collection ecs.Entity, ev *ecs.Event) {
	w.TriggerAll(ev, usage.Sources(w, collection))
	if def, ok := DefaultFont.Get(w); ok && def == collection {
		w.TriggerAll(ev, implicitUsers(w))
	}
}

// A new DefaultFont may change anything for its users.
func defaultFontChanged(w *ecs.World, _ ecs.Tick) {
	users := implicitUsers(w)
	tracer().Debugf("default font changed, re-resolving %d texts", len(users))
	for _, e := range users {
		triggerAll(w, e)
	}
}

func fontHandleChanged(w *ecs.World, since ecs.Tick) {
	seen := map[ecs.Entity]bool{}
	for _, field := range handleFields {
		for _, c := range field.Changed(w, since) {
			if !seen[c] && FontCollection.Has(w, c) {
				seen[c] = true
				notifyUsers(w, c, UpdateFont)
			}
		}
	}
}

func defaultFontSizeChanged(w *ecs.World, since ecs.Tick) {
	for _, c := range DefaultFontSize.Changed(w, since) {
		if FontCollection.Has(w, c) {
			notifyUsers(w, c, UpdateFontSize)
		}
	}
}

func defaultFontColorChanged(w *ecs.World, since ecs.Tick) {
	for _, c := range DefaultFontColor.Changed(w, since) {
		if FontCollection.Has(w, c) {
			notifyUsers(w, c, UpdateFontColor)
		}
	}
}

func changedFontSize(w *ecs.World, since ecs.Tick) {
	for _, e := range FontSize.Changed(w, since) {
		if ReactiveFont.Has(w, e) {
			w.Trigger(UpdateFontSize, e)
		}
	}
}

func changedFontColor(w *ecs.World, since ecs.Tick) {
	for _, e := range FontColor.Changed(w, since) {
		if ReactiveFont.Has(w, e) {
			w.Trigger(UpdateFontColor, e)
		}
	}
}

// fontLoaded marks every collection field holding the loaded font as changed,
// which re-resolves the collection's users in the same cycle.
func fontLoaded(w *ecs.World, ev asset.LoadEvent) {
	if ev.Err != nil {
		return
	}
	for _, field := range handleFields {
		for _, c := range field.Entities(w) {
			if h, _ := field.Get(w, c); h == ev.Handle {
				tracer().Debugf("font %s loaded for collection %v", ev.Name, c)
				field.Touch(w, c)
			}
		}
	}
}
