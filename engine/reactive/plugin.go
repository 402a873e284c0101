package reactive

import (
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/yohamta/donburi"
)

// Options configures the plugin.
type Options struct {
	// Assets, if set, is drained once per cycle. Collections using a font
	// which finished loading are re-resolved.
	Assets *asset.Server
	// Priority of the plugin's systems. Asset draining runs at Priority-1.
	Priority int
}

// Plugin wires reactive font styling into a world.
type Plugin struct {
	opts Options
}

// NewPlugin creates a plugin with the given options.
func NewPlugin(opts Options) *Plugin {
	return &Plugin{opts: opts}
}

// Install registers the plugin's observers, event handlers and systems with w.
func (p *Plugin) Install(w *ecs.World) {
	w.Observe(UpdateFont, updateFont)
	w.Observe(UpdateFontSize, updateFontSize)
	w.Observe(UpdateFontColor, updateFontColor)
	//
	w.OnAdd(ReactiveFont, triggerAll)
	w.OnAdd(UsingFont, triggerAll)
	w.OnRemove(UsingFont, usingFontRemoved)
	for _, tag := range []ecs.ComponentRef{Bold, Italic} {
		w.OnAdd(tag, trigger(UpdateFont))
		w.OnRemove(tag, trigger(UpdateFont))
	}
	w.OnAdd(FontSize, trigger(UpdateFontSize))
	w.OnRemove(FontSize, trigger(UpdateFontSize))
	w.OnAdd(FontColor, trigger(UpdateFontColor))
	w.OnRemove(FontColor, trigger(UpdateFontColor))
	//
	prio := p.opts.Priority
	if p.opts.Assets != nil {
		assets := p.opts.Assets
		asset.LoadedEvent.Subscribe(w.Donburi(), func(_ donburi.World, ev asset.LoadEvent) {
			fontLoaded(w, ev)
		})
		w.AddSystem(ecs.NewSystem("drain-font-assets", prio-1, func(w *ecs.World, _ ecs.Tick) {
			if assets.Drain(w.Donburi()) > 0 {
				asset.LoadedEvent.ProcessEvents(w.Donburi())
			}
		}))
	}
	w.AddSystem(ecs.NewSystem("default-font-changed", prio, defaultFontChanged),
		DefaultFont.ExistsAndChanged())
	w.AddSystem(ecs.NewSystem("font-handle-changed", prio, fontHandleChanged))
	w.AddSystem(ecs.NewSystem("default-font-size-changed", prio, defaultFontSizeChanged))
	w.AddSystem(ecs.NewSystem("default-font-color-changed", prio, defaultFontColorChanged))
	w.AddSystem(ecs.NewSystem("changed-font-size", prio, changedFontSize))
	w.AddSystem(ecs.NewSystem("changed-font-color", prio, changedFontColor))
	w.AddSystem(ecs.NewSystem("forget-orphans", prio+1, forgetOrphans))
	tracer().Infof("reactive font plugin installed")
}

func trigger(ev *ecs.Event) ecs.Observer {
	return func(w *ecs.World, e ecs.Entity) {
		w.Trigger(ev, e)
	}
}

// usingFontRemoved re-resolves a text which lost its UsingFont reference,
// marking it if the reference was lost to the despawn of the collection.
func usingFontRemoved(w *ecs.World, text ecs.Entity) {
	if rel, ok := UsingFont.Get(w, text); ok && w.Despawning(rel.Target) {
		orphaned.Add(w, text)
	}
	triggerAll(w, text)
}

func forgetOrphans(w *ecs.World, _ ecs.Tick) {
	for _, e := range orphaned.Entities(w) {
		orphaned.Remove(w, e)
	}
}

func triggerAll(w *ecs.World, e ecs.Entity) {
	w.Trigger(UpdateFont, e)
	w.Trigger(UpdateFontSize, e)
	w.Trigger(UpdateFontColor, e)
}
