package reactive

import (
	"image/color"

	"github.com/npillmayer/rfont/core/font"
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/rfont/engine/ui"
)

// CollectionSpec describes a font collection to spawn. Zero values select
// the defaults of the collection components.
type CollectionSpec struct {
	Name     string
	Variants Variants
	Size     float32     // 0 for DefaultFontSize's default
	Color    color.Color // nil for DefaultFontColor's default
}

// BuiltinSpec creates a collection spec for a font family shipped with Go,
// loading its four variants from assets.
func BuiltinSpec(assets *asset.Server, family string) CollectionSpec {
	spec := CollectionSpec{Name: font.NormalizeFontname(family)}
	for v := font.Regular; v <= font.BoldItalic; v++ {
		spec.Variants[v] = assets.Load(asset.BuiltinName(family, v))
	}
	return spec
}

// SpawnCollection creates a font collection entity.
func SpawnCollection(w *ecs.World, spec CollectionSpec) ecs.Entity {
	bundles := make([]ecs.Bundle, 0, 8)
	for i, field := range handleFields {
		bundles = append(bundles, field.With(spec.Variants[i]))
	}
	if spec.Size != 0 {
		bundles = append(bundles, DefaultFontSize.With(spec.Size))
	}
	if spec.Color != nil {
		bundles = append(bundles, DefaultFontColor.With(color.NRGBAModel.Convert(spec.Color).(color.NRGBA)))
	}
	if spec.Name != "" {
		bundles = append(bundles, CollectionName.With(spec.Name))
	}
	bundles = append(bundles, FontCollection.Bundle())
	c := w.Spawn(bundles...)
	tracer().Debugf("spawned font collection %q as %v", spec.Name, c)
	return c
}

// CollectionByName finds a collection by its CollectionName.
func CollectionByName(w *ecs.World, name string) (ecs.Entity, bool) {
	for _, c := range FontCollection.Entities(w) {
		if n, ok := CollectionName.Get(w, c); ok && n == name {
			return c, true
		}
	}
	return 0, false
}

// SpawnText creates a text entity styled by the plugin.
func SpawnText(w *ecs.World, s string, bundles ...ecs.Bundle) ecs.Entity {
	return ui.SpawnText(w, s, append(bundles, ReactiveFont.Bundle())...)
}

// Use makes text use collection, replacing a previous reference.
func Use(w *ecs.World, text, collection ecs.Entity) {
	usage.Relate(w, text, collection)
}

// Unuse drops the UsingFont reference of text, making it use the DefaultFont.
func Unuse(w *ecs.World, text ecs.Entity) bool {
	return usage.Unrelate(w, text)
}

// UsersOf lists the text entities with a UsingFont reference to collection.
func UsersOf(w *ecs.World, collection ecs.Entity) []ecs.Entity {
	return usage.Sources(w, collection)
}

// SetDefault makes collection the DefaultFont.
func SetDefault(w *ecs.World, collection ecs.Entity) {
	DefaultFont.Insert(w, collection)
}

// ClearDefault removes the DefaultFont. Texts without a UsingFont reference
// keep their styling until their next resolution, which will fail.
func ClearDefault(w *ecs.World) bool {
	return DefaultFont.Remove(w)
}
