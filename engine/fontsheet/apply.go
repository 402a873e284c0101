package fontsheet

import (
	"image/color"

	"github.com/npillmayer/rfont/core/font"
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/rfont/engine/reactive"
)

// Apply creates or updates the font collections declared in sheet, and sets
// the default collection if the sheet names one. Fonts are loaded through
// assets. It returns the collection entities by name.
func Apply(w *ecs.World, assets *asset.Server, sheet *Sheet) map[string]ecs.Entity {
	collections := make(map[string]ecs.Entity, len(sheet.Collections))
	for _, decl := range sheet.Collections {
		spec := specFor(assets, decl)
		if c, ok := reactive.CollectionByName(w, decl.Name); ok {
			update(w, c, spec)
			collections[decl.Name] = c
			tracer().Debugf("updated font collection %s", decl.Name)
			continue
		}
		collections[decl.Name] = reactive.SpawnCollection(w, spec)
	}
	if sheet.Default != "" {
		reactive.SetDefault(w, collections[sheet.Default])
	}
	return collections
}

func specFor(assets *asset.Server, decl *Collection) reactive.CollectionSpec {
	spec := reactive.CollectionSpec{Name: decl.Name, Size: decl.Size, Color: decl.Color}
	if decl.Family != "" {
		if font.IsBuiltin(decl.Family) {
			spec.Variants = reactive.BuiltinSpec(assets, decl.Family).Variants
		} else {
			v := font.GuessVariant(decl.Family)
			tracer().Debugf("font %s taken as %s variant of %s", decl.Family, v, decl.Name)
			spec.Variants[v] = assets.Load(decl.Family)
		}
	}
	for v, src := range decl.Sources {
		if src != "" {
			spec.Variants[v] = assets.Load(src)
		}
	}
	fallback := spec.Variants[font.Regular]
	for _, h := range spec.Variants {
		if fallback.IsZero() {
			fallback = h
		}
	}
	for v := range spec.Variants {
		if spec.Variants[v].IsZero() {
			spec.Variants[v] = fallback
		}
	}
	return spec
}

// update writes the spec into an existing collection. Only fields which
// differ are written, so that unchanged collections do not re-style their users.
func update(w *ecs.World, c ecs.Entity, spec reactive.CollectionSpec) {
	current := reactive.VariantsOf(w, c)
	fields := []*ecs.Component[asset.Handle]{
		reactive.RegularFont, reactive.ItalicFont, reactive.BoldFont, reactive.BoldItalicFont,
	}
	for v, field := range fields {
		if current[v] != spec.Variants[v] {
			field.Set(w, c, spec.Variants[v])
		}
	}
	size := spec.Size
	if size == 0 {
		size = reactive.DefaultFontSize.Default()
	}
	if old, _ := reactive.DefaultFontSize.Get(w, c); old != size {
		reactive.DefaultFontSize.Set(w, c, size)
	}
	col := reactive.DefaultFontColor.Default()
	if spec.Color != nil {
		col = color.NRGBAModel.Convert(spec.Color).(color.NRGBA)
	}
	if old, _ := reactive.DefaultFontColor.Get(w, c); old != col {
		reactive.DefaultFontColor.Set(w, c, col)
	}
}
