/*
Package ui holds the renderable text representation.

Text entities carry a Text component together with TextFont and TextColor,
which are inserted with defaults if missing. Styling layers write TextFont
and TextColor; the renderer reads them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ui

import (
	"fmt"
	"image/color"

	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'rfont.ui'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.ui")
}

// Content is the text of a text entity.
type Content struct {
	Value string
}

// FontAttr is the font a text is rendered with.
type FontAttr struct {
	Font asset.Handle
	Size float32
}

// ColorAttr is the color a text is rendered with.
type ColorAttr struct {
	Color color.NRGBA
}

// Components of renderable text.
var (
	TextFont  = ecs.NewComponent[FontAttr]("TextFont").WithDefault(FontAttr{Size: 20})
	TextColor = ecs.NewComponent[ColorAttr]("TextColor").WithDefault(ColorAttr{
		Color: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	})
	Text = ecs.NewComponent[Content]("Text").Require(TextFont.Bundle(), TextColor.Bundle())
)

// SpawnText creates a text entity with default font and color, plus
// optional additional bundles.
func SpawnText(w *ecs.World, s string, bundles ...ecs.Bundle) ecs.Entity {
	return w.Spawn(append([]ecs.Bundle{Text.With(Content{Value: s})}, bundles...)...)
}

// Line is a text entity prepared for drawing.
type Line struct {
	Text     string
	Fontname string
	Size     float32
	Color    color.NRGBA
	Advance  fixed.Int26_6
	Face     font.Face
}

// Prepare looks up the font of text entity e and measures its text.
// Fonts which have not finished loading are reported as errors.
func Prepare(w *ecs.World, assets *asset.Server, e ecs.Entity) (Line, error) {
	content, err := Text.Lookup(w, e)
	if err != nil {
		return Line{}, err
	}
	fa, _ := TextFont.Get(w, e)
	ca, _ := TextColor.Get(w, e)
	line := Line{Text: content.Value, Size: fa.Size, Color: ca.Color}
	f, ok := assets.Get(fa.Font)
	if !ok {
		return line, fmt.Errorf("font %v of text entity %v is %s", fa.Font, e, assets.State(fa.Font))
	}
	tc, err := f.PrepareCase(float64(fa.Size))
	if err != nil {
		return line, err
	}
	line.Fontname = f.Fontname
	line.Face = tc.Face()
	line.Advance = font.MeasureString(line.Face, line.Text)
	tracer().Debugf("text entity %v: %q in %s@%.1f advances %s", e, line.Text, line.Fontname, line.Size, line.Advance)
	return line, nil
}
