package reactive

import (
	"errors"
	"image/color"

	"github.com/npillmayer/rfont/core/font"
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/rfont/engine/ui"
)

// Resolution is skipped, without an error, if the text entity no longer
// exists or is not tagged ReactiveFont.
var (
	ErrVanished    = errors.New("entity no longer exists")
	ErrNotReactive = errors.New("entity is not tagged ReactiveFont")
)

// skipped decides if a failed resolution goes unreported. Texts orphaned by
// the despawn of their collection do not report a missing collection during
// the cycle of the despawn.
func skipped(w *ecs.World, text ecs.Entity, err error) bool {
	if errors.Is(err, ErrVanished) || errors.Is(err, ErrNotReactive) {
		return true
	}
	var ferr *FontError
	if orphaned.Has(w, text) && errors.As(err, &ferr) && ferr.Kind != InvalidReactiveFont {
		tracer().Debugf("text %v lost its collection, skipping resolution", text)
		return true
	}
	return false
}

// Variants holds the four font handles of a collection.
type Variants [4]asset.Handle

// SelectHandle picks the variant for the Bold and Italic tags of a text.
func SelectHandle(v Variants, bold, italic bool) asset.Handle {
	return v[font.VariantOf(bold, italic)]
}

// VariantsOf reads the four font handles of a collection.
func VariantsOf(w *ecs.World, collection ecs.Entity) Variants {
	var v Variants
	for i, field := range handleFields {
		v[i], _ = field.Get(w, collection)
	}
	return v
}

// checkText makes sure text is a live ReactiveFont entity carrying target.
func checkText(w *ecs.World, text ecs.Entity, target ecs.ComponentRef) error {
	if !w.Alive(text) {
		return ErrVanished
	}
	if !ReactiveFont.Has(w, text) {
		return ErrNotReactive
	}
	if !target.Has(w, text) {
		return &FontError{
			Kind: InvalidReactiveFont,
			Text: text,
			Err:  &ecs.LookupError{Entity: text, Component: target.Name(), Err: ecs.ErrNoComponent},
		}
	}
	return nil
}

// CollectionOf finds the effective font collection of a text entity: the
// target of its UsingFont reference, or else the DefaultFont.
//
// A reference to an entity which does not exist or is not a font collection
// yields an InvalidFont error.
func CollectionOf(w *ecs.World, text ecs.Entity) (ecs.Entity, error) {
	collection, ok := usage.TargetOf(w, text)
	if !ok {
		if collection, ok = DefaultFont.Get(w); !ok {
			return 0, &FontError{Kind: CannotFindFont, Text: text}
		}
	}
	if !w.Alive(collection) {
		return 0, &FontError{
			Kind: InvalidFont,
			Text: text,
			Err:  &ecs.LookupError{Entity: collection, Component: FontCollection.Name(), Err: ecs.ErrNoEntity},
		}
	}
	if !FontCollection.Has(w, collection) {
		return 0, &FontError{
			Kind: InvalidFont,
			Text: text,
			Err:  &ecs.LookupError{Entity: collection, Component: FontCollection.Name(), Err: ecs.ErrNoComponent},
		}
	}
	return collection, nil
}

// ResolveFont computes the font handle for a text entity.
func ResolveFont(w *ecs.World, text ecs.Entity) (asset.Handle, error) {
	if err := checkText(w, text, ui.TextFont); err != nil {
		return 0, err
	}
	collection, err := CollectionOf(w, text)
	if err != nil {
		return 0, err
	}
	return SelectHandle(VariantsOf(w, collection), Bold.Has(w, text), Italic.Has(w, text)), nil
}

// ResolveSize computes the font size for a text entity: its FontSize
// override, or else the collection's DefaultFontSize. Sizes are not checked.
func ResolveSize(w *ecs.World, text ecs.Entity) (float32, error) {
	if err := checkText(w, text, ui.TextFont); err != nil {
		return 0, err
	}
	collection, err := CollectionOf(w, text)
	if err != nil {
		return 0, err
	}
	if size, ok := FontSize.Get(w, text); ok {
		return size, nil
	}
	size, _ := DefaultFontSize.Get(w, collection)
	return size, nil
}

// ResolveColor computes the text color for a text entity: its FontColor
// override, or else the collection's DefaultFontColor.
func ResolveColor(w *ecs.World, text ecs.Entity) (color.NRGBA, error) {
	if err := checkText(w, text, ui.TextColor); err != nil {
		return color.NRGBA{}, err
	}
	collection, err := CollectionOf(w, text)
	if err != nil {
		return color.NRGBA{}, err
	}
	if c, ok := FontColor.Get(w, text); ok {
		return c, nil
	}
	c, _ := DefaultFontColor.Get(w, collection)
	return c, nil
}

// --- Trigger handlers ------------------------------------------------------

func updateFont(w *ecs.World, text ecs.Entity) error {
	h, err := ResolveFont(w, text)
	if err != nil {
		if skipped(w, text, err) {
			return nil
		}
		return err
	}
	ui.TextFont.Mutate(w, text, func(fa *ui.FontAttr) {
		fa.Font = h
	})
	tracer().Debugf("text %v uses font %v", text, h)
	return nil
}

func updateFontSize(w *ecs.World, text ecs.Entity) error {
	size, err := ResolveSize(w, text)
	if err != nil {
		if skipped(w, text, err) {
			return nil
		}
		return err
	}
	ui.TextFont.Mutate(w, text, func(fa *ui.FontAttr) {
		fa.Size = size
	})
	tracer().Debugf("text %v has size %.1f", text, size)
	return nil
}

func updateFontColor(w *ecs.World, text ecs.Entity) error {
	c, err := ResolveColor(w, text)
	if err != nil {
		if skipped(w, text, err) {
			return nil
		}
		return err
	}
	ui.TextColor.Set(w, text, ui.ColorAttr{Color: c})
	tracer().Debugf("text %v has color %v", text, c)
	return nil
}
