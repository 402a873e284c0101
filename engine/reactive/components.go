package reactive

import (
	"image/color"

	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
)

// Text styling. Only entities tagged ReactiveFont are styled.
var (
	ReactiveFont = ecs.NewTag("ReactiveFont")
	Bold         = ecs.NewTag("Bold")
	Italic       = ecs.NewTag("Italic")
	// FontSize overrides the collection's DefaultFontSize.
	FontSize = ecs.NewComponent[float32]("FontSize").WithDefault(15)
	// FontColor overrides the collection's DefaultFontColor.
	FontColor = ecs.NewComponent[color.NRGBA]("FontColor")
)

// usage links text entities to the collection they use. Its back-references
// never report empty, so that a collection keeps its UsedBy component (and
// the other required components) after the last user has left.
var usage = ecs.NewRelationship[ecs.NeverEmptyVec[ecs.Entity]]("UsingFont", "UsedBy")

var (
	// UsingFont is the collection a text entity uses. Without it, DefaultFont applies.
	UsingFont = usage.Source
	// UsedBy holds all text entities with a UsingFont reference to a collection.
	UsedBy = usage.Target
)

// Font collections.
var (
	RegularFont      = ecs.NewComponent[asset.Handle]("RegularFont")
	ItalicFont       = ecs.NewComponent[asset.Handle]("ItalicFont")
	BoldFont         = ecs.NewComponent[asset.Handle]("BoldFont")
	BoldItalicFont   = ecs.NewComponent[asset.Handle]("BoldItalicFont")
	DefaultFontSize  = ecs.NewComponent[float32]("DefaultFontSize").WithDefault(15)
	DefaultFontColor = ecs.NewComponent[color.NRGBA]("DefaultFontColor").WithDefault(color.NRGBA{A: 0xff})
	// CollectionName is an optional name for a collection, used for lookups by name.
	CollectionName = ecs.NewComponent[string]("CollectionName")
	// FontCollection marks a font collection. Its companions are inserted
	// with default values whenever they are missing.
	FontCollection = ecs.NewTag("FontCollection").Require(
		RegularFont.Bundle(),
		ItalicFont.Bundle(),
		BoldFont.Bundle(),
		BoldItalicFont.Bundle(),
		DefaultFontSize.Bundle(),
		DefaultFontColor.Bundle(),
		UsedBy.Bundle(),
	)
)

// handleFields lists the variant fields of a collection, indexed by font.Variant.
// orphaned marks texts whose UsingFont reference was stripped by the despawn
// of its target. The mark lasts until the end of the current update cycle.
var orphaned = ecs.NewTag("OrphanedFontUser")

var handleFields = [4]*ecs.Component[asset.Handle]{RegularFont, ItalicFont, BoldFont, BoldItalicFont}

// DefaultFont is the collection used by text entities without a UsingFont reference.
var DefaultFont = ecs.NewResource[ecs.Entity]("DefaultFont")

// Events requesting re-resolution of a text entity's styling.
var (
	UpdateFont      = ecs.NewEvent("UpdateFont")
	UpdateFontSize  = ecs.NewEvent("UpdateFontSize")
	UpdateFontColor = ecs.NewEvent("UpdateFontColor")
)
