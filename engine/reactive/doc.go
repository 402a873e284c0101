/*
Package reactive styles text entities from shared font collections and keeps
the styling up to date.

Text entities tagged ReactiveFont get their font, size and color resolved
from a font collection: the one they use explicitly (UsingFont), or else the
collection registered as DefaultFont. Per-text overrides (FontSize,
FontColor) win over the collection's defaults; the Bold and Italic tags
select one of the collection's four font variants.

Resolution results are written to the text's ui.TextFont and ui.TextColor
components. They are recomputed whenever an input changes:

  - structural changes (adding or removing tags, overrides or the
    UsingFont reference) are observed immediately and queued as
    UpdateFont, UpdateFontSize or UpdateFontColor triggers
  - value changes (overrides, collection fields, the DefaultFont
    resource, finished font loads) are picked up once per update cycle
    by change-scanning systems

Queued triggers are de-duplicated per flush, and resolutions only read
their inputs, so re-resolving is always safe.

Resolution errors are *FontError values, reported to the world's error
handler. They never stop other resolutions; the affected text keeps its
previous styling.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reactive

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rfont.reactive'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.reactive")
}
