/*
Package fontsheet configures font collections from CSS-like stylesheets.

Every rule declares a font collection, named by its selector. The pseudo
selector ':root' configures the default collection:

	:root   { default-font: body; }
	body    { font-family: go; font-size: 18px; color: #333; }
	heading {
	    src-regular: "fonts/Heading-Regular.ttf";
	    src-bold:    "fonts/Heading-Bold.ttf";
	    font-size:   28pt;
	    color:       rgb(120, 0, 60);
	}

Recognized properties are font-family, src-regular, src-italic, src-bold,
src-bold-italic, font-size and color. A font-family is either a built-in
family, providing all four variants, or a font file or system font name,
which provides the variant guessed from its name. The src properties name
font files or system fonts per variant, overriding font-family. Variants
without a source use the regular variant, or else any declared one. Colors
may be given as hex values, rgb()/rgba() or SVG color names.

Applying a sheet a second time updates existing collections in place, which
re-styles all text using them.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontsheet

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rfont.fontsheet'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.fontsheet")
}
