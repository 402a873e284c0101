/*
Package font is for typeface and font handling.

We stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Go".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight and slant. An example is "Go Bold Italic".

* A "typecase" is a scaled font, i.e. a font in a certain size.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Fonts are parsed with golang.org/x/image/font/sfnt; typecases are created
from them with golang.org/x/image/font/opentype. The Go font family is
always available, without any file access.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'rfont.font'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.font")
}
