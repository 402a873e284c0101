/*
Package asset loads fonts in the background and hands out opaque handles
for them.

A handle is valid as soon as Load returns, even though the font may still
be loading. Clients store and compare handles; whoever needs the font data
asks the server for it. Completed loads are announced as donburi events of
type Loaded when the server is drained, usually once per update cycle.

Font names are resolved in this order:

  - "builtin:<family>/<variant>" names one of the fonts shipped with Go,
    e.g. "builtin:go/bold-italic"
  - a path to a font file, absolute or relative to one of the server's
    search directories
  - a system font, located with github.com/flopp/go-findfont

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package asset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'rfont.asset'.
func tracer() tracing.Trace {
	return tracing.Select("rfont.asset")
}
