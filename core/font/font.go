package font

import (
	"fmt"
	"os"
	"path"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/cases"
)

// ScalableFont is a parsed font file, not yet scaled to a size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, or "internal" for built-in fonts
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a font scaled to a size.
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               font.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

// LoadOpenTypeFont reads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses TrueType or OpenType font data.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a typecase for a given point size. Sizes outside of
// 1pt…1000pt are considered an error.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	if fontsize < 1.0 || fontsize > 1000.0 {
		return nil, fmt.Errorf("font size must be 1pt < size < 1000pt, is %g", fontsize)
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: font.HintingNone,
	}
	face, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, err
	}
	return &TypeCase{scalableFontParent: sf, face: face, size: fontsize}, nil
}

// ScalableFontParent returns the font a typecase has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the typecase's size in points.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// Face returns the typecase as a font face, ready for drawing.
func (tc *TypeCase) Face() font.Face {
	return tc.face
}

// Metrics returns the typecase's metrics.
func (tc *TypeCase) Metrics() font.Metrics {
	return tc.face.Metrics()
}

// --- Built-in fonts --------------------------------------------------------

// Variant is one of the four style variants of a font family.
type Variant int

// Style variants, ordered like the fields of a font collection.
const (
	Regular Variant = iota
	Italic
	Bold
	BoldItalic
)

func (v Variant) String() string {
	switch v {
	case Regular:
		return "regular"
	case Italic:
		return "italic"
	case Bold:
		return "bold"
	case BoldItalic:
		return "bold-italic"
	}
	return "unknown"
}

// VariantOf returns the variant for a bold and an italic flag.
func VariantOf(bold, italic bool) Variant {
	switch {
	case italic && bold:
		return BoldItalic
	case italic:
		return Italic
	case bold:
		return Bold
	}
	return Regular
}

// Family names of the built-in fonts.
const (
	GoFamily     = "go"
	GoMonoFamily = "gomono"
)

var builtinTTF = map[string][4][]byte{
	GoFamily:     {goregular.TTF, goitalic.TTF, gobold.TTF, gobolditalic.TTF},
	GoMonoFamily: {gomono.TTF, gomonoitalic.TTF, gomonobold.TTF, gomonobolditalic.TTF},
}

var builtins struct {
	sync.Mutex
	fonts map[string]*ScalableFont
}

// Builtin returns a variant of a built-in font family. Built-in fonts are
// parsed once and shared.
func Builtin(family string, v Variant) (*ScalableFont, error) {
	family = NormalizeFontname(family)
	ttfs, ok := builtinTTF[family]
	if !ok || v < Regular || v > BoldItalic {
		return nil, fmt.Errorf("no built-in font %s/%s", family, v)
	}
	key := family + "-" + v.String()
	builtins.Lock()
	defer builtins.Unlock()
	if f, ok := builtins.fonts[key]; ok {
		return f, nil
	}
	f, err := ParseOpenTypeFont(ttfs[v])
	if err != nil {
		return nil, err // this cannot happen
	}
	f.Filepath = "internal"
	if builtins.fonts == nil {
		builtins.fonts = make(map[string]*ScalableFont)
	}
	builtins.fonts[key] = f
	tracer().Debugf("parsed built-in font %s as %q", key, f.Fontname)
	return f, nil
}

// IsBuiltin checks if family names a built-in font family.
func IsBuiltin(family string) bool {
	_, ok := builtinTTF[NormalizeFontname(family)]
	return ok
}

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	f, err := Builtin(GoFamily, Regular)
	if err != nil {
		panic("cannot load fallback font") // this cannot happen
	}
	return f
}

// --- Font names ------------------------------------------------------------

// NormalizeFontname creates a lookup key from a font name or font file name:
// surrounding whitespace and file extensions are dropped, inner blanks are
// replaced by underscores, and the result is case-folded.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(fname)
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		switch strings.ToLower(fname[dot:]) {
		case ".ttf", ".otf", ".ttc", ".woff":
			fname = fname[:dot]
		}
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return cases.Fold().String(fname)
}

// styleHints are name fragments telling the style or weight of a font face.
// Longer fragments come first, so that "semibold" is not taken for "bold".
var styleHints = []struct {
	fragment string
	italic   bool
	weight   font.Weight
}{
	{"extrabold", false, font.WeightExtraBold},
	{"ultrabold", false, font.WeightExtraBold},
	{"xbold", false, font.WeightExtraBold},
	{"semibold", false, font.WeightSemiBold},
	{"demibold", false, font.WeightSemiBold},
	{"black", false, font.WeightBlack},
	{"bold", false, font.WeightBold},
	{"extralight", false, font.WeightExtraLight},
	{"xlight", false, font.WeightExtraLight},
	{"light", false, font.WeightLight},
	{"medium", false, font.WeightMedium},
	{"italic", true, 0},
	{"oblique", true, 0},
}

// GuessStyleAndWeight derives a font's style and weight from its file or
// font name, e.g. "FiraSans-SemiBoldItalic.otf". The first weight fragment
// found wins.
func GuessStyleAndWeight(fontfilename string) (font.Style, font.Weight) {
	name := NormalizeFontname(fontfilename)
	style, weight := font.StyleNormal, font.WeightNormal
	weighted := false
	for _, hint := range styleHints {
		if !strings.Contains(name, hint.fragment) {
			continue
		}
		name = strings.Replace(name, hint.fragment, "", 1)
		if hint.italic {
			style = font.StyleItalic
		} else if !weighted {
			weight, weighted = hint.weight, true
		}
	}
	if !weighted && strings.HasSuffix(name, "-b") {
		weight = font.WeightBold
	}
	return style, weight
}

// GuessVariant maps a font file name to one of the four style variants.
// Light weights count as regular.
func GuessVariant(fontfilename string) Variant {
	style, weight := GuessStyleAndWeight(fontfilename)
	return VariantOf(weight >= font.WeightSemiBold, style != font.StyleNormal)
}
