package fontsheet

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/rfont/core"
	"github.com/npillmayer/rfont/core/font"
	"golang.org/x/image/colornames"
)

// Collection is the declaration of a font collection.
type Collection struct {
	Name    string
	Family  string
	Sources [4]string   // per font.Variant, may be empty
	Size    float32     // 0 if not declared
	Color   color.Color // nil if not declared
}

// Sheet is a parsed font sheet.
type Sheet struct {
	Collections []*Collection
	Default     string // name of the default collection, may be empty
}

// Lookup finds a collection declaration by name.
func (sh *Sheet) Lookup(name string) (*Collection, bool) {
	for _, c := range sh.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

var sourceProperties = map[string]font.Variant{
	"src-regular":     font.Regular,
	"src-italic":      font.Italic,
	"src-bold":        font.Bold,
	"src-bold-italic": font.BoldItalic,
}

// Parse reads a font sheet. Errors carry code core.EINVALID.
func Parse(text string) (*Sheet, error) {
	stylesheet, err := parser.Parse(text)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font sheet is not valid CSS")
	}
	sheet := &Sheet{}
	for _, rule := range stylesheet.Rules {
		if rule.Kind != css.QualifiedRule {
			tracer().Infof("font sheet: ignoring at-rule %s", rule.Name)
			continue
		}
		for _, sel := range rule.Selectors {
			sel = strings.TrimSpace(sel)
			if sel == ":root" {
				if err := parseRoot(sheet, rule.Declarations); err != nil {
					return nil, err
				}
				continue
			}
			c, ok := sheet.Lookup(sel)
			if !ok {
				c = &Collection{Name: sel}
				sheet.Collections = append(sheet.Collections, c)
			}
			if err := parseDeclarations(c, rule.Declarations); err != nil {
				return nil, err
			}
		}
	}
	if sheet.Default != "" {
		if _, ok := sheet.Lookup(sheet.Default); !ok {
			return nil, core.Error(core.EINVALID, "default font %q is not declared", sheet.Default)
		}
	}
	tracer().Debugf("font sheet declares %d collections", len(sheet.Collections))
	return sheet, nil
}

func parseRoot(sheet *Sheet, decls []*css.Declaration) error {
	for _, decl := range decls {
		switch decl.Property {
		case "default-font":
			sheet.Default = unquote(decl.Value)
		default:
			return core.Error(core.EINVALID, "unknown property %q for :root", decl.Property)
		}
	}
	return nil
}

func parseDeclarations(c *Collection, decls []*css.Declaration) error {
	for _, decl := range decls {
		value := unquote(decl.Value)
		if v, ok := sourceProperties[decl.Property]; ok {
			c.Sources[v] = value
			continue
		}
		switch decl.Property {
		case "font-family":
			c.Family = value
		case "font-size":
			size, err := ParseSize(value)
			if err != nil {
				return core.WrapError(err, core.EINVALID, "collection %s: invalid font-size", c.Name)
			}
			c.Size = size
		case "color":
			col, err := ParseColor(value)
			if err != nil {
				return core.WrapError(err, core.EINVALID, "collection %s: invalid color", c.Name)
			}
			c.Color = col
		default:
			return core.Error(core.EINVALID, "collection %s: unknown property %q", c.Name, decl.Property)
		}
	}
	return nil
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseSize reads a font size in points. Units 'pt' and 'px' are accepted
// and treated alike.
func ParseSize(s string) (float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "pt"), "px")
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// ParseColor reads a color as '#rgb', '#rrggbb', '#rrggbbaa', 'rgb(r,g,b)',
// 'rgba(r,g,b,a)' with alpha in [0…1], or an SVG color name.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBAModel.Convert(c).(color.NRGBA), nil
	}
	return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("malformed hex color #%s", h)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func parseRGBFunc(s string) (color.NRGBA, error) {
	open, close := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if close < open {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", s)
	}
	args := strings.Split(s[open+1:close], ",")
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, fmt.Errorf("color %q needs 3 or 4 components", s)
	}
	var comp [4]uint8
	comp[3] = 0xff
	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if i == 3 {
			a, err := strconv.ParseFloat(arg, 64)
			if err != nil || a < 0 || a > 1 {
				return color.NRGBA{}, fmt.Errorf("alpha of %q must be in [0…1]", s)
			}
			comp[3] = uint8(a*255 + 0.5)
			continue
		}
		n, err := strconv.ParseUint(arg, 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color component of %q: %w", s, err)
		}
		comp[i] = uint8(n)
	}
	return color.NRGBA{R: comp[0], G: comp[1], B: comp[2], A: comp[3]}, nil
}
