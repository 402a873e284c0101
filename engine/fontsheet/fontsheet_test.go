package fontsheet

import (
	"image/color"
	"testing"

	"github.com/npillmayer/rfont/core"
	"github.com/npillmayer/rfont/core/font"
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/rfont/engine/reactive"
	"github.com/npillmayer/rfont/engine/ui"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheetText = `
:root   { default-font: body; }
body    { font-family: go; font-size: 18px; color: #333; }
heading {
    src-regular: "fonts/Heading-Regular.ttf";
    src-bold:    'fonts/Heading-Bold.ttf';
    font-size:   28pt;
    color:       rgb(120, 0, 60);
}
`

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	sheet, err := Parse(sheetText)
	require.NoError(t, err)
	assert.Equal(t, "body", sheet.Default)
	require.Len(t, sheet.Collections, 2)
	body, ok := sheet.Lookup("body")
	require.True(t, ok)
	assert.Equal(t, "go", body.Family)
	assert.Equal(t, float32(18), body.Size)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, body.Color)
	heading, ok := sheet.Lookup("heading")
	require.True(t, ok)
	assert.Equal(t, "fonts/Heading-Regular.ttf", heading.Sources[font.Regular])
	assert.Equal(t, "fonts/Heading-Bold.ttf", heading.Sources[font.Bold])
	assert.Empty(t, heading.Sources[font.Italic])
	assert.Equal(t, float32(28), heading.Size)
	assert.Equal(t, color.NRGBA{R: 120, B: 60, A: 0xff}, heading.Color)
}

func TestParseGroupedSelectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	sheet, err := Parse(`a, b { font-size: 12; } b { color: navy; }`)
	require.NoError(t, err)
	require.Len(t, sheet.Collections, 2)
	b, _ := sheet.Lookup("b")
	assert.Equal(t, float32(12), b.Size)
	assert.Equal(t, color.NRGBA{B: 0x80, A: 0xff}, b.Color)
	a, _ := sheet.Lookup("a")
	assert.Nil(t, a.Color)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	for _, text := range []string{
		`body { font-weight: bold; }`,
		`body { font-size: large; }`,
		`body { color: no-such-color; }`,
		`:root { default-font: missing; }`,
		`:root { line-height: 2; }`,
	} {
		_, err := Parse(text)
		require.Error(t, err, text)
		assert.Equal(t, core.EINVALID, core.Code(err), text)
	}
}

func TestParseColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	for input, expected := range map[string]color.NRGBA{
		"#fff":                  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		"#102030":               {R: 0x10, G: 0x20, B: 0x30, A: 0xff},
		"#10203080":             {R: 0x10, G: 0x20, B: 0x30, A: 0x80},
		"rgb(1, 2, 3)":          {R: 1, G: 2, B: 3, A: 0xff},
		"rgba(1, 2, 3, 0)":      {R: 1, G: 2, B: 3},
		"rgba(255,255,255,1.0)": {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		"Purple":                {R: 0x80, B: 0x80, A: 0xff},
	} {
		c, err := ParseColor(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, c, input)
	}
	for _, input := range []string{"#12", "#ggg", "rgb(1,2)", "rgb(1,2,300)", "rgba(1,2,3,2)", "plaid"} {
		_, err := ParseColor(input)
		assert.Error(t, err, input)
	}
}

func TestParseSize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	for input, expected := range map[string]float32{"12": 12, "12.5pt": 12.5, " 9px ": 9} {
		size, err := ParseSize(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, size, input)
	}
	_, err := ParseSize("12em")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	w := ecs.NewWorld()
	assets := asset.NewServer()
	reactive.NewPlugin(reactive.Options{Assets: assets}).Install(w)
	sheet, err := Parse(sheetText)
	require.NoError(t, err)
	collections := Apply(w, assets, sheet)
	require.Len(t, collections, 2)
	def, ok := reactive.DefaultFont.Get(w)
	require.True(t, ok)
	assert.Equal(t, collections["body"], def)
	//
	heading := reactive.VariantsOf(w, collections["heading"])
	assert.Equal(t, heading[font.Regular], heading[font.Italic], "missing variants use regular")
	assert.NotEqual(t, heading[font.Regular], heading[font.Bold])
	//
	text := reactive.SpawnText(w, "Hello", reactive.Bold.Bundle())
	w.Update()
	fa, _ := ui.TextFont.Get(w, text)
	assert.Equal(t, float32(18), fa.Size)
	body := reactive.VariantsOf(w, collections["body"])
	assert.Equal(t, body[font.Bold], fa.Font)
}

func TestReapplyUpdatesCollections(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	w := ecs.NewWorld()
	assets := asset.NewServer()
	reactive.NewPlugin(reactive.Options{Assets: assets}).Install(w)
	sheet, err := Parse(sheetText)
	require.NoError(t, err)
	first := Apply(w, assets, sheet)
	text := reactive.SpawnText(w, "Hello")
	reactive.Use(w, text, first["heading"])
	w.Update()
	fa, _ := ui.TextFont.Get(w, text)
	require.Equal(t, float32(28), fa.Size)
	//
	sheet, err = Parse(`heading { src-regular: "fonts/Heading-Regular.ttf"; font-size: 32; color: white; }`)
	require.NoError(t, err)
	second := Apply(w, assets, sheet)
	assert.Equal(t, first["heading"], second["heading"])
	assert.Equal(t, 2, reactive.FontCollection.Count(w))
	w.Update()
	fa, _ = ui.TextFont.Get(w, text)
	assert.Equal(t, float32(32), fa.Size)
	tc, _ := ui.TextColor.Get(w, text)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, tc.Color)
	variants := reactive.VariantsOf(w, second["heading"])
	assert.Equal(t, variants[font.Regular], variants[font.Bold], "dropped bold source falls back to regular")
}

func TestFamilyFileFillsGuessedVariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.fontsheet")
	defer teardown()
	//
	assets := asset.NewServer()
	sheet, err := Parse(`
		mixed { font-family: "fonts/Text-Bold.ttf"; src-regular: "fonts/Text-Regular.ttf"; }
		slanted { font-family: "fonts/Text-Italic.ttf"; }
	`)
	require.NoError(t, err)
	mixed, _ := sheet.Lookup("mixed")
	spec := specFor(assets, mixed)
	bold, regular := assets.Load("fonts/Text-Bold.ttf"), assets.Load("fonts/Text-Regular.ttf")
	assert.Equal(t, bold, spec.Variants[font.Bold])
	assert.Equal(t, regular, spec.Variants[font.Regular])
	assert.Equal(t, regular, spec.Variants[font.Italic], "missing variants use regular")
	assert.Equal(t, regular, spec.Variants[font.BoldItalic])
	//
	slanted, _ := sheet.Lookup("slanted")
	spec = specFor(assets, slanted)
	italic := assets.Load("fonts/Text-Italic.ttf")
	for v, h := range spec.Variants {
		assert.Equal(t, italic, h, "variant %d", v)
	}
}
