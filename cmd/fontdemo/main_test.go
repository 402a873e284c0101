package main

import (
	"testing"

	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/reactive"
	"github.com/npillmayer/rfont/engine/ui"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, intp *Intp, line string) {
	cmd, err := parseCommand(line)
	require.NoError(t, err, line)
	quit, err := intp.execute(cmd)
	require.NoError(t, err, line)
	require.False(t, quit, line)
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.reactive")
	defer teardown()
	//
	cmd, err := parseCommand("use:2:gomono")
	require.NoError(t, err)
	assert.Equal(t, USE, cmd.code)
	assert.Equal(t, "2", cmd.arg(0))
	assert.Equal(t, "gomono", cmd.arg(1))
	assert.Equal(t, "", cmd.arg(2))
	_, err = parseCommand("frobnicate")
	assert.Error(t, err)
}

func TestDemoCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rfont.reactive")
	defer teardown()
	//
	intp := NewIntp(asset.NewServer())
	w := intp.w
	first := intp.texts[0]
	fa, _ := ui.TextFont.Get(w, first)
	require.Equal(t, float32(20), fa.Size)
	//
	run(t, intp, "size:+")
	fa, _ = ui.TextFont.Get(w, first)
	assert.Equal(t, float32(21), fa.Size)
	//
	run(t, intp, "color:+")
	tc, _ := ui.TextColor.Get(w, first)
	assert.Equal(t, palette[5].c, tc.Color)
	overridden, _ := ui.TextColor.Get(w, intp.texts[3])
	assert.NotEqual(t, palette[5].c, overridden.Color)
	//
	run(t, intp, "bold:1")
	assert.True(t, reactive.Bold.Has(w, first))
	run(t, intp, "bold:1")
	assert.False(t, reactive.Bold.Has(w, first))
	//
	run(t, intp, "use:1:gomono")
	mono, ok := reactive.CollectionByName(w, "gomono")
	require.True(t, ok)
	assert.Contains(t, reactive.UsersOf(w, mono), first)
	run(t, intp, "fontsize:1:30pt")
	fa, _ = ui.TextFont.Get(w, first)
	assert.Equal(t, float32(30), fa.Size)
	run(t, intp, "fontsize:1")
	fa, _ = ui.TextFont.Get(w, first)
	assert.Equal(t, float32(21), fa.Size)
	//
	run(t, intp, "despawn:gomono")
	assert.False(t, reactive.UsingFont.Has(w, first))
	_, err := intp.execute(Command{code: USE, args: []string{"1", "gomono"}})
	assert.Error(t, err)
	_, err = intp.execute(Command{code: BOLD, args: []string{"99"}})
	assert.Error(t, err)
}
