/*
Command fontdemo is an interactive playground for reactive font styling.

It sets up two font collections built from the Go fonts, spawns a couple of
text entities using them, and lets the user restyle collections and texts
from a command line. After every command the styling of all texts is
re-resolved and printed.
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/rfont/core"
	"github.com/npillmayer/rfont/core/font"
	"github.com/npillmayer/rfont/core/font/asset"
	"github.com/npillmayer/rfont/engine/ecs"
	"github.com/npillmayer/rfont/engine/fontsheet"
	"github.com/npillmayer/rfont/engine/reactive"
	"github.com/npillmayer/rfont/engine/ui"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'rfont.reactive'
func tracer() tracing.Trace {
	return tracing.Select("rfont.reactive")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.rfont.reactive": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	sheet := flag.String("sheet", "", "Font sheet to apply at start")
	flag.Parse()
	switch strings.ToLower(*tlevel) {
	case "debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	default:
		tracer().SetTraceLevel(tracing.LevelError)
	}
	pterm.Info.Println("Welcome to the reactive font demo") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("font > ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := NewIntp(asset.NewServer())
	intp.repl = repl
	if *sheet != "" {
		if err := intp.applySheet(*sheet); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Type 'help' for a list of commands, quit with <ctrl>D")
	intp.show()
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- Palette ---------------------------------------------------------------

var palette = []struct {
	name string
	c    color.NRGBA
}{
	{"green", color.NRGBA{R: 162, G: 209, B: 133, A: 0xff}},
	{"lime", color.NRGBA{R: 133, G: 209, B: 155, A: 0xff}},
	{"blue", color.NRGBA{R: 133, G: 209, B: 209, A: 0xff}},
	{"deep-blue", color.NRGBA{R: 133, G: 150, B: 209, A: 0xff}},
	{"purple", color.NRGBA{R: 191, G: 133, B: 209, A: 0xff}},
	{"pink", color.NRGBA{R: 209, G: 133, B: 168, A: 0xff}},
}

// currentColor is an index into palette.
var currentColor = ecs.NewResource[int]("CurrentFontColor")

func cycleColor(w *ecs.World, step int) {
	i, _ := currentColor.Get(w)
	currentColor.Insert(w, (i+step+len(palette))%len(palette))
}

func updateDefaultColor(w *ecs.World, _ ecs.Tick) {
	i, _ := currentColor.Get(w)
	for _, c := range reactive.FontCollection.Entities(w) {
		reactive.DefaultFontColor.Set(w, c, palette[i].c)
	}
}

// --- Interpreter -----------------------------------------------------------

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	w      *ecs.World
	assets *asset.Server
	texts  []ecs.Entity
}

// NewIntp creates a world with two font collections and a handful of texts.
func NewIntp(assets *asset.Server) *Intp {
	w := ecs.NewWorld()
	w.SetErrorHandler(func(err error) {
		pterm.Error.Println(core.UserMessage(err))
		tracer().Debugf("%v", err)
	})
	reactive.NewPlugin(reactive.Options{Assets: assets}).Install(w)
	w.AddSystem(ecs.NewSystem("update-default-color", -10, updateDefaultColor),
		currentColor.ExistsAndChanged())
	intp := &Intp{w: w, assets: assets}
	//
	sans := reactive.BuiltinSpec(assets, font.GoFamily)
	sans.Size = 20
	sans.Color = palette[4].c
	reactive.SetDefault(w, reactive.SpawnCollection(w, sans))
	mono := reactive.BuiltinSpec(assets, font.GoMonoFamily)
	mono.Size = 20
	mono.Color = palette[4].c
	monoC := reactive.SpawnCollection(w, mono)
	currentColor.Insert(w, 4)
	//
	intp.spawn("Hello there")
	intp.spawn("I did a cool thing!", reactive.Bold.Bundle(), reactive.Italic.Bundle())
	intp.spawn("And came up with a way of storing fonts.", reactive.Bold.Bundle())
	intp.spawn("Override color and size on the text itself.",
		reactive.FontSize.With(25), reactive.FontColor.With(color.NRGBA{R: 94, G: 145, B: 136, A: 0xff}))
	mono1 := intp.spawn("This one uses the mono collection.",
		reactive.FontColor.With(color.NRGBA{R: 102, G: 51, B: 153, A: 0xff}))
	reactive.Use(w, mono1, monoC)
	w.Update()
	return intp
}

func (intp *Intp) spawn(s string, bundles ...ecs.Bundle) ecs.Entity {
	e := reactive.SpawnText(intp.w, s, bundles...)
	intp.texts = append(intp.texts, e)
	return e
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
		intp.show()
	}
	pterm.Info.Println("Good bye!")
}

// Op codes
const (
	QUIT int = iota
	HELP
	SHOW
	SIZE
	COLOR
	BOLD
	ITALIC
	USE
	UNUSE
	DEFAULT
	FONTSIZE
	DESPAWN
	SHEET
)

var opcodes = map[string]int{
	"quit": QUIT, "help": HELP, "list": SHOW, "show": SHOW,
	"size": SIZE, "color": COLOR, "bold": BOLD, "italic": ITALIC,
	"use": USE, "unuse": UNUSE, "default": DEFAULT, "fontsize": FONTSIZE,
	"despawn": DESPAWN, "sheet": SHEET,
}

// Command is a parsed input line of the form op[:arg[:arg]].
type Command struct {
	code int
	args []string
}

func (cmd Command) arg(i int) string {
	if len(cmd.args) > i {
		return cmd.args[i]
	}
	return ""
}

func parseCommand(line string) (Command, error) {
	c := strings.Split(strings.TrimSpace(line), ":")
	code, ok := opcodes[strings.ToLower(c[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q, try 'help'", c[0])
	}
	tracer().Debugf("parse command = %v", c)
	return Command{code: code, args: c[1:]}, nil
}

func (intp *Intp) execute(cmd Command) (bool, error) {
	w := intp.w
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
		return false, nil
	case SHOW:
	case SIZE:
		step := float32(1)
		if cmd.arg(0) == "-" {
			step = -1
		}
		for _, c := range reactive.FontCollection.Entities(w) {
			reactive.DefaultFontSize.Mutate(w, c, func(size *float32) { *size += step })
		}
	case COLOR:
		switch cmd.arg(0) {
		case "", "+", "next":
			cycleColor(w, 1)
		case "-", "prev":
			cycleColor(w, -1)
		default:
			return false, fmt.Errorf("color expects + or -")
		}
	case BOLD, ITALIC:
		e, err := intp.text(cmd.arg(0))
		if err != nil {
			return false, err
		}
		tag := reactive.Bold
		if cmd.code == ITALIC {
			tag = reactive.Italic
		}
		if !tag.Remove(w, e) {
			tag.Add(w, e)
		}
	case USE:
		e, err := intp.text(cmd.arg(0))
		if err != nil {
			return false, err
		}
		c, err := intp.collection(cmd.arg(1))
		if err != nil {
			return false, err
		}
		reactive.Use(w, e, c)
	case UNUSE:
		e, err := intp.text(cmd.arg(0))
		if err != nil {
			return false, err
		}
		reactive.Unuse(w, e)
	case DEFAULT:
		if cmd.arg(0) == "" {
			reactive.ClearDefault(w)
			break
		}
		c, err := intp.collection(cmd.arg(0))
		if err != nil {
			return false, err
		}
		reactive.SetDefault(w, c)
	case FONTSIZE:
		e, err := intp.text(cmd.arg(0))
		if err != nil {
			return false, err
		}
		if cmd.arg(1) == "" {
			reactive.FontSize.Remove(w, e)
			break
		}
		size, err := fontsheet.ParseSize(cmd.arg(1))
		if err != nil {
			return false, err
		}
		reactive.FontSize.Insert(w, e, size)
	case DESPAWN:
		c, err := intp.collection(cmd.arg(0))
		if err != nil {
			return false, err
		}
		w.Despawn(c)
	case SHEET:
		if err := intp.applySheet(cmd.arg(0)); err != nil {
			return false, err
		}
	}
	w.Update()
	return false, nil
}

func (intp *Intp) text(arg string) (ecs.Entity, error) {
	i, err := strconv.Atoi(arg)
	if err != nil || i < 1 || i > len(intp.texts) {
		return 0, fmt.Errorf("text number must be in 1…%d", len(intp.texts))
	}
	return intp.texts[i-1], nil
}

func (intp *Intp) collection(name string) (ecs.Entity, error) {
	if c, ok := reactive.CollectionByName(intp.w, font.NormalizeFontname(name)); ok {
		return c, nil
	}
	if c, ok := reactive.CollectionByName(intp.w, name); ok {
		return c, nil
	}
	return 0, core.Error(core.EMISSING, "no font collection named %q", name)
}

func (intp *Intp) applySheet(filename string) error {
	if filename == "" {
		return errors.New("sheet expects a file name")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read font sheet %s", filename)
	}
	sheet, err := fontsheet.Parse(string(data))
	if err != nil {
		return err
	}
	collections := fontsheet.Apply(intp.w, intp.assets, sheet)
	tracer().Infof("font sheet %s configured %d collections", filename, len(collections))
	intp.w.Update()
	return nil
}

// --- Output ----------------------------------------------------------------

func (intp *Intp) show() {
	data := pterm.TableData{{"#", "Text", "Collection", "Font", "Size", "Color", "Advance"}}
	for i, e := range intp.texts {
		if !intp.w.Alive(e) {
			continue
		}
		row := []string{strconv.Itoa(i + 1)}
		content, _ := ui.Text.Get(intp.w, e)
		row = append(row, content.Value, intp.collectionName(e))
		line, err := ui.Prepare(intp.w, intp.assets, e)
		if err != nil {
			tracer().Debugf("%v", err)
			line.Fontname = "(" + intp.assets.State(mustFont(intp.w, e)).String() + ")"
		}
		row = append(row, line.Fontname, fmt.Sprintf("%.1f", line.Size),
			fmt.Sprintf("#%02x%02x%02x", line.Color.R, line.Color.G, line.Color.B),
			line.Advance.String())
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		tracer().Errorf("%v", err)
	}
}

func mustFont(w *ecs.World, e ecs.Entity) asset.Handle {
	fa, _ := ui.TextFont.Get(w, e)
	return fa.Font
}

func (intp *Intp) collectionName(e ecs.Entity) string {
	c, err := reactive.CollectionOf(intp.w, e)
	if err != nil {
		return "-"
	}
	name, _ := reactive.CollectionName.Get(intp.w, c)
	if !reactive.UsingFont.Has(intp.w, e) {
		name += " (default)"
	}
	return name
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	list                     show all texts with their resolved styling
	size:+ | size:-          grow or shrink the default size of all collections
	color:+ | color:-        cycle the default color of all collections
	bold:N | italic:N        toggle a style tag on text N
	use:N:collection         make text N use a collection
	unuse:N                  make text N use the default collection
	default:collection       set the default collection, empty to clear
	fontsize:N:size          set a size override on text N, empty to remove
	despawn:collection       remove a collection
	sheet:file               apply a font sheet
	quit                     leave
	`)
}
