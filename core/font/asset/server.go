package asset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/rfont/core"
	"github.com/npillmayer/rfont/core/font"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Handle is an opaque reference to a font asset. The zero handle refers
// to no font.
type Handle uint32

// IsZero checks if h is the zero handle.
func (h Handle) IsZero() bool {
	return h == 0
}

func (h Handle) String() string {
	if h == 0 {
		return "font#-"
	}
	return fmt.Sprintf("font#%d", uint32(h))
}

// LoadState is the state of a font asset.
type LoadState int

// Load states of font assets.
const (
	NotLoaded LoadState = iota
	Loading
	Loaded
	Failed
)

func (s LoadState) String() string {
	switch s {
	case NotLoaded:
		return "not-loaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// LoadEvent announces a finished load. Err is set for failed loads.
type LoadEvent struct {
	Handle Handle
	Name   string
	Err    error
}

// LoadedEvent is the donburi event type for finished loads.
var LoadedEvent = events.NewEventType[LoadEvent]()

// BuiltinPrefix starts the names of fonts shipped with Go.
const BuiltinPrefix = "builtin:"

// BuiltinName returns the asset name of a built-in font variant.
func BuiltinName(family string, v font.Variant) string {
	return BuiltinPrefix + font.NormalizeFontname(family) + "/" + v.String()
}

type fontAsset struct {
	name  string
	state LoadState
	font  *font.ScalableFont
	err   error
	ready chan struct{}
}

// Server loads font assets. It is safe for concurrent use.
type Server struct {
	mu        sync.Mutex
	dirs      []string
	next      Handle
	assets    map[Handle]*fontAsset
	byName    map[string]Handle
	completed []Handle
}

// NewServer creates a font asset server. Relative font paths are looked up
// in dirs, in order.
func NewServer(dirs ...string) *Server {
	return &Server{
		dirs:   dirs,
		assets: make(map[Handle]*fontAsset),
		byName: make(map[string]Handle),
	}
}

// Load starts loading a font and returns its handle immediately. Loading
// the same name twice yields the same handle.
func (s *Server) Load(name string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := assetKey(name)
	if h, ok := s.byName[key]; ok {
		return h
	}
	h := s.register(name, key)
	a := s.assets[h]
	a.state = Loading
	go func(a *fontAsset) {
		f, err := s.resolve(a.name)
		s.finish(h, f, err)
	}(a)
	tracer().Debugf("loading %s as %v", name, h)
	return h
}

// Add registers an already parsed font under name. Adding a name which is
// already present returns the existing handle and ignores f.
func (s *Server) Add(name string, f *font.ScalableFont) Handle {
	s.mu.Lock()
	key := assetKey(name)
	if h, ok := s.byName[key]; ok {
		s.mu.Unlock()
		return h
	}
	h := s.register(name, key)
	s.mu.Unlock()
	s.finish(h, f, nil)
	return h
}

// register must be called with s.mu held.
func (s *Server) register(name, key string) Handle {
	s.next++
	h := s.next
	s.assets[h] = &fontAsset{name: name, ready: make(chan struct{})}
	s.byName[key] = h
	return h
}

func (s *Server) finish(h Handle, f *font.ScalableFont, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.assets[h]
	if err != nil {
		a.state, a.err = Failed, err
		tracer().Errorf("font %s: %v", a.name, err)
	} else {
		a.state, a.font = Loaded, f
		tracer().Infof("font %s loaded as %v", a.name, h)
	}
	close(a.ready)
	s.completed = append(s.completed, h)
}

// Get returns the font for h, if it has finished loading.
func (s *Server) Get(h Handle) (*font.ScalableFont, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assets[h]; ok && a.state == Loaded {
		return a.font, true
	}
	return nil, false
}

// State returns the load state of h.
func (s *Server) State(h Handle) LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assets[h]; ok {
		return a.state
	}
	return NotLoaded
}

// Name returns the name h has been loaded with.
func (s *Server) Name(h Handle) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.assets[h]; ok {
		return a.name
	}
	return ""
}

// Await blocks until h has finished loading or ctx is done.
func (s *Server) Await(ctx context.Context, h Handle) (*font.ScalableFont, error) {
	s.mu.Lock()
	a, ok := s.assets[h]
	s.mu.Unlock()
	if !ok {
		return nil, core.Error(core.EMISSING, "no font asset %v", h)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-a.ready:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return a.font, a.err
}

// Drain publishes a LoadEvent for every load finished since the previous
// call into w. Subscribers see the events when they are processed, e.g. by
// LoadedEvent.ProcessEvents. Drain returns the number of published events.
func (s *Server) Drain(w donburi.World) int {
	s.mu.Lock()
	completed := s.completed
	s.completed = nil
	evs := make([]LoadEvent, len(completed))
	for i, h := range completed {
		evs[i] = LoadEvent{Handle: h, Name: s.assets[h].name, Err: s.assets[h].err}
	}
	s.mu.Unlock()
	for _, ev := range evs {
		LoadedEvent.Publish(w, ev)
	}
	return len(evs)
}

// --- Resolving font names --------------------------------------------------

func assetKey(name string) string {
	if strings.HasPrefix(name, BuiltinPrefix) {
		return strings.ToLower(name)
	}
	return filepath.Clean(strings.TrimSpace(name))
}

func (s *Server) resolve(name string) (*font.ScalableFont, error) {
	if strings.HasPrefix(name, BuiltinPrefix) {
		return loadBuiltin(strings.TrimPrefix(name, BuiltinPrefix))
	}
	if fpath, ok := s.lookupFile(name); ok {
		tracer().Debugf("%s is a font file", fpath)
		f, err := font.LoadOpenTypeFont(fpath)
		if err != nil {
			return nil, core.WrapError(err, core.EFONTLOAD, "cannot load font %s", name)
		}
		return f, nil
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil || fpath == "" {
		return nil, core.WrapError(err, core.EMISSING, "font not found: %s", name)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "cannot load font %s", name)
	}
	return f, nil
}

func (s *Server) lookupFile(name string) (string, bool) {
	candidates := []string{name}
	if !filepath.IsAbs(name) {
		for _, dir := range s.dirs {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return "", false
}

func loadBuiltin(spec string) (*font.ScalableFont, error) {
	family, variant, _ := strings.Cut(spec, "/")
	v := font.Regular
	switch strings.ToLower(variant) {
	case "", "regular":
	case "italic":
		v = font.Italic
	case "bold":
		v = font.Bold
	case "bold-italic", "bolditalic":
		v = font.BoldItalic
	default:
		return nil, core.Error(core.EMISSING, "no variant %q of built-in font %s", variant, family)
	}
	f, err := font.Builtin(family, v)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "no built-in font %s", spec)
	}
	return f, nil
}
