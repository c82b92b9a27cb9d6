package assets

import (
	"fmt"
	"image/color"
	"sort"
	"sync"
)

// Frame describes one visual frame. Hosts decide how to draw it: the ebiten
// host renders a tinted rectangle, the terminal host a glyph.
type Frame struct {
	Name   string
	Width  int
	Height int
	Color  color.Color
	Glyph  rune
}

// Registry maps frame names to frames. It is filled before the first tick and
// read-only afterwards; every frame a level references is resolved up front.
type Registry struct {
	mu     sync.RWMutex
	frames map[string]Frame
}

func NewRegistry() *Registry {
	return &Registry{frames: make(map[string]Frame)}
}

// Register adds or replaces a frame.
func (r *Registry) Register(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames[f.Name] = f
}

func (r *Registry) Frame(name string) (Frame, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.frames[name]
	return f, ok
}

// MustFrame panics when the frame is missing. A missing frame is a packaging
// bug, not something the simulation can recover from.
func (r *Registry) MustFrame(name string) Frame {
	f, ok := r.Frame(name)
	if !ok {
		panic(fmt.Sprintf("assets: missing frame %q", name))
	}
	return f
}

// Names returns all registered frame names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.frames))
	for n := range r.frames {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.frames)
}
