package engine

import (
	"context"
	"os/exec"
	"sync"

	"github.com/renderfig/renderfig/pkg/diagram"
)

// resolution is the lookup state of a type tag. A tag absent from the
// registry map is unresolved; one lookup transitions it to loaded or
// notFound, permanently.
type resolution int

const (
	resolutionLoaded resolution = iota
	resolutionNotFound
)

type registryEntry struct {
	state resolution
	spec  *Spec
}

// Loader resolves engines for tags with no registered engine, typically by
// probing the environment. Returning (nil, error) or (nil, nil) means the tag
// has no engine; the registry memoizes that outcome and never asks again.
type Loader interface {
	Load(name string) (*Spec, error)
}

// Registry maps diagram type tags to engines. Built-in engines are registered
// eagerly; unknown tags go through the Loader exactly once, with both
// positive and negative outcomes memoized. Documents full of blocks with an
// unsupported tag pay the load attempt once, not per block.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
	loader  Loader
}

// NewRegistry creates a registry with the built-in engines registered and the
// given loader for unknown tags. A nil loader disables dynamic resolution.
func NewRegistry(loader Loader) *Registry {
	r := &Registry{
		entries: make(map[string]registryEntry),
		loader:  loader,
	}
	for _, spec := range Builtins() {
		r.Register(spec)
	}
	return r
}

// Register adds or replaces an engine under its name.
func (r *Registry) Register(spec *Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[spec.Name] = registryEntry{state: resolutionLoaded, spec: spec}
}

// Resolve returns the engine for a type tag. The first lookup of an unknown
// tag consults the loader and memoizes the result, including failure.
func (r *Registry) Resolve(name string) (*Spec, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[name]; ok {
		return e.spec, e.state == resolutionLoaded
	}

	if r.loader != nil {
		if spec, err := r.loader.Load(name); err == nil && spec != nil {
			r.entries[name] = registryEntry{state: resolutionLoaded, spec: spec}
			return spec, true
		}
	}
	r.entries[name] = registryEntry{state: resolutionNotFound}
	return nil, false
}

// Names returns the names of all loaded engines, in no particular order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for name, e := range r.entries {
		if e.state == resolutionLoaded {
			names = append(names, name)
		}
	}
	return names
}

// ExecLoader resolves unknown tags by probing PATH for an executable named
// diagram-<tag> (or a configured override). A found executable is wrapped as
// a generic engine following the standard invocation contract: requested
// format as -f <ext>, source on stdin, image on stdout.
type ExecLoader struct {
	// Packages maps type tags to executable names, overriding the
	// diagram-<tag> convention.
	Packages map[string]string
}

// Load probes for the tag's executable and builds a generic engine spec.
func (l *ExecLoader) Load(name string) (*Spec, error) {
	binary := l.Packages[name]
	if binary == "" {
		binary = "diagram-" + name
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, err
	}

	s := &Spec{
		Name: name,
		// The tag's language is unknown, so no directive marker.
		LineComment: "",
		MIMETypes:   []string{diagram.MIMESVG, diagram.MIMEPNG, diagram.MIMEPDF},
	}
	s.Compile = func(ctx context.Context, req Request) (Result, error) {
		mimeType := resolveType(s, req.MIMEType)
		ext, _ := diagram.Extension(mimeType)

		data, err := run(ctx, req.Config, binary, []string{"-f", ext}, []byte(req.Source))
		if err != nil {
			return Result{}, err
		}
		return Result{Data: data, MIMEType: mimeType}, nil
	}
	return s, nil
}

// Ensure ExecLoader implements Loader.
var _ Loader = (*ExecLoader)(nil)
