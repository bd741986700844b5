// Package pluginapi is the extension point a caller of cmd/tealer's main
// can use to register extra detectors and printers before Execute runs,
// standing in for the original's setuptools entry-point plugin mechanism
// (plugin_example/ in original_source) without any dynamic-loading step:
// a plugin here is just a Go package that calls Register from an init().
package pluginapi

import (
	"sort"

	"go-tealer/cfg"
	"go-tealer/detect"
)

// PrinterFunc renders a built CFG as text, the common shape of every
// printer in package printers.
type PrinterFunc func(g *cfg.CFG) string

// Registry is the plain, in-process table of everything available to a
// cmd/tealer run: the detect.Registry's detectors plus named printers.
// There is no dynamic loading; a caller extends this before invoking the
// CLI's Execute.
type Registry struct {
	Detectors *detect.Registry
	printers  map[string]PrinterFunc
}

// New returns an empty Registry wrapping a fresh detect.Registry.
func New() *Registry {
	return &Registry{Detectors: detect.NewRegistry(), printers: map[string]PrinterFunc{}}
}

// RegisterPrinter adds a named printer. Registering the same name twice
// replaces the earlier one, so a plugin can override a built-in printer.
func (r *Registry) RegisterPrinter(name string, fn PrinterFunc) {
	r.printers[name] = fn
}

// Printer looks up a printer by name.
func (r *Registry) Printer(name string) (PrinterFunc, bool) {
	fn, ok := r.printers[name]
	return fn, ok
}

// PrinterNames lists every registered printer name, sorted.
func (r *Registry) PrinterNames() []string {
	names := make([]string, 0, len(r.printers))
	for name := range r.printers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
