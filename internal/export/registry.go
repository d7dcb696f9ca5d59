package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrExporterExists  = errors.New("exporter already exists")
	ErrExporterNil     = errors.New("exporter is nil")
	ErrInvalidName     = errors.New("invalid exporter name")
	ErrUnknownExporter = errors.New("unknown exporter")
)

// Exporter writes the artifact of one floor.
type Exporter interface {
	// Name is the output type selector, e.g. "wkt".
	Name() string
	// Extension is the artifact file suffix including the dot.
	Extension() string
	Write(floorIndex int, floor Floor, dir string) error
}

// Registry stores exporters by output type.
type Registry struct {
	items map[string]Exporter
}

// NewRegistry creates an empty exporter registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Exporter)}
}

// NewDefaultRegistry registers every built-in exporter.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Exporter{WKT{}, PostGIS{}, SQLite{}} {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// ValidateName checks the output type format.
func ValidateName(name string) error {
	if !isValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Register adds an exporter to the registry.
func (r *Registry) Register(e Exporter) error {
	if e == nil {
		return ErrExporterNil
	}
	name := e.Name()
	if err := ValidateName(name); err != nil {
		return err
	}
	if _, ok := r.items[name]; ok {
		return ErrExporterExists
	}
	r.items[name] = e
	return nil
}

// Resolve returns the exporter for an output type.
func (r *Registry) Resolve(name string) (Exporter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	e, ok := r.items[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownExporter, name, strings.Join(r.Names(), ", "))
	}
	return e, nil
}

// Names returns registered output types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FileName is the artifact name for a floor.
func FileName(floorIndex int, ext string) string {
	return fmt.Sprintf("level_%02d%s", floorIndex, ext)
}

// isValidName accepts lowercase letters and digits joined by single '.',
// '-' or '_' separators.
func isValidName(name string) bool {
	prevSep := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevSep = false
		case strings.ContainsRune(".-_", r) && !prevSep:
			prevSep = true
		default:
			return false
		}
	}
	return name != "" && !prevSep
}
