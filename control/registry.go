package control

import (
	"errors"
	"fmt"
	"sync"

	"github.com/propform/propform/attr"
)

// ErrNoControlFound is returned by Resolve when no registered control type
// matches the requested value type. It indicates a missing leaf-control
// registration and is surfaced rather than recovered.
var ErrNoControlFound = errors.New("no control registered for value type")

// Constructor instantiates a fresh control.
type Constructor func() Control

type regEntry struct {
	typ     attr.Type
	neu     Constructor
	rank    int
	generic bool
}

// Registry maps value types to control constructors. Registration happens
// once per control type at process start; reads dominate thereafter. The
// mutex keeps registration safe if a host ever registers from multiple
// goroutines before the UI loop starts.
type Registry struct {
	mu      sync.RWMutex
	entries []regEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

var std = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return std }

// Register adds a constructor for the given value type to the default
// registry.
func Register(t attr.Type, neu Constructor) { std.Register(t, neu) }

// RegisterGeneric adds the generic composite-object constructor to the
// default registry.
func RegisterGeneric(t attr.Type, neu Constructor) { std.RegisterGeneric(t, neu) }

// Register records a constructor keyed by the control's declared value
// type. Later registrations for an equally specific type do not displace
// earlier ones.
func (r *Registry) Register(t attr.Type, neu Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, regEntry{typ: t, neu: neu, rank: attr.Specificity(t)})
}

// RegisterGeneric records a constructor that is always ranked least
// specific regardless of its value type, so it is chosen only when nothing
// more specific matches. The generic composite-object form control
// registers through this path.
func (r *Registry) RegisterGeneric(t attr.Type, neu Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, regEntry{typ: t, neu: neu, rank: -1, generic: true})
}

// Resolve returns the constructor whose registered value type is the most
// specific supertype of the requested type.
func (r *Registry) Resolve(t attr.Type) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var best *regEntry
	for i := range r.entries {
		e := &r.entries[i]
		if !attr.Subtype(t, e.typ) {
			continue
		}
		if best == nil || e.rank > best.rank {
			best = e
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoControlFound, t)
	}
	return best.neu, nil
}
