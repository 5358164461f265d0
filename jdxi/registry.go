package jdxi

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

type schemaKey struct {
	area AreaTag
	tone ToneTag
}

// FallbackPolicy names the schema used when no schema is registered for a
// resolved location.
type FallbackPolicy string

// FallbackDrumPartial decodes unplaceable data as a drum partial, the layout
// most unknown tone traffic from the device turns out to be.
const FallbackDrumPartial FallbackPolicy = "drum-partial"

// Registry maps (area, section) pairs to parameter schemas. It is filled by
// NewRegistry and never modified afterwards, so a single Registry can be
// shared by any number of goroutines.
type Registry struct {
	schemas  map[schemaKey]*Schema
	fallback *Schema
	policy   FallbackPolicy
	logger   *log.Logger
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// WithLogger sends fallback diagnostics to l instead of the standard logger.
func WithLogger(l *log.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry builds the registry holding every JD-Xi schema. It panics if
// the static tables register the same key twice.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		schemas:  make(map[schemaKey]*Schema),
		fallback: drumPartial,
		policy:   FallbackDrumPartial,
		logger:   log.Default(),
	}
	for _, o := range opts {
		o(r)
	}

	r.register(AreaSetup, ToneCommon, setupSchema)
	r.register(AreaSystem, ToneCommon, systemCommon)
	r.register(AreaSystem, ToneController, systemController)

	r.register(AreaProgram, ToneCommon, programCommon)
	r.register(AreaProgram, ToneVocalEffect, programVocalEffect)
	r.register(AreaProgram, ToneEffect1, programEffect1)
	r.register(AreaProgram, ToneEffect2, programEffect2)
	r.register(AreaProgram, ToneDelay, programDelay)
	r.register(AreaProgram, ToneReverb, programReverb)
	r.register(AreaProgram, TonePart, programPart)
	r.register(AreaProgram, ToneZone, programZone)
	r.register(AreaProgram, ToneController, programController)

	for _, area := range []AreaTag{AreaDigital1, AreaDigital2} {
		r.register(area, ToneCommon, digitalCommon)
		r.register(area, TonePartial1, digitalPartial)
		r.register(area, TonePartial2, digitalPartial)
		r.register(area, TonePartial3, digitalPartial)
		r.register(area, ToneModify, digitalModify)
	}

	r.register(AreaAnalog, ToneCommon, analogTone)

	r.register(AreaDrumKit, ToneCommon, drumCommon)
	r.register(AreaDrumKit, ToneDrumPartial, drumPartial)
	return r
}

// register adds a schema while NewRegistry builds the table. Registering a
// key twice is a bug in the static tables and panics.
func (r *Registry) register(area AreaTag, tone ToneTag, s *Schema) {
	k := schemaKey{area, tone}
	if old, dup := r.schemas[k]; dup {
		panic(fmt.Sprintf("jdxi: %s/%s registered twice (%s, %s)", area, tone, old.Name, s.Name))
	}
	r.schemas[k] = s
}

// Lookup returns the schema registered for area and tone, if any.
func (r *Registry) Lookup(area AreaTag, tone ToneTag) (*Schema, bool) {
	s, ok := r.schemas[schemaKey{area, tone}]
	return s, ok
}

// SchemaFor is Lookup with the fallback policy applied. The boolean is false
// when the fallback schema was used.
func (r *Registry) SchemaFor(area AreaTag, tone ToneTag) (*Schema, bool) {
	if s, ok := r.Lookup(area, tone); ok {
		return s, true
	}
	r.logger.Printf("[jdxi] no schema for %s/%s, falling back to %s (%s)", area, tone, r.policy, r.fallback.Name)
	return r.fallback, false
}

// Fallback returns the fallback policy and its schema.
func (r *Registry) Fallback() (FallbackPolicy, *Schema) {
	return r.policy, r.fallback
}

// Entry is one registered schema, as listed by Entries.
type Entry struct {
	Area   AreaTag `json:"area" yaml:"area"`
	Tone   ToneTag `json:"section" yaml:"section"`
	Schema *Schema `json:"schema" yaml:"schema"`
}

// Entries lists the registered schemas ordered by area and section.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.schemas))
	for k, s := range r.schemas {
		out = append(out, Entry{Area: k.area, Tone: k.tone, Schema: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area != out[j].Area {
			return out[i].Area < out[j].Area
		}
		return out[i].Tone < out[j].Tone
	})
	return out
}

var defaultRegistry = sync.OnceValue(func() *Registry { return NewRegistry() })

// Default returns the process-wide registry, built on first use.
func Default() *Registry {
	return defaultRegistry()
}
