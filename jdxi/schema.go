package jdxi

import (
	"fmt"
	"sort"
)

// Schema is the ordered parameter layout of one section of device memory.
type Schema struct {
	Name   string       `json:"name" yaml:"name"`
	Size   int          `json:"size" yaml:"size"`
	Params []Descriptor `json:"params" yaml:"params"`

	byName map[string]int
}

// newSchema sorts params by offset, indexes them by name and panics on
// overlapping or out-of-section parameters.
func newSchema(name string, size int, params ...Descriptor) *Schema {
	s := &Schema{Name: name, Size: size, Params: params, byName: make(map[string]int, len(params))}
	sort.SliceStable(s.Params, func(i, j int) bool { return s.Params[i].Offset < s.Params[j].Offset })
	end := 0
	for i, d := range s.Params {
		d.check()
		if d.Offset < end {
			panic(fmt.Sprintf("jdxi: %s: parameter %s at 0x%02X overlaps the previous one", name, d.Name, d.Offset))
		}
		if d.End() > size {
			panic(fmt.Sprintf("jdxi: %s: parameter %s ends past the section size %d", name, d.Name, size))
		}
		if _, dup := s.byName[d.Name]; dup {
			panic(fmt.Sprintf("jdxi: %s: duplicate parameter %s", name, d.Name))
		}
		s.byName[d.Name] = i
		end = d.End()
	}
	return s
}

// Param looks a parameter up by name.
func (s *Schema) Param(name string) (Descriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.Params[i], true
}

// At returns the parameter starting at linear offset off.
func (s *Schema) At(off int) (Descriptor, bool) {
	i := sort.Search(len(s.Params), func(i int) bool { return s.Params[i].Offset >= off })
	if i < len(s.Params) && s.Params[i].Offset == off {
		return s.Params[i], true
	}
	return Descriptor{}, false
}
