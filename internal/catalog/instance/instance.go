// Package instance holds the in-memory representations of materialized
// catalog values: struct instances, entity identities, and full class
// instances with attached traits.
package instance

import (
	"fmt"

	"github.com/metagraph-io/metagraph/internal/catalog/types"
)

// Struct is a materialized struct or trait value: a named bag of field
// values tied to its type descriptor. Field values are whatever the
// conversion layer produced (scalars, slices, or nested instances).
type Struct struct {
	descriptor *types.Descriptor
	fields     map[string]interface{}
}

// NewStruct creates an empty instance for the given struct or trait type
func NewStruct(d *types.Descriptor) *Struct {
	return &Struct{
		descriptor: d,
		fields:     make(map[string]interface{}),
	}
}

// TypeName returns the name of the instance's type
func (s *Struct) TypeName() string {
	return s.descriptor.Name
}

// Descriptor returns the type descriptor of the instance
func (s *Struct) Descriptor() *types.Descriptor {
	return s.descriptor
}

// Set assigns a field value
func (s *Struct) Set(name string, value interface{}) {
	s.fields[name] = value
}

// Get returns a field value
func (s *Struct) Get(name string) (interface{}, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// Fields returns the populated field names and values. The returned map is
// the instance's own storage; callers that need isolation must copy it.
func (s *Struct) Fields() map[string]interface{} {
	return s.fields
}

func (s *Struct) String() string {
	return fmt.Sprintf("%s%v", s.descriptor.Name, s.fields)
}
