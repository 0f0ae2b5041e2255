package instance

import (
	"fmt"

	"github.com/metagraph-io/metagraph/internal/catalog/types"
)

// ID is an entity identity: the stable reference to a class instance
// independent of its field values. State is empty when the persisted node
// carries no lifecycle state.
type ID struct {
	TypeName string
	ID       string
	State    string
	Version  int64
}

func (id ID) String() string {
	return fmt.Sprintf("%s:%s@v%d", id.TypeName, id.ID, id.Version)
}

// Referenceable is a full class instance: identity plus field values plus
// any attached traits.
type Referenceable struct {
	Struct
	id     ID
	traits map[string]*Struct
}

// NewReferenceable creates a fields-empty class instance with the given identity
func NewReferenceable(d *types.Descriptor, id ID) *Referenceable {
	return &Referenceable{
		Struct: Struct{
			descriptor: d,
			fields:     make(map[string]interface{}),
		},
		id:     id,
		traits: make(map[string]*Struct),
	}
}

// Identity returns the instance's identity
func (r *Referenceable) Identity() ID {
	return r.id
}

// GUID returns the identifier component of the identity
func (r *Referenceable) GUID() string {
	return r.id.ID
}

// AttachTrait records a materialized trait on the instance
func (r *Referenceable) AttachTrait(name string, trait *Struct) {
	r.traits[name] = trait
}

// Trait returns an attached trait by name
func (r *Referenceable) Trait(name string) (*Struct, bool) {
	t, ok := r.traits[name]
	return t, ok
}

// TraitNames returns the names of all attached traits
func (r *Referenceable) TraitNames() []string {
	names := make([]string, 0, len(r.traits))
	for name := range r.traits {
		names = append(names, name)
	}
	return names
}

func (r *Referenceable) String() string {
	return fmt.Sprintf("%s%v", r.id, r.fields)
}
