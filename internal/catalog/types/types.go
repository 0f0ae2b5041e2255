// Package types defines the metagraph type system: closed type categories,
// immutable type descriptors, and the registry the materialization layer
// reads descriptors from. Descriptors are owned by the registry; callers
// borrow them and must not mutate them.
package types

import "fmt"

// Category classifies a type descriptor. The set is closed: the
// materialization layer dispatches exhaustively on it and treats any
// value outside this set as a programming error.
type Category int

const (
	CategoryPrimitive Category = iota
	CategoryEnum
	CategoryArray
	CategoryMap
	CategoryStruct
	CategoryTrait
	CategoryClass
)

// String returns the string representation of the category
func (c Category) String() string {
	switch c {
	case CategoryPrimitive:
		return "primitive"
	case CategoryEnum:
		return "enum"
	case CategoryArray:
		return "array"
	case CategoryMap:
		return "map"
	case CategoryStruct:
		return "struct"
	case CategoryTrait:
		return "trait"
	case CategoryClass:
		return "class"
	default:
		return "unknown"
	}
}

// PrimitiveKind narrows a primitive descriptor to its scalar representation
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindBool
	KindInt
	KindBigInt
	KindFloat
	KindDate
)

// String returns the string representation of the primitive kind
func (k PrimitiveKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindBigInt:
		return "bigint"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// ParsePrimitiveKind converts a string to a PrimitiveKind
func ParsePrimitiveKind(s string) (PrimitiveKind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "bigint":
		return KindBigInt, nil
	case "float":
		return KindFloat, nil
	case "date":
		return KindDate, nil
	default:
		return 0, fmt.Errorf("unknown primitive kind: %s", s)
	}
}

// Multiplicity is the conversion mode applied when coercing a raw persisted
// value into its logical form. Optional permits a legitimately absent value.
type Multiplicity int

const (
	Required Multiplicity = iota
	Optional
	Collection
)

// String returns the string representation of the multiplicity
func (m Multiplicity) String() string {
	switch m {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Collection:
		return "collection"
	default:
		return "unknown"
	}
}

// Attribute is one declared field of a struct, trait, or class type
type Attribute struct {
	Name         string
	Type         *Descriptor
	Multiplicity Multiplicity

	// IsComposite marks an attribute whose referenced entity is owned by
	// the declaring entity rather than merely referenced by it.
	IsComposite bool
}

// Descriptor is an immutable type descriptor. Exactly one set of
// category-specific fields is populated, matching Category:
//
//	CategoryPrimitive -> Kind
//	CategoryEnum      -> EnumValues
//	CategoryArray     -> Element
//	CategoryMap       -> Key, Value
//	CategoryStruct    -> Attributes
//	CategoryTrait     -> Attributes, SuperTypes
//	CategoryClass     -> Attributes, SuperTypes
type Descriptor struct {
	Name     string
	Category Category

	Kind       PrimitiveKind
	EnumValues []string
	Element    *Descriptor
	Key        *Descriptor
	Value      *Descriptor
	Attributes []Attribute
	SuperTypes []string
}

// String returns a readable form of the descriptor
func (d *Descriptor) String() string {
	switch d.Category {
	case CategoryArray:
		return fmt.Sprintf("array<%s>", d.Element.Name)
	case CategoryMap:
		return fmt.Sprintf("map<%s,%s>", d.Key.Name, d.Value.Name)
	default:
		return d.Name
	}
}

// Attribute returns the declared attribute with the given name
func (d *Descriptor) Attribute(name string) (Attribute, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Instance is the minimal surface a materialized composite value exposes to
// the conversion layer. The instance package provides the implementations;
// keeping the interface here avoids a dependency cycle.
type Instance interface {
	TypeName() string
}

// Primitive descriptor singletons for the built-in scalar types. They are
// shared: registries hand them out as-is.
var (
	StringType = &Descriptor{Name: "string", Category: CategoryPrimitive, Kind: KindString}
	BoolType   = &Descriptor{Name: "bool", Category: CategoryPrimitive, Kind: KindBool}
	IntType    = &Descriptor{Name: "int", Category: CategoryPrimitive, Kind: KindInt}
	BigIntType = &Descriptor{Name: "bigint", Category: CategoryPrimitive, Kind: KindBigInt}
	FloatType  = &Descriptor{Name: "float", Category: CategoryPrimitive, Kind: KindFloat}
	DateType   = &Descriptor{Name: "date", Category: CategoryPrimitive, Kind: KindDate}
)

// ArrayOf builds an array descriptor over the given element type
func ArrayOf(element *Descriptor) *Descriptor {
	return &Descriptor{
		Name:     fmt.Sprintf("array<%s>", element.Name),
		Category: CategoryArray,
		Element:  element,
	}
}

// MapOf builds a map descriptor over the given key and value types
func MapOf(key, value *Descriptor) *Descriptor {
	return &Descriptor{
		Name:     fmt.Sprintf("map<%s,%s>", key.Name, value.Name),
		Category: CategoryMap,
		Key:      key,
		Value:    value,
	}
}
