package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Definition is the serialized form of a type definition
type Definition struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Kind       string          `json:"kind,omitempty"`
	EnumValues []string        `json:"values,omitempty"`
	SuperTypes []string        `json:"superTypes,omitempty"`
	Attributes []AttributeDefn `json:"attributes,omitempty"`
}

// AttributeDefn is the serialized form of an attribute declaration. Type
// references other definitions by name and supports array<T> and map<K,V>
// compositions.
type AttributeDefn struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Multiplicity string `json:"multiplicity,omitempty"`
	IsComposite  bool   `json:"isComposite,omitempty"`
}

// LoadDefinitions registers the serialized type definitions into the
// registry. Definitions may reference each other in any order, including
// cyclically; attribute types are resolved in a second pass.
func LoadDefinitions(r *Registry, data []byte) error {
	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("failed to parse type definitions: %w", err)
	}

	// First pass: declare every descriptor so forward and cyclic
	// references resolve.
	declared := make([]*Descriptor, 0, len(defs))
	for _, def := range defs {
		d, err := declare(def)
		if err != nil {
			return err
		}
		if err := r.Register(d); err != nil {
			return err
		}
		declared = append(declared, d)
	}

	// Second pass: resolve attribute type references
	for i, def := range defs {
		for _, attrDef := range def.Attributes {
			attrType, err := resolveTypeRef(r, attrDef.Type)
			if err != nil {
				return fmt.Errorf("type %s, attribute %s: %w", def.Name, attrDef.Name, err)
			}
			mult, err := parseMultiplicity(attrDef.Multiplicity)
			if err != nil {
				return fmt.Errorf("type %s, attribute %s: %w", def.Name, attrDef.Name, err)
			}
			declared[i].Attributes = append(declared[i].Attributes, Attribute{
				Name:         attrDef.Name,
				Type:         attrType,
				Multiplicity: mult,
				IsComposite:  attrDef.IsComposite,
			})
		}
	}
	return nil
}

func declare(def Definition) (*Descriptor, error) {
	d := &Descriptor{Name: def.Name, SuperTypes: def.SuperTypes}
	switch def.Category {
	case "enum":
		d.Category = CategoryEnum
		d.EnumValues = def.EnumValues
	case "struct":
		d.Category = CategoryStruct
	case "trait":
		d.Category = CategoryTrait
	case "class":
		d.Category = CategoryClass
	default:
		return nil, fmt.Errorf("%w: %s has category %q", ErrInvalidDescriptor, def.Name, def.Category)
	}
	return d, nil
}

func resolveTypeRef(r *Registry, ref string) (*Descriptor, error) {
	switch {
	case strings.HasPrefix(ref, "array<") && strings.HasSuffix(ref, ">"):
		element, err := resolveTypeRef(r, ref[len("array<"):len(ref)-1])
		if err != nil {
			return nil, err
		}
		return ArrayOf(element), nil
	case strings.HasPrefix(ref, "map<") && strings.HasSuffix(ref, ">"):
		inner := ref[len("map<") : len(ref)-1]
		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: malformed map reference %q", ErrInvalidDescriptor, ref)
		}
		key, err := resolveTypeRef(r, strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, err
		}
		value, err := resolveTypeRef(r, strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		return MapOf(key, value), nil
	default:
		d, ok := r.Get(ref)
		if !ok {
			return nil, fmt.Errorf("unknown type reference: %s", ref)
		}
		return d, nil
	}
}

func parseMultiplicity(s string) (Multiplicity, error) {
	switch s {
	case "", "optional":
		return Optional, nil
	case "required":
		return Required, nil
	case "collection":
		return Collection, nil
	default:
		return 0, fmt.Errorf("unknown multiplicity: %s", s)
	}
}
