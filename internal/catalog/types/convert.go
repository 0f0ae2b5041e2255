package types

import (
	"fmt"
	"time"
)

// Convert coerces a raw persisted value into its logical form for the
// given descriptor. Under Optional multiplicity an absent (nil) value is
// legitimate and yields (nil, nil); under Required it is an error.
//
// Map descriptors are not convertible: the materialization layer never
// produces map values, and Convert keeps that gap visible instead of
// guessing a representation.
func Convert(d *Descriptor, value interface{}, m Multiplicity) (interface{}, error) {
	if value == nil {
		if m == Required {
			return nil, fmt.Errorf("%w: type %s", ErrMissingValue, d.Name)
		}
		return nil, nil
	}

	switch d.Category {
	case CategoryPrimitive:
		return convertPrimitive(d, value)
	case CategoryEnum:
		return convertEnum(d, value)
	case CategoryArray:
		return convertArray(d, value)
	case CategoryMap:
		return nil, fmt.Errorf("%w: map type %s is not convertible", ErrTypeMismatch, d.Name)
	case CategoryStruct, CategoryTrait, CategoryClass:
		return convertInstance(d, value)
	default:
		return nil, fmt.Errorf("%w: category %s", ErrInvalidDescriptor, d.Category)
	}
}

func convertPrimitive(d *Descriptor, value interface{}) (interface{}, error) {
	switch d.Kind {
	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case KindInt, KindBigInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			// JSON decoding hands integers back as float64
			if v == float64(int64(v)) {
				return int64(v), nil
			}
		}
	case KindFloat:
		switch v := value.(type) {
		case float32:
			return float64(v), nil
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		}
	case KindDate:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a valid %s: %v", ErrTypeMismatch, v, d.Name, err)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot convert %T to %s", ErrTypeMismatch, value, d.Name)
}

func convertEnum(d *Descriptor, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		for _, member := range d.EnumValues {
			if member == v {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a member of %s", ErrUnknownEnumValue, v, d.Name)
	case int:
		return enumOrdinal(d, v)
	case int64:
		return enumOrdinal(d, int(v))
	}
	return nil, fmt.Errorf("%w: cannot convert %T to enum %s", ErrTypeMismatch, value, d.Name)
}

func enumOrdinal(d *Descriptor, ordinal int) (interface{}, error) {
	if ordinal < 0 || ordinal >= len(d.EnumValues) {
		return nil, fmt.Errorf("%w: ordinal %d out of range for %s", ErrUnknownEnumValue, ordinal, d.Name)
	}
	return d.EnumValues[ordinal], nil
}

func convertArray(d *Descriptor, value interface{}) (interface{}, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: cannot convert %T to %s", ErrTypeMismatch, value, d.Name)
	}
	result := make([]interface{}, 0, len(raw))
	for _, entry := range raw {
		converted, err := Convert(d.Element, entry, Optional)
		if err != nil {
			return nil, err
		}
		if converted != nil {
			result = append(result, converted)
		}
	}
	return result, nil
}

func convertInstance(d *Descriptor, value interface{}) (interface{}, error) {
	inst, ok := value.(Instance)
	if !ok {
		return nil, fmt.Errorf("%w: cannot convert %T to %s", ErrTypeMismatch, value, d.Name)
	}
	// Class descriptors accept instances of subtypes; the registry guards
	// the hierarchy, so only exact-name checks are possible here.
	if d.Category != CategoryClass && inst.TypeName() != d.Name {
		return nil, fmt.Errorf("%w: instance of %s is not a %s", ErrTypeMismatch, inst.TypeName(), d.Name)
	}
	return inst, nil
}
