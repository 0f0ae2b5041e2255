package types

import "errors"

var (
	// ErrMissingValue is returned when a required value is absent
	ErrMissingValue = errors.New("required value is missing")

	// ErrTypeMismatch is returned when a raw value cannot be coerced to the target type
	ErrTypeMismatch = errors.New("value does not match type")

	// ErrInvalidDescriptor is returned when a descriptor is structurally invalid
	ErrInvalidDescriptor = errors.New("invalid type descriptor")

	// ErrUnknownEnumValue is returned when a value is not a member of the enum
	ErrUnknownEnumValue = errors.New("unknown enum value")
)
