package types

// IdentityTypeName is the name of the identity pseudo-type: the fixed
// 4-field struct shape used to represent a bare reference to an entity
// without materializing its fields.
const IdentityTypeName = "__IdType"

// Field names of the identity pseudo-type.
const (
	IdentityTypeNameAttr = "typeName"
	IdentityIDAttr       = "id"
	IdentityStateAttr    = "state"
	IdentityVersionAttr  = "version"
)

// newIdentityType builds the identity pseudo-type descriptor. Every
// registry owns one; it is registered at construction and cannot be
// replaced.
func newIdentityType() *Descriptor {
	return &Descriptor{
		Name:     IdentityTypeName,
		Category: CategoryStruct,
		Attributes: []Attribute{
			{Name: IdentityTypeNameAttr, Type: StringType, Multiplicity: Required},
			{Name: IdentityIDAttr, Type: StringType, Multiplicity: Required},
			{Name: IdentityStateAttr, Type: StringType, Multiplicity: Optional},
			{Name: IdentityVersionAttr, Type: BigIntType, Multiplicity: Required},
		},
	}
}
