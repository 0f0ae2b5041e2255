package web

import (
	"time"

	"github.com/metagraph-io/metagraph/internal/catalog/instance"
)

// RenderValue converts a materialized value into a JSON-encodable shape.
// The top-level class instance renders in full; class instances reached
// through fields render as identity stubs, which also keeps cyclic
// reference graphs renderable.
func RenderValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *instance.Referenceable:
		return renderReferenceable(val)
	case *instance.Struct:
		return renderStruct(val)
	case instance.ID:
		return renderID(val)
	case []interface{}:
		return renderSlice(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

func renderReferenceable(r *instance.Referenceable) map[string]interface{} {
	out := map[string]interface{}{
		"typeName":   r.TypeName(),
		"guid":       r.GUID(),
		"version":    r.Identity().Version,
		"attributes": renderFields(r.Fields()),
	}
	if state := r.Identity().State; state != "" {
		out["state"] = state
	}
	traits := make(map[string]interface{})
	for _, name := range r.TraitNames() {
		if t, ok := r.Trait(name); ok {
			traits[name] = renderStruct(t)
		}
	}
	if len(traits) > 0 {
		out["traits"] = traits
	}
	return out
}

func renderStruct(s *instance.Struct) map[string]interface{} {
	return map[string]interface{}{
		"typeName":   s.TypeName(),
		"attributes": renderFields(s.Fields()),
	}
}

func renderID(id instance.ID) map[string]interface{} {
	out := map[string]interface{}{
		"typeName": id.TypeName,
		"guid":     id.ID,
		"version":  id.Version,
	}
	if id.State != "" {
		out["state"] = id.State
	}
	return out
}

func renderFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		out[name] = renderNested(value)
	}
	return out
}

func renderSlice(values []interface{}) []interface{} {
	out := make([]interface{}, len(values))
	for i, e := range values {
		out[i] = renderNested(e)
	}
	return out
}

// renderNested renders a field value, collapsing referenced class
// instances to their identity.
func renderNested(v interface{}) interface{} {
	if r, ok := v.(*instance.Referenceable); ok {
		return renderID(r.Identity())
	}
	return RenderValue(v)
}
