package document

import (
	"fmt"
	"strings"
)

// idJoiner separates the model name from the entity id in a scoped id.
const idJoiner = "#"

// Graph is a serialized scene: every entity keyed by its scoped id, plus the
// scoped id of the root Scene.
type Graph struct {
	RootID  string            `json:"rootId" yaml:"rootId"`
	Objects map[string]Record `json:"objectsById" yaml:"objectsById"`
}

// Record is the plain-data form of one entity. Primitive fields hold
// numbers, booleans and strings; reference fields hold scoped ids, lists of
// scoped ids or maps from keys to scoped ids, and null for absent optional
// references.
type Record map[string]any

// ScopedID joins a model name and an entity id.
func ScopedID(model, id string) (string, error) {
	if id == "" || strings.Contains(id, idJoiner) {
		return "", fmt.Errorf("%w: %s id %q", ErrBadID, model, id)
	}
	return model + idJoiner + id, nil
}

// ParseScopedID splits a scoped id into its model name and entity id. The
// model must be registered.
func ParseScopedID(scoped string) (model, id string, err error) {
	parts := strings.Split(scoped, idJoiner)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadID, scoped)
	}
	if _, ok := modelsByName[parts[0]]; !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownModel, parts[0])
	}
	return parts[0], parts[1], nil
}

// Field accessors. They accept the value shapes produced by Encode as well
// as the generic shapes produced by the JSON and YAML decoders.

func (r Record) number(name string) (float64, error) {
	switch v := r[name].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, r.badField(name, "number")
}

func (r Record) boolean(name string) (bool, error) {
	v, ok := r[name].(bool)
	if !ok {
		return false, r.badField(name, "boolean")
	}
	return v, nil
}

func (r Record) str(name string) (string, error) {
	v, ok := r[name].(string)
	if !ok {
		return "", r.badField(name, "string")
	}
	return v, nil
}

// ref returns a single reference. ok is false for null.
func (r Record) ref(name string) (scoped string, ok bool, err error) {
	switch v := r[name].(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	}
	return "", false, r.badField(name, "reference")
}

func (r Record) strings(name string) ([]string, error) {
	switch v := r[name].(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, r.badField(name, "list of strings")
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, r.badField(name, "list of strings")
}

func (r Record) refMap(name string) (map[string]string, error) {
	switch v := r[name].(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		return r.stringValues(name, v)
	case Record:
		// yaml.v3 decodes nested mappings with the enclosing map type.
		return r.stringValues(name, v)
	}
	return nil, r.badField(name, "map of references")
}

func (r Record) stringValues(name string, m map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(m))
	for k, e := range m {
		s, ok := e.(string)
		if !ok {
			return nil, r.badField(name, "map of references")
		}
		out[k] = s
	}
	return out, nil
}

func (r Record) badField(name, want string) error {
	if _, ok := r[name]; !ok {
		return fmt.Errorf("%w: missing field %q", ErrBadRecord, name)
	}
	return fmt.Errorf("%w: field %q is %T, want %s", ErrBadRecord, name, r[name], want)
}
