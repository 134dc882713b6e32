package rig

import "github.com/google/uuid"

// ID identifies an entity (key point, key point set, magic point, shape
// point, shape, scene). IDs are stable for the lifetime of an entity and are
// used as foreign keys by document serializers.
type ID string

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }
