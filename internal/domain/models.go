package domain

import (
	"fmt"
)

// Validation is one constraint on a metafield definition (e.g. {"max", "100"})
type Validation struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Definition represents one Shopify metafield definition.
// OwnerType is carried in memory but not serialized on the definition itself:
// snapshot files group definitions under their owner type, and diff entries
// carry the owner type on the identity.
type Definition struct {
	OwnerType   OwnerType    `json:"-"`
	Namespace   string       `json:"namespace"`
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	Description string       `json:"description,omitempty"`
	Validations []Validation `json:"validations"`
}

// Identity uniquely identifies a definition within a store
type Identity struct {
	OwnerType OwnerType `json:"ownerType"`
	Namespace string    `json:"namespace"`
	Key       string    `json:"key"`
}

// Identity returns the definition's identity key
func (d Definition) Identity() Identity {
	return Identity{OwnerType: d.OwnerType, Namespace: d.Namespace, Key: d.Key}
}

func (id Identity) String() string {
	return fmt.Sprintf("%s %s.%s", id.OwnerType, id.Namespace, id.Key)
}

// Less orders identities by owner type, then namespace, then key
func (id Identity) Less(other Identity) bool {
	if id.OwnerType != other.OwnerType {
		return id.OwnerType < other.OwnerType
	}
	if id.Namespace != other.Namespace {
		return id.Namespace < other.Namespace
	}
	return id.Key < other.Key
}

// DefinitionSet maps identity keys to definitions, built from one store snapshot
type DefinitionSet map[Identity]Definition

// Add inserts a definition, enforcing identity uniqueness within the set
func (s DefinitionSet) Add(d Definition) error {
	id := d.Identity()
	if _, exists := s[id]; exists {
		return fmt.Errorf("duplicate definition %s", id)
	}
	s[id] = d
	return nil
}

// DiffEntry describes how one definition differs between source and target.
// ChangedFields is set only for DiffStatusChanged and names the fields that
// differ (name, type, description, validations).
type DiffEntry struct {
	Identity
	Status        DiffStatus  `json:"status"`
	Source        *Definition `json:"source,omitempty"`
	Target        *Definition `json:"target,omitempty"`
	ChangedFields []string    `json:"changedFields,omitempty"`
}
