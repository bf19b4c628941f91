package domain

// Snapshot is one store's exported definitions, grouped by owner type.
// This is the in-memory form of the export file.
type Snapshot map[OwnerType][]Definition

// Count returns the total number of definitions across all owner types
func (s Snapshot) Count() int {
	n := 0
	for _, defs := range s {
		n += len(defs)
	}
	return n
}

// DefinitionSet flattens the snapshot into an identity-keyed set, enforcing
// the uniqueness invariant of (ownerType, namespace, key) within one store.
func (s Snapshot) DefinitionSet() (DefinitionSet, error) {
	set := make(DefinitionSet, s.Count())
	for ownerType, defs := range s {
		for _, d := range defs {
			d.OwnerType = ownerType
			if err := set.Add(d); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
