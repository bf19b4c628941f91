package domain

import (
	"sort"

	"github.com/samber/lo"
)

// comparedFields is the fixed reporting order for ChangedFields.
// Namespace, key and owner type are identity, never "changed".
var comparedFields = []string{"name", "type", "description", "validations"}

// Compare computes the differences between a source and a target definition
// set. Entries are grouped missing_in_target, extra_in_target, changed, and
// sorted within each group by identity, so output is deterministic for a
// given pair of inputs. Pure function: neither set is modified.
func Compare(source, target DefinitionSet) []DiffEntry {
	var missing, extra, changed []DiffEntry

	for _, id := range sortedIdentities(source) {
		src := source[id]
		tgt, ok := target[id]
		if !ok {
			missing = append(missing, DiffEntry{
				Identity: id,
				Status:   DiffStatusMissingInTarget,
				Source:   &src,
			})
			continue
		}
		fields := changedFields(src, tgt)
		if len(fields) > 0 {
			changed = append(changed, DiffEntry{
				Identity:      id,
				Status:        DiffStatusChanged,
				Source:        &src,
				Target:        &tgt,
				ChangedFields: fields,
			})
		}
	}

	for _, id := range sortedIdentities(target) {
		if _, ok := source[id]; !ok {
			tgt := target[id]
			extra = append(extra, DiffEntry{
				Identity: id,
				Status:   DiffStatusExtraInTarget,
				Target:   &tgt,
			})
		}
	}

	entries := make([]DiffEntry, 0, len(missing)+len(extra)+len(changed))
	entries = append(entries, missing...)
	entries = append(entries, extra...)
	entries = append(entries, changed...)
	return entries
}

func sortedIdentities(set DefinitionSet) []Identity {
	ids := lo.Keys(set)
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
	return ids
}

func changedFields(src, tgt Definition) []string {
	differs := map[string]bool{
		"name":        src.Name != tgt.Name,
		"type":        src.Type != tgt.Type,
		"description": src.Description != tgt.Description,
		"validations": !validationsEqual(src.Validations, tgt.Validations),
	}
	var fields []string
	for _, f := range comparedFields {
		if differs[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// validationsEqual compares validations as an unordered set of name/value
// pairs. Shopify never emits two validations with the same name on one
// definition, so a name-keyed map is a faithful set representation.
func validationsEqual(a, b []Validation) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]string, len(a))
	for _, v := range a {
		byName[v.Name] = v.Value
	}
	for _, v := range b {
		value, ok := byName[v.Name]
		if !ok || value != v.Value {
			return false
		}
	}
	return true
}
