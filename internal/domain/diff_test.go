package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSet(t *testing.T, defs ...Definition) DefinitionSet {
	t.Helper()
	set := make(DefinitionSet)
	for _, d := range defs {
		require.NoError(t, set.Add(d))
	}
	return set
}

func productColor() Definition {
	return Definition{
		OwnerType:   OwnerTypeProduct,
		Namespace:   "custom",
		Key:         "color",
		Name:        "Color",
		Type:        "single_line_text_field",
		Validations: []Validation{},
	}
}

func customerTier(fieldType string) Definition {
	return Definition{
		OwnerType:   OwnerTypeCustomer,
		Namespace:   "loyalty",
		Key:         "tier",
		Name:        "Tier",
		Type:        fieldType,
		Validations: []Validation{},
	}
}

func TestCompare(t *testing.T) {
	t.Run("identical sets yield empty diff", func(t *testing.T) {
		set := mustSet(t, productColor(), customerTier("single_line_text_field"))
		assert.Empty(t, Compare(set, set))
	})

	t.Run("source-only definition is missing in target", func(t *testing.T) {
		source := mustSet(t, productColor())
		target := mustSet(t)

		entries := Compare(source, target)
		require.Len(t, entries, 1)
		assert.Equal(t, DiffStatusMissingInTarget, entries[0].Status)
		assert.Equal(t, Identity{OwnerType: OwnerTypeProduct, Namespace: "custom", Key: "color"}, entries[0].Identity)
		require.NotNil(t, entries[0].Source)
		assert.Nil(t, entries[0].Target)
		assert.Empty(t, entries[0].ChangedFields)
	})

	t.Run("target-only definition is extra in target", func(t *testing.T) {
		extra := Definition{
			OwnerType:   OwnerTypeProductVariant,
			Namespace:   "inventory",
			Key:         "bin",
			Name:        "Bin",
			Type:        "single_line_text_field",
			Validations: []Validation{},
		}
		entries := Compare(mustSet(t), mustSet(t, extra))
		require.Len(t, entries, 1)
		assert.Equal(t, DiffStatusExtraInTarget, entries[0].Status)
		assert.Equal(t, extra.Identity(), entries[0].Identity)
		require.NotNil(t, entries[0].Target)
		assert.Nil(t, entries[0].Source)
	})

	t.Run("type difference yields changed entry with changedFields", func(t *testing.T) {
		source := mustSet(t, customerTier("single_line_text_field"))
		target := mustSet(t, customerTier("number_integer"))

		entries := Compare(source, target)
		require.Len(t, entries, 1)
		assert.Equal(t, DiffStatusChanged, entries[0].Status)
		assert.Equal(t, Identity{OwnerType: OwnerTypeCustomer, Namespace: "loyalty", Key: "tier"}, entries[0].Identity)
		assert.Equal(t, []string{"type"}, entries[0].ChangedFields)
	})

	t.Run("changedFields contains only fields that differ", func(t *testing.T) {
		src := productColor()
		tgt := productColor()
		tgt.Name = "Colour"
		tgt.Description = "primary color"
		tgt.Validations = []Validation{{Name: "choices", Value: `["red","blue"]`}}

		entries := Compare(mustSet(t, src), mustSet(t, tgt))
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"name", "description", "validations"}, entries[0].ChangedFields)
	})

	t.Run("validations compare as unordered pairs", func(t *testing.T) {
		src := productColor()
		src.Validations = []Validation{
			{Name: "min", Value: "1"},
			{Name: "max", Value: "10"},
		}
		tgt := productColor()
		tgt.Validations = []Validation{
			{Name: "max", Value: "10"},
			{Name: "min", Value: "1"},
		}
		assert.Empty(t, Compare(mustSet(t, src), mustSet(t, tgt)))

		tgt.Validations[1].Value = "2"
		entries := Compare(mustSet(t, src), mustSet(t, tgt))
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"validations"}, entries[0].ChangedFields)
	})

	t.Run("missing and extra swap when operands swap", func(t *testing.T) {
		a := mustSet(t, productColor(), customerTier("single_line_text_field"))
		b := mustSet(t, customerTier("single_line_text_field"),
			Definition{
				OwnerType:   OwnerTypeOrder,
				Namespace:   "ops",
				Key:         "priority",
				Name:        "Priority",
				Type:        "number_integer",
				Validations: []Validation{},
			})

		forward := Compare(a, b)
		backward := Compare(b, a)

		missingForward := map[Identity]bool{}
		extraBackward := map[Identity]bool{}
		for _, e := range forward {
			if e.Status == DiffStatusMissingInTarget {
				missingForward[e.Identity] = true
			}
		}
		for _, e := range backward {
			if e.Status == DiffStatusExtraInTarget {
				extraBackward[e.Identity] = true
			}
		}
		assert.Equal(t, missingForward, extraBackward)

		extraForward := map[Identity]bool{}
		missingBackward := map[Identity]bool{}
		for _, e := range forward {
			if e.Status == DiffStatusExtraInTarget {
				extraForward[e.Identity] = true
			}
		}
		for _, e := range backward {
			if e.Status == DiffStatusMissingInTarget {
				missingBackward[e.Identity] = true
			}
		}
		assert.Equal(t, extraForward, missingBackward)
	})

	t.Run("entries are grouped by status and sorted by identity", func(t *testing.T) {
		source := mustSet(t,
			Definition{OwnerType: OwnerTypeProduct, Namespace: "b", Key: "b", Name: "B", Type: "x", Validations: []Validation{}},
			Definition{OwnerType: OwnerTypeCollection, Namespace: "a", Key: "a", Name: "A", Type: "x", Validations: []Validation{}},
			Definition{OwnerType: OwnerTypeCustomer, Namespace: "c", Key: "c", Name: "C", Type: "x", Validations: []Validation{}},
		)
		target := mustSet(t,
			Definition{OwnerType: OwnerTypeCustomer, Namespace: "c", Key: "c", Name: "C", Type: "y", Validations: []Validation{}},
			Definition{OwnerType: OwnerTypeOrder, Namespace: "d", Key: "d", Name: "D", Type: "x", Validations: []Validation{}},
		)

		entries := Compare(source, target)
		require.Len(t, entries, 4)

		assert.Equal(t, DiffStatusMissingInTarget, entries[0].Status)
		assert.Equal(t, OwnerTypeCollection, entries[0].OwnerType)
		assert.Equal(t, DiffStatusMissingInTarget, entries[1].Status)
		assert.Equal(t, OwnerTypeProduct, entries[1].OwnerType)
		assert.Equal(t, DiffStatusExtraInTarget, entries[2].Status)
		assert.Equal(t, OwnerTypeOrder, entries[2].OwnerType)
		assert.Equal(t, DiffStatusChanged, entries[3].Status)
		assert.Equal(t, OwnerTypeCustomer, entries[3].OwnerType)
	})

	t.Run("output is deterministic", func(t *testing.T) {
		source := mustSet(t,
			productColor(),
			customerTier("single_line_text_field"),
			Definition{OwnerType: OwnerTypeOrder, Namespace: "ops", Key: "priority", Name: "Priority", Type: "number_integer", Validations: []Validation{}},
		)
		target := mustSet(t,
			customerTier("number_integer"),
			Definition{OwnerType: OwnerTypeCollection, Namespace: "nav", Key: "icon", Name: "Icon", Type: "file_reference", Validations: []Validation{}},
		)

		first, err := json.Marshal(Compare(source, target))
		require.NoError(t, err)
		second, err := json.Marshal(Compare(source, target))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("does not mutate its inputs", func(t *testing.T) {
		source := mustSet(t, productColor())
		target := mustSet(t, customerTier("single_line_text_field"))
		Compare(source, target)
		assert.Len(t, source, 1)
		assert.Len(t, target, 1)
	})
}

func TestValidationsEqual(t *testing.T) {
	assert.True(t, validationsEqual(nil, nil))
	assert.True(t, validationsEqual([]Validation{}, nil))
	assert.False(t, validationsEqual([]Validation{{Name: "min", Value: "1"}}, nil))
	assert.False(t, validationsEqual(
		[]Validation{{Name: "min", Value: "1"}},
		[]Validation{{Name: "max", Value: "1"}},
	))
}
