package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/metasync/internal/domain"
)

func TestLoadImportEntries(t *testing.T) {
	dir := t.TempDir()

	t.Run("diff file loads as-is", func(t *testing.T) {
		path := filepath.Join(dir, "diff.json")
		content := `[{"ownerType": "PRODUCT", "namespace": "custom", "key": "color", "status": "missing_in_target",
			"source": {"namespace": "custom", "key": "color", "name": "Color", "type": "single_line_text_field", "validations": []}}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		entries, err := loadImportEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.DiffStatusMissingInTarget, entries[0].Status)
	})

	t.Run("snapshot file becomes all-missing entries", func(t *testing.T) {
		path := filepath.Join(dir, "snap.json")
		content := `{
			"PRODUCT": [{"namespace": "custom", "key": "color", "name": "Color", "type": "single_line_text_field", "validations": []}],
			"CUSTOMER": [{"namespace": "loyalty", "key": "tier", "name": "Tier", "type": "single_line_text_field", "validations": []}]
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		entries, err := loadImportEntries(path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, domain.DiffStatusMissingInTarget, entry.Status)
			require.NotNil(t, entry.Source)
		}
		// Sorted by identity: CUSTOMER before PRODUCT
		assert.Equal(t, domain.OwnerTypeCustomer, entries[0].OwnerType)
		assert.Equal(t, domain.OwnerTypeProduct, entries[1].OwnerType)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("definitely not json"), 0o644))
		_, err := loadImportEntries(path)
		assert.Error(t, err)
	})
}

func TestStoreLabel(t *testing.T) {
	assert.Equal(t, "mystore", storeLabel("mystore.myshopify.com"))
	assert.Equal(t, "localhost", storeLabel("localhost"))
}
