package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableHasNoConflicts(t *testing.T) {
	_, err := NewSynonymIndex(DefaultGroups())
	require.NoError(t, err)
}

func TestLookupIsCaseAndAccentInsensitive(t *testing.T) {
	idx := DefaultIndex()

	got, ok := idx.Lookup("PLATANO HART")
	require.True(t, ok)
	assert.Equal(t, "Plátano Hartón", got)

	got, ok = idx.Lookup("plátano hartón")
	require.True(t, ok)
	assert.Equal(t, "Plátano Hartón", got)

	_, ok = idx.Lookup("habichuela")
	assert.False(t, ok)
}

func TestCanonicalNamesResolveToThemselves(t *testing.T) {
	idx := DefaultIndex()
	for _, g := range DefaultGroups() {
		got, ok := idx.Lookup(g.Canonical)
		require.True(t, ok, g.Canonical)
		assert.Equal(t, g.Canonical, got)
	}
}

func TestDuplicateVariantKeepsFirstGroup(t *testing.T) {
	idx, err := NewSynonymIndex([]SynonymGroup{
		{Canonical: "Cebolla Larga", Variants: []string{"cebolla junca"}},
		{Canonical: "Cebolla Junca", Variants: []string{"Cebolla  Junca"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateVariant))

	got, ok := idx.Lookup("cebolla junca")
	require.True(t, ok)
	assert.Equal(t, "Cebolla Larga", got)
}

func TestBuildIndexMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	body := "synonyms:\n  - canonical: Habichuela\n    variants:\n      - habich\n      - habichuela larga\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	idx, err := BuildIndex(path)
	require.NoError(t, err)

	got, ok := idx.Lookup("HABICH")
	require.True(t, ok)
	assert.Equal(t, "Habichuela", got)

	got, ok = idx.Lookup("tom chonto")
	require.True(t, ok)
	assert.Equal(t, "Tomate Chonto", got)
}

func TestBuildIndexWithoutFileUsesDefaults(t *testing.T) {
	idx, err := BuildIndex("")
	require.NoError(t, err)
	assert.Same(t, DefaultIndex(), idx)
}
