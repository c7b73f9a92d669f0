package migration_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lager-api/internal/infrastructure/migration"
)

func TestLoad_OrdenaPorVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/010_add_index.sql":  {Data: []byte("CREATE INDEX x ON t(a);")},
		"m/002_items.sql":      {Data: []byte("CREATE TABLE items (id INT);")},
		"m/001_warehouses.sql": {Data: []byte("CREATE TABLE warehouses (id INT);")},
		"m/README.md":          {Data: []byte("ignorado")},
	}

	list, err := migration.Load(fsys, "m")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{1, 2, 10}, migration.Versions(list))
	assert.Equal(t, "warehouses", list[0].Name)
	assert.Contains(t, list[1].SQL, "CREATE TABLE items")
}

func TestLoad_NombresInvalidos(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"sin versión":         {"m/warehouses.sql": {Data: []byte("")}},
		"versión no numérica": {"m/abc_warehouses.sql": {Data: []byte("")}},
		"versión cero":        {"m/000_init.sql": {Data: []byte("")}},
		"duplicada":           {"m/001_a.sql": {Data: []byte("")}, "m/1_b.sql": {Data: []byte("")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := migration.Load(fsys, "m")
			assert.Error(t, err)
		})
	}
}

func TestPending(t *testing.T) {
	all := []migration.Migration{{Version: 1}, {Version: 2}, {Version: 3}}

	pending := migration.Pending(all, map[int]bool{1: true, 3: true})
	assert.Equal(t, []int{2}, migration.Versions(pending))

	assert.Empty(t, migration.Pending(all, map[int]bool{1: true, 2: true, 3: true}))
}
