package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/foodcatalog/internal/migrations"
)

func TestFS_PairsUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrations.FS, migrations.Dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %q", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestFS_FoodsSchema(t *testing.T) {
	raw, err := fs.ReadFile(migrations.FS, migrations.Dir+"/000001_create_foods.up.sql")
	require.NoError(t, err)

	schema := string(raw)
	assert.Contains(t, schema, "CONSTRAINT foods_price_check CHECK (price >= 0)")
	assert.Contains(t, schema, "available   boolean        NOT NULL DEFAULT true")
	assert.Contains(t, schema, "DEFAULT gen_random_uuid()")
}
