package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	migrations "github.com/pondokdigital/pesantren-api/migrations/postgres"
)

func TestParseOrdersByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0003_third.sql":  {Data: []byte("SELECT 3")},
		"0001_first.sql":  {Data: []byte("SELECT 1")},
		"0002_second.sql": {Data: []byte("SELECT 2")},
		"README.md":       {Data: []byte("ignored")},
	}

	got, err := New(fsys, ".").Parse()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, 2, got[1].Version)
	assert.Equal(t, 3, got[2].Version)
}

func TestParseEmbeddedMigrations(t *testing.T) {
	got, err := New(migrations.FS, migrations.Dir).Parse()
	require.NoError(t, err)
	require.NotEmpty(t, got)

	names := make(map[string]bool, len(got))
	for _, m := range got {
		names[m.Name] = true
		assert.NotEmpty(t, m.SQL)
	}
	assert.True(t, names["user_profiles"])
	assert.True(t, names["santri"])
	assert.True(t, names["kas_transaksi"])
}
