package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talalabbas84/spledid-beauty-sub000/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create_vendors", "create_vendors"},
		{"Add Vendor Rating", "add_vendor_rating"},
		{"add--dispute  index", "add_dispute_index"},
		{"drop table; --", "drop_table"},
		{"_trailing_", "trailing"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration_Sequential(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations")

	first, err := CreateMigration(dir, "create vendors", "vendors table")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_create_vendors.up.sql"), first.UpPath)

	content, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Description: vendors table")
	assert.FileExists(t, first.DownPath)

	second, err := CreateMigration(dir, "add rating", "")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_vendors", "000002_add_rating"}, names)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory is empty", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("ignores other files and directories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_a.up.sql"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_a.down.sql"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), nil, 0o644))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000002_b.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a"}, names)
	})
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := filepath.Glob(filepath.Join("..", "..", "..", "migrations", "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		assert.FileExists(t, down)

		_, err := migrations.FS.Open(filepath.Base(up))
		assert.NoError(t, err, "%s is embedded", filepath.Base(up))
	}
}
