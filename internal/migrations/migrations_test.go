package migrations

import (
	"io/fs"
	"testing"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/require"
)

func TestPreviousVersion(t *testing.T) {
	tests := []struct {
		name    string
		version uint
		want    int
	}{
		{name: "first migration dirty resets to nil", version: 1, want: database.NilVersion},
		{name: "second migration dirty forces first", version: 2, want: 1},
		{name: "later migration", version: 7, want: 6},
		{name: "zero version", version: 0, want: database.NilVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, previousVersion(tc.version))
		})
	}
}

func TestMigrationFiles_Embedded(t *testing.T) {
	names, err := fs.Glob(MigrationFiles, "*.sql")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		"000001_create_documents.up.sql",
		"000001_create_documents.down.sql",
		"000002_create_dashboard_layouts.up.sql",
		"000002_create_dashboard_layouts.down.sql",
	}, names)

	src, err := iofs.New(MigrationFiles, ".")
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	require.Equal(t, uint(2), next)
}
