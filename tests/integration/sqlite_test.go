//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/coddschema"
	"github.com/tordrt/coddschema/internal/db"
)

// createSQLiteFixture builds the fixture in a temporary database file
func createSQLiteFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.db")

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	for _, stmt := range fixtureDDL {
		_, err := conn.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func TestSQLiteExtraction(t *testing.T) {
	ctx := context.Background()
	path := createSQLiteFixture(t)

	client, err := db.NewSQLiteClient(ctx, path)
	require.NoError(t, err)
	defer client.Close()

	tables, err := db.NewSQLiteExtractor(client).ExtractTables(ctx, nil)
	require.NoError(t, err)

	var names []string
	for _, table := range tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"audit_log", "enrollments", "order_items", "users"}, names)
	verifyFixtureTables(t, tables)
}

func TestSQLiteSpecificTables(t *testing.T) {
	ctx := context.Background()
	path := createSQLiteFixture(t)

	client, err := db.NewSQLiteClient(ctx, path)
	require.NoError(t, err)
	defer client.Close()

	extractor := db.NewSQLiteExtractor(client)
	tables, err := extractor.ExtractTables(ctx, []string{"users", "order_items"})
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "order_items", tables[1].Name)

	_, err = extractor.ExtractTables(ctx, []string{"missing"})
	assert.ErrorIs(t, err, db.ErrTableNotFound)
}

func TestSQLiteNormalization(t *testing.T) {
	ctx := context.Background()
	url := "sqlite://" + createSQLiteFixture(t)

	verifyFixtureNormalization(t, ctx, url, &coddschema.Options{ExcludeTables: []string{"audit_log"}})

	var buf bytes.Buffer
	err := coddschema.NormalizeDatabase(ctx, url,
		&coddschema.Options{Tables: []string{"enrollments"}},
		&coddschema.OutputOptions{Writer: &buf, Format: "markdown"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "## enrollments")
	assert.Contains(t, buf.String(), "- **Candidate keys:** {id}, {course, student}")
}
