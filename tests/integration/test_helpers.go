//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/coddschema"
	"github.com/tordrt/coddschema/internal/normalize"
	"github.com/tordrt/coddschema/internal/schema"
)

// fixtureTables are created by every dialect test, in this order
var fixtureTables = []string{"users", "enrollments", "order_items", "audit_log"}

// fixtureDDL is portable across PostgreSQL, MySQL and SQLite
var fixtureDDL = []string{
	`CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(255),
		created_at VARCHAR(32)
	)`,
	`CREATE TABLE enrollments (
		id INTEGER PRIMARY KEY,
		student VARCHAR(100) NOT NULL,
		course VARCHAR(100) NOT NULL,
		teacher VARCHAR(100),
		UNIQUE (student, course)
	)`,
	`CREATE INDEX idx_enrollments_teacher ON enrollments (teacher)`,
	`CREATE TABLE order_items (
		order_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER,
		PRIMARY KEY (order_id, product_id)
	)`,
	`CREATE TABLE audit_log (
		id INTEGER PRIMARY KEY,
		message VARCHAR(255)
	)`,
}

func dropFixtureStatements() []string {
	stmts := make([]string, 0, len(fixtureTables))
	for i := len(fixtureTables) - 1; i >= 0; i-- {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+fixtureTables[i])
	}
	return stmts
}

// findTable is a helper function to find a table by name
func findTable(tables []schema.Table, tableName string) *schema.Table {
	for i := range tables {
		if tables[i].Name == tableName {
			return &tables[i]
		}
	}
	return nil
}

// verifyFixtureTables checks the extracted keys of the fixture tables
func verifyFixtureTables(t *testing.T, tables []schema.Table) {
	t.Helper()

	users := findTable(tables, "users")
	require.NotNil(t, users, "users table not found")
	assert.ElementsMatch(t, []string{"id", "username", "email", "created_at"}, users.ColumnNames())
	assert.Equal(t, []string{"id"}, users.PrimaryKey)
	assert.Equal(t, [][]string{{"username"}}, users.UniqueKeys)

	enrollments := findTable(tables, "enrollments")
	require.NotNil(t, enrollments, "enrollments table not found")
	assert.Equal(t, []string{"id"}, enrollments.PrimaryKey)
	require.Len(t, enrollments.UniqueKeys, 1, "non-unique index must not become a key")
	assert.ElementsMatch(t, []string{"student", "course"}, enrollments.UniqueKeys[0])

	orderItems := findTable(tables, "order_items")
	require.NotNil(t, orderItems, "order_items table not found")
	assert.Equal(t, []string{"order_id", "product_id"}, orderItems.PrimaryKey)
	assert.Empty(t, orderItems.UniqueKeys)
}

// verifyFixtureNormalization imports the fixture through the facade and
// checks the derived keys and normal forms
func verifyFixtureNormalization(t *testing.T, ctx context.Context, databaseURL string, opts *coddschema.Options) {
	t.Helper()

	rels, err := coddschema.ExtractRelations(ctx, databaseURL, opts)
	require.NoError(t, err)

	byName := make(map[string]*normalize.Relation)
	for _, r := range rels {
		byName[r.Name()] = r
	}
	require.Len(t, byName, 3)
	assert.NotContains(t, byName, "audit_log")

	wantKeys := map[string]string{
		"users":       "{id}, {username}",
		"enrollments": "{id}, {course, student}",
		"order_items": "{order_id, product_id}",
	}
	for name, keys := range wantKeys {
		r := byName[name]
		require.NotNil(t, r, name)
		assert.Equal(t, keys, r.CandidateKeys().String(), name)
		assert.Equal(t, normalize.BCNF, r.NormalForm(), name)
	}

	trees, err := coddschema.NormalizeAll(ctx, rels, opts)
	require.NoError(t, err)
	for _, tree := range trees {
		assert.True(t, tree.Reached())
		assert.True(t, tree.Root().IsLeaf(), "key-derived relations are already in BCNF")
	}
}
