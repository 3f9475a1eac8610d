package db

import (
	"cmp"
	"context"
	"database/sql"
	"slices"

	_ "github.com/mattn/go-sqlite3"

	"github.com/tordrt/coddschema/internal/schema"
)

// SQLiteClient manages the connection to a SQLite file
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens the database file at path
func NewSQLiteClient(ctx context.Context, path string) (*SQLiteClient, error) {
	db, err := openSQL(ctx, "sqlite3", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteClient{db: db}, nil
}

// Close closes the database connection
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// SQLiteExtractor reads tables of a SQLite database
type SQLiteExtractor struct {
	client *SQLiteClient
}

// NewSQLiteExtractor creates a new SQLite extractor
func NewSQLiteExtractor(client *SQLiteClient) *SQLiteExtractor {
	return &SQLiteExtractor{client: client}
}

// ExtractTables implements Extractor
func (e *SQLiteExtractor) ExtractTables(ctx context.Context, tables []string) ([]schema.Table, error) {
	return extractTables(ctx, e, tables)
}

func (e *SQLiteExtractor) name() string {
	return "sqlite"
}

func (e *SQLiteExtractor) listTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	return queryStrings(ctx, e.client.db, query)
}

type sqliteColumn struct {
	schema.Column
	pkPosition int
}

func (e *SQLiteExtractor) tableInfo(ctx context.Context, table string) ([]sqliteColumn, error) {
	query := `SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`
	rows, err := e.client.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []sqliteColumn
	for rows.Next() {
		var col sqliteColumn
		var notNull int
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &col.pkPosition); err != nil {
			return nil, err
		}
		col.Nullable = notNull == 0
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (e *SQLiteExtractor) columns(ctx context.Context, table string) ([]schema.Column, error) {
	info, err := e.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	columns := make([]schema.Column, len(info))
	for i, col := range info {
		columns[i] = col.Column
	}
	return columns, nil
}

// primaryKey orders the key columns by their position in the key, not in the
// table
func (e *SQLiteExtractor) primaryKey(ctx context.Context, table string) ([]string, error) {
	info, err := e.tableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	info = slices.DeleteFunc(info, func(c sqliteColumn) bool { return c.pkPosition == 0 })
	slices.SortFunc(info, func(a, b sqliteColumn) int { return cmp.Compare(a.pkPosition, b.pkPosition) })

	var pk []string
	for _, col := range info {
		pk = append(pk, col.Name)
	}
	return pk, nil
}

// uniqueKeys reads unique indexes over plain columns; partial indexes are
// skipped
func (e *SQLiteExtractor) uniqueKeys(ctx context.Context, table string) ([][]string, error) {
	query := `
		SELECT name
		FROM pragma_index_list(?)
		WHERE "unique" = 1 AND origin != 'pk' AND partial = 0
		ORDER BY name
	`
	indexes, err := queryStrings(ctx, e.client.db, query, table)
	if err != nil {
		return nil, err
	}

	var keys [][]string
	for _, index := range indexes {
		columns, err := e.indexColumns(ctx, index)
		if err != nil {
			return nil, err
		}
		if len(columns) > 0 {
			keys = append(keys, columns)
		}
	}
	return keys, nil
}

// indexColumns returns nil for indexes over expressions
func (e *SQLiteExtractor) indexColumns(ctx context.Context, index string) ([]string, error) {
	rows, err := e.client.db.QueryContext(ctx, `SELECT name FROM pragma_index_info(?) ORDER BY seqno`, index)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if !name.Valid {
			return nil, nil
		}
		columns = append(columns, name.String)
	}
	return columns, rows.Err()
}
