package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/tordrt/coddschema/internal/schema"
)

// openSQL opens a database/sql pool and pings it
func openSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// queryStrings runs a query returning one string column
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MySQLClient manages the connection to MySQL
type MySQLClient struct {
	db *sql.DB
}

// NewMySQLClient connects with a go-sql-driver DSN such as
// user:pass@tcp(host:3306)/database
func NewMySQLClient(ctx context.Context, dsn string) (*MySQLClient, error) {
	db, err := openSQL(ctx, "mysql", dsn)
	if err != nil {
		return nil, err
	}
	return &MySQLClient{db: db}, nil
}

// Close closes the database connection
func (c *MySQLClient) Close() error {
	return c.db.Close()
}

// ParseDatabaseName returns the database named in a MySQL DSN
func ParseDatabaseName(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("no database name in MySQL DSN")
	}
	return cfg.DBName, nil
}

// MySQLExtractor reads tables of one MySQL database
type MySQLExtractor struct {
	client     *MySQLClient
	schemaName string
}

// NewMySQLExtractor creates a new MySQL extractor
func NewMySQLExtractor(client *MySQLClient, schemaName string) *MySQLExtractor {
	return &MySQLExtractor{client: client, schemaName: schemaName}
}

// ExtractTables implements Extractor
func (e *MySQLExtractor) ExtractTables(ctx context.Context, tables []string) ([]schema.Table, error) {
	return extractTables(ctx, e, tables)
}

func (e *MySQLExtractor) name() string {
	return "mysql"
}

func (e *MySQLExtractor) listTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = ? AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	return queryStrings(ctx, e.client.db, query, e.schemaName)
}

func (e *MySQLExtractor) columns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT column_name, column_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position
	`
	rows, err := e.client.db.QueryContext(ctx, query, e.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable); err != nil {
			return nil, err
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (e *MySQLExtractor) primaryKey(ctx context.Context, table string) ([]string, error) {
	query := `
		SELECT column_name
		FROM information_schema.key_column_usage
		WHERE table_schema = ?
			AND table_name = ?
			AND constraint_name = 'PRIMARY'
		ORDER BY ordinal_position
	`
	return queryStrings(ctx, e.client.db, query, e.schemaName, table)
}

// uniqueKeys reads unique indexes, which back every MySQL unique constraint
func (e *MySQLExtractor) uniqueKeys(ctx context.Context, table string) ([][]string, error) {
	query := `
		SELECT s.index_name, s.column_name
		FROM information_schema.statistics s
		WHERE s.table_schema = ?
			AND s.table_name = ?
			AND s.index_name != 'PRIMARY'
			AND s.non_unique = 0
		ORDER BY s.index_name, s.seq_in_index
	`
	rows, err := e.client.db.QueryContext(ctx, query, e.schemaName, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []indexPart
	for rows.Next() {
		var part indexPart
		if err := rows.Scan(&part.index, &part.column); err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return groupIndexParts(parts), nil
}

// indexPart is one row of information_schema.statistics. Functional key parts
// of MySQL 8 indexes have a NULL column
type indexPart struct {
	index  string
	column sql.NullString
}

// groupIndexParts turns rows ordered by index and position into column lists.
// An index with any expression part is dropped as a whole: its plain columns
// alone are not unique
func groupIndexParts(parts []indexPart) [][]string {
	var keys [][]string
	for i := 0; i < len(parts); {
		j := i
		var columns []string
		functional := false
		for ; j < len(parts) && parts[j].index == parts[i].index; j++ {
			if !parts[j].column.Valid {
				functional = true
				continue
			}
			columns = append(columns, parts[j].column.String)
		}
		if !functional && len(columns) > 0 {
			keys = append(keys, columns)
		}
		i = j
	}
	return keys
}
