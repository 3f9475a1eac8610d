package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tordrt/coddschema/internal/schema"
)

// PostgresClient manages the connection to PostgreSQL
type PostgresClient struct {
	conn *pgx.Conn
}

// NewPostgresClient connects and pings the server
func NewPostgresClient(ctx context.Context, connString string) (*PostgresClient, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresClient{conn: conn}, nil
}

// Close closes the database connection
func (c *PostgresClient) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

// PostgresExtractor reads tables of one PostgreSQL schema
type PostgresExtractor struct {
	client *PostgresClient
	schema string
}

// NewPostgresExtractor creates an extractor for schemaName, "public" if empty
func NewPostgresExtractor(client *PostgresClient, schemaName string) *PostgresExtractor {
	if schemaName == "" {
		schemaName = "public"
	}
	return &PostgresExtractor{client: client, schema: schemaName}
}

// ExtractTables implements Extractor
func (e *PostgresExtractor) ExtractTables(ctx context.Context, tables []string) ([]schema.Table, error) {
	return extractTables(ctx, e, tables)
}

func (e *PostgresExtractor) name() string {
	return "postgres"
}

func (e *PostgresExtractor) listTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	rows, err := e.client.conn.Query(ctx, query, e.schema)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (e *PostgresExtractor) columns(ctx context.Context, table string) ([]schema.Column, error) {
	query := `
		SELECT c.column_name, c.udt_name, c.is_nullable = 'YES'
		FROM information_schema.columns c
		WHERE c.table_schema = $1 AND c.table_name = $2
		ORDER BY c.ordinal_position
	`
	rows, err := e.client.conn.Query(ctx, query, e.schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var col schema.Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Nullable); err != nil {
			return nil, err
		}
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (e *PostgresExtractor) primaryKey(ctx context.Context, table string) ([]string, error) {
	query := `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON tc.constraint_name = kcu.constraint_name
			AND tc.table_schema = kcu.table_schema
			AND tc.table_name = kcu.table_name
		WHERE tc.table_schema = $1
			AND tc.table_name = $2
			AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position
	`
	rows, err := e.client.conn.Query(ctx, query, e.schema, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// uniqueKeys covers unique constraints and plain unique indexes. Partial and
// expression indexes do not define a key over whole columns and are skipped
func (e *PostgresExtractor) uniqueKeys(ctx context.Context, table string) ([][]string, error) {
	query := `
		SELECT array_agg(a.attname ORDER BY array_position(ix.indkey, a.attnum))
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE t.relkind = 'r'
			AND n.nspname = $1
			AND t.relname = $2
			AND ix.indisunique
			AND NOT ix.indisprimary
			AND ix.indpred IS NULL
			AND ix.indexprs IS NULL
		GROUP BY i.relname
		ORDER BY i.relname
	`
	rows, err := e.client.conn.Query(ctx, query, e.schema, table)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[[]string])
}
