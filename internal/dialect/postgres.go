package dialect

import (
	"strings"

	_ "github.com/lib/pq" // Postgres Driver
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string { return "postgres" }

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	// use $1 placeholder
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = $1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *PostgresDialect) GetColumnsQuery(schema string) string {
	// UDT_NAME keeps int4/varchar style names, NormalizeType maps them back.
	return `SELECT 
    c.table_name, 
    c.column_name, 
    c.udt_name, 
    c.is_nullable, 
    COALESCE((SELECT 'PRI' FROM information_schema.table_constraints tc 
     JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name 
     WHERE tc.constraint_type = 'PRIMARY KEY' 
     AND kcu.table_schema = c.table_schema AND kcu.table_name = c.table_name AND kcu.column_name = c.column_name LIMIT 1), '') AS column_key
FROM information_schema.columns c
WHERE c.table_schema = $1 
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT kcu.table_name, kcu.constraint_name, kcu.column_name, ccu.table_name AS referenced_table_name, ccu.column_name AS referenced_column_name FROM information_schema.key_column_usage kcu JOIN information_schema.constraint_column_usage ccu ON kcu.constraint_name = ccu.constraint_name JOIN information_schema.table_constraints tc ON kcu.constraint_name = tc.constraint_name WHERE kcu.table_schema = $1 AND tc.constraint_type = 'FOREIGN KEY' ORDER BY kcu.table_name, kcu.ordinal_position`
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "int4", "int2":
		return "INT"
	case "int8":
		return "BIGINT"
	case "float4":
		return "FLOAT"
	case "float8":
		return "DOUBLE"
	case "bpchar":
		return "CHAR"
	case "bool":
		return "BOOLEAN"
	case "timestamptz":
		return "TIMESTAMP"
	default:
		return DefaultNormalizeType(t)
	}
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
