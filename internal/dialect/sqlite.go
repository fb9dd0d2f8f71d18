package dialect

import (
	_ "modernc.org/sqlite" // SQLite Driver (pure Go)
)

type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string { return "sqlite" }

// SQLite has a single schema per connection. The `? IS NOT NULL` clause
// consumes the schema argument like the Oracle dialect does.

func (d *SQLiteDialect) GetTablesQuery(schema string) string {
	return `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND ? IS NOT NULL ORDER BY name`
}

func (d *SQLiteDialect) GetColumnsQuery(schema string) string {
	return `
SELECT
    m.name,
    p.name,
    p.type,
    CASE WHEN p."notnull" = 1 OR p.pk > 0 THEN 'NO' ELSE 'YES' END,
    CASE WHEN p.pk > 0 THEN 'PRI' ELSE '' END
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, p.cid`
}

func (d *SQLiteDialect) GetForeignKeysQuery(schema string) string {
	return `
SELECT
    m.name,
    'fk_' || m.name || '_' || f.id,
    f."from",
    f."table",
    COALESCE(f."to", '')
FROM sqlite_master m
JOIN pragma_foreign_key_list(m.name) f
WHERE m.type = 'table' AND m.name NOT LIKE 'sqlite_%' AND ? IS NOT NULL
ORDER BY m.name, f.id, f.seq`
}

func (d *SQLiteDialect) NormalizeType(sqlType string) string {
	if sqlType == "" {
		return "TEXT"
	}
	return DefaultNormalizeType(sqlType)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
