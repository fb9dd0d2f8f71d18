package dialect

// Dialect abstracts the database-specific catalog queries used to read a
// live schema into a diagram.
//
// Every query takes the schema name as its single bind parameter.
//   - TablesQuery returns (table_name)
//   - ColumnsQuery returns (table_name, column_name, data_type, is_nullable, column_key)
//     where is_nullable is YES/NO (or Y/N) and column_key contains PRI for primary key columns
//   - ForeignKeysQuery returns (table_name, constraint_name, column_name, referenced_table, referenced_column)
type Dialect interface {
	Name() string

	// Metadata Queries (Schema Introspection)
	GetTablesQuery(schema string) string
	GetColumnsQuery(schema string) string
	GetForeignKeysQuery(schema string) string

	// Helpers
	NormalizeType(sqlType string) string
	GetSchemaName(input string) string
}
