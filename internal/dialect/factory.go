package dialect

// GetDialect returns the appropriate Dialect implementation based on driver name.
func GetDialect(driver string) Dialect {
	switch driver {
	case "postgres":
		return &PostgresDialect{}
	case "sqlserver", "mssql":
		return &MSSQLDialect{}
	case "oracle":
		return &OracleDialect{}
	case "sqlite", "sqlite3":
		return &SQLiteDialect{}
	default: // mysql
		return &MysqlDialect{}
	}
}

// DetectDriver guesses the database/sql driver name from a DSN.
func DetectDriver(dsn string) string {
	switch {
	case hasAnyPrefix(dsn, "postgres://", "postgresql://") || containsAny(dsn, "sslmode"):
		return "postgres"
	case hasAnyPrefix(dsn, "sqlserver://"):
		return "sqlserver"
	case hasAnyPrefix(dsn, "oracle://"):
		return "oracle"
	case hasAnyPrefix(dsn, "file:") || hasAnySuffix(dsn, ".db", ".sqlite", ".sqlite3") || dsn == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}

// Ensure interface implementation
var _ Dialect = (*MysqlDialect)(nil)
var _ Dialect = (*PostgresDialect)(nil)
var _ Dialect = (*MSSQLDialect)(nil)
var _ Dialect = (*OracleDialect)(nil)
var _ Dialect = (*SQLiteDialect)(nil)
