package cmd

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"erd-builder/internal/dialect"
	"erd-builder/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	introspectOut    string
	introspectTables []string
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Build a diagram document from a live database catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := ResolveDBConfig()
		if err != nil {
			return err
		}
		log.Printf("Connecting via %s (%s)", config.Driver, maskDSN(config.DSN))

		db, err := sql.Open(config.Driver, config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		schemaName := config.Schema
		if schemaName == "" && config.Driver == "mysql" {
			if err := db.QueryRow("SELECT DATABASE()").Scan(&schemaName); err != nil {
				return fmt.Errorf("failed to get database name: %w", err)
			}
			if schemaName == "" {
				return fmt.Errorf("no database selected in DSN")
			}
		}

		d := dialect.GetDialect(config.Driver)
		log.Printf("Using Dialect: %s", d.Name())

		log.Println("Analyzing schema...")
		start := time.Now()
		doc, err := schema.Analyze(db, d, schemaName)
		if err != nil {
			return err
		}

		// Filter tables strategy: flag, then config database.tables, else all tables
		names := introspectTables
		if len(names) == 0 {
			names = viper.GetStringSlice("database.tables")
		}
		if doc, err = schema.FilterTables(doc, names); err != nil {
			return err
		}
		if config.Name != "" {
			doc.ProjectName = config.Name
		}

		log.Println("Analysis Results (Dependency Order):")
		for i, t := range schema.DependencyOrder(doc.Tables, doc.Relationships) {
			log.Printf("[%02d] %-30s %-9s %d columns", i+1, t.Name, t.Kind, len(t.Columns))
		}
		log.Printf("Found %d tables, %d relationships in %s", len(doc.Tables), len(doc.Relationships), time.Since(start))

		return writeDocument(introspectOut, doc)
	},
}

func init() {
	RootCmd.AddCommand(introspectCmd)

	introspectCmd.Flags().String("dsn", "", "Database Source Name (DSN)")
	introspectCmd.Flags().String("driver", "", "Driver: mysql, postgres, sqlserver, oracle, sqlite (detected from DSN when empty)")
	introspectCmd.Flags().String("schema", "", "Schema to read (dialect default when empty)")
	introspectCmd.Flags().StringSliceVarP(&introspectTables, "tables", "t", []string{}, "Specific tables to import (comma-separated)")
	introspectCmd.Flags().StringVarP(&introspectOut, "out", "o", "", "Output document (default stdout)")

	viper.BindPFlag("database.dsn", introspectCmd.Flags().Lookup("dsn"))
	viper.BindPFlag("database.driver", introspectCmd.Flags().Lookup("driver"))
	viper.BindPFlag("database.schema", introspectCmd.Flags().Lookup("schema"))
}
