package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"erd-builder/internal/ddl"
	"erd-builder/internal/schema"

	"github.com/spf13/cobra"
)

var (
	importOut      string
	importMerge    string
	importClassify bool
	importProject  string
)

var importCmd = &cobra.Command{
	Use:   "import <file.sql>...",
	Short: "Import CREATE TABLE statements into a diagram document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Files are parsed as one text so FOREIGN KEYs can point across files
		var sb strings.Builder
		for _, path := range args {
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			sb.Write(b)
			sb.WriteString("\n")
		}

		res := ddl.Parse(sb.String())
		if len(res.Tables) == 0 {
			return fmt.Errorf("no tables found in %s", strings.Join(args, ", "))
		}
		if importClassify {
			for i := range res.Tables {
				res.Tables[i].Kind = schema.DetectTableKind(res.Tables[i].Name, res.Tables[i].Columns)
			}
		}
		log.Printf("Parsed %d tables, %d relationships", len(res.Tables), len(res.Relationships))

		var base schema.Document
		if importMerge != "" {
			var err error
			if base, err = schema.LoadDocument(importMerge); err != nil {
				return err
			}
		}
		if importProject != "" {
			base.ProjectName = importProject
		}

		doc, stats := schema.Merge(base, res.Tables, res.Relationships)
		if importMerge != "" {
			log.Printf("Merged into %s: %d added, %d replaced, %d renamed, %d relationships added, %d duplicates dropped",
				importMerge, stats.TablesAdded, stats.TablesReplaced, stats.TablesRenamed, stats.RelationshipsAdded, stats.DuplicatesDropped)
		}

		return writeDocument(importOut, doc)
	},
}

func init() {
	RootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "Output document (default stdout)")
	importCmd.Flags().StringVar(&importMerge, "merge", "", "Existing document to merge the import into")
	importCmd.Flags().BoolVar(&importClassify, "classify", false, "Detect fact/dimension kind from table names")
	importCmd.Flags().StringVar(&importProject, "project", "", "Project name stored in the document")
}
