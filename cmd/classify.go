package cmd

import (
	"fmt"
	"strings"

	"erd-builder/internal/schema"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <table> [column[:pk]...]",
	Short: "Guess whether a table is a fact or a dimension",
	Example: `  erd-builder classify sales_fact
  erd-builder classify customers customer_id:pk region_id:pk tenant_id:pk name`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var columns []schema.Column
		for _, arg := range args[1:] {
			name, flag, _ := strings.Cut(arg, ":")
			columns = append(columns, schema.Column{
				Name: name,
				IsPK: strings.EqualFold(flag, "pk"),
			})
		}
		fmt.Println(schema.DetectTableKind(args[0], columns))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(classifyCmd)
}
