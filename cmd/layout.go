package cmd

import (
	"fmt"
	"log"

	"erd-builder/internal/layout"
	"erd-builder/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var layoutOut string

var layoutCmd = &cobra.Command{
	Use:   "layout <model.json>",
	Short: "Compute table positions (grid, tree, star, force, auto)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := schema.LoadDocument(args[0])
		if err != nil {
			return err
		}

		mode := layout.Mode(viper.GetString("layout.mode"))
		opts := layout.Options{Center: viper.GetString("layout.center")}
		log.Printf("Organizing %d tables (mode: %s)", len(doc.Tables), mode)

		// The bar shares stdout with the document, so only show it when writing to a file
		var bar *uiprogress.Bar
		if mode == layout.ModeForce && layoutOut != "" {
			uiprogress.Start()
			bar = uiprogress.AddBar(100).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Simulating: "
			})
			opts.Progress = func() { bar.Incr() }
		}

		pos, err := layout.Layout(mode, doc.Tables, doc.Relationships, opts)

		if bar != nil {
			uiprogress.Stop()
		}
		if err != nil {
			return fmt.Errorf("failed to organize: %w", err)
		}

		doc.Tables = layout.Apply(doc.Tables, pos)
		log.Printf("Positioned %d tables", len(pos))
		return writeDocument(layoutOut, doc)
	},
}

func init() {
	RootCmd.AddCommand(layoutCmd)

	layoutCmd.Flags().String("mode", "", fmt.Sprintf("Layout mode %v (overrides config)", layout.Modes))
	layoutCmd.Flags().String("center", "", "Center fact table id for star mode")
	layoutCmd.Flags().StringVarP(&layoutOut, "out", "o", "", "Output document (default stdout)")

	viper.BindPFlag("layout.mode", layoutCmd.Flags().Lookup("mode"))
	viper.BindPFlag("layout.center", layoutCmd.Flags().Lookup("center"))
}
