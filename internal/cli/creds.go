package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/archive"
	"inspect-cli/internal/credstore"
)

func newCredsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "creds",
		Short: "Inspect credential store items",
	}
	cmd.AddCommand(newCredsClassesCmd(app))
	cmd.AddCommand(newCredsListCmd(app))
	return cmd
}

type credClassRow struct {
	Class string `json:"class" yaml:"class"`
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

func newCredsClassesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List item classes with counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := demoCredStore()
			rows := []credClassRow{}
			for _, c := range credstore.Classes() {
				items, err := st.ListItems(c)
				if err != nil {
					return writeErr(cmd, err)
				}
				rows = append(rows, credClassRow{Class: string(c), Label: c.String(), Count: len(items)})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newCredsListCmd(app *App) *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items of a class with translated attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := credstore.ItemClass(class)
			valid := false
			for _, known := range credstore.Classes() {
				if c == known {
					valid = true
					break
				}
			}
			if !valid {
				return writeErr(cmd, fmt.Errorf("unknown class %q (one of: cert, genp, idnt, inet, keys)", class))
			}

			st := demoCredStore()
			items, err := st.ListItems(c)
			if err != nil {
				return writeErr(cmd, err)
			}

			classifier := anyval.NewClassifier(archive.Gob{})
			rows := make([]map[string]string, 0, len(items))
			for _, raw := range items {
				attrs := credstore.Translate(c, raw)
				row := map[string]string{}
				for _, k := range credstore.OrderKeys(attrs) {
					row[k] = classifier.Classify(attrs[k]).Summary
				}
				rows = append(rows, row)
			}
			return writeOut(cmd, app, map[string]any{"class": c.String(), "data": rows})
		},
	}

	cmd.Flags().StringVar(&class, "class", "genp", "Item class (cert|genp|idnt|inet|keys)")
	return cmd
}
