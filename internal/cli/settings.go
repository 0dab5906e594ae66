package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"inspect-cli/internal/anyval"
	"inspect-cli/internal/archive"
	"inspect-cli/internal/kvstore"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect the persisted settings store",
	}
	cmd.AddCommand(newSettingsDomainsCmd(app))
	cmd.AddCommand(newSettingsListCmd(app))
	cmd.AddCommand(newSettingsGetCmd(app))
	return cmd
}

func newSettingsDomainsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List settings domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, _, err := app.openKV()
			if err != nil {
				return writeErr(cmd, err)
			}
			domains, err := kv.Domains()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": domains})
		},
	}
}

type settingRow struct {
	Key     string `json:"key" yaml:"key"`
	Type    string `json:"type" yaml:"type"`
	Summary string `json:"summary" yaml:"summary"`
}

func newSettingsListCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List keys with one-line value summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, cfg, err := app.openKV()
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, err := kvstore.Take(kv, cfg.Domain)
			if err != nil {
				return writeErr(cmd, err)
			}

			classifier := anyval.NewClassifier(archive.Gob{})
			rows := []settingRow{}
			for _, k := range snap.Keys(filter) {
				v, ok := snap.Value(k)
				if !ok {
					continue
				}
				cl := classifier.Classify(v)
				rows = append(rows, settingRow{
					Key:     k,
					Type:    string(cl.Kind),
					Summary: anyval.Truncate(cl.Summary, cfg.TruncateAt),
				})
			}
			return writeOut(cmd, app, map[string]any{"domain": snap.Domain, "data": rows})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive key substring")
	return cmd
}

func newSettingsGetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Show one value's full description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, cfg, err := app.openKV()
			if err != nil {
				return writeErr(cmd, err)
			}
			key := strings.TrimSpace(args[0])
			v, ok := kv.Lookup(cfg.Domain, key)
			if !ok {
				return writeErr(cmd, errNotFound("key", key))
			}
			cl := anyval.NewClassifier(archive.Gob{}).Classify(v)
			return writeOut(cmd, app, map[string]any{
				"key":   key,
				"type":  string(cl.Kind),
				"value": cl.Full,
			})
		},
	}
	return cmd
}
