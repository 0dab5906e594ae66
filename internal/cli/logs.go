package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inspect-cli/internal/logbuf"
)

func newLogsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Inspect log files in the configured directory",
	}
	cmd.AddCommand(newLogsListCmd(app))
	cmd.AddCommand(newLogsCatCmd(app))
	return cmd
}

type logRow struct {
	Name      string `json:"name" yaml:"name"`
	SizeBytes int64  `json:"sizeBytes" yaml:"sizeBytes"`
}

func newLogsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List log files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			sources, err := logbuf.FileSources(cfg.LogDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := []logRow{}
			for _, s := range sources {
				rows = append(rows, logRow{Name: s.Name, SizeBytes: s.SizeBytes})
			}
			return writeOut(cmd, app, map[string]any{"data": rows})
		},
	}
}

func newLogsCatCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "cat <name>",
		Short: "Print a log file, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			sources, err := logbuf.FileSources(cfg.LogDir)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := strings.TrimSpace(args[0])
			for _, s := range sources {
				if s.Name != name {
					continue
				}
				content, err := s.Read()
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, line := range logbuf.FilterLines(content, filter) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}
			return writeErr(cmd, errNotFound("log", name))
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive substring filter")
	return cmd
}
