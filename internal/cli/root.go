package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"inspect-cli/internal/config"
	"inspect-cli/internal/format"
	"inspect-cli/internal/kvstore"
	"inspect-cli/internal/tui"
)

type App struct {
	Format     string
	PrettyJSON bool

	// Overrides for the config file; empty means "use config".
	StorePath string
	Domain    string
	LogDir    string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "inspect",
		Short:        "In-app inspection panel (TUI + scriptable commands)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive panel
  inspect

  # Scriptable commands
  inspect settings list --filter url
  inspect creds list --class genp
  inspect logs cat app.log --filter error
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive panel.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INSPECT_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.StorePath, "store", envOr("INSPECT_STORE", ""), "Path to the settings database (overrides config)")
	cmd.PersistentFlags().StringVar(&app.Domain, "domain", envOr("INSPECT_DOMAIN", ""), "Default settings domain (overrides config)")
	cmd.PersistentFlags().StringVar(&app.LogDir, "log-dir", envOr("INSPECT_LOG_DIR", ""), "Directory scanned for *.log files (overrides config)")

	cmd.AddCommand(newSettingsCmd(app))
	cmd.AddCommand(newCredsCmd(app))
	cmd.AddCommand(newLogsCmd(app))

	return cmd
}

func (app *App) loadConfig() (*config.Config, error) {
	if app.cfg != nil {
		return app.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if app.StorePath != "" {
		cfg.StorePath = app.StorePath
	}
	if app.Domain != "" {
		cfg.Domain = app.Domain
	}
	if app.LogDir != "" {
		cfg.LogDir = app.LogDir
	}
	app.cfg = cfg
	return cfg, nil
}

func (app *App) openKV() (kvstore.Store, *config.Config, error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kv, err := kvstore.OpenSQLite(cfg.StorePath, cfg.Domain)
	if err != nil {
		return nil, nil, err
	}
	return kv, cfg, nil
}

func runTUI(app *App) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	panel, err := newDemoPanel(cfg)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Title:      cfg.Title,
		Menu:       panel.menu,
		Delegate:   panel,
		KV:         panel.kv,
		Creds:      panel.creds,
		Classifier: panel.classifier,
		TruncateAt: cfg.TruncateAt,
		LogDir:     cfg.LogDir,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
