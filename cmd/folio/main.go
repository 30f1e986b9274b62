package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/folio/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		return 1
	}
	return 0
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	prefsPath  string
	envPath    string
	ephemeral  bool
}

func (g *globalFlags) options(console bool) app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		EnvPath:    g.envPath,
		PrefsPath:  g.prefsPath,
		Ephemeral:  g.ephemeral,
		Console:    console,
	}
}

// open wires the application for a CLI subcommand.
func (g *globalFlags) open(cmd *cobra.Command) (*app.App, error) {
	return app.Open(cmd.Context(), g.options(true))
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "folio",
		Short: "Photo gallery for the terminal",
		Long: `Folio keeps a gallery of photos and albums with favorites and
per-photo filters. Run it without a command to open the terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options(false))
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/folio/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "prefs file (default ~/.config/folio/prefs.toml)")
	pf.StringVar(&flags.envPath, "env", "", "env file (default ./.env)")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep the gallery in memory only")

	root.AddCommand(
		newAddCmd(flags),
		newSearchCmd(flags),
		newExportCmd(flags),
		newAlbumsCmd(flags),
		newListCmd(flags),
	)
	return root
}
