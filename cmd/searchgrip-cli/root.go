package main

import (
	"github.com/spf13/cobra"

	"searchgrip/internal/app"
	"searchgrip/internal/plain"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	serverURL  string
	statsDir   string
	color      bool
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "searchgrip-cli",
		Short: "Query an autocomplete server from the command line",
		Long: `searchgrip-cli sends searches to an autocomplete server and prints the
results followed by the server's search history.

Example usage:
  searchgrip-cli search cat             # one search, then the history
  searchgrip-cli history                # history only
  searchgrip-cli repl < terms.txt       # one search per input line
  searchgrip-cli config init            # write a default config file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is the user config dir)")
	root.PersistentFlags().StringVar(&flags.serverURL, "server", "", "autocomplete server base URL")
	root.PersistentFlags().StringVar(&flags.statsDir, "stats-dir", "", "write search statistics CSV files here on exit")
	root.PersistentFlags().BoolVar(&flags.color, "color", false, "colour the output")

	root.AddCommand(
		newSearchCommand(flags),
		newHistoryCommand(flags),
		newReplCommand(flags),
		newConfigCommand(flags),
	)
	return root
}

// start builds the shared services and a plain view on the command's streams
func (f *globalFlags) start(cmd *cobra.Command) (*app.App, *plain.View, error) {
	a, err := app.New(cmd.Context(), app.Options{
		ConfigPath: f.configPath,
		ServerURL:  f.serverURL,
		StatsDir:   f.statsDir,
	})
	if err != nil {
		return nil, nil, err
	}

	view := plain.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if f.color {
		view.WithStyles()
	}
	return a, view, nil
}
