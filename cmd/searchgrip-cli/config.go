package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"searchgrip/internal/config"
	"searchgrip/internal/eventbus"
	"searchgrip/internal/logger"
)

func newConfigCommand(flags *globalFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New(logger.Discard())
			bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
				if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "# from %s\n", ev.Path)
				}
			})

			cfg, err := config.NewConfigServiceWithBus(bus, flags.configPath).Load()
			bus.Close()
			if err != nil {
				return err
			}
			if flags.serverURL != "" {
				cfg.Server.BaseURL = flags.serverURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New(logger.Discard())
			bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
				if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", ev.Path)
				}
			})
			defer bus.Close()

			svc := config.NewConfigServiceWithBus(bus, flags.configPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			}

			cfg := config.DefaultConfig()
			if flags.serverURL != "" {
				cfg.Server.BaseURL = flags.serverURL
			}
			if flags.statsDir != "" {
				cfg.UI.StatsDir = flags.statsDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return svc.Save(cfg)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	configCmd.AddCommand(show, initCmd)
	return configCmd
}
