package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"searchgrip/internal/domain"
)

func newSearchCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search once and print results and history",
		Long: `Send one search for <term> and print the results, then the search history.
The term is sent exactly as given, so "" searches for the empty string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, view, err := flags.start(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.Close(context.WithoutCancel(cmd.Context())))
			}()

			controller, _ := a.Search(view)
			view.SetTerm(args[0])
			return controller.Search(cmd.Context(), domain.TriggerButton)
		},
	}
}

func newHistoryCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the server's search history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, view, err := flags.start(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.Close(context.WithoutCancel(cmd.Context())))
			}()

			_, history := a.Search(view)
			return history.Load(cmd.Context())
		},
	}
}
