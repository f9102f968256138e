package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"searchgrip/internal/domain"
)

func newReplCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Search once per line read from stdin",
		Long: `Read terms from stdin, one per line, and run a search for each as if
Enter had been pressed. Failures are reported and the loop continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			a, view, err := flags.start(cmd)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, a.Close(context.WithoutCancel(cmd.Context())))
			}()

			controller, _ := a.Search(view)
			r := bufio.NewReader(cmd.InOrStdin())
			failures := 0
			for cmd.Context().Err() == nil {
				line, readErr := r.ReadString('\n')
				if readErr != nil && !errors.Is(readErr, io.EOF) {
					return fmt.Errorf("read terms: %w", readErr)
				}
				if line != "" {
					view.SetTerm(trimEOL(line))
					if err := controller.Search(cmd.Context(), domain.TriggerEnter); err != nil {
						failures++
					}
				}
				if readErr != nil {
					break
				}
			}
			if failures > 0 {
				return fmt.Errorf("%d searches failed", failures)
			}
			return nil
		},
	}
}

// trimEOL drops the line terminator only; the rest of the line is the term
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
