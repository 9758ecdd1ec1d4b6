package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <split>",
		Short: "Stop one split and restore its original routing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}
			if err := core.manager.StopByName(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Split %q stopped\n", args[0])
			return nil
		},
	}
}

func newStopAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop-all",
		Short: "Stop every active split",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}

			before, err := core.store.ListAll()
			if err != nil {
				return err
			}
			if len(before) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No active splits")
				return nil
			}

			stopped, err := core.manager.StopAll(cmd.Context())
			if err != nil {
				return err
			}

			stoppedSet := make(map[string]bool, len(stopped))
			for _, name := range stopped {
				fmt.Fprintf(cmd.OutOrStdout(), "Split %q stopped\n", name)
				stoppedSet[name] = true
			}

			failed := 0
			for _, rec := range before {
				if !stoppedSet[rec.Name] {
					fmt.Fprintf(cmd.OutOrStdout(), "Split %q could not be fully stopped\n", rec.Name)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d splits failed to stop", failed, len(before))
			}
			return nil
		},
	}
}
