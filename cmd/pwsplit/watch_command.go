package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pwsplit/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Monitor active splits and respawn dead relays",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}

			watcher, err := watch.New(ctx.cfg, core.store, core.manager, ctx.logger)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watcher.Run(runCtx)
		},
	}
}
