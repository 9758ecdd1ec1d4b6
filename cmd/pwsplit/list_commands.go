package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSourcesCommand(ctx *commandContext) *cobra.Command {
	var showConnections bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List applications currently producing audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}
			snap, err := core.client.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0)
			for _, source := range snap.Sources() {
				row := []string{
					strconv.FormatUint(uint64(source.NodeID), 10),
					source.DisplayName(),
					source.NodeName,
				}
				if showConnections {
					targets := ""
					for i, conn := range snap.ConnectionsOf(source.NodeID) {
						if i > 0 {
							targets += ", "
						}
						targets += conn.TargetNodeName
					}
					row = append(row, targets)
				}
				rows = append(rows, row)
			}

			headers := []string{"ID", "SOURCE", "NODE"}
			if showConnections {
				headers = append(headers, "CONNECTED TO")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showConnections, "connections", false, "Show each source's current targets")
	return cmd
}

func newDestinationsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "destinations",
		Short: "List applications currently capturing audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}
			snap, err := core.client.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0)
			for _, dest := range snap.RecordingDestinations() {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(dest.NodeID), 10),
					dest.DisplayName(),
					dest.NodeName,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "DESTINATION", "NODE"}, rows))
			return nil
		},
	}
}

func newSinksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sinks",
		Short: "List device output endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}
			snap, err := core.client.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0)
			for _, sink := range snap.Sinks() {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(sink.NodeID), 10),
					sink.Description,
					sink.NodeName,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "SINK", "NODE"}, rows))
			return nil
		},
	}
}

func newSplitsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "splits",
		Short: "List active splits",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}
			records, err := core.store.ListAll()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Name,
					rec.SourceApplicationName,
					rec.RecordingDestApplicationName,
					rec.OriginalOutputNodeName,
					relayStatus(core, rec.RecordingLoopbackPID),
					relayStatus(core, rec.LocalLoopbackPID),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"SPLIT", "SOURCE", "RECORDING", "LOCAL OUTPUT", "REC RELAY", "LOCAL RELAY"}, rows))
			return nil
		},
	}
}

func relayStatus(c *core, pid int) string {
	if c.relays.IsRunning(pid) {
		return fmt.Sprintf("up (%d)", pid)
	}
	return fmt.Sprintf("down (%d)", pid)
}
