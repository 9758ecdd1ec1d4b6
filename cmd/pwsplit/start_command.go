package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pwsplit/internal/pipewire"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	var (
		sourceArg string
		destArg   string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a split from a source to a recording destination",
		Long: `Start duplicates one application's audio into two paths: the named
recording destination and the source's original output. Sources and
destinations can be selected by application name, node name, or numeric
node id.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := ctx.ensureCore()
			if err != nil {
				return err
			}

			snap, err := core.client.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			source, err := resolveSource(snap, sourceArg)
			if err != nil {
				return err
			}
			dest, err := resolveDestination(snap, destArg)
			if err != nil {
				return err
			}

			connections := snap.ConnectionsOf(source.NodeID)
			rec, err := core.manager.Setup(cmd.Context(), source, dest, connections)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Split %q active: %s -> %s (local output on %s)\n",
				rec.Name, source.DisplayName(), dest.DisplayName(), rec.OriginalOutputNodeName)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceArg, "source", "", "Source application, node name, or node id")
	cmd.Flags().StringVar(&destArg, "dest", "", "Recording destination application, node name, or node id")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("dest")

	return cmd
}

// resolveSource matches selector against node id, application name, then
// node name, in that order. Name matches are case-insensitive.
func resolveSource(snap *pipewire.Snapshot, selector string) (pipewire.Source, error) {
	sources := snap.Sources()

	if id, err := strconv.ParseUint(selector, 10, 32); err == nil {
		for _, s := range sources {
			if s.NodeID == uint32(id) {
				return s, nil
			}
		}
		return pipewire.Source{}, fmt.Errorf("no audio source with node id %d", id)
	}

	for _, s := range sources {
		if strings.EqualFold(s.ApplicationName, selector) {
			return s, nil
		}
	}
	for _, s := range sources {
		if strings.EqualFold(s.NodeName, selector) {
			return s, nil
		}
	}
	return pipewire.Source{}, fmt.Errorf("no audio source matches %q", selector)
}

func resolveDestination(snap *pipewire.Snapshot, selector string) (pipewire.RecordingDestination, error) {
	dests := snap.RecordingDestinations()

	if id, err := strconv.ParseUint(selector, 10, 32); err == nil {
		for _, d := range dests {
			if d.NodeID == uint32(id) {
				return d, nil
			}
		}
		return pipewire.RecordingDestination{}, fmt.Errorf("no recording destination with node id %d", id)
	}

	for _, d := range dests {
		if strings.EqualFold(d.ApplicationName, selector) {
			return d, nil
		}
	}
	for _, d := range dests {
		if strings.EqualFold(d.NodeName, selector) {
			return d, nil
		}
	}
	return pipewire.RecordingDestination{}, fmt.Errorf("no recording destination matches %q", selector)
}
