package routing

import (
	"context"
	"fmt"
	"strings"

	"pwsplit/internal/pipewire"
)

// WireSourceToCapture links the source's FL/FR output ports to the capture
// half of the named loopback, pairing identical channel labels.
func (p *Planner) WireSourceToCapture(ctx context.Context, sourceNodeID uint32, loopbackName string) error {
	snap, err := p.graph.Snapshot(ctx)
	if err != nil {
		return err
	}

	captureID, ok := findLoopbackHalf(snap, loopbackName, pipewire.DirectionInput)
	if !ok {
		return fmt.Errorf("%w: loopback capture %s", pipewire.ErrNodeNotFound, loopbackName)
	}

	sourcePorts := snap.StereoPorts(sourceNodeID, pipewire.DirectionOutput)
	capturePorts := snap.StereoPorts(captureID, pipewire.DirectionInput)
	if len(sourcePorts) == 0 || len(capturePorts) == 0 {
		return fmt.Errorf("%w: no matching stereo ports: source has %d, capture %s has %d",
			ErrLinkCreate, len(sourcePorts), loopbackName, len(capturePorts))
	}

	sourceName, ok := snap.NodeName(sourceNodeID)
	if !ok {
		return fmt.Errorf("%w: source node %d", pipewire.ErrNodeNotFound, sourceNodeID)
	}
	captureName, ok := snap.NodeName(captureID)
	if !ok {
		return fmt.Errorf("%w: loopback node %d", pipewire.ErrNodeNotFound, captureID)
	}

	for _, src := range sourcePorts {
		for _, capture := range capturePorts {
			if src.Channel != capture.Channel {
				continue
			}
			out := PortAddress(sourceName, src.Name)
			in := PortAddress(captureName, capture.Name)
			if err := p.Link(ctx, out, in); err != nil {
				return err
			}
		}
	}
	return nil
}

// WirePlaybackToNode links the playback half of the named loopback to the
// destination node's FL/FR input ports, addressing the destination by
// numeric port id because node names may collide.
func (p *Planner) WirePlaybackToNode(ctx context.Context, loopbackName string, destNodeID uint32) error {
	snap, err := p.graph.Snapshot(ctx)
	if err != nil {
		return err
	}

	playbackID, ok := findLoopbackHalf(snap, loopbackName, pipewire.DirectionOutput)
	if !ok {
		return fmt.Errorf("%w: loopback playback %s", pipewire.ErrNodeNotFound, loopbackName)
	}

	playbackPorts := snap.StereoPorts(playbackID, pipewire.DirectionOutput)
	destPorts := snap.StereoPorts(destNodeID, pipewire.DirectionInput)
	if len(playbackPorts) == 0 || len(destPorts) == 0 {
		return fmt.Errorf("%w: no matching stereo ports: playback %s has %d, destination node %d has %d",
			ErrLinkCreate, loopbackName, len(playbackPorts), destNodeID, len(destPorts))
	}

	playbackName, ok := snap.NodeName(playbackID)
	if !ok {
		return fmt.Errorf("%w: loopback node %d", pipewire.ErrNodeNotFound, playbackID)
	}

	for _, pb := range playbackPorts {
		for _, dest := range destPorts {
			if pb.Channel != dest.Channel {
				continue
			}
			out := PortAddress(playbackName, pb.Name)
			if err := p.LinkByID(ctx, out, dest.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// WirePlaybackToSink links the playback half of the named loopback to a sink
// addressed by node name.
func (p *Planner) WirePlaybackToSink(ctx context.Context, loopbackName, sinkName string) error {
	snap, err := p.graph.Snapshot(ctx)
	if err != nil {
		return err
	}

	playbackID, ok := findLoopbackHalf(snap, loopbackName, pipewire.DirectionOutput)
	if !ok {
		return fmt.Errorf("%w: loopback playback %s", pipewire.ErrNodeNotFound, loopbackName)
	}
	sinkNode, ok := snap.FindNodeByName(sinkName)
	if !ok {
		return fmt.Errorf("%w: sink %s", pipewire.ErrNodeNotFound, sinkName)
	}

	playbackPorts := snap.StereoPorts(playbackID, pipewire.DirectionOutput)
	sinkPorts := snap.StereoPorts(sinkNode.ID, pipewire.DirectionInput)
	if len(playbackPorts) == 0 || len(sinkPorts) == 0 {
		return fmt.Errorf("%w: no matching stereo ports: playback %s has %d, sink %s has %d",
			ErrLinkCreate, loopbackName, len(playbackPorts), sinkName, len(sinkPorts))
	}

	playbackName, ok := snap.NodeName(playbackID)
	if !ok {
		return fmt.Errorf("%w: loopback node %d", pipewire.ErrNodeNotFound, playbackID)
	}

	for _, pb := range playbackPorts {
		for _, sp := range sinkPorts {
			if pb.Channel != sp.Channel {
				continue
			}
			out := PortAddress(playbackName, pb.Name)
			in := PortAddress(sinkName, sp.Name)
			if err := p.Link(ctx, out, in); err != nil {
				return err
			}
		}
	}
	return nil
}

// Sever unlinks every matched FL/FR pair between the source and target nodes
// in the given snapshot and returns the pairs actually severed, in pw-link
// address form. Pairs whose concrete ports cannot be resolved are skipped,
// not fatal; the caller records the returned specs for later restoration.
func (p *Planner) Sever(ctx context.Context, snap *pipewire.Snapshot, sourceNodeID, targetNodeID uint32) []LinkSpec {
	sourceName, ok := snap.NodeName(sourceNodeID)
	if !ok {
		return nil
	}
	targetName, ok := snap.NodeName(targetNodeID)
	if !ok {
		return nil
	}

	sourcePorts := snap.StereoPorts(sourceNodeID, pipewire.DirectionOutput)
	targetPorts := snap.StereoPorts(targetNodeID, pipewire.DirectionInput)

	var severed []LinkSpec
	for _, src := range sourcePorts {
		for _, tgt := range targetPorts {
			if src.Channel != tgt.Channel {
				continue
			}
			out := PortAddress(sourceName, src.Name)
			in := PortAddress(targetName, tgt.Name)
			if err := p.Unlink(ctx, out, in); err != nil {
				p.logger.Warn("sever link", "output", out, "input", in, "error", err)
				continue
			}
			severed = append(severed, LinkSpec{OutputPort: out, InputPort: in})
		}
	}
	return severed
}

// findLoopbackHalf resolves the capture (input) or playback (output) half of
// a named loopback. pw-loopback tags each half's description with the
// loopback description plus an "input"/"output" role marker; when no
// description matches, fall back to the node named after the loopback that
// owns at least one port of the needed direction.
func findLoopbackHalf(snap *pipewire.Snapshot, loopbackName string, direction pipewire.Direction) (uint32, bool) {
	role := "input"
	if direction == pipewire.DirectionOutput {
		role = "output"
	}
	for _, node := range snap.Nodes() {
		if strings.Contains(node.Description, loopbackName) && strings.Contains(node.Description, role) {
			return node.ID, true
		}
	}
	for _, node := range snap.Nodes() {
		if strings.Contains(node.Name, loopbackName) && snap.HasPorts(node.ID, direction) {
			return node.ID, true
		}
	}
	return 0, false
}
