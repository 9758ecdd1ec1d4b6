package testsupport

import (
	"encoding/json"
	"testing"

	"pwsplit/internal/pipewire"
)

// GraphBuilder assembles pw-dump shaped JSON for tests. It mirrors the object
// layout pw-dump emits so fixtures exercise the real parser.
type GraphBuilder struct {
	objects []map[string]any
}

// NewGraph returns an empty builder.
func NewGraph() *GraphBuilder {
	return &GraphBuilder{}
}

// NodeSpec describes one node fixture.
type NodeSpec struct {
	ID          uint32
	Name        string
	Description string
	Application string
	MediaName   string
	MediaClass  string
	State       string
}

// AddNode appends a node object.
func (b *GraphBuilder) AddNode(spec NodeSpec) *GraphBuilder {
	props := map[string]any{}
	if spec.Name != "" {
		props["node.name"] = spec.Name
	}
	if spec.Description != "" {
		props["node.description"] = spec.Description
	}
	if spec.Application != "" {
		props["application.name"] = spec.Application
	}
	if spec.MediaName != "" {
		props["media.name"] = spec.MediaName
	}
	if spec.MediaClass != "" {
		props["media.class"] = spec.MediaClass
	}
	b.objects = append(b.objects, map[string]any{
		"id":   spec.ID,
		"type": "PipeWire:Interface:Node",
		"info": map[string]any{
			"state": spec.State,
			"props": props,
		},
	})
	return b
}

// AddPort appends a port object.
func (b *GraphBuilder) AddPort(id, nodeID uint32, name, channel string, direction pipewire.Direction) *GraphBuilder {
	b.objects = append(b.objects, map[string]any{
		"id":   id,
		"type": "PipeWire:Interface:Port",
		"info": map[string]any{
			"direction": string(direction),
			"props": map[string]any{
				"node.id":       nodeID,
				"port.name":     name,
				"audio.channel": channel,
			},
		},
	})
	return b
}

// AddStereoPorts appends FL and FR ports for a node using ids baseID and
// baseID+1. Port names follow the pw convention for the direction
// (output_FL/output_FR or input_FL/input_FR).
func (b *GraphBuilder) AddStereoPorts(baseID, nodeID uint32, direction pipewire.Direction) *GraphBuilder {
	prefix := "input"
	if direction == pipewire.DirectionOutput {
		prefix = "output"
	}
	b.AddPort(baseID, nodeID, prefix+"_FL", "FL", direction)
	b.AddPort(baseID+1, nodeID, prefix+"_FR", "FR", direction)
	return b
}

// AddLink appends a link object.
func (b *GraphBuilder) AddLink(id, outNode, outPort, inNode, inPort uint32) *GraphBuilder {
	b.objects = append(b.objects, map[string]any{
		"id":   id,
		"type": "PipeWire:Interface:Link",
		"info": map[string]any{
			"output-node-id": outNode,
			"output-port-id": outPort,
			"input-node-id":  inNode,
			"input-port-id":  inPort,
		},
	})
	return b
}

// AddRaw appends an arbitrary object, for exercising the Other/ignored path.
func (b *GraphBuilder) AddRaw(obj map[string]any) *GraphBuilder {
	b.objects = append(b.objects, obj)
	return b
}

// JSON renders the accumulated objects as a pw-dump document.
func (b *GraphBuilder) JSON(t testing.TB) []byte {
	t.Helper()
	data, err := json.Marshal(b.objects)
	if err != nil {
		t.Fatalf("marshal graph fixture: %v", err)
	}
	return data
}

// Snapshot parses the accumulated objects into a pipewire.Snapshot.
func (b *GraphBuilder) Snapshot(t testing.TB) *pipewire.Snapshot {
	t.Helper()
	snap, err := pipewire.ParseDump(b.JSON(t))
	if err != nil {
		t.Fatalf("parse graph fixture: %v", err)
	}
	return snap
}
