package pipewire

import (
	"encoding/json"
	"fmt"
)

// pw-dump object type tags.
const (
	typeNode = "PipeWire:Interface:Node"
	typePort = "PipeWire:Interface:Port"
	typeLink = "PipeWire:Interface:Link"
)

type dumpObject struct {
	ID   uint32          `json:"id"`
	Type string          `json:"type"`
	Info json.RawMessage `json:"info"`
}

type nodeInfo struct {
	State string    `json:"state"`
	Props nodeProps `json:"props"`
}

type nodeProps struct {
	NodeName        string `json:"node.name"`
	NodeDescription string `json:"node.description"`
	ApplicationName string `json:"application.name"`
	MediaName       string `json:"media.name"`
	MediaClass      string `json:"media.class"`
}

type portInfo struct {
	Direction string    `json:"direction"`
	Props     portProps `json:"props"`
}

type portProps struct {
	NodeID       uint32 `json:"node.id"`
	PortName     string `json:"port.name"`
	AudioChannel string `json:"audio.channel"`
}

type linkInfo struct {
	OutputNodeID uint32 `json:"output-node-id"`
	OutputPortID uint32 `json:"output-port-id"`
	InputNodeID  uint32 `json:"input-node-id"`
	InputPortID  uint32 `json:"input-port-id"`
}

// ParseDump parses raw pw-dump JSON into a Snapshot. Objects other than
// nodes, ports, and links are ignored, as are objects missing the fields the
// router needs.
func ParseDump(data []byte) (*Snapshot, error) {
	var objects []dumpObject
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	snap := &Snapshot{}
	for _, obj := range objects {
		switch obj.Type {
		case typeNode:
			var info nodeInfo
			if len(obj.Info) > 0 {
				if err := json.Unmarshal(obj.Info, &info); err != nil {
					return nil, fmt.Errorf("%w: node %d: %v", ErrParse, obj.ID, err)
				}
			}
			snap.nodes = append(snap.nodes, Node{
				ID:              obj.ID,
				State:           info.State,
				Name:            info.Props.NodeName,
				Description:     info.Props.NodeDescription,
				ApplicationName: info.Props.ApplicationName,
				MediaName:       info.Props.MediaName,
				MediaClass:      info.Props.MediaClass,
			})
		case typePort:
			var info portInfo
			if len(obj.Info) > 0 {
				if err := json.Unmarshal(obj.Info, &info); err != nil {
					return nil, fmt.Errorf("%w: port %d: %v", ErrParse, obj.ID, err)
				}
			}
			var direction Direction
			switch info.Direction {
			case "input":
				direction = DirectionInput
			case "output":
				direction = DirectionOutput
			default:
				continue
			}
			snap.ports = append(snap.ports, Port{
				ID:        obj.ID,
				NodeID:    info.Props.NodeID,
				Name:      info.Props.PortName,
				Channel:   info.Props.AudioChannel,
				Direction: direction,
			})
		case typeLink:
			if len(obj.Info) == 0 {
				continue
			}
			var info linkInfo
			if err := json.Unmarshal(obj.Info, &info); err != nil {
				return nil, fmt.Errorf("%w: link %d: %v", ErrParse, obj.ID, err)
			}
			snap.links = append(snap.links, Link{
				ID:           obj.ID,
				OutputNodeID: info.OutputNodeID,
				OutputPortID: info.OutputPortID,
				InputNodeID:  info.InputNodeID,
				InputPortID:  info.InputPortID,
			})
		}
	}
	return snap, nil
}
