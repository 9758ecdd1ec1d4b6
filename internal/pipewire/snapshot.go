package pipewire

import (
	"fmt"
	"sort"
)

// Snapshot is one immutable parse of the full routing graph. The server is
// authoritative and changes the graph asynchronously, so a snapshot only
// describes the graph as it was at dump time.
type Snapshot struct {
	nodes []Node
	ports []Port
	links []Link
}

// Nodes returns every node in the snapshot.
func (s *Snapshot) Nodes() []Node {
	return s.nodes
}

// Ports returns every port in the snapshot.
func (s *Snapshot) Ports() []Port {
	return s.ports
}

// Links returns every link in the snapshot.
func (s *Snapshot) Links() []Link {
	return s.links
}

// Sources returns every application node producing audio.
func (s *Snapshot) Sources() []Source {
	var sources []Source
	for _, node := range s.nodes {
		if node.MediaClass != MediaClassSource {
			continue
		}
		sources = append(sources, Source{
			NodeID:          node.ID,
			NodeName:        node.Name,
			ApplicationName: fallback(node.ApplicationName, node.Name),
			MediaName:       fallback(node.MediaName, "Audio"),
		})
	}
	return sources
}

// RecordingDestinations returns every application node capturing audio.
func (s *Snapshot) RecordingDestinations() []RecordingDestination {
	var dests []RecordingDestination
	for _, node := range s.nodes {
		if node.MediaClass != MediaClassRecordingDest {
			continue
		}
		dests = append(dests, RecordingDestination{
			NodeID:          node.ID,
			NodeName:        node.Name,
			ApplicationName: fallback(node.ApplicationName, node.Name),
			MediaName:       fallback(node.MediaName, "Audio"),
		})
	}
	return dests
}

// Sinks returns every device output endpoint.
func (s *Snapshot) Sinks() []Sink {
	var sinks []Sink
	for _, node := range s.nodes {
		if node.MediaClass != MediaClassSink {
			continue
		}
		sinks = append(sinks, Sink{
			NodeID:      node.ID,
			NodeName:    node.Name,
			Description: fallback(node.Description, node.Name),
		})
	}
	return sinks
}

// ConnectionsOf groups the links leaving nodeID by target node, one
// Connection per distinct target. Target names are best effort; an
// unresolvable target is reported as Unknown(<id>).
func (s *Snapshot) ConnectionsOf(nodeID uint32) []Connection {
	byTarget := make(map[uint32][]Link)
	for _, link := range s.links {
		if link.OutputNodeID == nodeID {
			byTarget[link.InputNodeID] = append(byTarget[link.InputNodeID], link)
		}
	}

	connections := make([]Connection, 0, len(byTarget))
	for targetID, links := range byTarget {
		name, ok := s.NodeName(targetID)
		if !ok || name == "" {
			name = fmt.Sprintf("Unknown(%d)", targetID)
		}
		connections = append(connections, Connection{
			SourceNodeID:   nodeID,
			TargetNodeID:   targetID,
			TargetNodeName: name,
			Links:          links,
		})
	}
	sort.Slice(connections, func(i, j int) bool {
		return connections[i].TargetNodeID < connections[j].TargetNodeID
	})
	return connections
}

// Node returns the node with the given id.
func (s *Snapshot) Node(id uint32) (Node, bool) {
	for _, node := range s.nodes {
		if node.ID == id {
			return node, true
		}
	}
	return Node{}, false
}

// NodeName returns the name of the node with the given id.
func (s *Snapshot) NodeName(id uint32) (string, bool) {
	node, ok := s.Node(id)
	if !ok {
		return "", false
	}
	return node.Name, true
}

// FindNodeByName returns the first node with the given name. Node names are
// not unique; callers needing an exact node should match by id instead.
func (s *Snapshot) FindNodeByName(name string) (Node, bool) {
	for _, node := range s.nodes {
		if node.Name == name {
			return node, true
		}
	}
	return Node{}, false
}

// StereoPorts returns the FL/FR ports owned by nodeID in the given
// direction.
func (s *Snapshot) StereoPorts(nodeID uint32, direction Direction) []Port {
	var ports []Port
	for _, port := range s.ports {
		if port.NodeID == nodeID && port.Direction == direction && port.IsStereo() {
			ports = append(ports, port)
		}
	}
	return ports
}

// HasPorts reports whether nodeID owns at least one port in the given
// direction.
func (s *Snapshot) HasPorts(nodeID uint32, direction Direction) bool {
	for _, port := range s.ports {
		if port.NodeID == nodeID && port.Direction == direction {
			return true
		}
	}
	return false
}

func fallback(value, alt string) string {
	if value == "" {
		return alt
	}
	return value
}
