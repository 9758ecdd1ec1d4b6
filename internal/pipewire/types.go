package pipewire

import (
	"fmt"
	"strings"
	"unicode"
)

// Media classes that participate in routing. Nodes with any other class are
// ignored.
const (
	MediaClassSource        = "Stream/Output/Audio"
	MediaClassRecordingDest = "Stream/Input/Audio"
	MediaClassSink          = "Audio/Sink"
)

// Stereo channel labels. Only these participate in routing; other channel
// layouts are unsupported.
const (
	ChannelFrontLeft  = "FL"
	ChannelFrontRight = "FR"
)

// Direction is a port's data direction.
type Direction string

const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Node is one server-tracked endpoint: an application stream, a device, or a
// loopback half. IDs are only valid for the current server session.
type Node struct {
	ID              uint32
	State           string
	Name            string
	Description     string
	ApplicationName string
	MediaName       string
	MediaClass      string
}

// Port is one channel-level connection point on a node.
type Port struct {
	ID        uint32
	NodeID    uint32
	Name      string
	Channel   string
	Direction Direction
}

// IsStereo reports whether the port carries a front-left or front-right
// channel.
func (p Port) IsStereo() bool {
	return p.Channel == ChannelFrontLeft || p.Channel == ChannelFrontRight
}

// Link is one established connection between an output port and an input
// port.
type Link struct {
	ID           uint32
	OutputNodeID uint32
	OutputPortID uint32
	InputNodeID  uint32
	InputPortID  uint32
}

// Source is an application producing audio.
type Source struct {
	NodeID          uint32
	NodeName        string
	ApplicationName string
	MediaName       string
}

// DisplayName renders the source for selection lists.
func (s Source) DisplayName() string {
	return fmt.Sprintf("%s [%s]", s.ApplicationName, s.MediaName)
}

// SafeName reduces the application name to characters safe for PipeWire
// object names.
func (s Source) SafeName() string {
	var b strings.Builder
	for _, r := range s.ApplicationName {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RecordingDestination is an application capturing audio.
type RecordingDestination struct {
	NodeID          uint32
	NodeName        string
	ApplicationName string
	MediaName       string
}

// DisplayName renders the destination for selection lists.
func (d RecordingDestination) DisplayName() string {
	return fmt.Sprintf("%s [%s]", d.ApplicationName, d.MediaName)
}

// Sink is a device output endpoint.
type Sink struct {
	NodeID      uint32
	NodeName    string
	Description string
}

// Connection is the set of links from one source node to one target node,
// treated as a unit for disconnect and reconnect.
type Connection struct {
	SourceNodeID   uint32
	TargetNodeID   uint32
	TargetNodeName string
	Links          []Link
}
