package pipewire

import "errors"

var (
	// ErrCommandFailed marks failures to run or complete a PipeWire tool.
	ErrCommandFailed = errors.New("pipewire command failed")
	// ErrParse marks malformed pw-dump output.
	ErrParse = errors.New("pipewire parse error")
	// ErrNodeNotFound marks a lookup that matched no node in the snapshot.
	ErrNodeNotFound = errors.New("node not found")
)
