package splitstate

// SavedLink is one severed port-to-port pair, captured in pw-link address
// form at severing time.
type SavedLink struct {
	OutputPort string `json:"output_port"`
	InputPort  string `json:"input_port"`
}

// Record is the durable description of one active split, sufficient to
// reverse it even after a pwsplit restart.
type Record struct {
	// Name uniquely identifies the split among active records.
	Name string `json:"name"`

	SourceNodeID          uint32 `json:"source_node_id"`
	SourceNodeName        string `json:"source_node_name"`
	SourceApplicationName string `json:"source_application_name"`

	// Loopback node names, used to re-resolve relay halves on recovery.
	RecordingLoopbackName string `json:"recording_loopback_name"`
	LocalLoopbackName     string `json:"local_loopback_name"`

	RecordingDestNodeID          uint32 `json:"recording_dest_node_id"`
	RecordingDestNodeName        string `json:"recording_dest_node_name"`
	RecordingDestApplicationName string `json:"recording_dest_application_name"`
	RecordingDestMediaName       string `json:"recording_dest_media_name"`

	// OriginalOutputNodeName is the primary target the source fed before the
	// split, used to rewire the local loopback.
	OriginalOutputNodeName string `json:"original_output_node_name"`

	// SeveredLinks are restored verbatim at teardown.
	SeveredLinks []SavedLink `json:"severed_links"`

	RecordingLoopbackPID int `json:"recording_loopback_pid"`
	LocalLoopbackPID     int `json:"local_loopback_pid"`

	// CreatedAt is the split creation time in unix seconds.
	CreatedAt int64 `json:"created_at"`
}
