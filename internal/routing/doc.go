// Package routing creates and destroys individual port-to-port connections
// through pw-link, and wires whole stereo pairs between nodes.
//
// Link and unlink are idempotent: re-linking an existing pair or unlinking a
// nonexistent one succeeds with no effect. That idempotence is what absorbs
// the races inherent in mutating a graph the server changes asynchronously;
// every wiring helper fetches a fresh snapshot immediately before acting
// instead of reusing one across steps.
package routing
