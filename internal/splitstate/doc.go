// Package splitstate persists the durable record of each active split.
//
// One JSON file per split lives in a well-known scratch directory, keyed by
// split name. A record is self-sufficient for full restoration: it carries
// the exact port-to-port pairs severed at setup time and never re-derives
// them from a later snapshot, because by teardown time the loopbacks and the
// original links' visibility may have changed.
package splitstate
