// Package watch drives the periodic health sweep over every persisted
// split.
//
// A file lock enforces a single watcher instance: all graph mutation flows
// from one logical thread of control, so a second concurrent watcher would
// race the first against the live graph. Each sweep carries a correlation id
// so log lines from one pass can be grouped.
package watch
