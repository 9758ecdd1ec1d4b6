// Package loopback spawns, probes, and terminates the pw-loopback relay
// processes used as routing points.
//
// Each relay is launched detached with automatic routing disabled on both the
// capture and playback half, so the server's default policy can never wire it
// silently; every connection stays explicit. Relays outlive the pwsplit
// process: their pids are persisted in the split record and probed by the
// health watcher.
package loopback
