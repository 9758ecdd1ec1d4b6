// Package splitter orchestrates the lifecycle of an audio split: setup,
// teardown, and crash recovery.
//
// A split duplicates one source's audio into two loopback relays, one feeding
// a recording destination at fixed volume and one feeding the original local
// output at adjustable volume. Setup is strict: a hard failure propagates
// immediately and leaves the graph partially wired, with no automatic
// rollback. Teardown and recovery are tolerant: individual link or process
// failures are swallowed so cleanup always progresses and the durable record
// is removed.
package splitter
