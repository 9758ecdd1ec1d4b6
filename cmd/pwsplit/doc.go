// Command pwsplit duplicates one application's audio into two independently
// routed paths: a recording destination at fixed volume and the original
// local output at adjustable volume.
//
// It inspects the PipeWire graph through pw-dump, interposes pw-loopback
// relays, rewires ports through pw-link, and keeps a durable per-split
// record so an active split can be undone even after pwsplit restarts.
package main
