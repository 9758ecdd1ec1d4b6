package splitter

import (
	"context"

	"pwsplit/internal/splitstate"
)

// Teardown reverses a split from its durable record alone: it signals both
// loopback processes, recreates every originally severed link, and deletes
// the record. Individual restoration failures are swallowed so cleanup
// always progresses; only a failure to delete the record is reported.
func (m *Manager) Teardown(ctx context.Context, rec *splitstate.Record) error {
	log := m.logger.With("split", rec.Name)

	m.relays.Terminate(rec.RecordingLoopbackPID)
	m.relays.Terminate(rec.LocalLoopbackPID)

	for _, link := range rec.SeveredLinks {
		// The link may already exist if a previous teardown got this far.
		if err := m.router.Link(ctx, link.OutputPort, link.InputPort); err != nil {
			log.Warn("restore link", "output", link.OutputPort, "input", link.InputPort, "error", err)
		}
	}

	if err := m.store.Delete(rec); err != nil {
		return err
	}
	m.setState(rec.Name, StateTornDown)
	log.Info("split torn down", "restored_links", len(rec.SeveredLinks))
	return nil
}

// StopByName loads one record and tears it down.
func (m *Manager) StopByName(ctx context.Context, name string) error {
	rec, err := m.store.Load(name)
	if err != nil {
		return err
	}
	return m.Teardown(ctx, rec)
}

// StopAll tears down every persisted split and returns the names that fully
// succeeded. Callers detect partial failure by diffing the result against
// the pre-call listing.
func (m *Manager) StopAll(ctx context.Context) ([]string, error) {
	records, err := m.store.ListAll()
	if err != nil {
		return nil, err
	}
	var stopped []string
	for _, rec := range records {
		if err := m.Teardown(ctx, rec); err != nil {
			m.logger.Warn("stop split", "split", rec.Name, "error", err)
			continue
		}
		stopped = append(stopped, rec.Name)
	}
	return stopped, nil
}
