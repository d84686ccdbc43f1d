// Package tail reads newly appended bytes from the server log, resuming
// across restarts through a persisted byte cursor and resetting on log
// rotation.
package tail

import (
	"errors"
	"log"
	"strings"

	"github.com/craftwatch/craftwatch/internal/extract"
)

// Tailer owns the log cursor. It reads the delta between the persisted
// position and the current source size, persists the advanced position,
// and hands the decoded lines to the event extractor. Every failure path
// is best-effort: an unreachable source or a failed read yields an empty
// batch, never an error, so log tailing can never escalate the watcher's
// failure counter.
type Tailer struct {
	source Source
	cursor CursorStore
	pos    int64
	loaded bool
}

// New builds a tailer over source. A nil source means no log is
// configured and Collect always returns nil.
func New(source Source, cursor CursorStore) *Tailer {
	return &Tailer{source: source, cursor: cursor}
}

// Collect returns the event records found in bytes appended since the
// last call (or since the persisted cursor, on the first call).
func (t *Tailer) Collect() []extract.Record {
	if t.source == nil {
		return nil
	}

	if !t.loaded {
		pos, err := t.cursor.Load()
		if err != nil {
			log.Printf("[tail] could not load cursor, starting from 0: %v", err)
			pos = 0
		} else if pos > 0 {
			log.Printf("[tail] resuming from saved position %d", pos)
		}
		t.pos = pos
		t.loaded = true
	}

	size, err := t.source.Size()
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			log.Printf("[tail] stat failed: %v", err)
		}
		return nil
	}

	// A shrinking file means the log was rotated or truncated; start over
	// from the beginning of the new file.
	if t.pos > size {
		log.Printf("[tail] log rotated (size %d < position %d), resetting", size, t.pos)
		t.pos = 0
	}

	if t.pos == size {
		return nil
	}

	data, err := t.source.ReadAt(t.pos, size-t.pos)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			log.Printf("[tail] read failed: %v", err)
		}
		return nil
	}

	t.pos = size
	if err := t.cursor.Save(t.pos); err != nil {
		// Non-fatal: the worst case after a crash is re-reading this
		// chunk. Keep going with the in-memory position.
		log.Printf("[tail] could not persist cursor: %v", err)
	}

	lines := strings.Split(strings.ToValidUTF8(string(data), ""), "\n")
	return extract.Extract(lines)
}

// Position returns the current in-memory cursor position.
func (t *Tailer) Position() int64 {
	return t.pos
}
