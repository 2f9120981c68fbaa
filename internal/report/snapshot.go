// Package report renders the registry for external consumers: a JSON
// snapshot of every entry with its provenance, and the numeric gate-check
// ledger comparing predictions against references. The core pipeline never
// reads these files back; persistence is purely a collaborator concern.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/vk/principia/internal/registry"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// snapshotEntry is the serialized form of one registry entry.
type snapshotEntry struct {
	Path      string                  `json:"path"`
	Value     ctyjson.SimpleJSONValue `json:"value"`
	Source    string                  `json:"source"`
	Status    registry.Status         `json:"status"`
	Timestamp time.Time               `json:"timestamp"`
}

// WriteSnapshot dumps every registry entry to w as indented JSON, sorted by
// path so successive runs diff cleanly.
func WriteSnapshot(w io.Writer, reg *registry.Registry) error {
	paths := reg.Paths()
	entries := make([]snapshotEntry, 0, len(paths))
	for _, path := range paths {
		entry, err := reg.Entry(path)
		if err != nil {
			return fmt.Errorf("snapshotting %q: %w", path, err)
		}
		entries = append(entries, snapshotEntry{
			Path:      path,
			Value:     ctyjson.SimpleJSONValue{Value: entry.Value},
			Source:    entry.Source,
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding registry snapshot: %w", err)
	}
	return nil
}
