// Package audit keeps an append-only trail of store mutations. The system
// never reads it back; it exists for external inspection.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	KindUpload = "UPLOAD"
	KindPatch  = "PATCH"
	KindRemove = "REMOVE"
	KindReload = "RELOAD"
)

type Entry struct {
	Uuid      string
	Timestamp time.Time
	Kind      string
	RecordID  string
	Detail    string
}

// Trail appends one line per entry to a single file. Appends are serialized
// so concurrent store mutations can not interleave their lines.
type Trail struct {
	mu   sync.Mutex
	file *os.File
}

func Open(filename string) (*Trail, error) {

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("open trail: %w", err)
	}

	return &Trail{file: f}, nil
}

func (t *Trail) Append(kind, recordID, detail string) error {
	return t.AppendEntry(Entry{
		Uuid:      uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		RecordID:  recordID,
		Detail:    detail,
	})
}

func (t *Trail) AppendEntry(entry Entry) error {

	line := fmt.Sprintf("[%s] %s: %s", entry.Timestamp.Format(time.RFC3339), entry.Kind, entry.RecordID)
	if entry.Detail != "" {
		line += " " + entry.Detail
	}
	line += " (" + entry.Uuid + ")\n"

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil {
		return fmt.Errorf("trail is closed")
	}

	_, err := t.file.WriteString(line)
	if err != nil {
		return fmt.Errorf("append trail: %w", err)
	}

	return nil
}

func (t *Trail) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	return err
}
