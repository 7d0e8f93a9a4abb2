package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SierraSoftworks/connor"
	json2 "github.com/go-json-experiment/json"
	"github.com/google/btree"

	"github.com/cipherdeck/cipherdeck/audit"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var (
	ErrInvalidPayload = errors.New("invalid payload")
	ErrNotFound       = errors.New("record not found")
)

// PartialWriteError reports a dual-write that committed the primary root but
// failed the vault root. The record is NOT indexed in that case: the index
// only ever reflects acknowledged-durable state.
type PartialWriteError struct {
	ID  string
	Err error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: record '%s' persisted to primary root only: %s", e.ID, e.Err.Error())
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

type Config struct {
	// Dir is the primary records root.
	Dir string
	// VaultDir is the secondary root. Empty collapses the store to a single
	// root and disables dual write.
	VaultDir string
}

// Store owns the canonical id→record mapping. The in-memory index is the
// source of truth while operating; the durable roots are consulted at open
// and on explicit Reload only. One RWMutex serializes mutations, durable
// writes happen under the write lock so two operations on the same id can
// never interleave their file writes.
type Store struct {
	config *Config
	trail  *audit.Trail

	mu     sync.RWMutex
	status string
	index  *btree.BTreeG[Record]

	exit chan struct{}
}

func NewStore(config *Config, trail *audit.Trail) *Store {
	return &Store{
		config: config,
		trail:  trail,
		status: StatusOpening,
		index:  newIndex(),
		exit:   make(chan struct{}),
	}
}

func newIndex() *btree.BTreeG[Record] {
	return btree.NewG(32, func(a, b Record) bool {
		return a.ID() < b.ID()
	})
}

func probe(id string) Record {
	return Record{FieldID: id}
}

func (s *Store) GetStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// durableRoot is the root scanned at open/reload time. Other deployments
// read matrices back from the vault mount after a restart, so the vault
// root wins whenever it is configured.
func (s *Store) durableRoot() string {
	if s.config.VaultDir != "" {
		return s.config.VaultDir
	}
	return s.config.Dir
}

// Load scans the durable root and builds the index. A corrupt file is
// logged and skipped, it never aborts the load.
func (s *Store) Load() (int, error) {

	err := os.MkdirAll(s.config.Dir, 0755)
	if err != nil {
		return 0, err
	}
	if s.config.VaultDir != "" {
		err = os.MkdirAll(s.config.VaultDir, 0755)
		if err != nil {
			return 0, err
		}
	}

	index := newIndex()
	count, err := loadDir(s.durableRoot(), index)
	if err != nil {
		s.mu.Lock()
		s.status = StatusClosing
		s.mu.Unlock()
		return 0, err
	}

	s.mu.Lock()
	s.index = index
	s.status = StatusOperating
	s.mu.Unlock()

	log.Printf("loaded %d records from %s", count, s.durableRoot())

	return count, nil
}

func loadDir(dir string, index *btree.BTreeG[Record]) (int, error) {

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read root '%s': %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		filename := filepath.Join(dir, entry.Name())
		rec, err := readRecordFile(filename)
		if err != nil {
			log.Printf("WARNING: skip corrupt record '%s': %s", filename, err.Error())
			continue
		}
		// The record's own id wins; the filename stem is only a fallback
		// for files persisted without one.
		if rec.ID() == "" {
			rec[FieldID] = strings.TrimSuffix(entry.Name(), ".json")
		}
		index.ReplaceOrInsert(rec)
		count++
	}

	return count, nil
}

// Create stamps the payload with an id, created_at and defaulted
// classification fields, persists it to every configured root and indexes
// the vault-rooted copy.
func (s *Store) Create(payload map[string]any) (Record, error) {

	if payload == nil {
		return nil, ErrInvalidPayload
	}

	rec := newRecord(payload)
	id := rec.ID()

	s.mu.Lock()
	defer s.mu.Unlock()

	indexed, err := s.persist(rec)
	if err != nil {
		return nil, err
	}

	s.index.ReplaceOrInsert(indexed)
	s.appendTrail(audit.KindUpload, id, "")

	return indexed.Clone(), nil
}

// persist writes rec to the primary root and, when configured, the vault
// root. The returned record is the re-read vault copy so the index always
// mirrors what a restart would load. Caller holds the write lock.
func (s *Store) persist(rec Record) (Record, error) {

	id := rec.ID()

	err := writeRecordFile(s.config.Dir, id, rec)
	if err != nil {
		return nil, fmt.Errorf("write record '%s': %w", id, err)
	}

	if s.config.VaultDir == "" {
		return rec, nil
	}

	err = writeRecordFile(s.config.VaultDir, id, rec)
	if err != nil {
		return nil, &PartialWriteError{ID: id, Err: err}
	}

	vaultCopy, err := readRecordFile(recordFilename(s.config.VaultDir, id))
	if err != nil {
		return nil, &PartialWriteError{ID: id, Err: err}
	}

	return vaultCopy, nil
}

// Get serves from the index only. Disk is never consulted on a miss.
func (s *Store) Get(id string) (Record, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.index.Get(probe(id))
	if !exists {
		return nil, ErrNotFound
	}

	return rec.Clone(), nil
}

// List returns all indexed ids in ascending order.
func (s *Store) List() []string {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, s.index.Len())
	s.index.Ascend(func(rec Record) bool {
		ids = append(ids, rec.ID())
		return true
	})

	return ids
}

// Snapshot returns a stable copy of every indexed record, ascending by id.
func (s *Store) Snapshot() []Record {

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0, s.index.Len())
	s.index.Ascend(func(rec Record) bool {
		records = append(records, rec.Clone())
		return true
	})

	return records
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// Find streams every record matching filter, in id order, honoring skip and
// limit (limit < 0 means unbounded).
func (s *Store) Find(filter map[string]any, skip, limit int64, f func(Record) bool) error {

	hasFilter := len(filter) > 0

	for _, rec := range s.Snapshot() {

		if limit == 0 {
			break
		}

		if hasFilter {
			match, err := connor.Match(filter, map[string]any(rec))
			if err != nil {
				return fmt.Errorf("match: %w", err)
			}
			if !match {
				continue
			}
		}

		if skip > 0 {
			skip--
			continue
		}

		limit--
		if !f(rec) {
			break
		}
	}

	return nil
}

// Update merges partial into the existing payload (shallow, top-level keys
// overwrite), re-persists and re-indexes.
func (s *Store) Update(id string, partial map[string]any) (Record, error) {

	if partial == nil {
		return nil, ErrInvalidPayload
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.index.Get(probe(id))
	if !exists {
		return nil, ErrNotFound
	}

	merged := current.merge(partial)

	indexed, err := s.persist(merged)
	if err != nil {
		return nil, err
	}

	s.index.ReplaceOrInsert(indexed)
	s.appendTrail(audit.KindPatch, id, fmt.Sprintf("%d keys", len(partial)))

	return indexed.Clone(), nil
}

// Delete removes the record from the index and every root. Deleting an
// unknown id is not an error.
func (s *Store) Delete(id string) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	err := removeRecordFile(s.config.Dir, id)
	if err != nil {
		return err
	}
	if s.config.VaultDir != "" {
		err = removeRecordFile(s.config.VaultDir, id)
		if err != nil {
			return err
		}
	}

	_, existed := s.index.Delete(probe(id))
	if existed {
		s.appendTrail(audit.KindRemove, id, "")
	}

	return nil
}

// Reload discards the index and rebuilds it from the durable root, to
// recover from out-of-band changes to the files.
func (s *Store) Reload() (int, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	index := newIndex()
	count, err := loadDir(s.durableRoot(), index)
	if err != nil {
		return 0, err
	}

	s.index = index
	s.appendTrail(audit.KindReload, "", fmt.Sprintf("%d records", count))

	return count, nil
}

// Start loads the store in the background and blocks until Stop, following
// the same lifecycle the HTTP server goroutine expects.
func (s *Store) Start() error {

	go func() {
		_, err := s.Load()
		if err != nil {
			log.Println("ERROR: load store:", err.Error())
		}
	}()

	<-s.exit

	return nil
}

func (s *Store) Stop() error {

	defer close(s.exit)

	s.mu.Lock()
	s.status = StatusClosing
	s.mu.Unlock()

	return nil
}

// appendTrail is best effort: the mutation is already durable by the time
// the trail is written, a trail failure must not fail the operation.
func (s *Store) appendTrail(kind, id, detail string) {
	if s.trail == nil {
		return
	}
	err := s.trail.Append(kind, id, detail)
	if err != nil {
		log.Println("WARNING: vault trail append:", err.Error())
	}
}

func recordFilename(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

// writeRecordFile publishes atomically: write a temp file, then rename over
// the final path, so a crash mid-write leaves either the old content or a
// stray temp file the loader ignores.
func writeRecordFile(dir, id string, rec Record) error {

	data, err := rec.Canonical()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	tmp := filepath.Join(dir, "."+id+".tmp")
	err = os.WriteFile(tmp, data, 0666)
	if err != nil {
		return err
	}

	return os.Rename(tmp, recordFilename(dir, id))
}

func readRecordFile(filename string) (Record, error) {

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	rec := Record{}
	err = json2.Unmarshal(data, &rec)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}

	return rec, nil
}

func removeRecordFile(dir, id string) error {
	err := os.Remove(recordFilename(dir, id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
