package store

import (
	"encoding/json"
	"time"
)

// Managed fields. Everything else inside a record belongs to the caller.
const (
	FieldID          = "id"
	FieldCreatedAt   = "created_at"
	FieldArchetype   = "archetype"
	FieldDriftRating = "drift_rating"
)

const (
	DefaultArchetype   = "stabilizer"
	DefaultDriftRating = 1.0
)

// Record is an open JSON object plus the fields the store manages. It is
// kept schema-less on purpose: whatever the caller uploads round-trips
// untouched, the store only injects id, created_at and the defaulted
// classification fields.
type Record map[string]any

func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

func (r Record) CreatedAt() string {
	at, _ := r[FieldCreatedAt].(string)
	return at
}

// Clone returns a shallow copy. Values are shared, which is fine because
// the store never mutates nested values in place.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// newRecord stamps a caller payload with managed fields. The payload map is
// not modified.
func newRecord(payload map[string]any) Record {
	r := Record(payload).Clone()
	r[FieldID] = NewRecordID()
	r[FieldCreatedAt] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, exists := r[FieldArchetype]; !exists {
		r[FieldArchetype] = DefaultArchetype
	}
	if _, exists := r[FieldDriftRating]; !exists {
		r[FieldDriftRating] = DefaultDriftRating
	}
	return r
}

// merge applies a shallow top-level merge: keys in partial overwrite keys in
// r, everything else is untouched. Managed identity fields can not be
// overwritten.
func (r Record) merge(partial map[string]any) Record {
	merged := r.Clone()
	for k, v := range partial {
		merged[k] = v
	}
	merged[FieldID] = r.ID()
	merged[FieldCreatedAt] = r.CreatedAt()
	return merged
}

// Canonical is the serialization written to disk and into archive entries,
// the same 2-space indented form external tooling already consumes.
func (r Record) Canonical() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
