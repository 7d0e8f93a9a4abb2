// Package anchor holds the vault memory anchor: a small key/value memory
// loaded from a JSON file at startup. Updates merge in memory only and are
// never written back (the anchor file is provisioned out of band).
package anchor

import (
	"fmt"
	"log"
	"os"
	"sync"

	json2 "github.com/go-json-experiment/json"
)

type Anchor struct {
	mu   sync.RWMutex
	data map[string]any
}

// Load reads the anchor file. A missing file is not an error: the service
// starts with an empty memory, like the original deployment did.
func Load(filename string) *Anchor {

	a := &Anchor{data: map[string]any{}}

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		log.Println("no vault memory found, starting with empty memory")
		return a
	}
	if err != nil {
		log.Println("WARNING: load vault memory:", err.Error())
		return a
	}

	err = json2.Unmarshal(data, &a.data)
	if err != nil {
		log.Println("WARNING: parse vault memory:", err.Error())
		a.data = map[string]any{}
		return a
	}

	log.Printf("vault memory loaded (%d keys)", len(a.data))

	return a
}

func (a *Anchor) Loaded() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data) > 0
}

// Snapshot returns a shallow copy of the memory.
func (a *Anchor) Snapshot() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	snapshot := make(map[string]any, len(a.data))
	for k, v := range a.data {
		snapshot[k] = v
	}
	return snapshot
}

// Update merges updates into the memory, top-level keys overwrite.
func (a *Anchor) Update(updates map[string]any) error {

	if updates == nil {
		return fmt.Errorf("invalid vault memory update")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for k, v := range updates {
		a.data[k] = v
	}

	return nil
}
