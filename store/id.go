package store

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewRecordID returns a fresh record identifier: `mtx-<8 hex chars>-<unix
// millis>`. The hex part comes from a random uuid so ids are not guessable,
// the millisecond suffix keeps them roughly sortable. Ids are assigned by
// the store only, never accepted from callers.
func NewRecordID() string {
	u := uuid.New()
	return fmt.Sprintf("mtx-%s-%d", hex.EncodeToString(u[:4]), time.Now().UnixMilli())
}
