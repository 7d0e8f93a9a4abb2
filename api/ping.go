package api

import (
	"log"
	"time"

	"github.com/cipherdeck/cipherdeck/anchor"
	"github.com/cipherdeck/cipherdeck/store"
)

type pingStatus struct {
	Status        string  `json:"status"`
	Phase         string  `json:"phase"`
	Uptime        float64 `json:"uptime"`
	RecordsLoaded int     `json:"records_loaded"`
	VaultLoaded   bool    `json:"vault_loaded"`
}

// ping is the liveness probe. Whatever breaks internally, it answers 200
// with a degraded body instead of propagating an error.
func ping(s *store.Store, anc *anchor.Anchor, started time.Time) func() (status *pingStatus) {
	return func() (status *pingStatus) {

		defer func() {
			if r := recover(); r != nil {
				log.Println("WARNING: ping fallback mode:", r)
				status = &pingStatus{
					Status: "CipherDeck backend fallback live.",
					Phase:  "one",
					Uptime: time.Since(started).Seconds(),
				}
			}
		}()

		return &pingStatus{
			Status:        "CipherDeck backend live.",
			Phase:         "one",
			Uptime:        time.Since(started).Seconds(),
			RecordsLoaded: s.Count(),
			VaultLoaded:   anc.Loaded(),
		}
	}
}
