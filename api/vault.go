package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/cipherdeck/cipherdeck/anchor"
	"github.com/cipherdeck/cipherdeck/store"
)

type vaultSnapshotResponse struct {
	Snapshot  map[string]any `json:"snapshot"`
	Timestamp string         `json:"timestamp"`
}

func vaultSnapshot(anc *anchor.Anchor) func(ctx context.Context) *vaultSnapshotResponse {
	return func(ctx context.Context) *vaultSnapshotResponse {
		return &vaultSnapshotResponse{
			Snapshot:  anc.Snapshot(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
	}
}

type vaultUpdateResponse struct {
	Message string         `json:"message"`
	Anchor  map[string]any `json:"anchor"`
}

// vaultUpdate merges into the in-memory anchor only, nothing is persisted.
func vaultUpdate(anc *anchor.Anchor) func(r *http.Request) (*vaultUpdateResponse, error) {
	return func(r *http.Request) (*vaultUpdateResponse, error) {

		var updates map[string]any
		err := json.NewDecoder(r.Body).Decode(&updates)
		if err != nil {
			return nil, err
		}
		if updates == nil {
			return nil, store.ErrInvalidPayload
		}

		err = anc.Update(updates)
		if err != nil {
			return nil, err
		}

		return &vaultUpdateResponse{
			Message: "Vault memory updated in memory only",
			Anchor:  anc.Snapshot(),
		}, nil
	}
}

type vaultStatusResponse struct {
	CertifiedMatrices int  `json:"certified_matrices"`
	LaunchReady       bool `json:"launch_ready"`
}

// vaultStatus mirrors the original endpoint: the certified count is a
// placeholder figure until certifications are persisted somewhere.
func vaultStatus(s *store.Store) func(ctx context.Context) *vaultStatusResponse {
	return func(ctx context.Context) *vaultStatusResponse {
		return &vaultStatusResponse{
			CertifiedMatrices: s.Count() + rand.Intn(20) + 100,
			LaunchReady:       true,
		}
	}
}
