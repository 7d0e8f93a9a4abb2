package apirecordv1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cipherdeck/cipherdeck/lens"
)

var ErrInvalidInput = errors.New("invalid review input")

type reviewRequest struct {
	RecordID string         `json:"record_id"`
	Record   map[string]any `json:"record"`
}

type reviewResponse struct {
	Review lens.Review `json:"review"`
}

// review scores a supplied record. Stateless: the record travels in the
// request, the store is never consulted.
func review(ctx context.Context, r *http.Request) (*reviewResponse, error) {

	input := reviewRequest{}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if input.Record == nil {
		return nil, ErrInvalidInput
	}

	result := GetScorer(ctx).Review(input.Record)
	if result.RecordID == "" {
		result.RecordID = input.RecordID
	}

	return &reviewResponse{Review: result}, nil
}
