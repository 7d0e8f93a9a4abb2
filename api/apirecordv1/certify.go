package apirecordv1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cipherdeck/cipherdeck/lens"
)

var ErrMissingIdentifier = errors.New("record id is required to certify")

type certifyRequest struct {
	RecordID string         `json:"record_id"`
	Record   map[string]any `json:"record"`
}

type certifyResponse struct {
	Certification lens.Certification `json:"certification"`
}

func certify(ctx context.Context, r *http.Request) (*certifyResponse, error) {

	input := certifyRequest{}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil && err != io.EOF {
		return nil, err
	}

	id := input.RecordID
	if id == "" && input.Record != nil {
		id, _ = input.Record["id"].(string)
	}
	if id == "" {
		return nil, ErrMissingIdentifier
	}

	return &certifyResponse{Certification: lens.Certify(id)}, nil
}
