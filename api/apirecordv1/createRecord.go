package apirecordv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cipherdeck/cipherdeck/store"
)

type createRecordResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func createRecord(ctx context.Context, r *http.Request) (*createRecordResponse, error) {

	var payload map[string]any
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err == io.EOF {
		return nil, store.ErrInvalidPayload
	}
	if err != nil {
		return nil, err
	}

	rec, err := GetStore(ctx).Create(payload)
	if err != nil {
		return nil, err
	}

	return &createRecordResponse{
		Message: "Matrix uploaded and stored successfully.",
		ID:      rec.ID(),
	}, nil
}
