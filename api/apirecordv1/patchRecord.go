package apirecordv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/cipherdeck/cipherdeck/store"
)

type patchRecordResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

func patchRecord(ctx context.Context, r *http.Request) (*patchRecordResponse, error) {

	var partial map[string]any
	err := json.NewDecoder(r.Body).Decode(&partial)
	if err == io.EOF {
		return nil, store.ErrInvalidPayload
	}
	if err != nil {
		return nil, err
	}

	id := box.GetUrlParameter(ctx, "recordId")

	rec, err := GetStore(ctx).Update(id, partial)
	if err != nil {
		return nil, err
	}

	return &patchRecordResponse{
		Message: "Matrix updated.",
		ID:      rec.ID(),
	}, nil
}
