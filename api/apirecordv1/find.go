package apirecordv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cipherdeck/cipherdeck/store"
)

// find streams matching records as one JSON object per line. Filter syntax
// is connor's mongo-ish operator set; an empty body matches everything.
func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	params := struct {
		Filter map[string]any `json:"filter"`
		Skip   int64          `json:"skip"`
		Limit  int64          `json:"limit"`
	}{
		Limit: -1,
	}

	err := json.NewDecoder(r.Body).Decode(&params)
	if err != nil && err != io.EOF {
		return err
	}

	e := json.NewEncoder(w)

	return GetStore(ctx).Find(params.Filter, params.Skip, params.Limit, func(rec store.Record) bool {
		e.Encode(rec)
		return true
	})
}
