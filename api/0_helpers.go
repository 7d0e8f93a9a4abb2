package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"

	"github.com/cipherdeck/cipherdeck/api/apirecordv1"
	"github.com/cipherdeck/cipherdeck/store"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		writePrettyError := func(status int, description string) {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(PrettyError{
				Message:     err.Error(),
				Description: description,
			})
		}

		if errors.Is(err, ErrUnauthorized) {
			writePrettyError(http.StatusUnauthorized, "user is not authenticated")
			return
		}

		if errors.Is(err, store.ErrNotFound) {
			writePrettyError(http.StatusNotFound, "no record with that id is loaded")
			return
		}

		if errors.Is(err, store.ErrInvalidPayload) {
			writePrettyError(http.StatusBadRequest, "payload must be a JSON object")
			return
		}

		if errors.Is(err, apirecordv1.ErrInvalidInput) {
			writePrettyError(http.StatusBadRequest, "a record object is required")
			return
		}

		if errors.Is(err, apirecordv1.ErrMissingIdentifier) {
			writePrettyError(http.StatusBadRequest, "a record id is required")
			return
		}

		if err == box.ErrResourceNotFound {
			writePrettyError(http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String()))
			return
		}

		if err == box.ErrMethodNotAllowed {
			writePrettyError(http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method))
			return
		}

		if _, ok := err.(*json.SyntaxError); ok {
			writePrettyError(http.StatusBadRequest, "Malformed JSON")
			return
		}

		if _, ok := err.(*json.UnmarshalTypeError); ok {
			writePrettyError(http.StatusBadRequest, "payload must be a JSON object")
			return
		}

		writePrettyError(http.StatusInternalServerError, "Unexpected error")
	}
}
