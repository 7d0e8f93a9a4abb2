package apirecordv1

import (
	"context"
)

type reloadResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// reload rebuilds the index from the durable root, recovering from
// out-of-band changes to the record files.
func reload(ctx context.Context) (*reloadResponse, error) {

	count, err := GetStore(ctx).Reload()
	if err != nil {
		return nil, err
	}

	return &reloadResponse{
		Message: "Store reloaded.",
		Count:   count,
	}, nil
}
