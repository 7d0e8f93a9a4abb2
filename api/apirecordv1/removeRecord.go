package apirecordv1

import (
	"context"

	"github.com/fulldump/box"
)

type removeRecordResponse struct {
	Message string `json:"message"`
}

// removeRecord is idempotent: removing an id that is already gone succeeds.
func removeRecord(ctx context.Context) (*removeRecordResponse, error) {

	err := GetStore(ctx).Delete(box.GetUrlParameter(ctx, "recordId"))
	if err != nil {
		return nil, err
	}

	return &removeRecordResponse{
		Message: "Matrix removed.",
	}, nil
}
