package apirecordv1

import (
	"context"
)

type listRecordsResponse struct {
	Records []string `json:"records"`
}

func listRecords(ctx context.Context) (*listRecordsResponse, error) {
	return &listRecordsResponse{
		Records: GetStore(ctx).List(),
	}, nil
}
