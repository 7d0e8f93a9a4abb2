package apirecordv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/cipherdeck/cipherdeck/store"
)

func getRecord(ctx context.Context) (store.Record, error) {
	return GetStore(ctx).Get(box.GetUrlParameter(ctx, "recordId"))
}
