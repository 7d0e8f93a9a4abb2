package apirecordv1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cipherdeck/cipherdeck/archive"
)

// download streams the export bundle while it is built, entry by entry, so
// the archive never sits in memory whole.
func download(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	sel := archive.Selector{Policy: archive.All}
	if q := r.URL.Query().Get("first"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			return err
		}
		sel = archive.Selector{Policy: archive.FirstN, N: n}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="core-matrix-pack.zip"`)

	return archive.Build(w, sel, GetStore(ctx).Snapshot())
}
