package api

import (
	"context"
	"time"

	"github.com/fulldump/box"

	"github.com/cipherdeck/cipherdeck/anchor"
	"github.com/cipherdeck/cipherdeck/api/apirecordv1"
	"github.com/cipherdeck/cipherdeck/lens"
	"github.com/cipherdeck/cipherdeck/store"
)

func Build(s *store.Store, anc *anchor.Anchor, scorer lens.Scorer, version, apiKey string) *box.B {

	b := box.NewBox()
	started := time.Now()

	b.Handle("GET", "/", func() string {
		return "CipherDeck API - Phase One. Symbolic backend online."
	})

	b.Resource("/release").
		WithActions(box.Get(func() string {
			return version
		}))

	v1 := b.Resource("/v1")

	// Liveness is deliberately outside authentication and must never fail.
	v1.Resource("/ping").
		WithActions(box.Get(ping(s, anc, started)))

	vault := v1.Resource("/vault")
	vault.WithActions(
		box.Action(vaultSnapshot(anc)).WithName("snapshot").
			WithInterceptors(Authenticate(apiKey)),
		box.ActionPost(vaultUpdate(anc)).WithName("update").
			WithInterceptors(Authenticate(apiKey)),
	)
	vault.Resource("/status").
		WithActions(box.Get(vaultStatus(s)))

	apirecordv1.BuildV1Records(v1).
		WithInterceptors(
			box.SetResponseHeader("Content-Type", "application/json"),
			Authenticate(apiKey),
			InterceptorUnavailable(s),
			injectStore(s),
			injectScorer(scorer),
		)

	return b
}

func injectStore(s *store.Store) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apirecordv1.SetStore(ctx, s))
		}
	}
}

func injectScorer(scorer lens.Scorer) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(apirecordv1.SetScorer(ctx, scorer))
		}
	}
}
