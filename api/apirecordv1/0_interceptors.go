package apirecordv1

import (
	"context"

	"github.com/cipherdeck/cipherdeck/lens"
	"github.com/cipherdeck/cipherdeck/store"
)

const (
	contextStoreKey  = "1d2aa7de-84c5-11ee-9a0c-1bf4c1f32e8d"
	contextScorerKey = "29b3f1a4-84c5-11ee-9a0c-7fd1a3c0ab11"
)

func SetStore(ctx context.Context, s *store.Store) context.Context {
	return context.WithValue(ctx, contextStoreKey, s)
}

func GetStore(ctx context.Context) *store.Store {
	return ctx.Value(contextStoreKey).(*store.Store)
}

func SetScorer(ctx context.Context, scorer lens.Scorer) context.Context {
	return context.WithValue(ctx, contextScorerKey, scorer)
}

func GetScorer(ctx context.Context) lens.Scorer {
	return ctx.Value(contextScorerKey).(lens.Scorer)
}
