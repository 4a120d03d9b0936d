package optionsearch

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/options"
)

// Source resolves a catalog name to its alphabet. Unknown catalogs should be
// reported with a go-errors not-found error.
type Source interface {
	Alphabet(ctx context.Context, catalog string) ([]options.AlphabetBucket, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, catalog string) ([]options.AlphabetBucket, error)

func (f SourceFunc) Alphabet(ctx context.Context, catalog string) ([]options.AlphabetBucket, error) {
	return f(ctx, catalog)
}

// StaticSource serves fixed option forests keyed by catalog name.
type StaticSource map[string][]options.OptionNode

func (s StaticSource) Alphabet(_ context.Context, catalog string) ([]options.AlphabetBucket, error) {
	nodes, ok := s[catalog]
	if !ok {
		return nil, goerrors.New(fmt.Sprintf("catalog %q not found", catalog), goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithTextCode("CATALOG_NOT_FOUND")
	}
	return options.BuildAlphabet(nodes), nil
}
