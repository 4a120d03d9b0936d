package optionsearch

import (
	"github.com/goliatone/go-formkit/pkg/options"
)

// Search filters buckets by query and trims the result to limit top-level
// options. A blank query follows opts.EmptySearchMode.
func Search(buckets []options.AlphabetBucket, query string, limit int, opts Options) []options.AlphabetBucket {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	matcher := options.NewMatcher(query, opts.Transliterator)
	if matcher.Empty() {
		if opts.EmptySearchMode != EmptySearchTop {
			return nil
		}
		return truncate(stripChildren(buckets, opts.Nested), limit)
	}
	return truncate(stripChildren(options.FilterAlphabet(buckets, matcher, opts.Nested), opts.Nested), limit)
}

func truncate(buckets []options.AlphabetBucket, limit int) []options.AlphabetBucket {
	out := make([]options.AlphabetBucket, 0, len(buckets))
	remaining := limit
	for _, bucket := range buckets {
		if remaining <= 0 {
			break
		}
		docs := bucket.Docs
		if len(docs) > remaining {
			docs = docs[:remaining]
		}
		remaining -= len(docs)
		out = append(out, options.AlphabetBucket{Letter: bucket.Letter, Docs: docs})
	}
	return out
}

func stripChildren(buckets []options.AlphabetBucket, nested bool) []options.AlphabetBucket {
	if nested {
		return buckets
	}
	out := make([]options.AlphabetBucket, 0, len(buckets))
	for _, bucket := range buckets {
		docs := make([]options.OptionNode, 0, len(bucket.Docs))
		for _, doc := range bucket.Docs {
			doc.Options = nil
			docs = append(docs, doc)
		}
		out = append(out, options.AlphabetBucket{Letter: bucket.Letter, Docs: docs})
	}
	return out
}
