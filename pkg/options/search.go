package options

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-formkit/pkg/translit"
)

// Matcher tests option names against a search query typed in either script.
type Matcher struct {
	query string
	terms []string
}

// NewMatcher derives the Latin and Cyrillic spellings of query. The query is
// matched as typed: surrounding spaces are part of the term and only "" is
// blank. A nil transliterator matches the raw query only.
func NewMatcher(query string, tr translit.Transliterator) Matcher {
	if query == "" {
		return Matcher{}
	}

	candidates := []string{query}
	if tr != nil {
		candidates = []string{tr.ToLatin(query), tr.ToCyrillic(query)}
	}

	terms := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		term := fold(candidate)
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	return Matcher{query: query, terms: terms}
}

// Empty reports whether the matcher was built from a blank query.
func (m Matcher) Empty() bool {
	return m.query == ""
}

// Query returns the query as given.
func (m Matcher) Query() string {
	return m.query
}

// Terms returns the folded search terms.
func (m Matcher) Terms() []string {
	return append([]string(nil), m.terms...)
}

// Match reports whether name contains any of the terms, ignoring case.
func (m Matcher) Match(name string) bool {
	if m.Empty() {
		return true
	}
	folded := fold(name)
	for _, term := range m.terms {
		if strings.Contains(folded, term) {
			return true
		}
	}
	return false
}

// FilterAlphabet applies m to every bucket and drops buckets left empty.
// A blank matcher returns buckets unchanged. With nested set, a node that
// does not match survives when one of its descendants does, carrying only
// the matching branches; a matching node keeps its whole subtree.
func FilterAlphabet(buckets []AlphabetBucket, m Matcher, nested bool) []AlphabetBucket {
	if m.Empty() {
		return buckets
	}
	out := make([]AlphabetBucket, 0, len(buckets))
	for _, bucket := range buckets {
		docs := FilterNodes(bucket.Docs, m, nested)
		if len(docs) == 0 {
			continue
		}
		out = append(out, AlphabetBucket{Letter: bucket.Letter, Docs: docs})
	}
	return out
}

// FilterNodes is the flat-list counterpart of FilterAlphabet.
func FilterNodes(nodes []OptionNode, m Matcher, nested bool) []OptionNode {
	if m.Empty() {
		return nodes
	}
	var out []OptionNode
	for _, node := range nodes {
		if kept, ok := filterNode(node, m, nested); ok {
			out = append(out, kept)
		}
	}
	return out
}

func filterNode(node OptionNode, m Matcher, nested bool) (OptionNode, bool) {
	if m.Match(node.Name) {
		return node, true
	}
	if !nested || len(node.Options) == 0 {
		return OptionNode{}, false
	}
	children := FilterNodes(node.Options, m, nested)
	if len(children) == 0 {
		return OptionNode{}, false
	}
	pruned := node
	pruned.Options = children
	return pruned, true
}

// fold lower-cases s without locale tailoring. Casers keep internal state,
// so each call gets its own.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
