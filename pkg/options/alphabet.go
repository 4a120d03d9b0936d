package options

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// OtherLetter labels names that do not start with a letter.
const OtherLetter = "#"

// BuildAlphabet partitions nodes into buckets keyed by the upper-cased first
// rune of each name. Buckets are ordered by letter, docs by folded name.
// Nested options stay attached to their top-level node.
func BuildAlphabet(nodes []OptionNode) []AlphabetBucket {
	if len(nodes) == 0 {
		return nil
	}

	index := make(map[string]int)
	buckets := make([]AlphabetBucket, 0, 8)
	for _, node := range nodes {
		letter := LetterOf(node.Name)
		pos, ok := index[letter]
		if !ok {
			pos = len(buckets)
			index[letter] = pos
			buckets = append(buckets, AlphabetBucket{Letter: letter})
		}
		buckets[pos].Docs = append(buckets[pos].Docs, node)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return letterLess(buckets[i].Letter, buckets[j].Letter)
	})
	for i := range buckets {
		docs := buckets[i].Docs
		sort.SliceStable(docs, func(a, b int) bool {
			left, right := fold(docs[a].Name), fold(docs[b].Name)
			if left != right {
				return left < right
			}
			return docs[a].ID < docs[b].ID
		})
	}
	return buckets
}

// FlattenAlphabet returns the top-level docs of every bucket in order.
func FlattenAlphabet(buckets []AlphabetBucket) []OptionNode {
	total := 0
	for _, bucket := range buckets {
		total += len(bucket.Docs)
	}
	if total == 0 {
		return nil
	}
	out := make([]OptionNode, 0, total)
	for _, bucket := range buckets {
		out = append(out, bucket.Docs...)
	}
	return out
}

// LetterOf returns the bucket letter for name.
func LetterOf(name string) string {
	name = strings.TrimSpace(name)
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return OtherLetter
	}
	return string(unicode.ToUpper(r))
}

func letterLess(a, b string) bool {
	if a == OtherLetter || b == OtherLetter {
		return b == OtherLetter && a != OtherLetter
	}
	return a < b
}
