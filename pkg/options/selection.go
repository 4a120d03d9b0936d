package options

import "sort"

// Selection is the set of chosen options for one picker session, keyed by ID.
// Membership changes are constant time; Nodes restores insertion order.
type Selection struct {
	entries map[string]selectionEntry
	seq     int
}

type selectionEntry struct {
	node OptionNode
	seq  int
}

// NewSelection seeds a selection. Duplicate IDs collapse to the first.
func NewSelection(initial ...OptionNode) *Selection {
	s := &Selection{entries: make(map[string]selectionEntry, len(initial))}
	for _, node := range initial {
		if s.Has(node.ID) {
			continue
		}
		s.add(node)
	}
	return s
}

func (s *Selection) add(node OptionNode) {
	s.seq++
	s.entries[node.ID] = selectionEntry{node: node, seq: s.seq}
}

func (s *Selection) Has(id string) bool {
	_, ok := s.entries[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.entries)
}

// Toggle removes node when present and adds it otherwise. It reports whether
// node is selected afterwards.
func (s *Selection) Toggle(node OptionNode) bool {
	if s.Has(node.ID) {
		delete(s.entries, node.ID)
		return false
	}
	s.add(node)
	return true
}

// Choose replaces the whole selection with node.
func (s *Selection) Choose(node OptionNode) {
	s.entries = make(map[string]selectionEntry, 1)
	s.add(node)
}

func (s *Selection) Clear() {
	s.entries = make(map[string]selectionEntry)
}

// Nodes returns the selected options in the order they were picked.
func (s *Selection) Nodes() []OptionNode {
	if len(s.entries) == 0 {
		return nil
	}
	entries := make([]selectionEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	out := make([]OptionNode, len(entries))
	for i, entry := range entries {
		out[i] = entry.node
	}
	return out
}

// IDs returns the selected IDs in pick order.
func (s *Selection) IDs() []string {
	nodes := s.Nodes()
	if nodes == nil {
		return nil
	}
	ids := make([]string, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID
	}
	return ids
}
