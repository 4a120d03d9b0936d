package options

// NoParent marks root nodes in a Tree.
const NoParent = -1

// Tree is a read-only arena view over an option forest. Nodes are addressed
// by their pre-order position.
type Tree struct {
	nodes    []OptionNode
	parent   []int
	depth    []int
	children [][]int
	roots    []int
	byID     map[string]int
}

// NewTree indexes forest. When the same ID appears more than once the first
// occurrence wins lookups.
func NewTree(forest []OptionNode) *Tree {
	t := &Tree{byID: make(map[string]int)}
	for _, node := range forest {
		t.roots = append(t.roots, t.add(node, NoParent, 0))
	}
	return t
}

func (t *Tree) add(node OptionNode, parent, depth int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, node)
	t.parent = append(t.parent, parent)
	t.depth = append(t.depth, depth)
	t.children = append(t.children, nil)
	if _, exists := t.byID[node.ID]; !exists && node.ID != "" {
		t.byID[node.ID] = idx
	}
	for _, child := range node.Options {
		childIdx := t.add(child, idx, depth+1)
		t.children[idx] = append(t.children[idx], childIdx)
	}
	return idx
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

func (t *Tree) Node(idx int) OptionNode { return t.nodes[idx] }
func (t *Tree) Parent(idx int) int      { return t.parent[idx] }
func (t *Tree) Depth(idx int) int       { return t.depth[idx] }
func (t *Tree) Children(idx int) []int  { return t.children[idx] }
func (t *Tree) Roots() []int            { return t.roots }

// Lookup returns the position of the node with id.
func (t *Tree) Lookup(id string) (int, bool) {
	if t == nil {
		return 0, false
	}
	idx, ok := t.byID[id]
	return idx, ok
}

// Walk visits nodes in pre-order until fn returns false.
func (t *Tree) Walk(fn func(idx int) bool) {
	if t == nil || fn == nil {
		return
	}
	for idx := range t.nodes {
		if !fn(idx) {
			return
		}
	}
}

// Names resolves ids to node names, skipping unknown ids.
func (t *Tree) Names(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if idx, ok := t.Lookup(id); ok {
			names = append(names, t.nodes[idx].Name)
		}
	}
	return names
}
