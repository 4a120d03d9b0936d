package options

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/translit"
)

// ViewState is what the picker body should show. States are checked in
// declaration order.
type ViewState int

const (
	StateLoading ViewState = iota
	StateError
	StateEmpty
	StateReady
)

func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateEmpty:
		return "empty"
	default:
		return "ready"
	}
}

// SubmitFunc receives the final selection. It is never called with an empty
// slice.
type SubmitFunc func(selected []OptionNode)

// Config seeds a picker session.
type Config struct {
	Alphabet []AlphabetBucket
	// Flat is used instead of Alphabet when NotShowAsAlphabet is set.
	Flat                 []OptionNode
	NotShowAsAlphabet    bool
	Variant              Variant
	InitiallySelected    []OptionNode
	DisableNestedOptions bool
	Loading              bool
	Err                  error
	Transliterator       translit.Transliterator
	OnSubmit             SubmitFunc
	OnClose              func()
}

// Row is one rendered option line.
type Row struct {
	Node     OptionNode
	Depth    int
	Selected bool
}

// Section is a bucket of rows. Flat pickers produce a single section with an
// empty letter.
type Section struct {
	Letter string
	Rows   []Row
}

// Picker holds the state of one option dialog. It is not safe for concurrent
// use.
type Picker struct {
	cfg       Config
	tree      *Tree
	selection *Selection
	matcher   Matcher
	closed    bool
}

// NewPicker opens a session. Radio pickers keep only the first initial
// selection.
func NewPicker(cfg Config) *Picker {
	if cfg.Variant == "" {
		cfg.Variant = VariantCheckbox
	}
	initial := cfg.InitiallySelected
	if cfg.Variant == VariantRadio && len(initial) > 1 {
		initial = initial[:1]
	}
	p := &Picker{
		cfg:       cfg,
		selection: NewSelection(initial...),
	}
	p.reindex()
	return p
}

func (p *Picker) reindex() {
	p.tree = NewTree(p.source())
}

func (p *Picker) source() []OptionNode {
	if p.cfg.NotShowAsAlphabet {
		return p.cfg.Flat
	}
	return FlattenAlphabet(p.cfg.Alphabet)
}

func (p *Picker) Variant() Variant { return p.cfg.Variant }
func (p *Picker) Query() string    { return p.matcher.Query() }
func (p *Picker) Closed() bool     { return p.closed }
func (p *Picker) Nested() bool     { return !p.cfg.DisableNestedOptions }
func (p *Picker) Flat() bool       { return p.cfg.NotShowAsAlphabet }
func (p *Picker) Err() error       { return p.cfg.Err }

// SetLoading marks a fetch in flight.
func (p *Picker) SetLoading(loading bool) {
	p.cfg.Loading = loading
}

// SetResult installs fetched data and clears the loading flag. A non-nil err
// keeps any previous data.
func (p *Picker) SetResult(alphabet []AlphabetBucket, flat []OptionNode, err error) {
	p.cfg.Loading = false
	p.cfg.Err = err
	if err != nil {
		return
	}
	p.cfg.Alphabet = alphabet
	p.cfg.Flat = flat
	p.reindex()
}

// Search replaces the active query. Filtering is recomputed on read.
func (p *Picker) Search(query string) {
	p.matcher = NewMatcher(query, p.cfg.Transliterator)
}

func (p *Picker) hasData() bool {
	return p.tree.Len() > 0
}

// State resolves the body view: loading with no data, then transport error,
// then the empty message, then the list.
func (p *Picker) State() ViewState {
	if p.cfg.Loading && !p.hasData() {
		return StateLoading
	}
	if p.cfg.Err != nil {
		return StateError
	}
	if p.cfg.NotShowAsAlphabet {
		if len(p.Nodes()) == 0 {
			return StateEmpty
		}
		return StateReady
	}
	if len(p.Buckets()) == 0 {
		return StateEmpty
	}
	return StateReady
}

// Buckets returns the filtered alphabet.
func (p *Picker) Buckets() []AlphabetBucket {
	if p.cfg.NotShowAsAlphabet {
		return nil
	}
	return FilterAlphabet(p.cfg.Alphabet, p.matcher, p.Nested())
}

// Nodes returns the filtered flat list.
func (p *Picker) Nodes() []OptionNode {
	if !p.cfg.NotShowAsAlphabet {
		return nil
	}
	return FilterNodes(p.cfg.Flat, p.matcher, p.Nested())
}

// Sections lays the filtered options out as rows. Children are listed
// beneath their parent, one depth level deeper, unless nesting is disabled.
func (p *Picker) Sections() []Section {
	if p.cfg.NotShowAsAlphabet {
		nodes := p.Nodes()
		if len(nodes) == 0 {
			return nil
		}
		return []Section{{Rows: p.rows(nodes, 0, nil)}}
	}
	buckets := p.Buckets()
	sections := make([]Section, 0, len(buckets))
	for _, bucket := range buckets {
		sections = append(sections, Section{
			Letter: bucket.Letter,
			Rows:   p.rows(bucket.Docs, 0, nil),
		})
	}
	return sections
}

func (p *Picker) rows(nodes []OptionNode, depth int, out []Row) []Row {
	for _, node := range nodes {
		out = append(out, Row{Node: node, Depth: depth, Selected: p.selection.Has(node.ID)})
		if p.Nested() && len(node.Options) > 0 {
			out = p.rows(node.Options, depth+1, out)
		}
	}
	return out
}

// Selected returns the current selection in pick order.
func (p *Picker) Selected() []OptionNode {
	return p.selection.Nodes()
}

// IsSelected reports whether id is in the selection.
func (p *Picker) IsSelected(id string) bool {
	return p.selection.Has(id)
}

// Click selects the option with id. Radio pickers submit and close
// immediately; checkbox pickers toggle membership. Clicking a parent never
// expands it, it selects the parent itself.
func (p *Picker) Click(id string) error {
	if p.closed {
		return ErrClosed
	}
	idx, ok := p.tree.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}
	if !p.Nested() && p.tree.Parent(idx) != NoParent {
		return fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}
	node := p.tree.Node(idx)

	if p.cfg.Variant == VariantRadio {
		p.selection.Choose(node)
		p.emit([]OptionNode{node})
		p.Close()
		return nil
	}
	p.selection.Toggle(node)
	return nil
}

// CanSubmit reports whether the explicit submit control is available.
func (p *Picker) CanSubmit() bool {
	return !p.closed && p.cfg.Variant == VariantCheckbox && p.selection.Len() > 0
}

// Submit delivers the checkbox selection and closes the picker.
func (p *Picker) Submit() error {
	if p.closed {
		return ErrClosed
	}
	if p.cfg.Variant == VariantRadio {
		return ErrRadioSubmit
	}
	if p.selection.Len() == 0 {
		return ErrNothingSelected
	}
	p.emit(p.selection.Nodes())
	p.Close()
	return nil
}

func (p *Picker) emit(selected []OptionNode) {
	if p.cfg.OnSubmit != nil {
		p.cfg.OnSubmit(selected)
	}
}

// Close ends the session. It is idempotent.
func (p *Picker) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.cfg.OnClose != nil {
		p.cfg.OnClose()
	}
}
