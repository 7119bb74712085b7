package jsondiff

import (
	"errors"
	"strings"

	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/differrors"
	"github.com/erraggy/outdiff/jsonvalue"
	"github.com/erraggy/outdiff/seqdiff"
)

// Diff parses two JSON documents and compares them.
func Diff(oldJSON, newJSON string, cfg diffconfig.DiffConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := ParseDocument(oldJSON, differrors.SideOld, cfg.MaxDepth())
	if err != nil {
		return nil, err
	}
	b, err := ParseDocument(newJSON, differrors.SideNew, cfg.MaxDepth())
	if err != nil {
		return nil, err
	}
	return run(a, b, cfg)
}

// DiffValues compares two already parsed documents. A nil value is an
// absent document.
func DiffValues(oldValue, newValue *jsonvalue.Value, cfg diffconfig.DiffConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkDepth(oldValue, differrors.SideOld, cfg.MaxDepth()); err != nil {
		return nil, err
	}
	if err := checkDepth(newValue, differrors.SideNew, cfg.MaxDepth()); err != nil {
		return nil, err
	}
	return run(oldValue, newValue, cfg)
}

// ParseDocument parses one input of a diff. It returns nil for a
// whitespace-only (absent) document, and errors carry side. A maxDepth of 0
// means unbounded.
func ParseDocument(data string, side differrors.Side, maxDepth int) (*jsonvalue.Value, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	v, err := jsonvalue.ParseWithLimit(data, maxDepth)
	if err != nil {
		return nil, withSide(err, side)
	}
	return &v, nil
}

// withSide records which input an error came from.
func withSide(err error, side differrors.Side) error {
	var (
		jerr *differrors.JSONParseError
		perr *differrors.ParseError
		derr *differrors.DepthExceededError
	)
	switch {
	case errors.As(err, &jerr):
		jerr.Side = side
	case errors.As(err, &perr):
		perr.Side = side
	case errors.As(err, &derr):
		derr.Side = side
	}
	return err
}

func checkDepth(v *jsonvalue.Value, side differrors.Side, limit int) error {
	if v == nil {
		return nil
	}
	if p, over := jsonvalue.CheckDepth(*v, limit); over {
		return &differrors.DepthExceededError{Side: side, Limit: limit, Path: p.String()}
	}
	return nil
}

func run(a, b *jsonvalue.Value, cfg diffconfig.DiffConfig) (*Result, error) {
	log := cfg.Logger().With("engine", "json")

	w := newWalker(cfg)
	switch {
	case a == nil && b == nil:
	case a == nil:
		w.emit(nil, Added, nil, b)
	case b == nil:
		w.emit(nil, Removed, a, nil)
	default:
		if err := w.walk(*a, *b); err != nil {
			return nil, err
		}
	}

	result := &Result{
		Changes:     w.changes,
		Stats:       w.stats,
		Equal:       len(w.changes) == 0,
		Approximate: w.fallback,
	}
	if result.Changes == nil {
		result.Changes = []Change{}
	}
	if w.fallback {
		log.Warn("array alignment above fallback threshold, changes may not be minimal",
			"threshold", cfg.FallbackThreshold())
	}
	log.Debug("json diff complete",
		"changes", len(result.Changes),
		"added", result.Stats.Added,
		"removed", result.Stats.Removed,
		"changed", result.Stats.Changed,
		"type_changed", result.Stats.TypeChanged)

	return result, nil
}

// trail is a path kept as a parent-linked list so that pushing work does not
// copy paths; it is materialized only for emitted changes.
type trail struct {
	parent *trail
	seg    jsonvalue.Segment
	depth  int
}

func (t *trail) key(k string) *trail {
	return &trail{parent: t, seg: jsonvalue.KeySegment(k), depth: t.len() + 1}
}

func (t *trail) index(i int) *trail {
	return &trail{parent: t, seg: jsonvalue.IndexSegment(i), depth: t.len() + 1}
}

func (t *trail) len() int {
	if t == nil {
		return 0
	}
	return t.depth
}

func (t *trail) path() jsonvalue.Path {
	p := make(jsonvalue.Path, t.len())
	for n := t; n != nil; n = n.parent {
		p[n.depth-1] = n.seg
	}
	return p
}

// task is one unit on the work stack: either a pair to compare or a
// one-sided value to report.
type task struct {
	at       *trail
	kind     ChangeKind // Added or Removed for one-sided tasks, "" to compare
	old, cur jsonvalue.Value
	depth    int // containers enclosing the pair
}

type walker struct {
	keyer    *diffconfig.Keyer
	limit    int
	lcs      bool
	modify   bool
	seqOpts  seqdiff.Options
	changes  []Change
	stats    Stats
	fallback bool
}

func newWalker(cfg diffconfig.DiffConfig) *walker {
	return &walker{
		keyer:   cfg.NewKeyer(),
		limit:   cfg.MaxDepth(),
		lcs:     cfg.ArrayStrategy() == diffconfig.ArrayLCS,
		modify:  cfg.DetectModifications(),
		seqOpts: seqdiff.Options{FallbackThreshold: cfg.FallbackThreshold()},
	}
}

func (w *walker) emit(at *trail, kind ChangeKind, before, after *jsonvalue.Value) {
	w.changes = append(w.changes, Change{Path: at.path(), Kind: kind, OldValue: before, NewValue: after})
	w.stats.count(kind)
}

func (w *walker) stringsEqual(x, y string) bool {
	if x == y {
		return true
	}
	if w.keyer.Identity() {
		return false
	}
	return w.keyer.Key(x) == w.keyer.Key(y)
}

func (w *walker) equal(x, y jsonvalue.Value) bool {
	return jsonvalue.EqualFunc(x, y, w.stringsEqual)
}

func (w *walker) canonical(v jsonvalue.Value) string {
	if w.keyer.Identity() {
		return jsonvalue.CanonicalKey(v, nil)
	}
	return jsonvalue.CanonicalKey(v, w.keyer.Key)
}

// walk compares two documents in pre-order. Children are pushed in reverse
// so that they are popped, and their changes emitted, in visiting order.
func (w *walker) walk(a, b jsonvalue.Value) error {
	stack := []task{{old: a, cur: b}}
	var children []task

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.kind {
		case Added:
			v := t.cur
			w.emit(t.at, Added, nil, &v)
			continue
		case Removed:
			v := t.old
			w.emit(t.at, Removed, &v, nil)
			continue
		}

		x, y := t.old, t.cur
		if x.Kind() != y.Kind() {
			w.emit(t.at, TypeChanged, &x, &y)
			continue
		}

		children = children[:0]
		switch x.Kind() {
		case jsonvalue.KindNull:
		case jsonvalue.KindBool:
			if x.Bool() != y.Bool() {
				w.emit(t.at, Changed, &x, &y)
			}
		case jsonvalue.KindNumber:
			if x.Float() != y.Float() {
				w.emit(t.at, Changed, &x, &y)
			}
		case jsonvalue.KindString:
			if !w.stringsEqual(x.Str(), y.Str()) {
				w.emit(t.at, Changed, &x, &y)
			}
		case jsonvalue.KindObject:
			if err := w.enter(t); err != nil {
				return err
			}
			children = w.objectChildren(children, t)
		case jsonvalue.KindArray:
			if err := w.enter(t); err != nil {
				return err
			}
			if w.lcs {
				children = w.alignedChildren(children, t)
			} else {
				children = w.positionalChildren(children, t)
			}
		}

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

// enter guards descending into the container pair held by t.
func (w *walker) enter(t task) error {
	if w.limit > 0 && t.depth+1 > w.limit {
		return &differrors.DepthExceededError{Limit: w.limit, Path: t.at.path().String()}
	}
	return nil
}

func (w *walker) objectChildren(out []task, t task) []task {
	x, y := t.old, t.cur
	d := t.depth + 1
	for _, k := range x.Keys() {
		ov, _ := x.Get(k)
		if nv, ok := y.Get(k); ok {
			out = append(out, task{at: t.at.key(k), old: ov, cur: nv, depth: d})
		} else {
			out = append(out, task{at: t.at.key(k), kind: Removed, old: ov, depth: d})
		}
	}
	for _, k := range y.Keys() {
		if x.Has(k) {
			continue
		}
		nv, _ := y.Get(k)
		out = append(out, task{at: t.at.key(k), kind: Added, cur: nv, depth: d})
	}
	return out
}

func (w *walker) positionalChildren(out []task, t task) []task {
	xs, ys := t.old.Elements(), t.cur.Elements()
	d := t.depth + 1
	common := min(len(xs), len(ys))
	for i := range common {
		out = append(out, task{at: t.at.index(i), old: xs[i], cur: ys[i], depth: d})
	}
	for i := common; i < len(xs); i++ {
		out = append(out, task{at: t.at.index(i), kind: Removed, old: xs[i], depth: d})
	}
	for i := common; i < len(ys); i++ {
		out = append(out, task{at: t.at.index(i), kind: Added, cur: ys[i], depth: d})
	}
	return out
}

// alignedChildren aligns array elements with the sequence differ. Removed
// elements are addressed by their old index; added elements and recursed
// pairs by their new index.
func (w *walker) alignedChildren(out []task, t task) []task {
	xs, ys := t.old.Elements(), t.cur.Elements()
	d := t.depth + 1

	script := seqdiff.Diff(xs, ys, seqdiff.Comparator[jsonvalue.Value]{
		Equal: w.equal,
		Key:   w.canonical,
	}, w.seqOpts)
	w.fallback = w.fallback || script.Fallback

	edits := script.Edits
	if w.modify {
		edits = seqdiff.Coalesce(edits)
	}
	for _, e := range edits {
		switch e.Op {
		case seqdiff.OpEqual:
		case seqdiff.OpDelete:
			out = append(out, task{at: t.at.index(e.OldIndex), kind: Removed, old: xs[e.OldIndex], depth: d})
		case seqdiff.OpInsert:
			out = append(out, task{at: t.at.index(e.NewIndex), kind: Added, cur: ys[e.NewIndex], depth: d})
		case seqdiff.OpModify:
			out = append(out, task{at: t.at.index(e.NewIndex), old: xs[e.OldIndex], cur: ys[e.NewIndex], depth: d})
		}
	}
	return out
}
