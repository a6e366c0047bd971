package testbed

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/wippyai/xmp-bridge/engine"
	"github.com/wippyai/xmp-bridge/errors"
)

type visit struct {
	node  engine.Node
	depth int
	leaf  bool
}

// Iterator walks a snapshot of a document taken at creation. Later edits
// to the document are not observed.
type Iterator struct {
	tk       *Toolkit
	visits   []visit
	pos      int
	last     int
	released atomic.Bool
}

var _ engine.Iterator = (*Iterator)(nil)

// Release implements engine.Releaser.
func (it *Iterator) Release() {
	if it.released.CompareAndSwap(false, true) {
		it.tk.live.Add(-1)
	}
}

// Iterate snapshots the nodes under schemaNS and propName. Schema nodes
// are not reported; top-level properties are the roots.
func (m *Meta) Iterate(schemaNS, propName string, flags engine.IterFlags) (engine.Iterator, error) {
	if err := m.tk.trip("Iterate"); err != nil {
		return nil, err
	}
	if schemaNS == "" && propName != "" {
		engine.Raise(int32(errors.BadSchema), "Empty schema namespace URI")
	}
	if schemaNS != "" {
		m.tk.prefix(schemaNS)
	}

	var all []visit
	m.props.Scan(func(_ string, n *node) bool {
		if schemaNS != "" && n.NS != schemaNS {
			return true
		}
		if propName != "" && n.Name != propName {
			return true
		}
		all = m.walk(all, n, n.NS, m.tk.prefix(n.NS)+n.Name, 0, flags)
		return true
	})

	want := -1
	if flags&engine.IterJustChildren != 0 {
		want = 0
		if propName != "" {
			want = 1
		}
	}

	visits := all[:0]
	for _, v := range all {
		if want >= 0 && v.depth != want {
			continue
		}
		if flags&engine.IterJustLeafNodes != 0 && !v.leaf {
			continue
		}
		if flags&engine.IterJustLeafName != 0 {
			v.node.Path = leafName(v.node.Path)
		}
		visits = append(visits, v)
	}

	m.tk.live.Add(1)
	return &Iterator{tk: m.tk, visits: visits, last: -1}, nil
}

func (m *Meta) walk(out []visit, n *node, ns, path string, depth int, flags engine.IterFlags) []visit {
	quals := n.Quals
	if flags&engine.IterOmitQualifiers != 0 {
		quals = nil
	}
	out = append(out, visit{
		node: engine.Node{
			SchemaNS: ns,
			Path:     path,
			Value:    n.Value,
			Flags:    n.options(),
		},
		depth: depth,
		leaf:  len(quals)+len(n.Items)+len(n.Fields) == 0,
	})
	for _, q := range quals {
		at := len(out)
		out = m.walk(out, q, ns, path+"/?"+m.tk.prefix(q.NS)+q.Name, depth+1, flags)
		out[at].node.Flags |= engine.PropIsQualifier
	}
	for i, it := range n.Items {
		out = m.walk(out, it, ns, path+"["+strconv.Itoa(i+1)+"]", depth+1, flags)
	}
	for _, f := range n.Fields {
		out = m.walk(out, f, ns, path+"/"+m.tk.prefix(f.NS)+f.Name, depth+1, flags)
	}
	return out
}

func leafName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndexByte(path, '['); i > 0 {
		return path[i:]
	}
	return strings.TrimPrefix(path, "?")
}

func (it *Iterator) Next() (engine.Node, bool, error) {
	if err := it.tk.trip("IteratorNext"); err != nil {
		return engine.Node{}, false, err
	}
	if it.pos >= len(it.visits) {
		return engine.Node{}, false, nil
	}
	it.last = it.pos
	it.pos++
	return it.visits[it.last].node, true, nil
}

// Skip drops the rest of the last node's subtree, or the rest of its
// siblings together with their subtrees.
func (it *Iterator) Skip(flags engine.SkipFlags) error {
	if err := it.tk.trip("IteratorSkip"); err != nil {
		return err
	}
	if flags != engine.SkipSubtree && flags != engine.SkipSiblings {
		engine.Raise(int32(errors.BadOptions), "Invalid skip options")
	}
	if it.last < 0 {
		engine.Raise(int32(errors.BadIterPosition), "No current node to skip from")
	}
	depth := it.visits[it.last].depth
	for it.pos < len(it.visits) {
		d := it.visits[it.pos].depth
		if d < depth || (flags == engine.SkipSubtree && d == depth) {
			break
		}
		it.pos++
	}
	return nil
}
