package richtext

// Normalize walks the tree left to right and groups consecutive list items of
// the same kind into ListGroup containers. Groups are maximal and non-empty:
// a change of list kind closes the open group and opens a new one, and any
// non-list node closes the open group before passing through unchanged.
//
// The pass is a pure fold over an accumulator; input nodes are not mutated.
func Normalize(nodes Nodes) Nodes {
	acc := grouping{out: make(Nodes, 0, len(nodes))}
	for _, node := range nodes {
		acc = acc.fold(node)
	}
	return acc.flush()
}

type grouping struct {
	open *ListGroup
	out  Nodes
}

func (g grouping) fold(node Node) grouping {
	block, ok := node.(*Block)
	if !ok || block.ListItem == ListNone {
		g = g.close()
		g.out = append(g.out, node)
		return g
	}

	if g.open == nil || g.open.Kind != block.ListItem {
		g = g.close()
		g.open = &ListGroup{Kind: block.ListItem}
	}
	g.open.Items = append(g.open.Items, block)
	return g
}

func (g grouping) close() grouping {
	if g.open != nil {
		g.out = append(g.out, g.open)
		g.open = nil
	}
	return g
}

func (g grouping) flush() Nodes {
	return g.close().out
}
