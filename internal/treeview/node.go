// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package treeview

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

// node is one entry in the flattened, depth-first walk of a decoded
// Item tree. Containers (Array, Map, Tagged) start collapsed, except the
// root, which newTree expands; Leaf is false for any node with children
// still to flatten.
type node struct {
	depth    int
	label    string // the map key, array index, or "" at the root
	item     codec.Item
	leaf     bool
	expanded bool
	// childStart/childEnd index into the owning tree's flat slice,
	// marking the contiguous run of this node's descendants (before
	// collapse filtering). Set by flatten.
	childStart, childEnd int
}

// tree holds a decoded Item's full depth-first flattening alongside the
// subset of rows currently visible given each container's expanded state.
type tree struct {
	nodes   []node
	visible []int // indices into nodes, recomputed by refresh
}

func newTree(root codec.Item) *tree {
	t := &tree{}
	t.nodes = flatten(root, "", 0)
	if len(t.nodes) > 0 {
		t.nodes[0].expanded = true
	}
	t.refresh()
	return t
}

// flatten performs one depth-first walk, recording each node's
// child-index span so refresh can skip collapsed subtrees without
// re-walking the Item tree.
func flatten(item codec.Item, label string, depth int) []node {
	n := node{depth: depth, label: label, item: item}

	var children []codec.Item
	var childLabels []string
	switch item.Kind {
	case codec.KindArray:
		for i, elem := range item.Array {
			children = append(children, elem)
			childLabels = append(childLabels, fmt.Sprintf("[%d]", i))
		}
	case codec.KindMap:
		for _, pair := range item.Pairs {
			children = append(children, pair.Value)
			childLabels = append(childLabels, pair.Key.String())
		}
	case codec.KindTagged:
		if item.Inner != nil {
			children = append(children, *item.Inner)
			childLabels = append(childLabels, fmt.Sprintf("tag %d", item.Tag))
		}
	}

	if len(children) == 0 {
		n.leaf = true
		return []node{n}
	}

	out := []node{n}
	start := len(out)
	for i, child := range children {
		// A child's spans are relative to its own slice; shift them to
		// positions in out.
		base := len(out)
		sub := flatten(child, childLabels[i], depth+1)
		for k := range sub {
			if !sub[k].leaf {
				sub[k].childStart += base
				sub[k].childEnd += base
			}
		}
		out = append(out, sub...)
	}
	out[0].childStart = start
	out[0].childEnd = len(out)
	return out
}

// refresh recomputes the visible index slice from each node's expanded
// flag. Call after toggling a node.
func (t *tree) refresh() {
	t.visible = t.visible[:0]
	if len(t.nodes) == 0 {
		return
	}
	var walk func(i int) int
	walk = func(i int) int {
		t.visible = append(t.visible, i)
		n := t.nodes[i]
		if n.leaf || !n.expanded {
			if n.childEnd > 0 {
				return n.childEnd
			}
			return i + 1
		}
		j := i + 1
		for j < n.childEnd {
			j = walk(j)
		}
		return n.childEnd
	}
	walk(0)
}

// toggle flips the expanded state of the node at visible row row and
// refreshes. No-op on leaves.
func (t *tree) toggle(row int) {
	if row < 0 || row >= len(t.visible) {
		return
	}
	idx := t.visible[row]
	if t.nodes[idx].leaf {
		return
	}
	t.nodes[idx].expanded = !t.nodes[idx].expanded
	t.refresh()
}

// renderRow formats one node for display: indentation, expand marker,
// label, and a value summary. humanize.Bytes sizes Bytes/Text payloads
// so a large blob reads as "4.2 kB" rather than a raw byte count.
func renderRow(n node) string {
	indent := ""
	for i := 0; i < n.depth; i++ {
		indent += "  "
	}

	marker := " "
	if !n.leaf {
		if n.expanded {
			marker = "-"
		} else {
			marker = "+"
		}
	}

	prefix := indent + marker + " "
	if n.label != "" {
		prefix += n.label + ": "
	}

	switch n.item.Kind {
	case codec.KindArray:
		return fmt.Sprintf("%sarray(%d)", prefix, len(n.item.Array))
	case codec.KindMap:
		return fmt.Sprintf("%smap(%d)", prefix, len(n.item.Pairs))
	case codec.KindTagged:
		return fmt.Sprintf("%stagged %d", prefix, n.item.Tag)
	case codec.KindBytes:
		return fmt.Sprintf("%sbytes, %s", prefix, humanize.Bytes(uint64(len(n.item.Bytes))))
	case codec.KindText:
		if len(n.item.Text) > 64 {
			return fmt.Sprintf("%stext, %s: %q...", prefix, humanize.Bytes(uint64(len(n.item.Text))), n.item.Text[:64])
		}
		return prefix + n.item.String()
	default:
		return prefix + n.item.String()
	}
}
