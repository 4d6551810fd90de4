// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/kestrel-codec/kestrel/lib/codec"
)

// prettyString renders item the same way codec.Item.String does for
// scalars, but spreads Array/Map/Tagged containers across multiple
// lines indented by indentWidth spaces per level. indentWidth <= 0
// falls back to the single-line form.
func prettyString(item codec.Item, indentWidth int) string {
	if indentWidth <= 0 {
		return item.String()
	}
	var b strings.Builder
	writePretty(&b, item, indentWidth, 0)
	return b.String()
}

func writePretty(b *strings.Builder, item codec.Item, indentWidth, depth int) {
	pad := strings.Repeat(" ", indentWidth*depth)
	childPad := strings.Repeat(" ", indentWidth*(depth+1))

	switch item.Kind {
	case codec.KindArray:
		if len(item.Array) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, elem := range item.Array {
			b.WriteString(childPad)
			writePretty(b, elem, indentWidth, depth+1)
			if i < len(item.Array)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(pad + "]")

	case codec.KindMap:
		if len(item.Pairs) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, pair := range item.Pairs {
			b.WriteString(childPad)
			b.WriteString(pair.Key.String())
			b.WriteString(": ")
			writePretty(b, pair.Value, indentWidth, depth+1)
			if i < len(item.Pairs)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(pad + "}")

	case codec.KindTagged:
		inner := codec.Item{}
		if item.Inner != nil {
			inner = *item.Inner
		}
		b.WriteString(fmt.Sprintf("%d(", item.Tag))
		writePretty(b, inner, indentWidth, depth)
		b.WriteString(")")

	default:
		b.WriteString(item.String())
	}
}
