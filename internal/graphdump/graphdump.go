// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package graphdump writes a line-oriented trace of a rope's node graph:
// one line per node, naming its debug ID, variant, lifecycle state and
// reference count. It exists for tests and interactive debugging of the
// lifecycle core; the public gorope façade never calls it.
package graphdump

import (
	"fmt"
	"io"
)

// Node is the minimal view graphdump needs of a seqnode.Sequence. It's
// defined here rather than imported from seqnode so this package stays
// import-cycle-free and usable from seqnode's own tests.
type Node struct {
	ID       string
	Variant  string
	State    string
	Length   int
	RefCount int
	Children []*Node
}

// Dump writes root and its children, depth-first, as indented lines to
// w. Returns the first write error encountered, if any.
func Dump(w io.Writer, root *Node) error {
	return dump(w, root, 0)
}

func dump(w io.Writer, n *Node, depth int) error {
	if n == nil {
		return nil
	}
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	_, err := fmt.Fprintf(w, "%s%s id=%s state=%s len=%d refs=%d\n",
		indent, n.Variant, n.ID, n.State, n.Length, n.RefCount)
	if err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dump(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
