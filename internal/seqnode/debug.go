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

package seqnode

import "github.com/moneytech/gorope/internal/graphdump"

func stateName(s derivedState) string {
	if s == stateContented {
		return "contented"
	}
	return "lazy"
}

// Describe builds a graphdump.Node tree describing s, for use in tests
// that want to assert on lifecycle transitions (lazy vs. contented,
// which parents a node still holds) without reaching into unexported
// fields directly.
func Describe(s Sequence) *graphdump.Node {
	n := &graphdump.Node{
		ID:       s.DebugID().String(),
		Length:   s.Length(),
		RefCount: s.RefCount(),
	}
	switch v := s.(type) {
	case *Leaf:
		n.Variant = "Leaf/" + v.encoding.String()
		n.State = "flat"
	case *Substring:
		n.Variant = "Substring"
		n.State = stateName(v.state)
		if v.state == stateLazy {
			n.Children = []*graphdump.Node{Describe(v.parent)}
		}
	case *Concatenation:
		n.Variant = "Concatenation"
		n.State = stateName(v.state)
		if v.state == stateLazy {
			n.Children = []*graphdump.Node{Describe(v.left), Describe(v.right)}
		}
	case *Repetition:
		n.Variant = "Repetition"
		n.State = stateName(v.state)
		if v.state == stateLazy {
			n.Children = []*graphdump.Node{Describe(v.item)}
		}
	default:
		n.Variant = "unknown"
	}
	return n
}
