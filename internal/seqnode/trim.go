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

import "github.com/moneytech/gorope/codec"

// trimBounds walks s's code points through CodeUnitAt to find the
// interval left after stripping leading and trailing whitespace. Unlike
// codec's direct byte-span trim helpers (which only make sense for
// fixed-width ASCII/UTF-32 storage), this works against any Sequence,
// including derived nodes whose content isn't a flat byte slice.
//
// Mirrors the clamp fix codec's trim helpers apply: an all-whitespace
// sequence yields start == end rather than the inverted interval the
// original C++ would have computed.
func trimBounds(s Sequence) (start, end int) {
	n := s.Length()
	start = trimLeftBound(s, n)
	end = trimRightBound(s, n)
	if start > end {
		start = end
	}
	return start, end
}

func trimLeftBound(s Sequence, n int) int {
	for i := 0; i < n; i++ {
		cp, err := s.CodeUnitAt(i)
		if err != nil || !codec.IsWhitespace(cp) {
			return i
		}
	}
	return n
}

func trimRightBound(s Sequence, n int) int {
	for i := n; i > 0; i-- {
		cp, err := s.CodeUnitAt(i - 1)
		if err != nil || !codec.IsWhitespace(cp) {
			return i
		}
	}
	return 0
}

func trimGeneric(s Sequence) Sequence {
	start, end := trimBounds(s)
	sub, err := s.Substring(start, end)
	if err != nil {
		return s
	}
	return sub
}

func trimLeftGeneric(s Sequence) Sequence {
	start := trimLeftBound(s, s.Length())
	sub, err := s.Substring(start, s.Length())
	if err != nil {
		return s
	}
	return sub
}

func trimRightGeneric(s Sequence) Sequence {
	end := trimRightBound(s, s.Length())
	sub, err := s.Substring(0, end)
	if err != nil {
		return s
	}
	return sub
}
