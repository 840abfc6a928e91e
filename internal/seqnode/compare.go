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

// CompareTo orders a and b lexicographically by code point, the way
// strings.Compare orders bytes: -1 if a < b, 0 if equal, 1 if a > b. A
// shorter sequence that is a prefix of a longer one sorts first.
//
// Hash() can't shortcut this: it proves inequality, not direction, so
// ordering always walks both sequences. Equal below is where the hash
// fast path pays off.
func CompareTo(a, b Sequence) int {
	na, nb := a.Length(), b.Length()
	n := na
	if nb < n {
		n = nb
	}
	for i := 0; i < n; i++ {
		ca, errA := a.CodeUnitAt(i)
		cb, errB := b.CodeUnitAt(i)
		if errA != nil || errB != nil {
			break
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b hold the same sequence of code points.
// A Hash mismatch proves inequality without a full scan; a match still
// falls through to CompareTo, since siphash collisions are possible.
// This fast path is only sound because every node kind's Hash is
// defined over decoded code points rather than raw storage, so it
// agrees across encodings and across leaf vs. derived nodes.
func Equal(a, b Sequence) bool {
	if a.Length() != b.Length() {
		return false
	}
	if a.Hash() != b.Hash() {
		return false
	}
	return CompareTo(a, b) == 0
}
