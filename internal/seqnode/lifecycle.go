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

// Release drops one wrapper-level reference to n. When that was the
// last one, n consults ShouldFree to decide whether forcing its lazy
// referencers to reconstruct now is worth it: if reconstructing them
// would cost more than n staying around as-is, n is left alone and
// simply remains reachable (and therefore alive) through whichever
// referencer still points at it.
func Release(n Sequence) {
	if n.RefRelease() > 0 {
		return
	}
	if ShouldFree(n) {
		n.ReconstructReferencers()
	}
}

// Retain adds one wrapper-level reference to n.
func Retain(n Sequence) {
	n.RefAdd()
}
