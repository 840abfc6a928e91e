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

import (
	"encoding/binary"

	"github.com/dchest/siphash"
)

// hashKey0/hashKey1 are fixed, process-local siphash keys. Hash() is only
// ever used to fast-reject equality within a single process run, never
// persisted or compared across runs, so a fixed key (rather than one
// randomized at startup) keeps the result deterministic and easy to
// assert on in tests.
const (
	hashKey0 = 0x646f6e7427626c69
	hashKey1 = 0x6e6b6861736865a5
)

// hashCodePoints fingerprints a sequence of decoded code points, not raw
// storage bytes: every node kind — leaf or derived, regardless of
// encoding or lazy/contented state — must hash through this one helper,
// so that two nodes holding the same logical string always hash equal
// no matter how each happens to be represented. Hashing a leaf's raw
// bytes instead would make Hash() diverge between, say, a UTF-32 leaf
// and a Concatenation of ASCII leaves spelling the same string.
func hashCodePoints(cps []int32) uint64 {
	buf := make([]byte, 4*len(cps))
	for i, cp := range cps {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(cp))
	}
	return siphash.Hash(hashKey0, hashKey1, buf)
}
