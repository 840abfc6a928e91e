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
	"io"

	"github.com/moneytech/gorope/codec"
)

// Ownership distinguishes the two storage strategies a leaf can use for
// its bytes: Const wraps a caller-owned slice without copying it, Copy
// takes its own copy at construction time. Go's GC means neither form
// needs an explicit free, but the distinction still drives
// KeepingCost: a Const leaf that outlives the buffer
// it was built from is the caller's problem, not this package's, so it
// is never a candidate for eager release the way a Copy leaf's owned
// storage can be discounted against.
type Ownership int

const (
	Const Ownership = iota
	Copy
)

// Leaf is a flat, undivided run of bytes in one of four encodings. It
// never holds a parent reference and is never itself a Referencer: a
// leaf has nothing to reconstruct from.
type Leaf struct {
	base
	encoding  codec.Encoding
	ownership Ownership
	data      []byte

	lengthCached bool
	length       int
	byteLength   int
}

var _ Sequence = (*Leaf)(nil)

// NewLeaf builds a leaf over data in the given encoding. When ownership
// is Copy, data is cloned; when Const, data is stored as-is and must not
// be mutated by the caller afterwards.
func NewLeaf(encoding codec.Encoding, ownership Ownership, data []byte) *Leaf {
	stored := data
	if ownership == Copy {
		stored = make([]byte, len(data))
		copy(stored, data)
	}
	return &Leaf{base: newBase(), encoding: encoding, ownership: ownership, data: stored}
}

func (l *Leaf) computeLength() {
	if l.lengthCached {
		return
	}
	switch l.encoding {
	case codec.ASCII:
		l.length = codec.ASCIILength(l.data)
		l.byteLength = l.length
	case codec.UTF8:
		l.length, l.byteLength = codec.UTF8LengthAndByteLength(l.data)
	case codec.UTF16BE:
		l.length, l.byteLength = codec.UTF16BELengthAndByteLength(l.data)
	case codec.UTF32:
		l.length, l.byteLength = codec.UTF32LengthAndByteLength(l.data)
	}
	l.lengthCached = true
}

func (l *Leaf) Length() int {
	l.computeLength()
	return l.length
}

func (l *Leaf) byteSpan() int {
	l.computeLength()
	return l.byteLength
}

func (l *Leaf) CodeUnitAt(index int) (int32, error) {
	if index < 0 || index >= l.Length() {
		return 0, ErrRangeError
	}
	switch l.encoding {
	case codec.ASCII:
		return codec.ASCIICodeUnitAt(l.data, index), nil
	case codec.UTF8:
		return codec.UTF8CodeUnitAt(l.data, index)
	case codec.UTF16BE:
		return codec.UTF16BECodeUnitAt(l.data, index)
	case codec.UTF32:
		return codec.UTF32CodeUnitAt(l.data, index), nil
	default:
		return 0, ErrUnimplemented
	}
}

func (l *Leaf) Print(w io.Writer) error {
	return l.PrintRange(w, 0, l.Length())
}

func (l *Leaf) PrintRange(w io.Writer, start, end int) error {
	if start < 0 || end > l.Length() || start > end {
		return ErrRangeError
	}
	switch l.encoding {
	case codec.ASCII:
		return codec.ASCIIPrintRange(w, l.data, start, end)
	case codec.UTF8:
		return codec.UTF8PrintRange(w, l.data, start, end)
	case codec.UTF16BE:
		return codec.UTF16BEPrintRange(w, l.data, start, end)
	case codec.UTF32:
		return codec.UTF32PrintRange(w, l.data, start, end)
	default:
		return ErrUnimplemented
	}
}

// Substring carves a Const leaf over l's own bytes when the encoding has
// a fixed-width or directly-indexable byte layout (ASCII, UTF-32); UTF-8
// and UTF-16BE have variable-width code units, so their substrings are
// represented as a Substring derived node instead, grounded on the same
// distinction spec.md draws between "directly sliceable" and "requires a
// scan" encodings.
func (l *Leaf) Substring(start, end int) (Sequence, error) {
	n := l.Length()
	if start < 0 || end > n || start > end {
		return nil, ErrRangeError
	}
	switch l.encoding {
	case codec.ASCII:
		return NewLeaf(codec.ASCII, Const, l.data[start:end]), nil
	case codec.UTF32:
		return NewLeaf(codec.UTF32, Const, l.data[4*start:4*end]), nil
	default:
		return NewSubstring(l, start, end)
	}
}

// Trim uses codec's direct byte-span trim helpers for the fixed-width
// encodings (ASCII, UTF-32), since those can locate the interval without
// a per-code-point CodeUnitAt call; UTF-8 and UTF-16BE fall back to the
// generic scan in trim.go.
func (l *Leaf) Trim() Sequence {
	switch l.encoding {
	case codec.ASCII:
		start, end := codec.ASCIITrim(l.data, l.Length())
		return l.mustSubstring(start, end)
	case codec.UTF32:
		start, end := codec.UTF32Trim(l.data, l.Length())
		return l.mustSubstring(start, end)
	default:
		return trimGeneric(l)
	}
}

func (l *Leaf) TrimLeft() Sequence {
	switch l.encoding {
	case codec.ASCII:
		return l.mustSubstring(codec.ASCIITrimLeft(l.data), l.Length())
	case codec.UTF32:
		return l.mustSubstring(codec.UTF32TrimLeft(l.data), l.Length())
	default:
		return trimLeftGeneric(l)
	}
}

func (l *Leaf) TrimRight() Sequence {
	switch l.encoding {
	case codec.ASCII:
		return l.mustSubstring(0, codec.ASCIITrimRight(l.data, l.Length()))
	case codec.UTF32:
		return l.mustSubstring(0, codec.UTF32TrimRight(l.data, l.Length()))
	default:
		return trimRightGeneric(l)
	}
}

func (l *Leaf) mustSubstring(start, end int) Sequence {
	sub, err := l.Substring(start, end)
	if err != nil {
		return l
	}
	return sub
}

// KeepingCost is the byte footprint currently attributable to this leaf:
// Copy leaves pay for their own storage, Const leaves are free (the
// bytes belong to whoever handed them in, and would exist regardless).
func (l *Leaf) KeepingCost() int {
	if l.ownership == Copy {
		return l.byteSpan()
	}
	return 0
}

func (l *Leaf) ReconstructReferencers() { l.reconstructReferencers(l) }

// Hash fingerprints l by its decoded code points, not its raw storage
// bytes, so it agrees with derived nodes' Hash regardless of encoding:
// two leaves (or a leaf and a derived node) spelling the same string
// must hash equal even if one is UTF-32 and the other is ASCII.
func (l *Leaf) Hash() uint64 { return hashCodePoints(readCodePoints(l, 0, l.Length())) }
