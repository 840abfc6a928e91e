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

// Package gorope implements SuperString: an immutable, lazily-evaluated
// Unicode string built as a rope of leaf and derived nodes. Concatenation,
// repetition and substring are O(1) at construction time; the bytes they
// describe are only decoded, copied or re-flattened when a caller that
// actually needs them (Reconstruct, forced by a parent's release) or
// idle lifecycle accounting decides it's cheaper to materialize than to
// keep sharing.
package gorope

import (
	"errors"
	"io"

	"github.com/moneytech/gorope/codec"
	"github.com/moneytech/gorope/internal/seqnode"
)

// Errors returned by String's operations. Use errors.Is to test for
// these; don't compare by value, they may be wrapped in future code
// paths.
var (
	ErrRangeError          = seqnode.ErrRangeError
	ErrInvalidByteSequence = seqnode.ErrInvalidByteSequence
	ErrUnimplemented       = seqnode.ErrUnimplemented
	// ErrUnexpected signals an internal invariant violation: a code
	// path that spec.md's node model says can't be reached in a correct
	// build.
	ErrUnexpected = errors.New("gorope: unexpected internal state")
)

// Encoding names the byte layout of a leaf's backing storage. See the
// codec package for the per-encoding byte-span functions this wraps.
type Encoding int

const (
	ASCII   Encoding = Encoding(codec.ASCII)
	UTF8    Encoding = Encoding(codec.UTF8)
	UTF16BE Encoding = Encoding(codec.UTF16BE)
	UTF32   Encoding = Encoding(codec.UTF32)
)

// String is an immutable Unicode string backed by a rope of reference-
// counted nodes. The zero value reads as the empty string; construct
// others with NewConstString, NewCopyString, Empty, Concat or Repeat.
//
// String is not safe for concurrent use by multiple goroutines, matching
// the single-threaded node model it wraps.
type String struct {
	node seqnode.Sequence
}

func wrap(n seqnode.Sequence, err error) (String, error) {
	if err != nil {
		return String{}, err
	}
	seqnode.Retain(n)
	return String{node: n}, nil
}

// Empty returns the empty string.
func Empty() String {
	s, _ := wrap(seqnode.NewLeaf(codec.ASCII, seqnode.Const, nil), nil)
	return s
}

// NewConstString builds a String over data without copying it. The
// caller must not mutate data afterwards: its bytes may be read by this
// String (and any String derived from it) at any point in the future,
// including after this call returns.
func NewConstString(encoding Encoding, data []byte) String {
	s, _ := wrap(seqnode.NewLeaf(codec.Encoding(encoding), seqnode.Const, data), nil)
	return s
}

// NewCopyString builds a String over a private copy of data.
func NewCopyString(encoding Encoding, data []byte) String {
	s, _ := wrap(seqnode.NewLeaf(codec.Encoding(encoding), seqnode.Copy, data), nil)
	return s
}

// Retain adds a reference to s's underlying node. Strings returned by
// this package's constructors are already retained once; call Retain
// when you hand a copy of a String value to code that will call
// Release independently (e.g. storing it in two long-lived structures).
func (s String) Retain() String {
	if s.node != nil {
		seqnode.Retain(s.node)
	}
	return s
}

// Release drops a reference to s's underlying node, potentially
// triggering reconstruction of any lazy dependents if that's now
// cheaper than keeping s's storage alive. Call once for every Retain
// (including the implicit one from construction).
func (s String) Release() {
	if s.node != nil {
		seqnode.Release(s.node)
	}
}

// Length returns the number of code points in s.
func (s String) Length() int {
	if s.node == nil {
		return 0
	}
	return s.node.Length()
}

// CodeUnitAt returns the code point at index, or ErrRangeError if index
// is out of bounds.
func (s String) CodeUnitAt(index int) (int32, error) {
	if s.node == nil {
		return 0, ErrRangeError
	}
	return s.node.CodeUnitAt(index)
}

// Substring returns the code points in [start, end) as a new String
// sharing storage with s.
func (s String) Substring(start, end int) (String, error) {
	if s.node == nil {
		if start == 0 && end == 0 {
			return Empty(), nil
		}
		return String{}, ErrRangeError
	}
	return wrap(s.node.Substring(start, end))
}

// Print writes s's full contents to w as UTF-8 text.
func (s String) Print(w io.Writer) error {
	if s.node == nil {
		return nil
	}
	return s.node.Print(w)
}

// PrintRange writes s[start:end] to w as UTF-8 text.
func (s String) PrintRange(w io.Writer, start, end int) error {
	if s.node == nil {
		if start == 0 && end == 0 {
			return nil
		}
		return ErrRangeError
	}
	return s.node.PrintRange(w, start, end)
}

// Trim returns s with leading and trailing whitespace removed.
func (s String) Trim() String {
	if s.node == nil {
		return s
	}
	t, _ := wrap(s.node.Trim(), nil)
	return t
}

// TrimLeft returns s with leading whitespace removed.
func (s String) TrimLeft() String {
	if s.node == nil {
		return s
	}
	t, _ := wrap(s.node.TrimLeft(), nil)
	return t
}

// TrimRight returns s with trailing whitespace removed.
func (s String) TrimRight() String {
	if s.node == nil {
		return s
	}
	t, _ := wrap(s.node.TrimRight(), nil)
	return t
}

// Concat returns a String that reads as a followed by b. Both operands
// keep their own storage; no bytes are copied until something forces
// reconstruction.
func Concat(a, b String) (String, error) {
	an, bn := nodeOf(a), nodeOf(b)
	return wrap(seqnode.NewConcatenation(an, bn))
}

// Repeat returns a String that reads as s repeated count times.
func Repeat(s String, count int) (String, error) {
	return wrap(seqnode.NewRepetition(nodeOf(s), count))
}

func nodeOf(s String) seqnode.Sequence {
	if s.node == nil {
		return seqnode.NewLeaf(codec.ASCII, seqnode.Const, nil)
	}
	return s.node
}

// CompareTo orders a and b lexicographically by code point: -1 if
// a < b, 0 if equal, 1 if a > b.
func CompareTo(a, b String) int {
	return seqnode.CompareTo(nodeOf(a), nodeOf(b))
}

// Equal reports whether a and b hold the same code points.
func Equal(a, b String) bool {
	return seqnode.Equal(nodeOf(a), nodeOf(b))
}
