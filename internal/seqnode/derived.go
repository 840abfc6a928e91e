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

// derivedState tracks which of a derived node's two representations is
// live: stateLazy holds only references into its parent(s) and an
// index range; stateContented holds its own decoded code-point buffer
// and no longer depends on any parent.
type derivedState int

const (
	stateLazy derivedState = iota
	stateContented
)

// readCodePoints materializes s[start:end] by walking CodeUnitAt. Used
// both to answer Hash() for a lazy node and to build a derived node's
// owned buffer when it's forced to reconstruct.
func readCodePoints(s Sequence, start, end int) []int32 {
	buf := make([]int32, end-start)
	for i := range buf {
		buf[i], _ = s.CodeUnitAt(start + i)
	}
	return buf
}

func genericPrintRange(s Sequence, w io.Writer, start, end int) error {
	for i := start; i < end; i++ {
		cp, err := s.CodeUnitAt(i)
		if err != nil {
			return err
		}
		if _, err := w.Write(codec.UTF8Encode(cp)); err != nil {
			return err
		}
	}
	return nil
}

// contentedSubstring lets a stateContented node (Substring, Concatenation
// or Repetition alike) serve as the parent of a further Substring: its
// owned buffer makes it behave exactly like a leaf to anything indexing
// into it.
func contentedSubstring(self Sequence, buf []int32, start, end int) (Sequence, error) {
	if start < 0 || end > len(buf) || start > end {
		return nil, ErrRangeError
	}
	return NewSubstring(self, start, end)
}

// ---- Substring --------------------------------------------------------

// Substring is a lazily-sliced view over a parent sequence: in its lazy
// state it stores only the parent and an index range; once its parent is
// about to be destroyed, Reconstruct copies the range out into its own
// buffer.
type Substring struct {
	base
	state derivedState

	parent     Sequence
	start, end int // valid in stateLazy, absolute indices into parent

	buf []int32 // valid in stateContented
}

var _ Sequence = (*Substring)(nil)
var _ Referencer = (*Substring)(nil)

// NewSubstring builds a lazy view over parent[start:end).
func NewSubstring(parent Sequence, start, end int) (Sequence, error) {
	if start < 0 || end > parent.Length() || start > end {
		return nil, ErrRangeError
	}
	if start == end {
		return NewLeaf(codec.ASCII, Const, nil), nil
	}
	if start == 0 && end == parent.Length() {
		return parent, nil
	}
	s := &Substring{base: newBase(), state: stateLazy, parent: parent, start: start, end: end}
	parent.AddReferencer(s)
	return s, nil
}

func (s *Substring) Length() int {
	if s.state == stateContented {
		return len(s.buf)
	}
	return s.end - s.start
}

func (s *Substring) CodeUnitAt(index int) (int32, error) {
	n := s.Length()
	if index < 0 || index >= n {
		return 0, ErrRangeError
	}
	if s.state == stateContented {
		return s.buf[index], nil
	}
	return s.parent.CodeUnitAt(s.start + index)
}

func (s *Substring) Print(w io.Writer) error { return s.PrintRange(w, 0, s.Length()) }

func (s *Substring) PrintRange(w io.Writer, start, end int) error {
	if start < 0 || end > s.Length() || start > end {
		return ErrRangeError
	}
	if s.state == stateContented {
		return genericPrintRange(s, w, start, end)
	}
	return s.parent.PrintRange(w, s.start+start, s.start+end)
}

func (s *Substring) Substring(start, end int) (Sequence, error) {
	if s.state == stateContented {
		return contentedSubstring(s, s.buf, start, end)
	}
	if start < 0 || end > s.Length() || start > end {
		return nil, ErrRangeError
	}
	return NewSubstring(s.parent, s.start+start, s.start+end)
}

func (s *Substring) Trim() Sequence      { return trimGeneric(s) }
func (s *Substring) TrimLeft() Sequence  { return trimLeftGeneric(s) }
func (s *Substring) TrimRight() Sequence { return trimRightGeneric(s) }

func (s *Substring) KeepingCost() int {
	if s.state == stateContented {
		return len(s.buf) * 4
	}
	return s.parent.KeepingCost()
}

func (s *Substring) ReconstructReferencers() { s.reconstructReferencers(s) }

func (s *Substring) Hash() uint64 {
	if s.state == stateContented {
		return hashCodePoints(s.buf)
	}
	return hashCodePoints(readCodePoints(s, 0, s.Length()))
}

func (s *Substring) ReconstructionCost() int { return s.Length() * 4 }

// Reconstruct copies this node's range out of parent and drops the
// parent reference, transitioning from stateLazy to stateContented.
func (s *Substring) Reconstruct(parent Sequence) {
	if s.state == stateContented {
		return
	}
	s.buf = readCodePoints(s.parent, s.start, s.end)
	s.parent.RemoveReferencer(s)
	s.parent = nil
	s.state = stateContented
}

// ---- Concatenation ------------------------------------------------------

// Concatenation joins two sequences end to end. Lazily it holds both
// operands; once forced, it owns a single flattened code-point buffer.
type Concatenation struct {
	base
	state derivedState

	left, right       Sequence
	leftLen, rightLen int // cached at construction, stateLazy only

	buf []int32 // valid in stateContented
}

var _ Sequence = (*Concatenation)(nil)
var _ Referencer = (*Concatenation)(nil)

// NewConcatenation joins left and right. Either operand may itself be
// empty, in which case the other is returned unchanged.
func NewConcatenation(left, right Sequence) (Sequence, error) {
	if left.Length() == 0 {
		return right, nil
	}
	if right.Length() == 0 {
		return left, nil
	}
	c := &Concatenation{
		base: newBase(), state: stateLazy,
		left: left, right: right,
		leftLen: left.Length(), rightLen: right.Length(),
	}
	left.AddReferencer(c)
	right.AddReferencer(c)
	return c, nil
}

func (c *Concatenation) Length() int {
	if c.state == stateContented {
		return len(c.buf)
	}
	return c.leftLen + c.rightLen
}

func (c *Concatenation) CodeUnitAt(index int) (int32, error) {
	n := c.Length()
	if index < 0 || index >= n {
		return 0, ErrRangeError
	}
	if c.state == stateContented {
		return c.buf[index], nil
	}
	if index < c.leftLen {
		return c.left.CodeUnitAt(index)
	}
	return c.right.CodeUnitAt(index - c.leftLen)
}

func (c *Concatenation) Print(w io.Writer) error { return c.PrintRange(w, 0, c.Length()) }

func (c *Concatenation) PrintRange(w io.Writer, start, end int) error {
	if start < 0 || end > c.Length() || start > end {
		return ErrRangeError
	}
	if c.state == stateContented {
		return genericPrintRange(c, w, start, end)
	}
	if start < c.leftLen {
		lEnd := end
		if lEnd > c.leftLen {
			lEnd = c.leftLen
		}
		if err := c.left.PrintRange(w, start, lEnd); err != nil {
			return err
		}
		start = c.leftLen
	}
	if start < end {
		return c.right.PrintRange(w, start-c.leftLen, end-c.leftLen)
	}
	return nil
}

func (c *Concatenation) Substring(start, end int) (Sequence, error) {
	if c.state == stateContented {
		return contentedSubstring(c, c.buf, start, end)
	}
	if start < 0 || end > c.Length() || start > end {
		return nil, ErrRangeError
	}
	return NewSubstring(c, start, end)
}

func (c *Concatenation) Trim() Sequence      { return trimGeneric(c) }
func (c *Concatenation) TrimLeft() Sequence  { return trimLeftGeneric(c) }
func (c *Concatenation) TrimRight() Sequence { return trimRightGeneric(c) }

func (c *Concatenation) KeepingCost() int {
	if c.state == stateContented {
		return len(c.buf) * 4
	}
	return c.left.KeepingCost() + c.right.KeepingCost()
}

func (c *Concatenation) ReconstructReferencers() { c.reconstructReferencers(c) }

func (c *Concatenation) Hash() uint64 {
	if c.state == stateContented {
		return hashCodePoints(c.buf)
	}
	return hashCodePoints(readCodePoints(c, 0, c.Length()))
}

func (c *Concatenation) ReconstructionCost() int { return c.Length() * 4 }

// Reconstruct flattens both operands into a single owned buffer. This
// completes what the original implementation left as an empty stub: a
// Concatenation forced to materialize must still answer CodeUnitAt and
// Print correctly afterwards, which requires actually copying both
// sides rather than discarding the request.
func (c *Concatenation) Reconstruct(parent Sequence) {
	if c.state == stateContented {
		return
	}
	buf := make([]int32, c.leftLen+c.rightLen)
	left := readCodePoints(c.left, 0, c.leftLen)
	right := readCodePoints(c.right, 0, c.rightLen)
	copy(buf, left)
	copy(buf[c.leftLen:], right)
	c.left.RemoveReferencer(c)
	c.right.RemoveReferencer(c)
	c.left, c.right = nil, nil
	c.buf = buf
	c.state = stateContented
}

// ---- Repetition ---------------------------------------------------------

// Repetition repeats a base sequence count times. Lazily it holds the
// base and a count; once forced, it owns a single flattened buffer.
type Repetition struct {
	base
	state derivedState

	item     Sequence
	itemLen  int // cached at construction, stateLazy only
	count    int

	buf []int32 // valid in stateContented
}

var _ Sequence = (*Repetition)(nil)
var _ Referencer = (*Repetition)(nil)

// NewRepetition repeats item count times. count must be >= 0; count == 0
// or an empty item yields the empty sequence.
func NewRepetition(item Sequence, count int) (Sequence, error) {
	if count < 0 {
		return nil, ErrRangeError
	}
	if count == 0 || item.Length() == 0 {
		return NewLeaf(codec.ASCII, Const, nil), nil
	}
	if count == 1 {
		return item, nil
	}
	r := &Repetition{base: newBase(), state: stateLazy, item: item, itemLen: item.Length(), count: count}
	item.AddReferencer(r)
	return r, nil
}

func (r *Repetition) Length() int {
	if r.state == stateContented {
		return len(r.buf)
	}
	return r.itemLen * r.count
}

func (r *Repetition) CodeUnitAt(index int) (int32, error) {
	n := r.Length()
	if index < 0 || index >= n {
		return 0, ErrRangeError
	}
	if r.state == stateContented {
		return r.buf[index], nil
	}
	return r.item.CodeUnitAt(index % r.itemLen)
}

func (r *Repetition) Print(w io.Writer) error { return r.PrintRange(w, 0, r.Length()) }

func (r *Repetition) PrintRange(w io.Writer, start, end int) error {
	if start < 0 || end > r.Length() || start > end {
		return ErrRangeError
	}
	if r.state == stateContented {
		return genericPrintRange(r, w, start, end)
	}
	for i := start; i < end; i++ {
		cp, err := r.item.CodeUnitAt(i % r.itemLen)
		if err != nil {
			return err
		}
		if _, err := w.Write(codec.UTF8Encode(cp)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repetition) Substring(start, end int) (Sequence, error) {
	if r.state == stateContented {
		return contentedSubstring(r, r.buf, start, end)
	}
	if start < 0 || end > r.Length() || start > end {
		return nil, ErrRangeError
	}
	return NewSubstring(r, start, end)
}

func (r *Repetition) Trim() Sequence      { return trimGeneric(r) }
func (r *Repetition) TrimLeft() Sequence  { return trimLeftGeneric(r) }
func (r *Repetition) TrimRight() Sequence { return trimRightGeneric(r) }

func (r *Repetition) KeepingCost() int {
	if r.state == stateContented {
		return len(r.buf) * 4
	}
	return r.item.KeepingCost()
}

func (r *Repetition) ReconstructReferencers() { r.reconstructReferencers(r) }

func (r *Repetition) Hash() uint64 {
	if r.state == stateContented {
		return hashCodePoints(r.buf)
	}
	return hashCodePoints(readCodePoints(r, 0, r.Length()))
}

func (r *Repetition) ReconstructionCost() int { return r.Length() * 4 }

// Reconstruct flattens count copies of item into a single owned buffer,
// completing the original's empty Repetition::reconstruct stub the same
// way Concatenation's is completed above.
func (r *Repetition) Reconstruct(parent Sequence) {
	if r.state == stateContented {
		return
	}
	item := readCodePoints(r.item, 0, r.itemLen)
	buf := make([]int32, r.itemLen*r.count)
	for i := 0; i < r.count; i++ {
		copy(buf[i*r.itemLen:], item)
	}
	r.item.RemoveReferencer(r)
	r.item = nil
	r.buf = buf
	r.state = stateContented
}
