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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/moneytech/gorope/codec"
)

func TestConcatenationLazyReadsThroughOperands(t *testing.T) {
	left := asciiLeaf("foo")
	right := asciiLeaf("bar")
	cat, err := NewConcatenation(left, right)
	if err != nil {
		t.Fatal(err)
	}
	if cat.Length() != 6 {
		t.Fatalf("Length() = %d, want 6", cat.Length())
	}
	var buf bytes.Buffer
	if err := cat.Print(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "foobar" {
		t.Errorf("got %q, want %q", buf.String(), "foobar")
	}
}

func TestConcatenationReconstructFlattens(t *testing.T) {
	left := asciiLeaf("foo")
	right := asciiLeaf("bar")
	cat, _ := NewConcatenation(left, right)
	c := cat.(*Concatenation)

	c.Reconstruct(left)

	if c.state != stateContented {
		t.Fatalf("state = %v, want stateContented", c.state)
	}
	if c.left != nil || c.right != nil {
		t.Errorf("Reconstruct should drop operand references")
	}
	var buf bytes.Buffer
	if err := c.Print(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "foobar" {
		t.Errorf("post-reconstruct Print = %q, want %q", buf.String(), "foobar")
	}
	if got, err := c.CodeUnitAt(3); err != nil || got != 'b' {
		t.Errorf("post-reconstruct CodeUnitAt(3) = (%d, %v), want 'b'", got, err)
	}
}

func TestRepetitionLazyAndReconstruct(t *testing.T) {
	item := asciiLeaf("ab")
	rep, err := NewRepetition(item, 3)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Length() != 6 {
		t.Fatalf("Length() = %d, want 6", rep.Length())
	}
	r := rep.(*Repetition)
	r.Reconstruct(item)
	if r.state != stateContented {
		t.Fatalf("state = %v, want stateContented", r.state)
	}
	var buf bytes.Buffer
	if err := r.Print(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ababab" {
		t.Errorf("got %q, want %q", buf.String(), "ababab")
	}
}

func TestRepetitionCountZeroOrEmptyItemIsEmpty(t *testing.T) {
	item := asciiLeaf("ab")
	rep, err := NewRepetition(item, 0)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Length() != 0 {
		t.Errorf("Length() = %d, want 0", rep.Length())
	}

	empty := asciiLeaf("")
	rep2, err := NewRepetition(empty, 5)
	if err != nil {
		t.Fatal(err)
	}
	if rep2.Length() != 0 {
		t.Errorf("Length() = %d, want 0", rep2.Length())
	}
}

func TestSubstringReconstructOnParentDestruction(t *testing.T) {
	u8 := NewLeaf(codec.UTF8, Copy, append([]byte("hello"), 0x00))
	narrow, err := u8.Substring(0, 4)
	if err != nil {
		t.Fatal(err)
	}
	s, ok := narrow.(*Substring)
	if !ok {
		t.Fatalf("expected *Substring, got %T", narrow)
	}
	if s.state != stateLazy {
		t.Fatalf("new Substring should start lazy")
	}
	s.Reconstruct(u8)
	if s.state != stateContented {
		t.Fatalf("state = %v, want stateContented", s.state)
	}
	var buf bytes.Buffer
	if err := s.Print(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hell" {
		t.Errorf("got %q, want %q", buf.String(), "hell")
	}
}

func TestCompareToOrdersByCodePoint(t *testing.T) {
	a := asciiLeaf("abc")
	b := asciiLeaf("abd")
	if CompareTo(a, b) >= 0 {
		t.Errorf("CompareTo(abc, abd) should be negative")
	}
	if CompareTo(b, a) <= 0 {
		t.Errorf("CompareTo(abd, abc) should be positive")
	}
	c := asciiLeaf("ab")
	if CompareTo(c, a) >= 0 {
		t.Errorf("CompareTo(ab, abc) should be negative (prefix sorts first)")
	}
}

func TestEqualUsesHashFastPath(t *testing.T) {
	a := asciiLeaf("same")
	b := asciiLeaf("same")
	if !Equal(a, b) {
		t.Errorf("Equal(same, same) = false, want true")
	}
	c := asciiLeaf("diff")
	if Equal(a, c) {
		t.Errorf("Equal(same, diff) = true, want false")
	}
}

// TestEqualAcrossEncodings guards against Hash() schemes that only agree
// within one encoding: a leaf's Hash must be defined over its decoded
// code points, not its raw storage bytes, or two equal strings stored in
// different encodings would wrongly compare unequal.
func TestEqualAcrossEncodings(t *testing.T) {
	a := NewLeaf(codec.ASCII, Copy, append([]byte("abcdef"), 0x00))
	buf := make([]byte, 4*len("abcdef")+4)
	for i, r := range []byte("abcdef") {
		binary.NativeEndian.PutUint32(buf[4*i:], uint32(r))
	}
	u := NewLeaf(codec.UTF32, Copy, buf)

	if !Equal(a, u) {
		t.Errorf("Equal(ASCII %q, UTF32 %q) = false, want true", "abcdef", "abcdef")
	}
	if CompareTo(a, u) != 0 {
		t.Errorf("CompareTo(ASCII, UTF32) = %d, want 0", CompareTo(a, u))
	}
}

// TestEqualAcrossNodeKinds guards the same invariant across leaf vs.
// derived nodes: a Concatenation (or Substring) of leaves spelling a
// string must Equal a single leaf holding that same string.
func TestEqualAcrossNodeKinds(t *testing.T) {
	whole := asciiLeaf("abcdef")

	left := asciiLeaf("abc")
	right := asciiLeaf("def")
	cat, err := NewConcatenation(left, right)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(whole, cat) {
		t.Errorf("Equal(leaf, Concatenation) = false, want true")
	}
	if CompareTo(whole, cat) != 0 {
		t.Errorf("CompareTo(leaf, Concatenation) = %d, want 0", CompareTo(whole, cat))
	}

	padded := NewLeaf(codec.UTF8, Copy, append([]byte("xxabcdefxx"), 0x00))
	sub, err := padded.Substring(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sub.(*Substring); !ok {
		t.Fatalf("expected a derived *Substring node, got %T", sub)
	}
	if !Equal(whole, sub) {
		t.Errorf("Equal(leaf, Substring) = false, want true")
	}
}
