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

package gorope

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func ascii(s string) String {
	return NewCopyString(ASCII, append([]byte(s), 0x00))
}

// utf32Bytes builds a NUL-terminated, native-endian UTF-32 byte slice
// from an ASCII-only string, for cross-encoding test fixtures.
func utf32Bytes(s string) []byte {
	b := make([]byte, 4*(len(s)+1))
	for i, r := range []byte(s) {
		binary.NativeEndian.PutUint32(b[4*i:], uint32(r))
	}
	return b
}

func printString(t *testing.T, s String) string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Print(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestEmptyString(t *testing.T) {
	e := Empty()
	if e.Length() != 0 {
		t.Errorf("Length() = %d, want 0", e.Length())
	}
	if got := printString(t, e); got != "" {
		t.Errorf("Print() = %q, want empty", got)
	}
}

func TestLengthAndCodeUnitAt(t *testing.T) {
	s := ascii("hello")
	if s.Length() != 5 {
		t.Fatalf("Length() = %d, want 5", s.Length())
	}
	for i, want := range []byte("hello") {
		got, err := s.CodeUnitAt(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != int32(want) {
			t.Errorf("CodeUnitAt(%d) = %d, want %d", i, got, want)
		}
	}
	if _, err := s.CodeUnitAt(5); err != ErrRangeError {
		t.Errorf("expected ErrRangeError, got %v", err)
	}
}

func TestConcatAndSubstring(t *testing.T) {
	a := ascii("foo")
	b := ascii("bar")
	cat, err := Concat(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got := printString(t, cat); got != "foobar" {
		t.Errorf("Concat print = %q, want %q", got, "foobar")
	}

	sub, err := cat.Substring(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got := printString(t, sub); got != "oba" {
		t.Errorf("Substring print = %q, want %q", got, "oba")
	}
}

func TestRepeat(t *testing.T) {
	s := ascii("ab")
	rep, err := Repeat(s, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := printString(t, rep); got != "ababab" {
		t.Errorf("Repeat print = %q, want %q", got, "ababab")
	}
}

func TestTrim(t *testing.T) {
	s := ascii("  hi  ")
	if got := printString(t, s.Trim()); got != "hi" {
		t.Errorf("Trim() = %q, want %q", got, "hi")
	}
	if got := printString(t, s.TrimLeft()); got != "hi  " {
		t.Errorf("TrimLeft() = %q, want %q", got, "hi  ")
	}
	if got := printString(t, s.TrimRight()); got != "  hi" {
		t.Errorf("TrimRight() = %q, want %q", got, "  hi")
	}
}

func TestCompareToAndEqual(t *testing.T) {
	a := ascii("abc")
	b := ascii("abd")
	if CompareTo(a, b) >= 0 {
		t.Errorf("CompareTo(abc, abd) should be negative")
	}
	if !Equal(a, ascii("abc")) {
		t.Errorf("Equal(abc, abc) = false, want true")
	}
	if Equal(a, b) {
		t.Errorf("Equal(abc, abd) = true, want false")
	}
}

// TestEqualIgnoresEncodingAndNodeShape guards the §6 invariant that ==
// means compareTo == 0, regardless of how either side happens to be
// represented internally: a plain leaf must Equal a Concatenation (or a
// differently-encoded leaf) spelling the same string.
func TestEqualIgnoresEncodingAndNodeShape(t *testing.T) {
	whole := ascii("abcdef")

	left := ascii("abc")
	right := ascii("def")
	cat, err := Concat(left, right)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(whole, cat) {
		t.Errorf("Equal(leaf, Concat) = false, want true")
	}
	if CompareTo(whole, cat) != 0 {
		t.Errorf("CompareTo(leaf, Concat) = %d, want 0", CompareTo(whole, cat))
	}

	u32 := NewCopyString(UTF32, utf32Bytes("abcdef"))
	if !Equal(whole, u32) {
		t.Errorf("Equal(ASCII, UTF32) = false, want true")
	}
}

// TestEndToEndLifecycleScenario builds a small graph of concatenations
// and substrings, releases the original pieces, and checks the
// composite string still reads correctly afterwards - the scenario
// spec.md walks through to justify the reconstruction machinery.
func TestEndToEndLifecycleScenario(t *testing.T) {
	greeting := NewCopyString(UTF8, append([]byte("hello"), 0x00))
	space := ascii(" ")
	name := NewCopyString(UTF8, append([]byte("world"), 0x00))

	cat1, err := Concat(greeting, space)
	if err != nil {
		t.Fatal(err)
	}
	full, err := Concat(cat1, name)
	if err != nil {
		t.Fatal(err)
	}

	greeting.Release()
	name.Release()

	if got := printString(t, full); got != "hello world" {
		t.Errorf("full string after releasing operands = %q, want %q", got, "hello world")
	}

	excerpt, err := full.Substring(6, 11)
	if err != nil {
		t.Fatal(err)
	}
	full.Release()
	if got := printString(t, excerpt); got != "world" {
		t.Errorf("excerpt after releasing full = %q, want %q", got, "world")
	}
}

func TestRangeErrorsPropagate(t *testing.T) {
	s := ascii("hi")
	_, err := s.Substring(0, 5)
	if err != ErrRangeError {
		t.Errorf("Substring(0,5) error = %v, want ErrRangeError", err)
	}
	if _, err := Repeat(s, -1); err != ErrRangeError {
		t.Errorf("Repeat(-1) error = %v, want ErrRangeError", err)
	}
}

func TestPrintRangeOnDerivedNode(t *testing.T) {
	a := ascii("abc")
	b := ascii("def")
	cat, _ := Concat(a, b)
	var buf bytes.Buffer
	if err := cat.PrintRange(&buf, 2, 4); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "cd" {
		t.Errorf("PrintRange(2,4) = %q, want %q", got, "cd")
	}
}

