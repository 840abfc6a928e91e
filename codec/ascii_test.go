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

package codec

import (
	"bytes"
	"fmt"
	"testing"
)

func nulTerminated(s string) []byte {
	return append([]byte(s), 0x00)
}

func TestASCIILength(t *testing.T) {
	cases := []string{"", "a", "hello", "hello world"}
	for i, c := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			got := ASCIILength(nulTerminated(c))
			if got != len(c) {
				t.Errorf("ASCIILength(%q) = %d, want %d", c, got, len(c))
			}
		})
	}
}

func TestASCIICodeUnitAt(t *testing.T) {
	b := nulTerminated("abc")
	for i, want := range []byte("abc") {
		if got := ASCIICodeUnitAt(b, i); got != int32(want) {
			t.Errorf("ASCIICodeUnitAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestASCIIPrintRange(t *testing.T) {
	var buf bytes.Buffer
	b := nulTerminated("abcdef")
	if err := ASCIIPrintRange(&buf, b, 1, 5); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "bcde" {
		t.Errorf("got %q, want %q", buf.String(), "bcde")
	}
}

func TestASCIITrim(t *testing.T) {
	b := nulTerminated("  hello  ")
	start, end := ASCIITrim(b, 9)
	if start != 2 || end != 7 {
		t.Errorf("ASCIITrim = (%d, %d), want (2, 7)", start, end)
	}
}

func TestASCIITrimAllWhitespace(t *testing.T) {
	b := nulTerminated("   ")
	start, end := ASCIITrim(b, 3)
	if start != end {
		t.Errorf("ASCIITrim(%q) = (%d, %d), want start == end", "   ", start, end)
	}
}
