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
	"encoding/binary"
	"io"
	"math/bits"
)

// leadWidth returns the number of bytes the lead byte b claims for its
// code point, or 0 if b matches none of the four valid lead patterns.
func leadWidth(b byte) int {
	switch {
	case b&0x80 == 0x00:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// asciiRunLength counts leading bytes of bytes that are plain ASCII
// (lead width 1) and non-NUL, using the same SWAR trick the teacher's
// utf8.ValidStringLength uses to skip 8 bytes at a time. It advances only
// in whole 8-byte blocks: it stops at the first block that contains a
// non-ASCII or NUL byte, or when fewer than 8 bytes remain, so the result
// is a multiple of 8; the caller falls back to the byte-at-a-time scan
// from there.
func asciiRunLength(bytes []byte) int {
	n := 0
	rest := bytes
	for len(rest) >= 8 {
		qword := binary.LittleEndian.Uint64(rest)
		if qword&0x8080808080808080 != 0 {
			break
		}
		// a zero byte anywhere in the word also ends the ASCII run,
		// since length scanning must stop at the NUL sentinel
		if hasZeroByte(qword) {
			break
		}
		n += 8
		rest = rest[8:]
	}
	return n
}

func hasZeroByte(v uint64) bool {
	return (v-0x0101010101010101)&^v&0x8080808080808080 != 0
}

// ValidLength returns the number of runes in a NUL-free, already
// length-known UTF-8 byte slice, the same contract as the teacher's
// utf8.ValidStringLength. UTF8Length (below) uses it as a cheap
// pre-check once it has located the NUL sentinel: a zero continuation-
// byte count, together with no byte at or above 0x80, means the span is
// pure single-byte ASCII, so its byte length is already the rune count
// and the slower lead-width walk can be skipped entirely.
func ValidLength(bytes []byte) int {
	n := len(bytes)
	continuation := 0
	rest := bytes
	for len(rest) >= 8 {
		qword := binary.LittleEndian.Uint64(rest)
		rest = rest[8:]
		bit7 := qword & 0x8080808080808080
		if bit7 == 0 {
			continue
		}
		bit6 := qword << 1
		comb := bit7 &^ bit6
		continuation += bits.OnesCount64(comb)
	}
	for _, b := range rest {
		if b&0xC0 == 0x80 {
			continuation++
		}
	}
	return n - continuation
}

// UTF8Length returns the number of code points before the NUL sentinel.
// It returns 0 if an invalid lead byte is encountered, matching the
// original library's behavior of silently reporting a zero-length string
// on malformed input (callers needing the error instead should use
// UTF8CodeUnitAt, which reports ErrInvalidByteSequence).
func UTF8Length(bytes []byte) int {
	nul := len(bytes)
	for i, b := range bytes {
		if b == 0x00 {
			nul = i
			break
		}
	}
	span := bytes[:nul]

	if n := ValidLength(span); n == len(span) {
		pureASCII := true
		for _, b := range span {
			if b >= 0x80 {
				pureASCII = false
				break
			}
		}
		if pureASCII {
			return n
		}
	}

	length := 0
	i := 0
	for i < len(span) {
		if skip := asciiRunLength(span[i:]); skip > 0 {
			length += skip
			i += skip
			continue
		}
		w := leadWidth(span[i])
		if w == 0 {
			return 0
		}
		i += w
		length++
	}
	return length
}

// UTF8LengthAndByteLength returns both the code point count and the
// number of bytes consumed including the trailing NUL, used by Copy
// leaves to size their owned buffer in one pass.
func UTF8LengthAndByteLength(bytes []byte) (length, byteLength int) {
	i := 0
	for i < len(bytes) && bytes[i] != 0x00 {
		w := leadWidth(bytes[i])
		if w == 0 {
			return 0, 0
		}
		i += w
		length++
	}
	return length, i + 1
}

// UTF8CodeUnitAt decodes the code point at the given logical index by
// walking from the start of bytes.
func UTF8CodeUnitAt(bytes []byte, index int) (int32, error) {
	i, pos := 0, 0
	for pos < len(bytes) && bytes[pos] != 0x00 {
		lead := bytes[pos]
		var codeUnit int32
		switch {
		case lead&0x80 == 0x00:
			codeUnit = int32(lead)
		case lead&0xE0 == 0xC0:
			codeUnit = int32(lead & 0x1F)
		case lead&0xF0 == 0xE0:
			codeUnit = int32(lead & 0x0F)
		case lead&0xF8 == 0xF0:
			codeUnit = int32(lead & 0x07)
		default:
			return 0, ErrInvalidByteSequence
		}
		w := leadWidth(lead)
		if pos+w > len(bytes) {
			return 0, ErrInvalidByteSequence
		}
		for k := 1; k < w; k++ {
			codeUnit = codeUnit<<6 | int32(bytes[pos+k]&0x3F)
		}
		if i == index {
			return codeUnit, nil
		}
		pos += w
		i++
	}
	return 0, ErrRangeError
}

// UTF8Print writes the whole NUL-terminated UTF-8 string to w.
func UTF8Print(w io.Writer, bytes []byte) error {
	length := UTF8Length(bytes)
	rng, err := UTF8RangeIndexes(bytes, 0, length)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes[rng[0]:rng[1]])
	return err
}

// UTF8PrintRange writes the logical [start, end) interval to w.
func UTF8PrintRange(w io.Writer, bytes []byte, start, end int) error {
	rng, err := UTF8RangeIndexes(bytes, start, end)
	if err != nil {
		return err
	}
	_, err = w.Write(bytes[rng[0]:rng[1]])
	return err
}

// UTF8RangeIndexes returns the byte offsets [rng[0], rng[1]) corresponding
// to the logical code point interval [start, end), so callers can emit
// the raw slice without re-encoding it.
func UTF8RangeIndexes(bytes []byte, start, end int) ([2]int, error) {
	i, pos := 0, 0
	var startOffset, endOffset int
	haveStart, haveEnd := false, false
	for pos < len(bytes) && bytes[pos] != 0x00 {
		if !haveStart && i == start {
			haveStart = true
			startOffset = pos
		}
		if haveStart && i == end {
			haveEnd = true
			endOffset = pos
			break
		}
		w := leadWidth(bytes[pos])
		if w == 0 {
			return [2]int{}, ErrInvalidByteSequence
		}
		pos += w
		i++
	}
	if !haveStart && i == start {
		haveStart = true
		startOffset = pos
	}
	if !haveEnd && i == end {
		haveEnd = true
		endOffset = pos
	}
	if haveStart && haveEnd {
		return [2]int{startOffset, endOffset}, nil
	}
	return [2]int{}, ErrRangeError
}

// UTF8Encode encodes a single code point into 1-4 UTF-8 bytes. Code
// points outside the standard ranges (c >= 0x200000) are not handled, the
// same hole the original library leaves open (see spec.md Non-goals).
func UTF8Encode(c int32) []byte {
	switch {
	case c < 0x80:
		return []byte{byte(c)}
	case c < 0x800:
		return []byte{
			byte(c>>6) | 0xC0,
			byte(c&0x3F) | 0x80,
		}
	case c < 0x10000:
		return []byte{
			byte(c>>12) | 0xE0,
			byte((c>>6)&0x3F) | 0x80,
			byte(c&0x3F) | 0x80,
		}
	case c < 0x200000:
		return []byte{
			byte(c>>18) | 0xF0,
			byte((c>>12)&0x3F) | 0x80,
			byte((c>>6)&0x3F) | 0x80,
			byte(c&0x3F) | 0x80,
		}
	default:
		return nil
	}
}
