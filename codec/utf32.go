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
)

// UTF32Length returns the number of 4-byte words before a zero word,
// native byte order (matching the original library's direct int* cast).
func UTF32Length(bytes []byte) int {
	pos := 0
	for pos+4 <= len(bytes) && binary.NativeEndian.Uint32(bytes[pos:]) != 0 {
		pos += 4
	}
	return pos / 4
}

// UTF32LengthAndByteLength returns the word count and byte length
// including the trailing zero word.
func UTF32LengthAndByteLength(bytes []byte) (length, byteLength int) {
	pos := 0
	for pos+4 <= len(bytes) && binary.NativeEndian.Uint32(bytes[pos:]) != 0 {
		pos += 4
	}
	return pos / 4, pos + 4
}

// UTF32CodeUnitAt loads the 32-bit word at offset 4*index directly.
func UTF32CodeUnitAt(bytes []byte, index int) int32 {
	return int32(binary.NativeEndian.Uint32(bytes[index*4:]))
}

// UTF32Print writes the whole string, re-encoded as UTF-8, to w.
func UTF32Print(w io.Writer, bytes []byte) error {
	return UTF32PrintRange(w, bytes, 0, UTF32Length(bytes))
}

// UTF32PrintRange writes the logical [start, end) interval, re-encoded as
// UTF-8, to w.
func UTF32PrintRange(w io.Writer, bytes []byte, start, end int) error {
	for i := start; i < end; i++ {
		if _, err := w.Write(UTF8Encode(UTF32CodeUnitAt(bytes, i))); err != nil {
			return err
		}
	}
	return nil
}

// UTF32Trim returns the [start, end) interval of length with leading and
// trailing whitespace stripped.
func UTF32Trim(bytes []byte, length int) (start, end int) {
	start = UTF32TrimLeft(bytes)
	end = UTF32TrimRight(bytes, length)
	if start > end {
		start = end
	}
	return start, end
}

// UTF32TrimLeft returns the index of the first non-whitespace word.
func UTF32TrimLeft(bytes []byte) int {
	start := 0
	for 4*(start+1) <= len(bytes) {
		c := UTF32CodeUnitAt(bytes, start)
		if c == 0 || !IsWhitespace(c) {
			break
		}
		start++
	}
	return start
}

// UTF32TrimRight returns the index just past the last non-whitespace word
// within [0, length).
func UTF32TrimRight(bytes []byte, length int) int {
	end := length
	for end > 0 && IsWhitespace(UTF32CodeUnitAt(bytes, end-1)) {
		end--
	}
	return end
}
