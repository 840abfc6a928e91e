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

import "io"

// ASCIILength returns the offset of the first NUL byte in bytes.
func ASCIILength(bytes []byte) int {
	for i, b := range bytes {
		if b == 0x00 {
			return i
		}
	}
	return len(bytes)
}

// ASCIICodeUnitAt returns the code point at the given logical index.
func ASCIICodeUnitAt(bytes []byte, index int) int32 {
	return int32(bytes[index])
}

// ASCIIPrint writes the whole NUL-terminated ASCII string to w.
func ASCIIPrint(w io.Writer, bytes []byte) error {
	_, err := w.Write(bytes[:ASCIILength(bytes)])
	return err
}

// ASCIIPrintRange writes bytes[start:end] to w.
func ASCIIPrintRange(w io.Writer, bytes []byte, start, end int) error {
	_, err := w.Write(bytes[start:end])
	return err
}

// ASCIITrim returns the [start, end) interval of length with leading and
// trailing whitespace (per IsWhitespace) stripped.
func ASCIITrim(bytes []byte, length int) (start, end int) {
	start = ASCIITrimLeft(bytes)
	end = ASCIITrimRight(bytes, length)
	if start > end {
		start = end
	}
	return start, end
}

// ASCIITrimLeft returns the index of the first non-whitespace byte.
func ASCIITrimLeft(bytes []byte) int {
	start := 0
	for start < len(bytes) && bytes[start] != 0x00 && IsWhitespace(int32(bytes[start])) {
		start++
	}
	return start
}

// ASCIITrimRight returns the index just past the last non-whitespace byte
// within [0, length).
func ASCIITrimRight(bytes []byte, length int) int {
	end := length
	for end > 0 && IsWhitespace(int32(bytes[end-1])) {
		end--
	}
	return end
}
