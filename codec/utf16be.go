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

// isSurrogateLead reports whether the top byte of a 2-byte unit marks it
// as the first half of this library's (non-standard) 4-byte surrogate
// form: top six bits 0b110110, i.e. b&0xFC == 0xD8.
//
// This does not implement RFC 2781 UTF-16 surrogate pairs: it decodes the
// 4 raw bytes with the formula
// ((b0&3)<<18) | (b1<<10) | ((b2&3)<<8) | b3
// which the spec documents as a known defect inherited from the source
// library rather than something to fix (see spec.md §4.1, §9). Little-
// endian UTF-16 is also not supported, another acknowledged hole.
func isSurrogateLead(b byte) bool {
	return b&0xFC == 0xD8
}

func utf16beUnitAt(bytes []byte, pos int) (codeUnit int32, width int) {
	if isSurrogateLead(bytes[pos]) {
		codeUnit = int32(bytes[pos]&0x03) << 18
		codeUnit += int32(bytes[pos+1]) << 10
		codeUnit += int32(bytes[pos+2]&0x03) << 8
		codeUnit += int32(bytes[pos+3])
		return codeUnit, 4
	}
	codeUnit = int32(bytes[pos])<<8 | int32(bytes[pos+1])
	return codeUnit, 2
}

func utf16beZero(bytes []byte, pos int) bool {
	return bytes[pos] == 0x00 && bytes[pos+1] == 0x00
}

// UTF16BELength returns the number of logical scalars before the 2-byte
// zero sentinel at an even offset.
func UTF16BELength(bytes []byte) int {
	length := 0
	pos := 0
	for pos+1 < len(bytes) && !utf16beZero(bytes, pos) {
		_, w := utf16beUnitAt(bytes, pos)
		pos += w
		length++
	}
	return length
}

// UTF16BELengthAndByteLength returns the scalar count and the number of
// bytes consumed including the trailing 2-byte sentinel.
func UTF16BELengthAndByteLength(bytes []byte) (length, byteLength int) {
	pos := 0
	for pos+1 < len(bytes) && !utf16beZero(bytes, pos) {
		_, w := utf16beUnitAt(bytes, pos)
		pos += w
		length++
	}
	return length, pos + 2
}

// UTF16BECodeUnitAt decodes the scalar at the given logical index.
func UTF16BECodeUnitAt(bytes []byte, index int) (int32, error) {
	i, pos := 0, 0
	for pos+1 < len(bytes) && !utf16beZero(bytes, pos) {
		codeUnit, w := utf16beUnitAt(bytes, pos)
		if i == index {
			return codeUnit, nil
		}
		pos += w
		i++
	}
	return 0, ErrRangeError
}

// UTF16BEPrint writes the whole string, re-encoded as UTF-8, to w.
func UTF16BEPrint(w io.Writer, bytes []byte, length int) error {
	return UTF16BEPrintRange(w, bytes, 0, length)
}

// UTF16BEPrintRange writes the logical [start, end) interval, re-encoded
// as UTF-8, to w.
func UTF16BEPrintRange(w io.Writer, bytes []byte, start, end int) error {
	i, pos := 0, 0
	for pos+1 < len(bytes) && !utf16beZero(bytes, pos) && i < end {
		codeUnit, width := utf16beUnitAt(bytes, pos)
		pos += width
		if i >= start {
			if _, err := w.Write(UTF8Encode(codeUnit)); err != nil {
				return err
			}
		}
		i++
	}
	return nil
}
