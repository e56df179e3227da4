// Package jstr converts between host strings and the UTF-16 payload the
// object system stores. The wire form is modified UTF-8: U+0000 is encoded
// as the two-byte sequence C0 80 and characters outside the BMP are carried
// as two three-byte surrogate encodings instead of one four-byte sequence.
// The decoder additionally accepts standard four-byte UTF-8, since host
// strings are ordinary Go strings.
package jstr

import "unicode/utf8"
import "unicode/utf16"

import "golang.org/x/text/transform"

import "util"

/// Mutf8Len returns the number of UTF-16 code units encoded in b.
func Mutf8Len(b []byte) int {
	n := 0
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			i += 1
		case c&0xe0 == 0xc0:
			i += 2
		case c&0xf0 == 0xe0:
			i += 3
		case c&0xf8 == 0xf0:
			// standard UTF-8 supplementary character: surrogate pair
			i += 4
			n += 1
		default:
			util.Fatalf("bad modified UTF-8 byte %#x", c)
		}
		n += 1
	}
	return n
}

/// DecodeMutf8 decodes b into UTF-16 code units. Surrogate halves embedded
/// in b are passed through untouched. Malformed input aborts; this layer
/// never hands a partially decoded string to the object system.
func DecodeMutf8(b []byte) []uint16 {
	out := make([]uint16, 0, Mutf8Len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			out = append(out, uint16(c))
			i += 1
		case c&0xe0 == 0xc0:
			if i+2 > len(b) {
				util.Fatalf("truncated modified UTF-8")
			}
			out = append(out, uint16(c&0x1f)<<6|uint16(b[i+1]&0x3f))
			i += 2
		case c&0xf0 == 0xe0:
			if i+3 > len(b) {
				util.Fatalf("truncated modified UTF-8")
			}
			out = append(out, uint16(c&0x0f)<<12|
				uint16(b[i+1]&0x3f)<<6|uint16(b[i+2]&0x3f))
			i += 3
		case c&0xf8 == 0xf0:
			if i+4 > len(b) {
				util.Fatalf("truncated modified UTF-8")
			}
			r := rune(c&0x07)<<18 | rune(b[i+1]&0x3f)<<12 |
				rune(b[i+2]&0x3f)<<6 | rune(b[i+3]&0x3f)
			r1, r2 := utf16.EncodeRune(r)
			out = append(out, uint16(r1), uint16(r2))
			i += 4
		default:
			util.Fatalf("bad modified UTF-8 byte %#x", c)
		}
	}
	return out
}

/// EncodeMutf8 encodes UTF-16 code units into modified UTF-8. Surrogate
/// halves are emitted as individual three-byte sequences, paired or not.
func EncodeMutf8(u []uint16) []byte {
	out := make([]byte, 0, len(u)*3)
	for _, c := range u {
		switch {
		case c == 0:
			out = append(out, 0xc0, 0x80)
		case c < 0x80:
			out = append(out, byte(c))
		case c < 0x800:
			out = append(out, 0xc0|byte(c>>6), 0x80|byte(c&0x3f))
		default:
			out = append(out, 0xe0|byte(c>>12),
				0x80|byte((c>>6)&0x3f), 0x80|byte(c&0x3f))
		}
	}
	return out
}

/// Decoder transforms modified UTF-8 into standard UTF-8. It satisfies
/// transform.Transformer so diagnostics can stream managed strings through
/// the usual text pipeline.
type Decoder struct {
	transform.NopResetter
}

func (Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		var r rune
		var size int
		switch {
		case c&0x80 == 0:
			r, size = rune(c), 1
		case c&0xe0 == 0xc0:
			if nSrc+2 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				r, size = utf8.RuneError, len(src)-nSrc
				break
			}
			r = rune(c&0x1f)<<6 | rune(src[nSrc+1]&0x3f)
			size = 2
		case c&0xf0 == 0xe0:
			if nSrc+3 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				r, size = utf8.RuneError, len(src)-nSrc
				break
			}
			r = rune(c&0x0f)<<12 | rune(src[nSrc+1]&0x3f)<<6 |
				rune(src[nSrc+2]&0x3f)
			size = 3
			if utf16.IsSurrogate(r) && r < 0xdc00 {
				// high half; the low half follows as another
				// three-byte sequence
				if nSrc+6 > len(src) {
					if !atEOF {
						return nDst, nSrc, transform.ErrShortSrc
					}
					r = utf8.RuneError
					break
				}
				r2 := rune(src[nSrc+3]&0x0f)<<12 |
					rune(src[nSrc+4]&0x3f)<<6 |
					rune(src[nSrc+5]&0x3f)
				if src[nSrc+3]&0xf0 == 0xe0 && r2 >= 0xdc00 && r2 < 0xe000 {
					r = utf16.DecodeRune(r, r2)
					size = 6
				} else {
					r = utf8.RuneError
				}
			} else if utf16.IsSurrogate(r) {
				// unpaired low half
				r = utf8.RuneError
			}
		default:
			r, size = utf8.RuneError, 1
		}
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
	}
	return nDst, nSrc, nil
}
