package nfd

import "bytes"

// span is a read-only view of a native buffer. Every accessor checks its
// offsets against the buffer length, so a corrupt offset becomes an error
// instead of an out-of-bounds read.
type span []byte

func (s span) Len() uint {
	return uint(len(s))
}

// exact returns buf[start:end] minus its single trailing NUL. ok is false
// when the range is out of bounds, empty, does not end in NUL, or contains
// another NUL before the terminator.
func (s span) exact(start, end uint) (b []byte, reason string, ok bool) {
	switch {
	case start >= s.Len():
		return nil, "start offset past end of buffer", false
	case end > s.Len():
		return nil, "next offset past end of buffer", false
	case end <= start:
		return nil, "offsets not increasing", false
	case s[end-1] != 0:
		return nil, "missing terminator before next offset", false
	}
	b = s[start : end-1]
	if bytes.IndexByte(b, 0) >= 0 {
		return nil, "span holds more than one string", false
	}
	return b, "", true
}

// terminated returns the bytes from start up to the first NUL. The scan
// never runs past the end of the buffer.
func (s span) terminated(start uint) (b []byte, reason string, ok bool) {
	if start >= s.Len() {
		return nil, "start offset past end of buffer", false
	}
	n := bytes.IndexByte(s[start:], 0)
	if n < 0 {
		return nil, "missing terminator before end of buffer", false
	}
	return s[start : start+uint(n)], "", true
}
