package nfd

import (
	"strings"

	"github.com/go-errors/errors"
)

// MemPathSet is a pathset laid out in Go memory exactly like the native
// one. Backends without a native multi-select result build one with
// PackPathSet so every multi-selection goes through DecodePathSet.
type MemPathSet struct {
	buf      []byte
	indices  []uint
	released int
}

// PackPathSet concatenates paths into a single NUL-separated buffer and
// records the offset of each one.
func PackPathSet(paths []string) (*MemPathSet, error) {
	size := 0
	for i, p := range paths {
		if strings.IndexByte(p, 0) >= 0 {
			return nil, errors.Errorf("path %d contains a NUL byte: %w", i, ErrInvalidArgument)
		}
		size += len(p) + 1
	}

	ps := &MemPathSet{
		buf:     make([]byte, 0, size),
		indices: make([]uint, 0, len(paths)),
	}
	for _, p := range paths {
		ps.indices = append(ps.indices, uint(len(ps.buf)))
		ps.buf = append(ps.buf, p...)
		ps.buf = append(ps.buf, 0)
	}
	return ps, nil
}

func (ps *MemPathSet) Count() int {
	return len(ps.indices)
}

func (ps *MemPathSet) Buffer() []byte {
	return ps.buf
}

func (ps *MemPathSet) Indices() []uint {
	return ps.indices
}

// Release drops the buffer and index table.
func (ps *MemPathSet) Release() {
	ps.released++
	ps.buf = nil
	ps.indices = nil
}

// Released reports how many times Release has been called.
func (ps *MemPathSet) Released() int {
	return ps.released
}

// memString is a NativeString backed by Go memory.
type memString struct {
	b []byte
}

func newMemString(s string) *memString {
	return &memString{b: append([]byte(s), 0)}
}

func (m *memString) Bytes() []byte {
	return m.b
}

func (m *memString) Release() {
	m.b = nil
}
