package nfd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePathSet mimics native ownership: Release poisons the buffer so a
// path still pointing into it after release would come out garbled.
type fakePathSet struct {
	count    int
	buf      []byte
	indices  []uint
	released int
}

func (f *fakePathSet) Count() int      { return f.count }
func (f *fakePathSet) Buffer() []byte  { return f.buf }
func (f *fakePathSet) Indices() []uint { return f.indices }

func (f *fakePathSet) Release() {
	f.released++
	for i := range f.buf {
		f.buf[i] = 0xAA
	}
	for i := range f.indices {
		f.indices[i] = ^uint(0)
	}
}

func packed(t *testing.T, paths ...string) *fakePathSet {
	t.Helper()
	ps, err := PackPathSet(paths)
	require.NoError(t, err)
	return &fakePathSet{count: ps.Count(), buf: ps.Buffer(), indices: ps.Indices()}
}

func TestDecodePathSetCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10} {
		t.Run(fmt.Sprintf("%d paths", n), func(t *testing.T) {
			want := make([]string, n)
			for i := range want {
				want[i] = fmt.Sprintf("/home/user/file-%02d.txt", i)
			}
			ps := packed(t, want...)

			got, err := DecodePathSet(ps)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.NotNil(t, got)
			assert.Equal(t, 1, ps.released)
		})
	}
}

func TestDecodePathSetExample(t *testing.T) {
	ps := &fakePathSet{
		count:   3,
		buf:     []byte("a.txt\x00name.png\x00z\x00"),
		indices: []uint{0, 6, 15},
	}

	got, err := DecodePathSet(ps)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "name.png", "z"}, got)
	assert.Equal(t, 1, ps.released)
}

func TestDecodePathSetMalformed(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		buf     string
		indices []uint
		index   int
		reason  string
	}{
		{
			name:    "index past end of buffer",
			count:   2,
			buf:     "a\x00b\x00",
			indices: []uint{0, 40},
			index:   0,
			reason:  "next offset past end of buffer",
		},
		{
			name:    "last index past end of buffer",
			count:   1,
			buf:     "a\x00",
			indices: []uint{9},
			index:   0,
			reason:  "start offset past end of buffer",
		},
		{
			name:    "offsets that skip a terminator",
			count:   3,
			buf:     "a.txt\x00name.png\x00z\x00",
			indices: []uint{0, 5, 11},
			index:   0,
			reason:  "missing terminator before next offset",
		},
		{
			name:    "decreasing offsets",
			count:   2,
			buf:     "abc\x00d\x00",
			indices: []uint{4, 0},
			index:   0,
			reason:  "offsets not increasing",
		},
		{
			name:    "two strings in one span",
			count:   2,
			buf:     "a\x00b\x00c\x00",
			indices: []uint{0, 4},
			index:   0,
			reason:  "span holds more than one string",
		},
		{
			name:    "last path without terminator",
			count:   2,
			buf:     "a\x00bcd",
			indices: []uint{0, 2},
			index:   1,
			reason:  "missing terminator before end of buffer",
		},
		{
			name:    "index table shorter than count",
			count:   3,
			buf:     "a\x00b\x00",
			indices: []uint{0, 2},
			index:   2,
			reason:  "index table holds 2 entries, count is 3",
		},
		{
			name:   "negative count",
			count:  -1,
			index:  0,
			reason: "negative count -1",
		},
		{
			name:    "empty buffer",
			count:   1,
			indices: []uint{0},
			index:   0,
			reason:  "start offset past end of buffer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &fakePathSet{count: tt.count, buf: []byte(tt.buf), indices: tt.indices}

			var got []string
			var err error
			assert.NotPanics(t, func() {
				got, err = DecodePathSet(ps)
			})

			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedPathset)

			var malformedErr *MalformedPathsetError
			require.ErrorAs(t, err, &malformedErr)
			assert.Equal(t, tt.index, malformedErr.Index)
			assert.Equal(t, tt.reason, malformedErr.Reason)

			assert.Equal(t, 1, ps.released)
		})
	}
}

func TestDecodePathSetPreservesBytes(t *testing.T) {
	want := []string{
		"/tmp/\xff\xfe-raw.bin",
		"/tmp/caf\xe9.txt",
		"/tmp/日本語.txt",
		"",
		"/tmp/\x80",
	}
	ps := packed(t, want...)

	got, err := DecodePathSet(ps)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, []byte(want[i]), []byte(got[i]))
	}
	assert.Equal(t, 1, ps.released)
}

func TestDecodePathSetReleasesMemPathSet(t *testing.T) {
	ps, err := PackPathSet([]string{"one", "two"})
	require.NoError(t, err)

	got, err := DecodePathSet(ps)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
	assert.Equal(t, 1, ps.Released())
	assert.Nil(t, ps.Buffer())
	assert.Nil(t, ps.Indices())
}

func TestPackPathSetLayout(t *testing.T) {
	ps, err := PackPathSet([]string{"a.txt", "name.png", "z"})
	require.NoError(t, err)

	assert.Equal(t, 3, ps.Count())
	assert.Equal(t, []byte("a.txt\x00name.png\x00z\x00"), ps.Buffer())
	assert.Equal(t, []uint{0, 6, 15}, ps.Indices())
}

func TestPackPathSetRejectsNUL(t *testing.T) {
	_, err := PackPathSet([]string{"ok", "bad\x00path"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "path 1 contains a NUL byte")
}

func TestReleaseGuard(t *testing.T) {
	ps := &fakePathSet{}
	g := guard(ps)
	g.release()
	g.release()
	assert.Equal(t, 1, ps.released)
}

func TestDecodeNativeString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{name: "terminated", in: []byte("/tmp/a.txt\x00"), want: "/tmp/a.txt"},
		{name: "unterminated", in: []byte("/tmp/a.txt"), want: "/tmp/a.txt"},
		{name: "stops at first NUL", in: []byte("/tmp/a\x00junk\x00"), want: "/tmp/a"},
		{name: "raw bytes", in: []byte("/tmp/\xff\x00"), want: "/tmp/\xff"},
		{name: "empty", in: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := &fakeString{b: append([]byte(nil), tt.in...)}
			assert.Equal(t, tt.want, decodeNativeString(ns))
			assert.Equal(t, 1, ns.released)
		})
	}
}

func TestBufferSize(t *testing.T) {
	// scanOver behaves like the native scan, reading nothing past limit.
	scanOver := func(b []byte) func(start, limit uint) uint {
		return func(start, limit uint) uint {
			for n := uint(0); n < limit; n++ {
				if b[start+n] == 0 {
					return n
				}
			}
			return limit
		}
	}

	tests := []struct {
		name     string
		count    int
		indices  []uint
		buf      []byte
		maxBytes uint
		want     uint
	}{
		{name: "ends after last terminator", count: 2, indices: []uint{0, 2}, buf: []byte("a\x00bc\x00junk"), maxBytes: 64, want: 5},
		{name: "single empty path", count: 1, indices: []uint{0}, buf: []byte("\x00"), maxBytes: 64, want: 1},
		{name: "capped without terminator", count: 2, indices: []uint{0, 2}, buf: []byte("a\x00xxxxxxxxxxxxxxxx"), maxBytes: 8, want: 8},
		{name: "last offset at cap", count: 2, indices: []uint{0, 8}, buf: []byte("a\x00"), maxBytes: 8, want: 0},
		{name: "missing index table", count: 1, indices: nil, buf: []byte("a\x00"), maxBytes: 64, want: 0},
		{name: "short index table", count: 3, indices: []uint{0, 2}, buf: []byte("a\x00b\x00c\x00"), maxBytes: 64, want: 0},
		{name: "empty", count: 0, indices: nil, buf: nil, maxBytes: 64, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bufferSize(tt.count, tt.indices, tt.maxBytes, scanOver(tt.buf)))
		})
	}
}

func TestDecodeMissingIndexTable(t *testing.T) {
	// A native handle with no index table exposes no buffer either.
	ps := &fakePathSet{count: 1}

	paths, err := DecodePathSet(ps)
	assert.Nil(t, paths)
	assert.ErrorIs(t, err, ErrMalformedPathset)

	var malformedErr *MalformedPathsetError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "index table holds 0 entries, count is 1", malformedErr.Reason)
	assert.Equal(t, 1, ps.released)
}
