//go:build nfd && cgo
// +build nfd,cgo

package nfd

/*
#cgo LDFLAGS: -lnfd
#cgo linux pkg-config: gtk+-3.0
#cgo darwin LDFLAGS: -framework AppKit
#cgo windows LDFLAGS: -lole32 -luuid -lshell32

#include <stdlib.h>
#include <nfd.h>

// nfdgo_scan returns the distance from p to its NUL, or max when none is
// found within max bytes.
static size_t nfdgo_scan(const char *p, size_t max) {
	size_t n = 0;
	while (n < max && p[n] != '\0') {
		n++;
	}
	return n;
}
*/
import "C"

import (
	"unsafe"
)

func init() {
	Register("nfd", func() Backend {
		return NewNativeBackend()
	})
}

// NativeBackend forwards to the C nativefiledialog library.
type NativeBackend struct{}

func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

func (NativeBackend) OpenDialog(filterList, defaultPath string) (Result, NativeString) {
	fl, dp := cArg(filterList), cArg(defaultPath)
	defer freeArg(fl)
	defer freeArg(dp)

	var out *C.nfdchar_t
	res := Result(C.NFD_OpenDialog(fl, dp, &out))
	return res, wrapCString(res, out)
}

func (NativeBackend) SaveDialog(filterList, defaultPath string) (Result, NativeString) {
	fl, dp := cArg(filterList), cArg(defaultPath)
	defer freeArg(fl)
	defer freeArg(dp)

	var out *C.nfdchar_t
	res := Result(C.NFD_SaveDialog(fl, dp, &out))
	return res, wrapCString(res, out)
}

func (NativeBackend) PickFolder(defaultPath string) (Result, NativeString) {
	dp := cArg(defaultPath)
	defer freeArg(dp)

	var out *C.nfdchar_t
	res := Result(C.NFD_PickFolder(dp, &out))
	return res, wrapCString(res, out)
}

func (NativeBackend) OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet) {
	fl, dp := cArg(filterList), cArg(defaultPath)
	defer freeArg(fl)
	defer freeArg(dp)

	handle := (*C.nfdpathset_t)(C.calloc(1, C.size_t(unsafe.Sizeof(C.nfdpathset_t{}))))
	res := Result(C.NFD_OpenDialogMultiple(fl, dp, handle))
	if res != ResultOkay {
		C.free(unsafe.Pointer(handle))
		return res, nil
	}
	return res, &cPathSet{handle: handle}
}

// GetError returns the library's static error message. It is borrowed and
// must not be freed.
func (NativeBackend) GetError() []byte {
	msg := C.NFD_GetError()
	if msg == nil {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(msg), C.int(C.nfdgo_scan(msg, C.size_t(maxErrorBytes))))
}

const maxErrorBytes = 4096

func cArg(s string) *C.nfdchar_t {
	if s == "" {
		return nil
	}
	return (*C.nfdchar_t)(unsafe.Pointer(C.CString(s)))
}

func freeArg(p *C.nfdchar_t) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

// cString is a malloc'd path returned by the library.
type cString struct {
	p *C.nfdchar_t
}

func wrapCString(res Result, p *C.nfdchar_t) NativeString {
	if res != ResultOkay || p == nil {
		return nil
	}
	return &cString{p: p}
}

func (s *cString) Bytes() []byte {
	n := C.nfdgo_scan((*C.char)(unsafe.Pointer(s.p)), C.size_t(MaxPathSetBytes))
	return unsafe.Slice((*byte)(unsafe.Pointer(s.p)), int(n))
}

func (s *cString) Release() {
	C.free(unsafe.Pointer(s.p))
	s.p = nil
}

// cPathSet wraps an nfdpathset_t allocated by OpenDialogMultiple.
type cPathSet struct {
	handle *C.nfdpathset_t
}

func (ps *cPathSet) Count() int {
	return int(C.NFD_PathSet_GetCount(ps.handle))
}

// Buffer sizes the borrowed view from the last entry. A handle whose index
// table is missing yields no buffer, and DecodePathSet reports the short
// table.
func (ps *cPathSet) Buffer() []byte {
	if ps.handle.buf == nil {
		return nil
	}
	base := unsafe.Pointer(ps.handle.buf)
	size := bufferSize(ps.Count(), ps.Indices(), MaxPathSetBytes, func(start, limit uint) uint {
		return uint(C.nfdgo_scan((*C.char)(unsafe.Add(base, start)), C.size_t(limit)))
	})
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(base), int(size))
}

func (ps *cPathSet) Indices() []uint {
	count := ps.Count()
	if count == 0 || ps.handle.indices == nil {
		return nil
	}
	raw := unsafe.Slice((*C.size_t)(unsafe.Pointer(ps.handle.indices)), count)
	indices := make([]uint, count)
	for i, v := range raw {
		indices[i] = uint(v)
	}
	return indices
}

// Release frees the buffer and index array through the library, then the
// handle itself.
func (ps *cPathSet) Release() {
	C.NFD_PathSet_Free(ps.handle)
	C.free(unsafe.Pointer(ps.handle))
	ps.handle = nil
}
