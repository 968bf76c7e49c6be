//go:build windows

package nfd

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

func init() {
	Register("comdlg", func() Backend {
		return NewComdlgBackend()
	})
}

var (
	modcomdlg32 = windows.NewLazySystemDLL("comdlg32.dll")
	modshell32  = windows.NewLazySystemDLL("shell32.dll")
	modole32    = windows.NewLazySystemDLL("ole32.dll")
	moduser32   = windows.NewLazySystemDLL("user32.dll")

	procGetOpenFileName      = modcomdlg32.NewProc("GetOpenFileNameW")
	procGetSaveFileName      = modcomdlg32.NewProc("GetSaveFileNameW")
	procCommDlgExtendedError = modcomdlg32.NewProc("CommDlgExtendedError")
	procSHBrowseForFolder    = modshell32.NewProc("SHBrowseForFolderW")
	procSHGetPathFromIDList  = modshell32.NewProc("SHGetPathFromIDListW")
	procCoTaskMemFree        = modole32.NewProc("CoTaskMemFree")
	procSendMessage          = moduser32.NewProc("SendMessageW")
)

const (
	ofnOverwritePrompt  = 0x00000002
	ofnNoChangeDir      = 0x00000008
	ofnAllowMultiSelect = 0x00000200
	ofnPathMustExist    = 0x00000800
	ofnFileMustExist    = 0x00001000
	ofnExplorer         = 0x00080000

	bifReturnOnlyFSDirs = 0x00000001
	bifNewDialogStyle   = 0x00000040

	bffmInitialized   = 1
	bffmSetSelectionW = 0x0400 + 103

	// Large enough for a multi-selection of a few hundred long names.
	fileBufferLen = 1 << 16
)

type openFileName struct {
	structSize    uint32
	owner         uintptr
	instance      uintptr
	filter        *uint16
	customFilter  *uint16
	maxCustFilter uint32
	filterIndex   uint32
	file          *uint16
	maxFile       uint32
	fileTitle     *uint16
	maxFileTitle  uint32
	initialDir    *uint16
	title         *uint16
	flags         uint32
	fileOffset    uint16
	fileExtension uint16
	defExt        *uint16
	custData      uintptr
	fnHook        uintptr
	templateName  *uint16
	pvReserved    uintptr
	dwReserved    uint32
	flagsEx       uint32
}

type browseInfo struct {
	owner       uintptr
	root        uintptr
	displayName *uint16
	title       *uint16
	flags       uint32
	callback    uintptr
	lParam      uintptr
	image       int32
}

// ComdlgBackend calls the Win32 common dialogs directly. Results arrive as
// UTF-16 and are converted with pathFromUTF16.
type ComdlgBackend struct {
	err lastError
}

func NewComdlgBackend() *ComdlgBackend {
	return &ComdlgBackend{}
}

func (c *ComdlgBackend) OpenDialog(filterList, defaultPath string) (Result, NativeString) {
	paths, res := c.run(procGetOpenFileName, filterList, defaultPath, ofnFileMustExist|ofnPathMustExist)
	if res != ResultOkay {
		return res, nil
	}
	return ResultOkay, newMemString(paths[0])
}

func (c *ComdlgBackend) SaveDialog(filterList, defaultPath string) (Result, NativeString) {
	paths, res := c.run(procGetSaveFileName, filterList, defaultPath, ofnOverwritePrompt|ofnPathMustExist)
	if res != ResultOkay {
		return res, nil
	}
	return ResultOkay, newMemString(paths[0])
}

func (c *ComdlgBackend) OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet) {
	paths, res := c.run(procGetOpenFileName, filterList, defaultPath, ofnFileMustExist|ofnPathMustExist|ofnAllowMultiSelect)
	if res != ResultOkay {
		return res, nil
	}
	ps, err := PackPathSet(paths)
	if err != nil {
		c.err.setErr(err)
		return ResultError, nil
	}
	return ResultOkay, ps
}

func (c *ComdlgBackend) PickFolder(defaultPath string) (Result, NativeString) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := windows.CoInitializeEx(0, windows.COINIT_APARTMENTTHREADED); err == nil {
		defer windows.CoUninitialize()
	}

	title, _ := windows.UTF16PtrFromString("Select folder")
	bi := browseInfo{
		title: title,
		flags: bifReturnOnlyFSDirs | bifNewDialogStyle,
	}
	var start *uint16
	if defaultPath != "" {
		var err error
		if start, err = windows.UTF16PtrFromString(defaultPath); err != nil {
			c.err.setErr(err)
			return ResultError, nil
		}
		bi.callback = browseCallback()
		bi.lParam = uintptr(unsafe.Pointer(start))
	}

	pidl, _, _ := procSHBrowseForFolder.Call(uintptr(unsafe.Pointer(&bi)))
	runtime.KeepAlive(start)
	if pidl == 0 {
		return ResultCancel, nil
	}
	defer procCoTaskMemFree.Call(pidl)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	ok, _, _ := procSHGetPathFromIDList.Call(pidl, uintptr(unsafe.Pointer(&buf[0])))
	if ok == 0 {
		c.err.set("selected folder has no file system path")
		return ResultError, nil
	}
	return ResultOkay, newMemString(pathFromUTF16(buf))
}

func (c *ComdlgBackend) GetError() []byte {
	return c.err.get()
}

func (c *ComdlgBackend) run(proc *windows.LazyProc, filterList, defaultPath string, flags uint32) ([]string, Result) {
	buf := make([]uint16, fileBufferLen)
	ofn := openFileName{
		file:    &buf[0],
		maxFile: uint32(len(buf)),
		flags:   flags | ofnExplorer | ofnNoChangeDir,
	}
	ofn.structSize = uint32(unsafe.Sizeof(ofn))

	filter := comdlgFilter(filterList)
	ofn.filter = &filter[0]
	ofn.filterIndex = 1

	if defaultPath != "" {
		dir, err := windows.UTF16PtrFromString(defaultPath)
		if err != nil {
			c.err.setErr(err)
			return nil, ResultError
		}
		ofn.initialDir = dir
	}

	ok, _, _ := proc.Call(uintptr(unsafe.Pointer(&ofn)))
	runtime.KeepAlive(filter)
	if ok == 0 {
		code, _, _ := procCommDlgExtendedError.Call()
		if code == 0 {
			return nil, ResultCancel
		}
		c.err.set(fmt.Sprintf("common dialog error 0x%04x", code))
		return nil, ResultError
	}

	paths := splitMultiSelect(buf)
	if len(paths) == 0 {
		return nil, ResultCancel
	}
	return paths, ResultOkay
}

// comdlgFilter turns "png,jpg;pdf" into the double-NUL-terminated
// description/pattern pairs GetOpenFileName expects, followed by a
// catch-all entry.
func comdlgFilter(filterList string) []uint16 {
	var sb strings.Builder
	for _, g := range ParseFilterList(filterList) {
		sb.WriteString(g.Name())
		sb.WriteByte(0)
		sb.WriteString(strings.Join(g.Patterns(), ";"))
		sb.WriteByte(0)
	}
	sb.WriteString("All files")
	sb.WriteByte(0)
	sb.WriteString("*.*")
	sb.WriteByte(0)
	sb.WriteByte(0)
	return utf16.Encode([]rune(sb.String()))
}

// splitMultiSelect decodes an explorer-style result buffer. A single
// selection is one full path; several are the directory followed by the
// bare names. The list ends at an empty string.
func splitMultiSelect(buf []uint16) []string {
	var parts []string
	for start := 0; start < len(buf); {
		end := start
		for end < len(buf) && buf[end] != 0 {
			end++
		}
		if end == start {
			break
		}
		parts = append(parts, pathFromUTF16(buf[start:end]))
		start = end + 1
	}
	if len(parts) < 2 {
		return parts
	}

	dir := parts[0]
	paths := make([]string, 0, len(parts)-1)
	for _, name := range parts[1:] {
		paths = append(paths, strings.TrimSuffix(dir, `\`)+`\`+name)
	}
	return paths
}

var (
	browseCallbackOnce sync.Once
	browseCallbackPtr  uintptr
)

// browseCallback preselects the folder passed through lParam. Callbacks
// created by NewCallback are never freed, so there is only one.
func browseCallback() uintptr {
	browseCallbackOnce.Do(func() {
		browseCallbackPtr = windows.NewCallback(func(hwnd uintptr, msg uint32, lParam, data uintptr) uintptr {
			if msg == bffmInitialized && data != 0 {
				procSendMessage.Call(hwnd, bffmSetSelectionW, 1, data)
			}
			return 0
		})
	})
	return browseCallbackPtr
}
