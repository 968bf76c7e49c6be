package nfd

import (
	"github.com/go-errors/errors"
	"github.com/ncruces/zenity"
)

func init() {
	Register("zenity", func() Backend {
		return NewZenityBackend()
	})
}

// ZenityBackend shows dialogs through github.com/ncruces/zenity, which
// needs no cgo: it drives the Win32 and AppKit pickers directly and the
// zenity or kdialog tools on Linux.
type ZenityBackend struct {
	err lastError
}

func NewZenityBackend() *ZenityBackend {
	return &ZenityBackend{}
}

func (z *ZenityBackend) OpenDialog(filterList, defaultPath string) (Result, NativeString) {
	path, err := zenity.SelectFile(zenityOptions("Open", filterList, defaultPath)...)
	return z.single(path, err)
}

func (z *ZenityBackend) SaveDialog(filterList, defaultPath string) (Result, NativeString) {
	opts := append(zenityOptions("Save", filterList, defaultPath), zenity.ConfirmOverwrite())
	path, err := zenity.SelectFileSave(opts...)
	return z.single(path, err)
}

func (z *ZenityBackend) PickFolder(defaultPath string) (Result, NativeString) {
	opts := append(zenityOptions("Select folder", "", defaultPath), zenity.Directory())
	path, err := zenity.SelectFile(opts...)
	return z.single(path, err)
}

func (z *ZenityBackend) OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet) {
	paths, err := zenity.SelectFileMultiple(zenityOptions("Open", filterList, defaultPath)...)
	if res := z.result(err); res != ResultOkay {
		return res, nil
	}
	if len(paths) == 0 {
		return ResultCancel, nil
	}
	ps, err := PackPathSet(paths)
	if err != nil {
		z.err.setErr(err)
		return ResultError, nil
	}
	return ResultOkay, ps
}

func (z *ZenityBackend) GetError() []byte {
	return z.err.get()
}

func (z *ZenityBackend) single(path string, err error) (Result, NativeString) {
	if res := z.result(err); res != ResultOkay {
		return res, nil
	}
	if path == "" {
		return ResultCancel, nil
	}
	return ResultOkay, newMemString(path)
}

func (z *ZenityBackend) result(err error) Result {
	switch {
	case err == nil:
		return ResultOkay
	case errors.Is(err, zenity.ErrCanceled):
		return ResultCancel
	default:
		z.err.setErr(err)
		return ResultError
	}
}

func zenityOptions(title, filterList, defaultPath string) []zenity.Option {
	opts := []zenity.Option{zenity.Title(title)}
	if groups := ParseFilterList(filterList); len(groups) > 0 {
		filters := make(zenity.FileFilters, 0, len(groups))
		for _, g := range groups {
			filters = append(filters, zenity.FileFilter{Name: g.Name(), Patterns: g.Patterns()})
		}
		opts = append(opts, filters)
	}
	if defaultPath != "" {
		opts = append(opts, zenity.Filename(defaultPath))
	}
	return opts
}
