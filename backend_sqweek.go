//go:build sqweek
// +build sqweek

package nfd

import (
	"github.com/go-errors/errors"
	"github.com/sqweek/dialog"
)

func init() {
	Register("sqweek", func() Backend {
		return NewSqweekBackend()
	})
}

// SqweekBackend shows dialogs through github.com/sqweek/dialog. That
// library has no multi-selection, so OpenDialogMultiple always fails.
type SqweekBackend struct {
	err lastError
}

func NewSqweekBackend() *SqweekBackend {
	return &SqweekBackend{}
}

func (s *SqweekBackend) OpenDialog(filterList, defaultPath string) (Result, NativeString) {
	path, err := sqweekBuilder("Open", filterList, defaultPath).Load()
	return s.single(path, err)
}

func (s *SqweekBackend) SaveDialog(filterList, defaultPath string) (Result, NativeString) {
	path, err := sqweekBuilder("Save", filterList, defaultPath).Save()
	return s.single(path, err)
}

func (s *SqweekBackend) PickFolder(defaultPath string) (Result, NativeString) {
	b := dialog.Directory().Title("Select folder")
	if defaultPath != "" {
		b = b.SetStartDir(defaultPath)
	}
	path, err := b.Browse()
	return s.single(path, err)
}

func (s *SqweekBackend) OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet) {
	s.err.set("multiple selection is not supported by the sqweek backend")
	return ResultError, nil
}

func (s *SqweekBackend) GetError() []byte {
	return s.err.get()
}

func (s *SqweekBackend) single(path string, err error) (Result, NativeString) {
	switch {
	case err == nil:
		return ResultOkay, newMemString(path)
	case errors.Is(err, dialog.ErrCancelled):
		return ResultCancel, nil
	default:
		s.err.setErr(err)
		return ResultError, nil
	}
}

func sqweekBuilder(title, filterList, defaultPath string) *dialog.FileBuilder {
	b := dialog.File().Title(title)
	for _, g := range ParseFilterList(filterList) {
		b = b.Filter(g.Name(), g.Extensions...)
	}
	if defaultPath != "" {
		b = b.SetStartDir(defaultPath)
	}
	return b
}
