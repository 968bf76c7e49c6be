package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/leonwijng/nfd"
	"github.com/sirupsen/logrus"
)

const (
	exitOK        = 0
	exitCancelled = 1
	exitError     = 2
)

const (
	cmdOpen         = "open"
	cmdSave         = "save"
	cmdOpenMultiple = "open-multiple"
	cmdPickFolder   = "pick-folder"
)

// App runs one dialog command and reports its result.
type App struct {
	Config Config
	Log    *logrus.Entry
	Dialog *nfd.Dialog
	Out    io.Writer

	// WriteClipboard defaults to clipboard.WriteAll.
	WriteClipboard func(string) error
}

// NewApp resolves the configured backend.
func NewApp(cfg Config, log *logrus.Entry, out io.Writer) (*App, error) {
	dialog := nfd.Default()
	if cfg.Backend != "" {
		backend, err := nfd.BackendByName(cfg.Backend)
		if err != nil {
			return nil, fmt.Errorf("available backends are %s: %w", strings.Join(nfd.Backends(), ", "), err)
		}
		dialog = nfd.New(backend)
	}

	return &App{
		Config:         cfg,
		Log:            log,
		Dialog:         dialog,
		Out:            out,
		WriteClipboard: clipboard.WriteAll,
	}, nil
}

// Select runs the dialog for command and returns the chosen paths.
func (a *App) Select(command string) ([]string, error) {
	a.Log.WithFields(logrus.Fields{
		"command":     command,
		"filter":      a.Config.Filter,
		"defaultPath": a.Config.DefaultPath,
	}).Debug("opening dialog")

	var path string
	var err error
	switch command {
	case cmdOpen:
		path, err = a.Dialog.OpenDialog(a.Config.Filter, a.Config.DefaultPath)
	case cmdSave:
		path, err = a.Dialog.SaveDialog(a.Config.Filter, a.Config.DefaultPath)
	case cmdPickFolder:
		path, err = a.Dialog.PickFolder(a.Config.DefaultPath)
	case cmdOpenMultiple:
		return a.Dialog.OpenDialogMultiple(a.Config.Filter, a.Config.DefaultPath)
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Run selects, prints and optionally copies the result. It returns the
// process exit code.
func (a *App) Run(command string) (int, error) {
	paths, err := a.Select(command)
	switch {
	case errors.Is(err, nfd.ErrCancelled):
		a.Log.Info("dialog cancelled")
		return exitCancelled, nil
	case err != nil:
		a.Log.WithError(err).Error("dialog failed")
		return exitError, err
	}

	a.Log.WithField("count", len(paths)).Info("paths selected")

	if _, err := io.WriteString(a.Out, formatPaths(paths, a.Config.NullSeparated)); err != nil {
		return exitError, fmt.Errorf("failed to write paths: %w", err)
	}

	if a.Config.CopyToClipboard {
		if err := a.WriteClipboard(strings.Join(paths, "\n")); err != nil {
			a.Log.WithError(err).Warn("clipboard copy failed")
			return exitError, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
	}
	return exitOK, nil
}

// formatPaths puts each path on its own line, or ends each with a NUL.
func formatPaths(paths []string, nullSeparated bool) string {
	sep := "\n"
	if nullSeparated {
		sep = "\x00"
	}

	var sb strings.Builder
	for _, p := range paths {
		sb.WriteString(p)
		sb.WriteString(sep)
	}
	return sb.String()
}
