//go:build !gio
// +build !gio

package main

import "errors"

func runGUI(*App) error {
	return errors.New("nfdpick was built without the gio tag; rebuild with -tags gio for the window")
}
