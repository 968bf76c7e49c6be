//go:build windows

package nfd

import "golang.org/x/sys/windows"

// pathFromUTF16 converts a wide-character path, stopping at the first NUL.
// Unpaired surrogates, which NTFS allows in names, become U+FFFD.
func pathFromUTF16(s []uint16) string {
	return windows.UTF16ToString(s)
}
