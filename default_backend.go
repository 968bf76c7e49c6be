//go:build !(nfd && cgo)

package nfd

func newDefaultBackend() Backend {
	return NewZenityBackend()
}
