package nfd

// pathFromBytes builds an owned path from raw native bytes. Go strings are
// plain byte sequences, so no byte is altered or rejected: names that are
// not valid UTF-8 survive unchanged.
func pathFromBytes(b []byte) string {
	return string(b)
}
