package nfd

// MaxPathSetBytes bounds every scan over native memory whose length the
// native layer does not report.
const MaxPathSetBytes = 64 << 20

// releaser is anything handing native memory back to its owner.
type releaser interface {
	Release()
}

// releaseGuard releases a native value at most once. It is armed on
// construction and every exit path runs release through a defer.
type releaseGuard struct {
	r releaser
}

func guard(r releaser) *releaseGuard {
	return &releaseGuard{r: r}
}

func (g *releaseGuard) release() {
	if g.r == nil {
		return
	}
	r := g.r
	g.r = nil
	r.Release()
}

// DecodePathSet copies every path out of ps in index order and releases ps.
// The release happens exactly once, after the last byte has been read, on
// success and failure alike. A pathset with zero entries decodes to an
// empty slice.
func DecodePathSet(ps PathSet) ([]string, error) {
	g := guard(ps)
	defer g.release()

	return decodePathSet(ps.Count(), span(ps.Buffer()), ps.Indices())
}

func decodePathSet(count int, buf span, indices []uint) ([]string, error) {
	if count < 0 {
		return nil, malformed(0, 0, "negative count %d", count)
	}
	if count == 0 {
		return []string{}, nil
	}
	if len(indices) < count {
		return nil, malformed(len(indices), 0, "index table holds %d entries, count is %d", len(indices), count)
	}

	paths := make([]string, 0, count)
	for i := 0; i < count-1; i++ {
		b, reason, ok := buf.exact(indices[i], indices[i+1])
		if !ok {
			return nil, malformed(i, indices[i], "%s", reason)
		}
		paths = append(paths, pathFromBytes(b))
	}

	last := count - 1
	b, reason, ok := buf.terminated(indices[last])
	if !ok {
		return nil, malformed(last, indices[last], "%s", reason)
	}
	paths = append(paths, pathFromBytes(b))

	return paths, nil
}

// bufferSize returns how many bytes of a native pathset buffer to expose:
// everything up to and including the NUL after the last entry. scan
// reports the distance from start to the next NUL, or limit when there is
// none within limit bytes. The result never exceeds maxBytes, and is 0 when the
// index table cannot locate the last entry.
func bufferSize(count int, indices []uint, maxBytes uint, scan func(start, limit uint) uint) uint {
	if count <= 0 || len(indices) < count {
		return 0
	}
	last := indices[count-1]
	if last >= maxBytes {
		return 0
	}

	limit := maxBytes - last
	n := scan(last, limit)
	if n >= limit {
		return maxBytes
	}
	return last + n + 1
}

// decodeNativeString copies a native string up to its first NUL and
// releases it.
func decodeNativeString(ns NativeString) string {
	g := guard(ns)
	defer g.release()

	b := ns.Bytes()
	for i, c := range b {
		if c == 0 {
			b = b[:i]
			break
		}
	}
	return pathFromBytes(b)
}
