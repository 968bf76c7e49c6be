package nfd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBackendOpen(t *testing.T) {
	var out bytes.Buffer
	d := New(NewPromptBackend(strings.NewReader("/tmp/report.pdf\n"), &out))

	path, err := d.OpenDialog("pdf;png,jpg", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report.pdf", path)
	assert.Contains(t, out.String(), "Select a file")
	assert.Contains(t, out.String(), "filter: *.pdf")
	assert.Contains(t, out.String(), "filter: *.png *.jpg")
	assert.Contains(t, out.String(), "Enter file path: ")
}

func TestPromptBackendResolvesRelativePaths(t *testing.T) {
	base := filepath.Join("home", "user")
	d := New(NewPromptBackend(strings.NewReader("notes.txt\n"), &bytes.Buffer{}))

	path, err := d.SaveDialog("", base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "notes.txt"), path)
}

func TestPromptBackendCancel(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "blank line", input: "\n"},
		{name: "whitespace", input: "   \n"},
		{name: "immediate EOF", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(NewPromptBackend(strings.NewReader(tt.input), &bytes.Buffer{}))

			_, err := d.OpenDialog("", "")
			assert.ErrorIs(t, err, ErrCancelled)

			_, err = d.OpenDialogMultiple("", "")
			assert.ErrorIs(t, err, ErrCancelled)
		})
	}
}

func TestPromptBackendLastLineWithoutNewline(t *testing.T) {
	d := New(NewPromptBackend(strings.NewReader("/srv/share"), &bytes.Buffer{}))

	path, err := d.PickFolder("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/share", path)
}

func TestPromptBackendMultiple(t *testing.T) {
	input := "/a.txt\nb.txt\n/c/\xffraw\n\nleftover\n"
	d := New(NewPromptBackend(strings.NewReader(input), &bytes.Buffer{}))

	paths, err := d.OpenDialogMultiple("txt", "/base")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a.txt", filepath.Join("/base", "b.txt"), "/c/\xffraw"}, paths)
}

func TestPromptBackendMultipleUntilEOF(t *testing.T) {
	d := New(NewPromptBackend(strings.NewReader("/a\n/b"), &bytes.Buffer{}))

	paths, err := d.OpenDialogMultiple("", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, paths)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("terminal went away")
}

func TestPromptBackendReadError(t *testing.T) {
	d := New(NewPromptBackend(failingReader{}, &bytes.Buffer{}))

	_, err := d.OpenDialog("", "")
	assert.ErrorIs(t, err, ErrProgrammatic)
	assert.Equal(t, "failed to read answer: terminal went away", d.GetError())

	_, err = d.OpenDialogMultiple("", "")
	assert.ErrorIs(t, err, ErrProgrammatic)
}
