package nfd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	Register("prompt", func() Backend {
		return NewPromptBackend(os.Stdin, os.Stderr)
	})
}

// PromptBackend asks for paths on a terminal. It is the fallback when no
// graphical dialog is available. A blank answer cancels.
type PromptBackend struct {
	reader *bufio.Reader
	out    io.Writer
	err    lastError
}

// NewPromptBackend reads answers from in and writes prompts to out.
func NewPromptBackend(in io.Reader, out io.Writer) *PromptBackend {
	return &PromptBackend{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *PromptBackend) OpenDialog(filterList, defaultPath string) (Result, NativeString) {
	return p.single("Select a file", filterList, defaultPath)
}

func (p *PromptBackend) SaveDialog(filterList, defaultPath string) (Result, NativeString) {
	return p.single("Save as", filterList, defaultPath)
}

func (p *PromptBackend) PickFolder(defaultPath string) (Result, NativeString) {
	return p.single("Select a folder", "", defaultPath)
}

func (p *PromptBackend) OpenDialogMultiple(filterList, defaultPath string) (Result, PathSet) {
	p.header("Select files", filterList, defaultPath)
	fmt.Fprint(p.out, "Enter file paths, one per line, blank line to finish:\n")

	var paths []string
	for {
		line, eof, err := p.readLine()
		if err != nil {
			p.err.setErr(err)
			return ResultError, nil
		}
		if line == "" {
			break
		}
		paths = append(paths, p.resolve(line, defaultPath))
		if eof {
			break
		}
	}
	if len(paths) == 0 {
		return ResultCancel, nil
	}

	ps, err := PackPathSet(paths)
	if err != nil {
		p.err.setErr(err)
		return ResultError, nil
	}
	return ResultOkay, ps
}

func (p *PromptBackend) GetError() []byte {
	return p.err.get()
}

func (p *PromptBackend) single(title, filterList, defaultPath string) (Result, NativeString) {
	p.header(title, filterList, defaultPath)
	fmt.Fprint(p.out, "Enter file path: ")

	line, _, err := p.readLine()
	if err != nil {
		p.err.setErr(err)
		return ResultError, nil
	}
	if line == "" {
		return ResultCancel, nil
	}
	return ResultOkay, newMemString(p.resolve(line, defaultPath))
}

func (p *PromptBackend) header(title, filterList, defaultPath string) {
	fmt.Fprintln(p.out, title)
	for _, g := range ParseFilterList(filterList) {
		fmt.Fprintf(p.out, "  filter: %s\n", strings.Join(g.Patterns(), " "))
	}
	if defaultPath != "" {
		fmt.Fprintf(p.out, "  relative to: %s\n", defaultPath)
	}
}

// readLine returns the next line without its line ending. EOF after a
// partial line is not an error; EOF with nothing read yields "".
func (p *PromptBackend) readLine() (line string, eof bool, err error) {
	line, err = p.reader.ReadString('\n')
	if err == io.EOF {
		return strings.TrimSpace(line), true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), false, nil
}

func (p *PromptBackend) resolve(path, defaultPath string) string {
	if defaultPath == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(defaultPath, path)
}
