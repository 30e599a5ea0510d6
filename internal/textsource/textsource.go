// Package textsource reads the text to analyze.
package textsource

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoInput is returned when no text source was given.
var ErrNoInput = errors.New("no input text")

// ErrUnsupportedFile is returned for files other than .txt.
var ErrUnsupportedFile = errors.New("only .txt files are supported")

// Source describes where the text comes from. At most one of Path and Text is
// used; Path wins. Stdin is read only when it is not a terminal.
type Source struct {
	Path       string
	Text       string
	Stdin      io.Reader
	StdinIsTTY bool
}

// Read returns the source text with Windows line endings normalized.
func Read(src Source) (string, error) {
	text, err := read(src)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}

func read(src Source) (string, error) {
	switch {
	case src.Path != "":
		return LoadFile(src.Path)
	case src.Text != "":
		return src.Text, nil
	case src.Stdin != nil && !src.StdinIsTTY:
		data, err := io.ReadAll(src.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", ErrNoInput
}

// LoadFile reads a UTF-8 .txt file.
func LoadFile(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
