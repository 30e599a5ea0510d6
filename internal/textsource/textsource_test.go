package textsource

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.TXT")
	if err := os.WriteFile(path, []byte("from file"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := Read(Source{Path: path, Text: "inline", Stdin: strings.NewReader("stdin")})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "from file" {
		t.Fatalf("expected file contents, got %q", got)
	}
}

func TestReadInlineAndStdin(t *testing.T) {
	got, err := Read(Source{Text: "inline", Stdin: strings.NewReader("stdin")})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline text, got %q, %v", got, err)
	}
	got, err = Read(Source{Stdin: strings.NewReader("stdin")})
	if err != nil || got != "stdin" {
		t.Fatalf("expected stdin text, got %q, %v", got, err)
	}
}

func TestReadNoInput(t *testing.T) {
	_, err := Read(Source{Stdin: strings.NewReader("ignored"), StdinIsTTY: true})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("expected ErrNoInput, got %v", err)
	}
}

func TestLoadFileRejectsOtherExtensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadFile(path); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
}

func TestReadNormalizesLineEndings(t *testing.T) {
	got, err := Read(Source{Text: "one.\r\ntwo."})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "one.\ntwo." {
		t.Fatalf("expected LF line endings, got %q", got)
	}
}
