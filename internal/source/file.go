package source

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Load reads a file from disk and strips a UTF-8 BOM.
// Line endings are left untouched: the tokenizer understands \n, \r\n and bare \r.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, hadBOM := removeBOM(content)
	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	return newFile(path, string(content), flags), nil
}

// NewVirtual wraps in-memory text (stdin, tests, editor buffers).
func NewVirtual(name, content string) *File {
	return newFile(name, content, FileVirtual)
}

func newFile(path, content string, flags FileFlags) *File {
	return &File{
		Path:    normalizePath(path),
		Content: content,
		Hash:    Fingerprint(content),
		Flags:   flags,
	}
}

// Fingerprint returns a fast non-cryptographic hash of text.
func Fingerprint(text string) uint64 {
	return xxhash.Sum64String(text)
}

// GetLine возвращает строку с заданным номером (1-based) без перевода строки.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lines Lines, lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > lines.Len() {
		return ""
	}
	idx := int(lineNum) - 1
	start := lines.Offset(idx)
	end := len(f.Content)
	if idx+1 < lines.Len() {
		end = lines.Offset(idx + 1)
	}
	if start > end {
		return ""
	}
	return trimLineBreak(f.Content[start:end])
}

// BaseName returns the last path element, used by the pretty printers.
func (f *File) BaseName() string {
	return filepath.Base(f.Path)
}
