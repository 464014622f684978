// Package textfile loads and saves text files for the edit engine. The engine
// only ever sees BOM-free, LF-normalized UTF-8; this package remembers each
// file's original encoding and line endings and restores them on save.
package textfile

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Encoding identifies how a file's bytes map to text.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "utf-8"
	case UTF8BOM:
		return "utf-8 bom"
	case UTF16LE:
		return "utf-16 le"
	case UTF16BE:
		return "utf-16 be"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Layout is everything needed to write content back the way it was found.
type Layout struct {
	Encoding Encoding
	CRLF     bool
}

// File is a loaded text file: engine-ready content plus the layout to restore
// on save.
type File struct {
	Path    string
	Content string // LF line endings, no BOM, valid UTF-8
	Layout  Layout
}

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

// Decode converts raw file bytes to engine-ready text, detecting the encoding
// from the BOM (UTF-8 assumed when absent) and normalizing CRLF to LF.
func Decode(raw []byte) (string, Layout, error) {
	var layout Layout
	var text string

	switch {
	case len(raw) >= 3 && string(raw[:3]) == string(bomUTF8):
		layout.Encoding = UTF8BOM
		text = string(raw[3:])
	case len(raw) >= 2 && string(raw[:2]) == string(bomUTF16LE):
		layout.Encoding = UTF16LE
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw[2:])
		if err != nil {
			return "", Layout{}, fmt.Errorf("decode utf-16 le: %w", err)
		}
		text = string(decoded)
	case len(raw) >= 2 && string(raw[:2]) == string(bomUTF16BE):
		layout.Encoding = UTF16BE
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw[2:])
		if err != nil {
			return "", Layout{}, fmt.Errorf("decode utf-16 be: %w", err)
		}
		text = string(decoded)
	default:
		layout.Encoding = UTF8
		text = string(raw)
	}

	if !utf8.ValidString(text) {
		return "", Layout{}, fmt.Errorf("file is not valid %s text", layout.Encoding)
	}

	if strings.Contains(text, "\r\n") {
		layout.CRLF = true
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	return text, layout, nil
}

// Encode converts engine-ready text back to file bytes under the given layout.
func Encode(content string, layout Layout) ([]byte, error) {
	if layout.CRLF {
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}
	switch layout.Encoding {
	case UTF8:
		return []byte(content), nil
	case UTF8BOM:
		return append(append([]byte(nil), bomUTF8...), content...), nil
	case UTF16LE:
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("encode utf-16 le: %w", err)
		}
		return append(append([]byte(nil), bomUTF16LE...), encoded...), nil
	case UTF16BE:
		encoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("encode utf-16 be: %w", err)
		}
		return append(append([]byte(nil), bomUTF16BE...), encoded...), nil
	default:
		return nil, fmt.Errorf("unknown encoding %v", layout.Encoding)
	}
}

// Load reads and decodes the file at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, layout, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Content: content, Layout: layout}, nil
}

// Save writes content back to the file's path, restoring its original
// encoding and line endings. The file's permissions are preserved when it
// still exists; a fresh file gets 0644.
func (f *File) Save(content string) error {
	raw, err := Encode(content, f.Layout)
	if err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(f.Path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(f.Path, raw, perm); err != nil {
		return err
	}
	f.Content = content
	return nil
}
