package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"
)

// DefaultMaxFileSize bounds how much of a document the loader will read.
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrNotFileURI is returned for documents outside the local filesystem.
	ErrNotFileURI = errors.New("server: not a file URI")
	// ErrFileTooLarge is returned when a document exceeds the size limit.
	ErrFileTooLarge = errors.New("server: file exceeds maximum size")
)

// Loader reads document contents from disk. There is no cache: every query
// re-reads the file, so the server never has to reconcile editor buffers
// with what the filesystem holds.
type Loader struct {
	MaxFileSize int64
}

// Load resolves the identifier's URI to a local path and returns the file's
// text.
func (ld *Loader) Load(doc protocol.TextDocumentIdentifier) (string, error) {
	path, err := uriToPath(string(doc.URI))
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	limit := ld.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %d bytes over limit %d", ErrFileTooLarge, len(data), limit)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document %s is not valid UTF-8", path)
	}
	return string(data), nil
}

func uriToPath(rawURI string) (string, error) {
	if !strings.HasPrefix(rawURI, "file://") {
		return "", fmt.Errorf("%w: %s", ErrNotFileURI, rawURI)
	}
	path := strings.TrimPrefix(rawURI, "file://")
	path = strings.ReplaceAll(path, "%3A", ":")
	path = strings.ReplaceAll(path, "%3a", ":")
	if runtime.GOOS == "windows" {
		path = strings.TrimPrefix(path, "/")
	}
	return filepath.FromSlash(path), nil
}

func pathToURI(path string) string {
	path = filepath.Clean(path)
	if runtime.GOOS == "windows" {
		path = strings.ReplaceAll(path, "\\", "/")
		return "file:///" + strings.ReplaceAll(path, ":", "%3A")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "file://" + path
}
