package codegen

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/speakeasy-api/clientgen/errors"
)

// ErrWrite is returned when generated output cannot be written to its destination.
const ErrWrite = errors.Error("failed to write generated file")

// OutputSink receives generated file content. Implementations must be safe for
// concurrent calls.
type OutputSink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FilesystemSink writes generated files under a root directory, creating parent
// directories as needed.
type FilesystemSink struct {
	Root string
	Mode os.FileMode
}

// NewFilesystemSink returns a FilesystemSink writing under root with mode 0644.
func NewFilesystemSink(root string) *FilesystemSink {
	return &FilesystemSink{
		Root: root,
		Mode: 0o644,
	}
}

// WriteFile writes content to path within the root directory.
func (s *FilesystemSink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return ErrWrite.Wrap(err)
	}

	if err := os.WriteFile(fullPath, content, s.Mode); err != nil {
		return ErrWrite.Wrap(err)
	}

	return nil
}

// MemorySink collects generated files in memory, keyed by relative path. Useful in
// tests. The zero value is ready to use.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// WriteFile stores content under path.
func (s *MemorySink) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = map[string][]byte{}
	}
	s.files[path] = append([]byte(nil), content...)

	return nil
}

// File returns the content stored under path, or nil when absent.
func (s *MemorySink) File(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[path]
}

// Paths returns the stored file paths in unspecified order.
func (s *MemorySink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, 0, len(s.files))
	for path := range s.files {
		paths = append(paths, path)
	}
	return paths
}
