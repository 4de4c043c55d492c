package fsio

import (
	"io/fs"
	"os"
	"path/filepath"
)

type Reader interface {
	Open(name string) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

type Writer interface {
	Create(name string) (*os.File, error)
	Write(file *os.File, buf []byte) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(name string) error
}

type RealReader struct{}

func NewRealReader() *RealReader {
	return &RealReader{}
}

func (r *RealReader) Open(name string) (*os.File, error) { return os.Open(name) }

func (r *RealReader) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (r *RealReader) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

func (r *RealReader) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

func (r *RealReader) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(root, fn)
}

type RealWriter struct{}

func NewRealWriter() *RealWriter {
	return &RealWriter{}
}

func (w *RealWriter) Create(name string) (*os.File, error) { return os.Create(name) }

func (w *RealWriter) Write(file *os.File, buf []byte) error {
	_, err := file.Write(buf)
	return err
}

func (w *RealWriter) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// Remove deletes a file or an empty directory; it never recurses.
func (w *RealWriter) Remove(name string) error { return os.Remove(name) }
