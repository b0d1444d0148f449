// Package filelist presents a list of files on disk as a flat fs.FS, so
// that files named on the command line can be included the same way as a
// directory.
package filelist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FS maps a base name to the path of the file on disk.
type FS map[string]string

var _ fs.FS = FS(nil)

func New(paths ...string) (FS, error) {
	result := make(FS)
	for _, p := range paths {
		if err := result.Add(p); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Add makes path available under its base name.
func (m FS) Add(path string) error {
	filename := filepath.Base(path)
	if existing, ok := m[filename]; ok && existing != path {
		return fmt.Errorf("%s and %s have the same file name", existing, path)
	}
	m[filename] = path
	return nil
}

func (m FS) Open(filename string) (fs.File, error) {
	if filename == "." {
		var entries []fs.DirEntry
		for base, fullpath := range m {
			info, err := os.Stat(fullpath)
			if err != nil {
				continue
			}
			entries = append(entries, fileDirEntry{name: base, info: info})
		}
		return &virtualDir{entries: entries}, nil
	}

	fullpath, ok := m[filename]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
	}
	return os.Open(fullpath)
}

// virtualDir implements fs.ReadDirFile
type virtualDir struct {
	entries []fs.DirEntry
	pos     int
}

func (d *virtualDir) Stat() (fs.FileInfo, error) {
	return dirInfo{name: ".", mode: fs.ModeDir}, nil
}

func (d *virtualDir) Read([]byte) (int, error) {
	return 0, io.EOF // directories have no data
}

func (d *virtualDir) Close() error {
	return nil
}

func (d *virtualDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := len(d.entries) - d.pos
	if n <= 0 {
		n = remaining
	} else if remaining == 0 {
		return nil, io.EOF
	} else if n > remaining {
		n = remaining
	}
	entries := d.entries[d.pos : d.pos+n]
	d.pos += n
	return entries, nil
}

type fileDirEntry struct {
	name string
	info os.FileInfo
}

func (e fileDirEntry) Name() string               { return e.name }
func (e fileDirEntry) IsDir() bool                { return e.info.IsDir() }
func (e fileDirEntry) Type() fs.FileMode          { return e.info.Mode().Type() }
func (e fileDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

type dirInfo struct {
	name string
	mode fs.FileMode
}

func (d dirInfo) Name() string       { return d.name }
func (d dirInfo) Size() int64        { return 0 }
func (d dirInfo) Mode() fs.FileMode  { return d.mode }
func (d dirInfo) ModTime() time.Time { return time.Time{} }
func (d dirInfo) IsDir() bool        { return d.mode.IsDir() }
func (d dirInfo) Sys() interface{}   { return nil }
