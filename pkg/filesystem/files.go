package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// ReadError reports a failed filesystem operation on a path.
type ReadError struct {
	Path string
	Op   string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile returns the content of path as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Op: "read", Err: err}
	}
	return string(data), nil
}

// ReadDirNames lists the entry names of dir, sorted. A missing directory
// yields an empty list rather than an error.
func ReadDirNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &ReadError{Path: dir, Op: "readdir", Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
