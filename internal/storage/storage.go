package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// BaseDir returns the root data directory (~/.wts), or $WTS_HOME when set.
func BaseDir() (string, error) {
	if dir := os.Getenv("WTS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".wts"), nil
}

// YearPath returns the ledger file for the given year.
func YearPath(dir string, year int) string {
	return filepath.Join(dir, strconv.Itoa(year)+".txt")
}

// ReadLines returns the lines of the file at path without their line
// terminators. A missing file has no lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// locks serializes File handles per path within the process.
var locks sync.Map

func lockFor(path string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// File is an exclusive handle on one ledger file, held for a whole
// read-then-append cycle. No other File for the same path can be opened in
// this process until Close.
type File struct {
	path   string
	f      *os.File
	mu     *sync.Mutex
	closed bool
}

// Open acquires the ledger file at path, creating it and its directory if absent.
func Open(path string) (*File, error) {
	mu := lockFor(path)
	mu.Lock()

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("storage error creating directories: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		mu.Unlock()
		return nil, fmt.Errorf("storage error opening %s: %w", path, err)
	}
	return &File{path: path, f: f, mu: mu}, nil
}

// Path returns the file's path.
func (f *File) Path() string {
	return f.path
}

// Lines reads the whole file from the beginning.
func (f *File) Lines() ([]string, error) {
	if _, err := f.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("storage error seeking %s: %w", f.path, err)
	}
	lines, err := readLines(f.f)
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", f.path, err)
	}
	return lines, nil
}

// Append writes text followed by a newline at the end of the file.
func (f *File) Append(text string) error {
	if _, err := io.WriteString(f.f, text+"\n"); err != nil {
		return fmt.Errorf("storage error writing %s: %w", f.path, err)
	}
	return nil
}

// Close releases the handle. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	defer f.mu.Unlock()
	if err := f.f.Close(); err != nil {
		return fmt.Errorf("storage error closing %s: %w", f.path, err)
	}
	return nil
}
