package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/work-time-saver/internal/storage"
)

func TestYearPath(t *testing.T) {
	got := storage.YearPath("/data", 2019)
	want := filepath.Join("/data", "2019.txt")
	if got != want {
		t.Errorf("YearPath = %q, want %q", got, want)
	}
}

func TestBaseDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WTS_HOME", dir)
	got, err := storage.BaseDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("BaseDir = %q, want %q", got, dir)
	}
}

func TestReadLinesNotExist(t *testing.T) {
	lines, err := storage.ReadLines(filepath.Join(t.TempDir(), "2019.txt"))
	if err != nil {
		t.Fatalf("ReadLines on missing file: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("ReadLines = %d lines, want 0", len(lines))
	}
}

func TestReadLinesStripsTerminators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2019.txt")
	if err := os.WriteFile(path, []byte("a\r\n\nb\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	lines, err := storage.ReadLines(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "", "b"}
	if len(lines) != len(want) {
		t.Fatalf("ReadLines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestOpenAppendAndLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "2019.txt")

	f, err := storage.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	lines, err := f.Lines()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("new file has %d lines, want 0", len(lines))
	}
	if err := f.Append("first"); err != nil {
		t.Fatal(err)
	}
	if err := f.Append("second\n"); err != nil {
		t.Fatal(err)
	}
	lines, err = f.Lines()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || lines[0] != "first" || lines[1] != "second" || lines[2] != "" {
		t.Errorf("Lines() = %q", lines)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestOpenIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2019.txt")
	f, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	opened := make(chan *storage.File)
	go func() {
		g, err := storage.Open(path)
		if err != nil {
			t.Error(err)
			close(opened)
			return
		}
		opened <- g
	}()

	select {
	case <-opened:
		t.Fatal("second Open succeeded while the first handle was held")
	case <-time.After(50 * time.Millisecond):
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	g := <-opened
	if g == nil {
		t.Fatal("second Open failed")
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestCloseTwice(t *testing.T) {
	f, err := storage.Open(filepath.Join(t.TempDir(), "2019.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
