package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileSHA1HexMatchesKnownVector(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileSHA1Hex(path)
	if err != nil {
		t.Fatal(err)
	}
	// sha1sum of "hello\n"
	assert.Equal(t, "f572d396fae9206628714fb2ce00f72e94f2258", got)
}

func TestFileSHA1HexSpansMultipleChunks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.bin")
	content := make([]byte, chunkSize*3+17)
	for i := range content {
		content[i] = byte(i % 251)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := FileSHA1Hex(path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FileSHA1Hex(path)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, first, second, "hashing the same content twice must be deterministic")
}

func TestSortedFileListIsSortedAndExcludesDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "c/nested.txt"} {
		full := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := SortedFileList(dir)
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, files, 3)
	for i := 1; i < len(files); i++ {
		assert.LessOrEqual(t, files[i-1], files[i], "file list must be sorted ascending")
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			t.Fatal(err)
		}
		assert.False(t, info.IsDir(), "directories must not appear in the file list")
	}
}

func TestSortedFileListIncludesSymlinksWithoutFollowing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	files, err := SortedFileList(dir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Contains(t, files, link)
	assert.Contains(t, files, target)
}
