package cas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreos/monorepo/internal/fsutil"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifacts-alpha-deadbeef.json")

	m := &Manifest{
		CodeBase: "alpha",
		Prefix:   "/some/prefix",
		Hash:     "deadbeef",
		Files: map[string]fsutil.FileRecord{
			"/some/prefix/share/alpha.txt": {Hash: "abc123", Mode: 0o100644},
		},
		SymbolicLinks: map[string]string{
			"/some/prefix/lib/libx.so": "libx.so.1",
		},
	}

	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, m.CodeBase, got.CodeBase)
	assert.Equal(t, m.Prefix, got.Prefix)
	assert.Equal(t, m.Hash, got.Hash)
	assert.Equal(t, m.Files, got.Files)
	assert.Equal(t, m.SymbolicLinks, got.SymbolicLinks)
}

func TestLoadMissingManifestReportsNotExist(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "does-not-exist.json"))
	if !assert.Error(t, err) {
		t.FailNow()
	}
	assert.True(t, os.IsNotExist(err))
}
