package archive

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateProducesArchive(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available")
	}

	srcDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(srcDir, "share"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "share", "alpha.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	destPath := filepath.Join(t.TempDir(), "alpha.tar.xz")

	var d Driver
	if err := d.Create(context.Background(), destPath, srcDir); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		t.Fatal(err)
	}
	assert.Greater(t, info.Size(), int64(0))
}

func TestCreateFailsOnMissingSource(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not available")
	}

	destPath := filepath.Join(t.TempDir(), "missing.tar.xz")

	var d Driver
	err := d.Create(context.Background(), destPath, filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
