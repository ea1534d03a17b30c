package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalUploaderCopiesArchiveIntoArtifactsDir(t *testing.T) {
	home := t.TempDir()
	srcDir := t.TempDir()
	archivePath := filepath.Join(srcDir, "alpha-2026-01-02T15-04-05-deadbeef.tar.xz")
	if err := os.WriteFile(archivePath, []byte("archive-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	u := &LocalUploader{HomeDir: home}
	if err := u.Upload(context.Background(), archivePath); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(home, "monorepo_artifacts", "alpha-2026-01-02T15-04-05-deadbeef.tar.xz")
	content, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "archive-bytes", string(content))
}

func TestLocalUploaderCreatesArtifactsDirIfMissing(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "home")
	srcDir := t.TempDir()
	archivePath := filepath.Join(srcDir, "x.tar.xz")
	if err := os.WriteFile(archivePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	u := &LocalUploader{HomeDir: home}
	if err := u.Upload(context.Background(), archivePath); err != nil {
		t.Fatal(err)
	}

	assert.DirExists(t, filepath.Join(home, "monorepo_artifacts"))
}
