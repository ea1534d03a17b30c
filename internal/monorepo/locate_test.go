package monorepo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreos/monorepo/internal/errs"
)

func TestFindRootLocatesImmediateCodebase(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "monorepository")
	codebaseDir := filepath.Join(root, "alpha")
	if err := os.MkdirAll(codebaseDir, 0o755); err != nil {
		t.Fatal(err)
	}

	gotRoot, gotName, err := FindRoot(codebaseDir)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, root, gotRoot)
	assert.Equal(t, "alpha", gotName)
}

func TestFindRootLocatesFromNestedSubdirectory(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "monorepository")
	nested := filepath.Join(root, "alpha", "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	gotRoot, gotName, err := FindRoot(nested)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, root, gotRoot)
	assert.Equal(t, "alpha", gotName)
}

func TestFindRootFailsWhenNoMonorepositoryAncestor(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "somewhere", "else")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := FindRoot(dir)
	if !assert.Error(t, err) {
		t.FailNow()
	}
	assert.True(t, errors.Is(err, errs.ErrMonorepositoryNotFound))
}
