package codebase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreos/monorepo/internal/buildctx"
)

func writeCodebase(t *testing.T, root, name string, metadata string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "metadata.yaml"), []byte(metadata), 0o644); err != nil {
		t.Fatal(err)
	}
	for relPath, content := range files {
		full := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func newTestContext(t *testing.T, root string) *buildctx.Context {
	t.Helper()
	return &buildctx.Context{
		MonorepoRoot:   root,
		Prefix:         filepath.Join(t.TempDir(), "prefix"),
		MetadataPrefix: filepath.Join(t.TempDir(), "metadata_prefix"),
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "alpha", "", map[string]string{"build": "#!/bin/sh\n"})

	ctx := newTestContext(t, root)

	reg1 := NewRegistry(ctx)
	cb1, err := reg1.Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	reg2 := NewRegistry(ctx)
	cb2, err := reg2.Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, cb1.HashHex(), cb2.HashHex())
}

func TestFingerprintChangesWithSourceContent(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "alpha", "", map[string]string{"build": "echo one"})
	ctx := newTestContext(t, root)
	cb1, err := NewRegistry(ctx).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	writeCodebase(t, root, "alpha", "", map[string]string{"build": "echo two"})
	cb2, err := NewRegistry(ctx).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, cb1.HashHex(), cb2.HashHex())
}

func TestFingerprintChangesWithPrefix(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "alpha", "", map[string]string{"build": "echo hi"})

	ctx1 := newTestContext(t, root)
	cb1, err := NewRegistry(ctx1).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	ctx2 := newTestContext(t, root)
	ctx2.Prefix = filepath.Join(t.TempDir(), "other-prefix")
	cb2, err := NewRegistry(ctx2).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, cb1.HashHex(), cb2.HashHex())
}

func TestFingerprintChangesWithMode(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "alpha", "", map[string]string{"build": "echo hi"})
	if err := os.Chmod(filepath.Join(root, "alpha", "build"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(t, root)
	cb1, err := NewRegistry(ctx).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chmod(filepath.Join(root, "alpha", "build"), 0o755); err != nil {
		t.Fatal(err)
	}
	cb2, err := NewRegistry(ctx).Get("alpha")
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, cb1.HashHex(), cb2.HashHex())
}

func TestFingerprintAbsorbsDependencyDigestsInOrder(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "base1", "", map[string]string{"build": "echo base1"})
	writeCodebase(t, root, "base2", "", map[string]string{"build": "echo base2"})
	writeCodebase(t, root, "forward", "dependencies: [base1, base2]\n", map[string]string{"build": "echo forward"})
	writeCodebase(t, root, "reversed", "dependencies: [base2, base1]\n", map[string]string{"build": "echo forward"})

	ctx := newTestContext(t, root)
	reg := NewRegistry(ctx)

	forward, err := reg.Get("forward")
	if err != nil {
		t.Fatal(err)
	}
	reversed, err := reg.Get("reversed")
	if err != nil {
		t.Fatal(err)
	}

	assert.NotEqual(t, forward.HashHex(), reversed.HashHex(),
		"dependency fingerprints must be absorbed in declared order")
}

func TestFingerprintIsStableAcrossDependencyRebuild(t *testing.T) {
	root := t.TempDir()
	writeCodebase(t, root, "base", "", map[string]string{"build": "echo base"})
	writeCodebase(t, root, "top", "dependencies: [base]\n", map[string]string{"build": "echo top"})

	ctx := newTestContext(t, root)
	top1, err := NewRegistry(ctx).Get("top")
	if err != nil {
		t.Fatal(err)
	}
	top2, err := NewRegistry(ctx).Get("top")
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, top1.HashHex(), top2.HashHex())
}
