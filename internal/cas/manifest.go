// Package cas implements the content-addressable store and the
// manifest format mapping a codebase fingerprint to its output
// manifest.
package cas

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/coreos/monorepo/internal/fsutil"
)

// fileEntry is the ["<hash>", <mode>] pair the manifest JSON uses for
// each output file.
type fileEntry [2]interface{}

// Manifest is the JSON document recorded at
// <metadata_prefix>/artifacts-<name>-<hashhex>.json.
type Manifest struct {
	CodeBase      string                      `json:"code_base"`
	Prefix        string                      `json:"prefix"`
	Hash          string                      `json:"hash"`
	Files         map[string]fsutil.FileRecord `json:"-"`
	SymbolicLinks map[string]string            `json:"symbolic_links"`
}

// manifestWire is the on-disk JSON shape, kept separate from Manifest
// so FileRecord (Go-typed) can round-trip through the [hash, mode] pair
// array.
type manifestWire struct {
	CodeBase      string               `json:"code_base"`
	Prefix        string               `json:"prefix"`
	Hash          string               `json:"hash"`
	Files         map[string]fileEntry `json:"files"`
	SymbolicLinks map[string]string    `json:"symbolic_links"`
}

// Load reads and parses the manifest at path. A missing file is
// reported via os.IsNotExist on the returned error so callers can treat
// it as a cache miss rather than a hard failure.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wire manifestWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}

	m := &Manifest{
		CodeBase:      wire.CodeBase,
		Prefix:        wire.Prefix,
		Hash:          wire.Hash,
		SymbolicLinks: wire.SymbolicLinks,
		Files:         make(map[string]fsutil.FileRecord, len(wire.Files)),
	}
	for path, entry := range wire.Files {
		hashVal, _ := entry[0].(string)
		modeVal, _ := entry[1].(float64)
		m.Files[path] = fsutil.FileRecord{Hash: hashVal, Mode: uint32(modeVal)}
	}
	return m, nil
}

// Save serializes m to path as JSON.
func Save(path string, m *Manifest) error {
	wire := manifestWire{
		CodeBase:      m.CodeBase,
		Prefix:        m.Prefix,
		Hash:          m.Hash,
		SymbolicLinks: m.SymbolicLinks,
		Files:         make(map[string]fileEntry, len(m.Files)),
	}
	for path, rec := range m.Files {
		wire.Files[path] = fileEntry{rec.Hash, rec.Mode}
	}

	raw, err := json.Marshal(wire)
	if err != nil {
		return errors.Wrap(err, "serializing manifest")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "writing manifest %s", path)
	}
	return nil
}
