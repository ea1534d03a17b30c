package codebase

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/coreos/monorepo/internal/errs"
)

// InputFile is a single entry of metadata.yaml's input_files sequence.
type InputFile struct {
	Name string `yaml:"name"`
}

// Metadata is the recognized content of <codebase>/metadata.yaml.
// Parsing is permissive: unrecognized keys are ignored rather than
// rejected.
type Metadata struct {
	Dependencies []string    `yaml:"dependencies,omitempty"`
	InputFiles   []InputFile `yaml:"input_files,omitempty"`

	// Environment is merged into the builder environment for this
	// codebase's own build command only.
	Environment map[string]string `yaml:"environment,omitempty"`
}

// InputFileNames returns the plain names the stager should fetch.
func (m Metadata) InputFileNames() []string {
	names := make([]string, 0, len(m.InputFiles))
	for _, f := range m.InputFiles {
		names = append(names, f.Name)
	}
	return names
}

// loadMetadata reads and parses <codeBaseRoot>/metadata.yaml.
func loadMetadata(codeBaseRoot string) (Metadata, error) {
	path := filepath.Join(codeBaseRoot, "metadata.yaml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, errors.Wrapf(errs.ErrMetadataMissing, "%s: %v", path, err)
	}

	var m Metadata
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Metadata{}, errors.Wrapf(errs.ErrMetadataMalformed, "%s: %v", path, err)
	}
	return m, nil
}
