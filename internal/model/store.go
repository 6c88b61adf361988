// Package model locates detection model artifacts on disk and loads them
// lazily.
//
// Artifacts live in a versioned layout:
//
//	<dir>/<name>/<version>/model.pt
//	<dir>/<name>/<version>/metadata.yaml
//	<dir>/<name>/<version>/labels.yaml
package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	WeightsFile  = "model.pt"
	MetadataFile = "metadata.yaml"
	LabelsFile   = "labels.yaml"
)

// Metadata describes one model version.
type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description"`
	InputSize   int      `yaml:"input_size"`
	Classes     []string `yaml:"classes"`
}

type labelsFile struct {
	Names []string `yaml:"names"`
}

// Store resolves artifacts under Dir.
type Store struct {
	Dir string
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// Path returns the location of file for the given model version.
func (s Store) Path(name, version, file string) (string, error) {
	if !validSegment(name) {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	if !validSegment(version) {
		return "", fmt.Errorf("invalid model version %q", version)
	}
	return filepath.Join(s.Dir, name, version, file), nil
}

// Metadata reads metadata.yaml for the given model version.
func (s Store) Metadata(name, version string) (*Metadata, error) {
	path, err := s.Path(name, version, MetadataFile)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}
	var md Metadata
	if err := yaml.Unmarshal(b, &md); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if md.Name == "" {
		md.Name = name
	}
	if md.Version == "" {
		md.Version = version
	}
	return &md, nil
}

// Classes reads the names list from labels.yaml. A missing file yields an
// empty list.
func (s Store) Classes(name, version string) ([]string, error) {
	path, err := s.Path(name, version, LabelsFile)
	if err != nil {
		return nil, err
	}
	return readClasses(path)
}

func readClasses(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read model labels: %w", err)
	}
	var lf labelsFile
	if err := yaml.Unmarshal(b, &lf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if lf.Names == nil {
		return []string{}, nil
	}
	return lf.Names, nil
}
