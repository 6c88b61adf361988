package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact is a model version whose weights have been checked on disk.
type Artifact struct {
	Weights string
	Size    int64
	classes []string
}

func (a *Artifact) Classes() []string { return a.classes }

// ArtifactLoader verifies that the weights file is a non-empty regular file
// and serves the classes declared beside it. labels.yaml wins over the
// metadata classes. It does not run inference.
type ArtifactLoader struct{}

func (ArtifactLoader) Load(ctx context.Context, weightsPath string, md *Metadata) (Detector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fi, err := os.Stat(weightsPath)
	if err != nil {
		return nil, fmt.Errorf("stat weights: %w", err)
	}
	if !fi.Mode().IsRegular() || fi.Size() == 0 {
		return nil, fmt.Errorf("weights %s is not a non-empty file", weightsPath)
	}

	classes, err := readClasses(filepath.Join(filepath.Dir(weightsPath), LabelsFile))
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 && md != nil {
		classes = md.Classes
	}
	return &Artifact{Weights: weightsPath, Size: fi.Size(), classes: classes}, nil
}
