package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/singleflight"
)

// Detector is a loaded model.
type Detector interface {
	Classes() []string
}

// Loader turns a weights file into a Detector.
type Loader interface {
	Load(ctx context.Context, weightsPath string, md *Metadata) (Detector, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, weightsPath string, md *Metadata) (Detector, error)

func (f LoaderFunc) Load(ctx context.Context, weightsPath string, md *Metadata) (Detector, error) {
	return f(ctx, weightsPath, md)
}

// Handle loads one model version on first use. Concurrent callers share a
// single in-flight load; a successful load is kept, a failed one is retried
// on the next call.
type Handle struct {
	store   Store
	loader  Loader
	name    string
	version string

	group singleflight.Group
	mu    sync.RWMutex
	det   Detector
}

func NewHandle(store Store, loader Loader, name, version string) *Handle {
	return &Handle{store: store, loader: loader, name: name, version: version}
}

// Loaded reports whether the detector is ready.
func (h *Handle) Loaded() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.det != nil
}

func (h *Handle) Get(ctx context.Context) (Detector, error) {
	h.mu.RLock()
	det := h.det
	h.mu.RUnlock()
	if det != nil {
		return det, nil
	}
	if h.loader == nil {
		return nil, fmt.Errorf("model %s/%s: no loader configured", h.name, h.version)
	}

	v, err, _ := h.group.Do(h.name+"@"+h.version, func() (any, error) {
		h.mu.RLock()
		cached := h.det
		h.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		path, err := h.store.Path(h.name, h.version, WeightsFile)
		if err != nil {
			return nil, err
		}
		md, err := h.store.Metadata(h.name, h.version)
		if err != nil {
			return nil, err
		}
		clog.FromContext(ctx).Infof("Loading model %s/%s from %s", h.name, h.version, path)
		d, err := h.loader.Load(ctx, path, md)
		if err != nil {
			return nil, fmt.Errorf("load model %s/%s: %w", h.name, h.version, err)
		}
		if d == nil {
			return nil, fmt.Errorf("load model %s/%s: loader returned no detector", h.name, h.version)
		}

		h.mu.Lock()
		h.det = d
		h.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Detector), nil
}
