package rules

import (
	"fmt"
	"strings"
	"sync"
)

var (
	registry = make(map[string]Rule)
	// order preserves registration order, which is also the report order.
	order []string
	mu    sync.RWMutex
)

func Register(r Rule) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[r.ID()]; exists {
		panic(fmt.Sprintf("rule %s already registered", r.ID()))
	}
	registry[r.ID()] = r
	order = append(order, r.ID())
}

func List() []Rule {
	mu.RLock()
	defer mu.RUnlock()
	return listLocked()
}

func listLocked() []Rule {
	out := make([]Rule, 0, len(order))
	for _, id := range order {
		out = append(out, registry[id])
	}
	return out
}

// Resolve selects rules by a comma-separated list of IDs. The selection keeps
// registration order regardless of the order IDs are given in.
func Resolve(selector string) ([]Rule, error) {
	mu.RLock()
	defer mu.RUnlock()

	if strings.TrimSpace(selector) == "" {
		return listLocked(), nil
	}

	want := make(map[string]bool)
	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := registry[id]; !ok {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
		want[id] = true
	}

	var selected []Rule
	for _, id := range order {
		if want[id] {
			selected = append(selected, registry[id])
		}
	}
	return selected, nil
}
