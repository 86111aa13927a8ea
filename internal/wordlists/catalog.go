package wordlists

import (
	"slices"
	"strings"
	"sync"
	"time"
)

// Catalog records the load state of every configured collection.
type Catalog struct {
	LastLoad    time.Time                  `json:"last_load"`
	Collections map[string]CollectionState `json:"collections"`
	mu          sync.RWMutex               `json:"-"`
}

// CollectionState stores the load state of a single collection.
type CollectionState struct {
	Name     string    `json:"name"`
	Sources  []string  `json:"sources"`
	Union    bool      `json:"union,omitempty"`
	Words    int       `json:"words"`
	Units    int       `json:"units"`
	LoadedAt time.Time `json:"loaded_at"`
	Error    string    `json:"error,omitempty"`
}

// Loaded reports whether the collection is available for searching.
func (s CollectionState) Loaded() bool {
	return s.Error == "" && !s.LoadedAt.IsZero()
}

// NewCatalog creates a new empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Collections: make(map[string]CollectionState),
	}
}

// Get returns the state of a collection.
func (c *Catalog) Get(name string) (CollectionState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	state, ok := c.Collections[name]
	return state, ok
}

// Set records the state of a collection.
func (c *Catalog) Set(state CollectionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Collections[state.Name] = state
}

// SetError records a load failure for a collection.
func (c *Catalog) SetError(name string, sources []string, err string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.Collections[name]
	state.Name = name
	state.Sources = sources
	state.Error = err
	state.LoadedAt = time.Time{}
	c.Collections[name] = state
}

// States returns all collection states ordered by name.
func (c *Catalog) States() []CollectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	states := make([]CollectionState, 0, len(c.Collections))
	for _, s := range c.Collections {
		states = append(states, s)
	}
	slices.SortFunc(states, func(a, b CollectionState) int {
		return strings.Compare(a.Name, b.Name)
	})
	return states
}

// LoadedNames returns the names of the collections available for searching,
// ordered by name.
func (c *Catalog) LoadedNames() []string {
	var names []string
	for _, s := range c.States() {
		if s.Loaded() {
			names = append(names, s.Name)
		}
	}
	return names
}

// WithErrors returns the collections that failed to load.
func (c *Catalog) WithErrors() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]string)
	for name, state := range c.Collections {
		if state.Error != "" {
			result[name] = state.Error
		}
	}
	return result
}

// UpdateLastLoad updates the last load timestamp.
func (c *Catalog) UpdateLastLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastLoad = time.Now()
}
