// Package registry keeps the validated theme token sets known to a client.
package registry

import (
	"sort"
	"sync"

	"github.com/alexisbeaulieu97/themer/internal/theme"
)

// Registry maps theme names to validated token sets. The last registration
// for a name wins. A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	themes map[string]theme.Tokens
	order  []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		themes: make(map[string]theme.Tokens),
	}
}

// Register validates tokens and inserts or overwrites the entry for its name.
// Invalid tokens are rejected with an error matching errors.ErrInvalidTokens.
func (r *Registry) Register(tokens theme.Tokens) error {
	if err := tokens.Check(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.themes[tokens.Name]; !exists {
		r.order = append(r.order, tokens.Name)
	}
	r.themes[tokens.Name] = tokens.Clone()
	return nil
}

// RegisterBatch registers every valid element of list. Invalid elements are
// skipped without affecting their siblings; the skipped indexes are returned
// alongside the number registered.
func (r *Registry) RegisterBatch(list []theme.Tokens) (registered int, rejected []int) {
	valid := make([]theme.Tokens, 0, len(list))
	for i, tokens := range list {
		if err := tokens.Check(); err != nil {
			rejected = append(rejected, i)
			continue
		}
		valid = append(valid, tokens)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tokens := range valid {
		if _, exists := r.themes[tokens.Name]; !exists {
			r.order = append(r.order, tokens.Name)
		}
		r.themes[tokens.Name] = tokens.Clone()
	}
	return len(valid), rejected
}

// Get retrieves a copy of the tokens registered under name.
func (r *Registry) Get(name string) (theme.Tokens, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens, ok := r.themes[name]
	if !ok {
		return theme.Tokens{}, false
	}
	return tokens.Clone(), true
}

// All returns copies of every registered token set in first-registration
// order.
func (r *Registry) All() []theme.Tokens {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]theme.Tokens, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.themes[name].Clone())
	}
	return result
}

// Names returns the registered theme names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	sort.Strings(names)
	return names
}

// Len reports the number of registered themes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.themes)
}
