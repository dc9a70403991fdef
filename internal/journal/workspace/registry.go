package workspace

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownWorkspace is returned for keys that are not registered.
var ErrUnknownWorkspace = errors.New("unknown workspace")

// Registry resolves workspace keys to their configuration.
type Registry struct {
	configs map[string]Config
	order   []string
}

// NewRegistry builds a registry from the given configs. Later configs with a
// duplicate key replace earlier ones.
func NewRegistry(configs ...Config) *Registry {
	r := &Registry{configs: make(map[string]Config, len(configs))}
	for _, c := range configs {
		if _, exists := r.configs[c.Key]; !exists {
			r.order = append(r.order, c.Key)
		}
		r.configs[c.Key] = c.Clone()
	}
	return r
}

// Default returns a registry with every built-in workspace.
func Default() *Registry {
	return NewRegistry(Stocks(), Forex(), Options())
}

// Builtin returns a registry restricted to the given built-in keys. An empty
// list enables every built-in workspace.
func Builtin(keys ...string) (*Registry, error) {
	if len(keys) == 0 {
		return Default(), nil
	}
	all := Default()
	var configs []Config
	for _, k := range keys {
		c, err := all.Get(k)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return NewRegistry(configs...), nil
}

// Get returns a copy of the configuration registered under key.
func (r *Registry) Get(key string) (Config, error) {
	c, ok := r.configs[key]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownWorkspace, key)
	}
	return c.Clone(), nil
}

// Keys returns the registered keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns copies of every registered configuration in registration order.
func (r *Registry) All() []Config {
	out := make([]Config, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.configs[k].Clone())
	}
	return out
}

// Tables returns every distinct table name across the registry, sorted.
func (r *Registry) Tables() []string {
	seen := make(map[string]struct{})
	for _, c := range r.configs {
		for _, t := range []string{c.Tables.Trades, c.Tables.Balance, c.Tables.Missed,
			c.Tables.Plan, c.Tables.ChecklistLogs, c.Tables.ChecklistAttempts} {
			if t != "" {
				seen[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
