package rules

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
)

// Load reads a rule table from the YAML file at path, normalizes it, and
// validates it.  The file replaces the built-in table wholesale; partial
// overrides are not supported because a half-merged lexicon is harder to
// reason about than a full copy.
func Load(path string) (*Table, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("rules: failed to read rule file %q: %w", path, err)
	}

	t := &Table{}
	if err := v.Unmarshal(t); err != nil {
		return nil, fmt.Errorf("rules: failed to unmarshal rule file %q: %w", path, err)
	}

	t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("rules: rule file %q invalid: %w", path, err)
	}
	return t, nil
}

// Provider hands out the current rule table and supports hot-swapping it
// when the backing file changes.  The zero value is not usable; construct
// with NewProvider.
type Provider struct {
	mu    sync.RWMutex
	table *Table
}

// NewProvider returns a Provider serving the given table, or the built-in
// defaults when table is nil.
func NewProvider(table *Table) *Provider {
	if table == nil {
		table = Default()
	}
	return &Provider{table: table}
}

// Current returns the active rule table.  The returned table must be
// treated as read-only.
func (p *Provider) Current() *Table {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.table
}

// Swap replaces the active table.  Nil tables are ignored.
func (p *Provider) Swap(t *Table) {
	if t == nil {
		return
	}
	p.mu.Lock()
	p.table = t
	p.mu.Unlock()
}

// Watch monitors path and swaps in each successfully parsed revision of the
// rule file.  A revision that fails to parse or validate is skipped with a
// warning so a bad edit can never take down a running analysis service.
// Non-blocking; the watcher goroutine is managed by viper.
func (p *Provider) Watch(path string, logger logging.Logger) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	_ = v.ReadInConfig()

	v.OnConfigChange(func(_ fsnotify.Event) {
		t, err := Load(path)
		if err != nil {
			logger.Warn("ignoring invalid rule file revision",
				logging.String("path", path),
				logging.Err(err))
			return
		}
		p.Swap(t)
		logger.Info("rule table reloaded", logging.String("path", path))
	})
	v.WatchConfig()
}
