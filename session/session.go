/*
Package session holds per-role UI state behind an explicit context object.

PURPOSE:
  The dashboards remember small pieces of state between visits: the active
  tab, the theme, simplified mode, the preferred currency and the advisor
  conversation. Instead of ambient globals, each role gets a Context that is
  loaded once and written through on every change.

LIFECYCLE:
  1. New(role, store)     - bind a role to a Store
  2. Load(ctx)            - read every saved value for the role
  3. Get / Set / Delete   - Set and Delete write through to the Store
                            before updating the in-memory copy

VALUES:
  Values are JSON documents (json.RawMessage). Set marshals any
  JSON-compatible Go value; Get unmarshals into a destination.

KEYS:
  Lowercase letters, digits, '.', '_' and '-', at most 64 characters.
  Well-known keys are declared as constants below.

CONCURRENCY:
  A Context is safe for concurrent use. Two Contexts for the same role share
  the Store but not the in-memory copy; the last write wins in the Store.

SEE ALSO:
  - memory.go:              In-memory Store for tests
  - store/sqlite/sqlite.go: session_values table
*/
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/warp/careerpath/role"
)

// Well-known keys.
const (
	KeyActiveTab      = "active_tab"
	KeyTheme          = "theme"
	KeySimplifiedMode = "simplified_mode"
	KeyCurrency       = "currency"
	KeyAdvisorHistory = "advisor.history"
)

const maxKeyLength = 64

var (
	// ErrInvalidKey is returned for keys outside the allowed alphabet.
	ErrInvalidKey = errors.New("invalid session key")

	// ErrInvalidValue is returned when a value is not valid JSON.
	ErrInvalidValue = errors.New("invalid session value")
)

// =============================================================================
// STORE
// =============================================================================

// Store persists session values per role.
type Store interface {
	LoadValues(ctx context.Context, r role.Role) (map[string]json.RawMessage, error)
	SaveValue(ctx context.Context, r role.Role, key string, value json.RawMessage) error
	DeleteValue(ctx context.Context, r role.Role, key string) error
}

// =============================================================================
// CONTEXT
// =============================================================================

// Context is the session state of one role.
type Context struct {
	role  role.Role
	store Store

	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// New binds a role to a store. Call Load before reading.
func New(r role.Role, store Store) (*Context, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", role.ErrUnknownRole, int(r))
	}
	return &Context{
		role:   r,
		store:  store,
		values: make(map[string]json.RawMessage),
	}, nil
}

// Open is New followed by Load.
func Open(ctx context.Context, r role.Role, store Store) (*Context, error) {
	c, err := New(r, store)
	if err != nil {
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Role returns the role this context belongs to.
func (c *Context) Role() role.Role {
	return c.role
}

// Load replaces the in-memory values with the stored ones.
func (c *Context) Load(ctx context.Context) error {
	values, err := c.store.LoadValues(ctx, c.role)
	if err != nil {
		return fmt.Errorf("loading %s session: %w", c.role, err)
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}

	c.mu.Lock()
	c.values = values
	c.mu.Unlock()
	return nil
}

// Get decodes the value for key into dst. It reports false when the key is unset.
func (c *Context) Get(key string, dst any) (bool, error) {
	c.mu.RLock()
	raw, ok := c.values[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decoding session key %q: %w", key, err)
	}
	return true, nil
}

// Raw returns the stored JSON for key.
func (c *Context) Raw(key string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.values[key]
	return raw, ok
}

// Set encodes v and writes it through to the store.
func (c *Context) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return c.SetRaw(ctx, key, raw)
}

// SetRaw writes an already encoded JSON value.
func (c *Context) SetRaw(ctx context.Context, key string, raw json.RawMessage) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !json.Valid(raw) {
		return fmt.Errorf("%w: key %q", ErrInvalidValue, key)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.SaveValue(ctx, c.role, key, raw); err != nil {
		return fmt.Errorf("saving session key %q: %w", key, err)
	}
	c.values[key] = append(json.RawMessage(nil), raw...)
	return nil
}

// Delete removes key from the store and from memory.
func (c *Context) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.DeleteValue(ctx, c.role, key); err != nil {
		return fmt.Errorf("deleting session key %q: %w", key, err)
	}
	delete(c.values, key)
	return nil
}

// Keys returns the set keys in sorted order.
func (c *Context) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of every value.
func (c *Context) Snapshot() map[string]json.RawMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]json.RawMessage, len(c.values))
	for k, v := range c.values {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// ValidateKey checks the key alphabet and length.
func ValidateKey(key string) error {
	if key == "" || len(key) > maxKeyLength {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '.', c == '_', c == '-':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
