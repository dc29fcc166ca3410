package storage

import "sync"

// Keys understood by the rest of the application.
const (
	KeyWalletType = "walletType"
	KeyLanguage   = "app-language"
)

// Store is a durable string key-value store. Absence of a key means
// "no prior value". Implementations must be safe for concurrent use.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// MemStore keeps values in memory only.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Namespaced prefixes every key so several clients can share one backing store.
type Namespaced struct {
	store  Store
	prefix string
}

func NewNamespaced(store Store, namespace string) *Namespaced {
	return &Namespaced{store: store, prefix: namespace + ":"}
}

func (n *Namespaced) Get(key string) (string, bool, error) { return n.store.Get(n.prefix + key) }
func (n *Namespaced) Set(key, value string) error         { return n.store.Set(n.prefix+key, value) }
func (n *Namespaced) Remove(key string) error             { return n.store.Remove(n.prefix + key) }
