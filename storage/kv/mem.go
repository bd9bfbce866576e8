package kv

import "sync"

// MemStore is an in-memory Store, mainly for tests.
type MemStore struct {
	t     map[string]string
	mutex sync.RWMutex
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{t: make(map[string]string)}
}

func (st *MemStore) Get(key string) (string, bool, error) {
	st.mutex.RLock()
	defer st.mutex.RUnlock()
	val, ok := st.t[key]
	return val, ok, nil
}

func (st *MemStore) Set(key, value string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.t[key] = value
	return nil
}

func (st *MemStore) Remove(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	delete(st.t, key)
	return nil
}
