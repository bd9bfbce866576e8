package kv

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists keys as one JSON object in a single file. Every write
// rewrites the whole file atomically (temp file + rename); last writer wins.
type FileStore struct {
	path  string
	mutex sync.Mutex
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (st *FileStore) Get(key string) (string, bool, error) {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	data, err := st.load()
	if err != nil {
		return "", false, err
	}
	val, ok := data[key]
	return val, ok, nil
}

func (st *FileStore) Set(key, value string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	data, err := st.load()
	if err != nil {
		return err
	}
	data[key] = value
	return st.save(data)
}

func (st *FileStore) Remove(key string) error {
	st.mutex.Lock()
	defer st.mutex.Unlock()

	data, err := st.load()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return st.save(data)
}

func (st *FileStore) load() (map[string]string, error) {
	raw, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrapf(err, "reading %s", st.path)
	}
	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		// a corrupt file must never crash the app; start over
		return make(map[string]string), nil
	}
	return data, nil
}

func (st *FileStore) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshalling store")
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(st.path))
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, st.path), "replacing %s", st.path)
}
