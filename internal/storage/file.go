package storage

import (
	"encoding/json"
	"os"
	"sync"
)

// FileKV keeps the whole store in one JSON file mapping key to string
// value. Writes go through on every Set; a missing or unreadable file
// simply starts the store empty.
type FileKV struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

func NewFileKV(path string) *FileKV {
	kv := &FileKV{path: path, values: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		return kv
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		// unreadable file: keep it on disk, start empty in memory
		return kv
	}
	kv.values = values
	return kv
}

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return f.flush()
}

func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return f.flush()
}

func (f *FileKV) flush() error {
	raw, err := json.Marshal(f.values)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0644)
}
