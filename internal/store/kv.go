// Package store provides the durable persistence substrate and the
// interaction store built on top of it.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vaultfeed/vaultfeed/internal/domain"
)

var bucketVault = []byte("vault")

// DiskKV implements domain.KV on a single-file BoltDB database.
type DiskKV struct {
	db *bolt.DB
}

// OpenDiskKV opens (creating if needed) the database under dir.
func OpenDiskKV(dir string) (*DiskKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "vaultfeed.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVault)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DiskKV{db: db}, nil
}

func (s *DiskKV) Get(key string) ([]byte, bool) {
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVault)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, data != nil
}

func (s *DiskKV) Set(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVault).Put([]byte(key), value)
	})
}

func (s *DiskKV) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketVault)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

func (s *DiskKV) Close() error {
	return s.db.Close()
}

// MemoryKV implements domain.KV in process memory. Used by tests and as a
// capacity-bounded substrate: when Quota > 0, writes that would push total
// stored bytes past it fail with domain.ErrQuotaExceeded.
type MemoryKV struct {
	mu    sync.RWMutex
	data  map[string][]byte
	Quota int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Quota > 0 {
		total := len(value)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.Quota {
			return domain.ErrQuotaExceeded
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
