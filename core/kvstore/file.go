package kvstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore keeps one JSON file per key under a directory. This is the
// server-side stand-in for the browser localStorage the storefront UI uses.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	_ = os.MkdirAll(dir, 0755)
	return &FileStore{dir: dir}
}

// envelope wraps the stored value so the file backend can carry expiry.
type envelope struct {
	ExpiresAt int64           `json:"expires_at"` // unix seconds; 0 = never
	Value     json.RawMessage `json:"value"`
}

// keys use ":" as a namespace separator; files cannot.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(key, ":", "__")+".json")
}

func (s *FileStore) keyFromFile(name string) string {
	name = strings.TrimSuffix(name, ".json")
	return strings.ReplaceAll(name, "__", ":")
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupt envelope: treat as absent, caller hydrates empty.
		return nil, ErrNotFound
	}
	if env.ExpiresAt > 0 && time.Now().Unix() > env.ExpiresAt {
		_ = os.Remove(s.path(key))
		return nil, ErrNotFound
	}
	return env.Value, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}
	env := envelope{ExpiresAt: expiresAt, Value: json.RawMessage(value)}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0644)
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		key := s.keyFromFile(e.Name())
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// PurgeExpired removes expired entries. Run from the sessionpurge cron job.
func (s *FileStore) PurgeExpired(ctx context.Context) (int, error) {
	keys, err := s.Keys(ctx, "")
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, key := range keys {
		if _, err := s.Get(ctx, key); err == ErrNotFound {
			// Get already removed the file if it had expired; count files
			// that are now gone.
			if _, statErr := os.Stat(s.path(key)); os.IsNotExist(statErr) {
				purged++
			}
		}
	}
	return purged, nil
}
