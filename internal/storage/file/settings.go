package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"partybot/internal/storage"
)

// SettingsStore keeps the event settings as a JSON object
type SettingsStore struct {
	mu   sync.Mutex
	file backedFile
}

// NewSettingsStore creates a settings store in dir. remote may be nil.
func NewSettingsStore(dir string, remote storage.RemoteFileStore, logger *zap.Logger) *SettingsStore {
	return &SettingsStore{file: newBackedFile(dir, SettingsFileName, remote, logger)}
}

// Get returns the persisted values or storage.ErrNotFound
func (s *SettingsStore) Get(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.file.restore(ctx)

	data, err := os.ReadFile(s.file.path)
	if os.IsNotExist(err) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return values, nil
}

// Set overwrites the settings file and uploads it
func (s *SettingsStore) Set(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(values, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := writeAtomic(s.file.path, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.file.backup(ctx)
	return nil
}
