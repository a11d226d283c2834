package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"partybot/internal/storage"
)

// TemplateStore keeps the pre-registration message as plain text
type TemplateStore struct {
	mu   sync.Mutex
	file backedFile
}

// NewTemplateStore creates a template store in dir. remote may be nil.
func NewTemplateStore(dir string, remote storage.RemoteFileStore, logger *zap.Logger) *TemplateStore {
	return &TemplateStore{file: newBackedFile(dir, TemplateFileName, remote, logger)}
}

// Get returns the stored text, empty if none
func (t *TemplateStore) Get(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.file.restore(ctx)

	data, err := os.ReadFile(t.file.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read message template: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Set replaces the stored text
func (t *TemplateStore) Set(ctx context.Context, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := writeAtomic(t.file.path, []byte(text)); err != nil {
		return fmt.Errorf("failed to save message template: %w", err)
	}
	t.file.backup(ctx)
	return nil
}
