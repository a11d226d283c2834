package storage

import (
	"context"
	"errors"

	"partybot/internal/models"
)

// ErrNotFound is returned when nothing has been persisted yet
var ErrNotFound = errors.New("not found")

// SettingsStore is a key-value store for the event settings
type SettingsStore interface {
	// Get returns every persisted key, or ErrNotFound if nothing was saved yet
	Get(ctx context.Context) (map[string]string, error)
	// Set overwrites the persisted values with the complete given map
	Set(ctx context.Context, values map[string]string) error
}

// UserRegistry is the append-only set of chat ids used for broadcasts
type UserRegistry interface {
	// List returns every stored id, empty if none were added yet
	List(ctx context.Context) ([]int64, error)
	// Add appends the id if it is absent and reports whether it was added
	Add(ctx context.Context, id int64) (bool, error)
}

// Recorder appends completed registrations to a tabular store
type Recorder interface {
	// Append writes one record to the partition, creating it with a header row on first use
	Append(ctx context.Context, partition string, rec models.Registration) error
}

// TemplateStore keeps the free-text message shown before registration
type TemplateStore interface {
	// Get returns the stored text, empty if none
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, text string) error
}

// RemoteFileStore backs up local files by name
type RemoteFileStore interface {
	// Download fetches the named file to localPath and reports whether it existed remotely
	Download(ctx context.Context, name, localPath string) (bool, error)
	// Upload creates or replaces the named remote file with the contents of localPath
	Upload(ctx context.Context, localPath, name string) error
}
