// Package file implements the flat-file stores kept in the data directory,
// optionally mirrored to a remote file store.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"partybot/internal/storage"
)

// File names inside the data directory, also used as remote names
const (
	SettingsFileName = "settings.json"
	UsersFileName    = "users.txt"
	TemplateFileName = "registration_message.txt"
)

// backedFile is a local file with an optional remote copy
type backedFile struct {
	path   string
	name   string
	remote storage.RemoteFileStore
	logger *zap.Logger

	checked bool // remote copy already looked up
}

func newBackedFile(dir, name string, remote storage.RemoteFileStore, logger *zap.Logger) backedFile {
	return backedFile{
		path:   filepath.Join(dir, name),
		name:   name,
		remote: remote,
		logger: logger,
	}
}

// exists reports whether the local copy exists
func (f backedFile) exists() (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", f.path, err)
}

// restore fetches the remote copy when the local one is missing. The remote
// is consulted at most once per process. Remote failures are logged and
// ignored.
func (f *backedFile) restore(ctx context.Context) {
	if f.remote == nil || f.checked {
		return
	}
	ok, err := f.exists()
	if err != nil {
		return
	}
	f.checked = true
	if ok {
		return
	}

	found, err := f.remote.Download(ctx, f.name, f.path)
	if err != nil {
		f.logger.Error("Failed to download file from remote store",
			zap.String("file_name", f.name),
			zap.Error(err),
		)
		// a partial download must not shadow the defaults
		_ = os.Remove(f.path)
		return
	}
	if found {
		f.logger.Info("Restored file from remote store", zap.String("file_name", f.name))
	}
}

// backup uploads the local copy. Failures are logged and ignored.
func (f backedFile) backup(ctx context.Context) {
	if f.remote == nil {
		return
	}
	if err := f.remote.Upload(ctx, f.path, f.name); err != nil {
		f.logger.Error("Failed to upload file to remote store",
			zap.String("file_name", f.name),
			zap.Error(err),
		)
		return
	}
	f.logger.Debug("Uploaded file to remote store", zap.String("file_name", f.name))
}

// writeAtomic replaces the file through a temp file in the same directory
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
