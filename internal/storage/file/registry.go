package file

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"partybot/internal/storage"
)

// Registry stores chat ids one per line
type Registry struct {
	mu     sync.Mutex
	file   backedFile
	logger *zap.Logger
}

// NewRegistry creates a registry in dir. remote may be nil.
func NewRegistry(dir string, remote storage.RemoteFileStore, logger *zap.Logger) *Registry {
	return &Registry{
		file:   newBackedFile(dir, UsersFileName, remote, logger),
		logger: logger,
	}
}

// List returns every stored id
func (r *Registry) List(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.file.restore(ctx)
	data, err := r.readRaw()
	if err != nil {
		return nil, err
	}
	return r.parse(data)
}

// Add appends id unless it is already present. The file is re-read under
// the lock so external edits are honoured.
func (r *Registry) Add(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.file.restore(ctx)

	data, err := r.readRaw()
	if err != nil {
		return false, err
	}
	ids, err := r.parse(data)
	if err != nil {
		return false, err
	}
	for _, existing := range ids {
		if existing == id {
			return false, nil
		}
	}

	line := strconv.FormatInt(id, 10) + "\n"
	// keep one id per line even if the file was edited without a trailing newline
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = "\n" + line
	}
	if err := r.appendLine(line); err != nil {
		return false, err
	}
	r.logger.Info("User added to registry", zap.Int64("chat_id", id))

	r.file.backup(ctx)
	return true, nil
}

func (r *Registry) readRaw() ([]byte, error) {
	data, err := os.ReadFile(r.file.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	return data, nil
}

func (r *Registry) parse(data []byte) ([]int64, error) {
	ids := make([]int64, 0)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			r.logger.Warn("Skipping malformed registry line", zap.String("line", line))
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan registry: %w", err)
	}
	return ids, nil
}

func (r *Registry) appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(r.file.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(r.file.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to registry: %w", err)
	}
	return nil
}
