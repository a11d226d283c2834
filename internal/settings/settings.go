// Package settings owns the singleton event settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"partybot/internal/models"
	"partybot/internal/storage"
)

// Manager holds the current event settings and persists admin edits
type Manager struct {
	mu       sync.RWMutex
	store    storage.SettingsStore
	current  models.EventSettings
	defaults models.EventSettings
	logger   *zap.Logger
}

// NewManager creates a manager that serves defaults until Load
func NewManager(store storage.SettingsStore, defaults models.EventSettings, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		current:  defaults,
		defaults: defaults,
		logger:   logger,
	}
}

// Load merges persisted values over the defaults. When nothing is persisted
// the defaults are written first.
func (m *Manager) Load(ctx context.Context) (models.EventSettings, error) {
	values, err := m.store.Get(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		m.logger.Info("No persisted settings, writing defaults")
		if err := m.store.Set(ctx, m.defaults.ToMap()); err != nil {
			return m.Current(), fmt.Errorf("failed to create settings: %w", err)
		}
		values = m.defaults.ToMap()
	} else if err != nil {
		return m.Current(), fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := m.defaults.Merge(values)

	m.mu.Lock()
	m.current = loaded
	m.mu.Unlock()

	m.logger.Info("Settings loaded",
		zap.String("event_date", loaded.Date),
		zap.String("event_time", loaded.Time),
		zap.String("event_location", loaded.Location),
	)
	return loaded, nil
}

// Current returns a copy of the settings in effect
func (m *Manager) Current() models.EventSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Apply replaces the settings in memory and persists the complete object.
// The in-memory value is kept even if persisting fails.
func (m *Manager) Apply(ctx context.Context, s models.EventSettings) error {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if err := m.store.Set(ctx, s.ToMap()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	m.logger.Info("Settings saved",
		zap.String("event_date", s.Date),
		zap.String("event_time", s.Time),
		zap.String("event_location", s.Location),
	)
	return nil
}
