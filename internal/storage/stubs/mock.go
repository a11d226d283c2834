package stubs

import (
	"context"
	"errors"
	"os"
	"sort"
	"sync"

	"partybot/internal/models"
	"partybot/internal/storage"
)

// ErrInjected is returned by stubs configured to fail
var ErrInjected = errors.New("injected failure")

// Settings is an in-memory settings store
type Settings struct {
	mu     sync.Mutex
	values map[string]string
	Writes int
	FailOn bool
}

// NewSettings creates an empty settings store
func NewSettings() *Settings {
	return &Settings{}
}

// Get returns the stored values or storage.ErrNotFound
func (s *Settings) Get(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOn {
		return nil, ErrInjected
	}
	if s.values == nil {
		return nil, storage.ErrNotFound
	}
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

// Set overwrites the stored values
func (s *Settings) Set(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailOn {
		return ErrInjected
	}
	s.values = make(map[string]string, len(values))
	for k, v := range values {
		s.values[k] = v
	}
	s.Writes++
	return nil
}

// Registry is an in-memory user registry
type Registry struct {
	mu  sync.Mutex
	ids []int64
}

// NewRegistry creates a registry seeded with ids
func NewRegistry(ids ...int64) *Registry {
	return &Registry{ids: append([]int64{}, ids...)}
}

// List returns stored ids in insertion order
func (r *Registry) List(ctx context.Context) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]int64{}, r.ids...), nil
}

// Add appends id if absent
func (r *Registry) Add(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ids {
		if existing == id {
			return false, nil
		}
	}
	r.ids = append(r.ids, id)
	return true, nil
}

// Recorder keeps partitions of rows in memory, header row first
type Recorder struct {
	mu         sync.Mutex
	partitions map[string][][]interface{}
	Records    []models.Registration
	FailOn     bool
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{partitions: make(map[string][][]interface{})}
}

// Append adds rec to partition, creating the partition with a header row
func (r *Recorder) Append(ctx context.Context, partition string, rec models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailOn {
		return ErrInjected
	}
	rows, ok := r.partitions[partition]
	if !ok {
		rows = [][]interface{}{models.RegistrationHeader}
	}
	r.partitions[partition] = append(rows, rec.Row())
	r.Records = append(r.Records, rec)
	return nil
}

// Rows returns the rows of a partition including the header
func (r *Recorder) Rows(partition string) [][]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([][]interface{}{}, r.partitions[partition]...)
}

// Partitions returns partition names sorted
func (r *Recorder) Partitions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.partitions))
	for name := range r.partitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template is an in-memory template store
type Template struct {
	mu   sync.Mutex
	text string
}

// NewTemplate creates a template store holding text
func NewTemplate(text string) *Template {
	return &Template{text: text}
}

// Get returns the stored text
func (t *Template) Get(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text, nil
}

// Set replaces the stored text
func (t *Template) Set(ctx context.Context, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.text = text
	return nil
}

// Remote is an in-memory remote file store
type Remote struct {
	mu           sync.Mutex
	Files        map[string][]byte
	Downloads    int
	Uploads      int
	FailDownload bool
	FailUpload   bool
}

// NewRemote creates an empty remote store
func NewRemote() *Remote {
	return &Remote{Files: make(map[string][]byte)}
}

// Download writes the named file to localPath
func (r *Remote) Download(ctx context.Context, name, localPath string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Downloads++
	if r.FailDownload {
		return false, ErrInjected
	}
	data, ok := r.Files[name]
	if !ok {
		return false, nil
	}
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// Upload stores the contents of localPath under name
func (r *Remote) Upload(ctx context.Context, localPath, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailUpload {
		return ErrInjected
	}
	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	r.Files[name] = data
	r.Uploads++
	return nil
}

var (
	_ storage.SettingsStore   = (*Settings)(nil)
	_ storage.UserRegistry    = (*Registry)(nil)
	_ storage.Recorder        = (*Recorder)(nil)
	_ storage.TemplateStore   = (*Template)(nil)
	_ storage.RemoteFileStore = (*Remote)(nil)
)
