package mocks

import (
	"context"
	"sync"

	"github.com/fandressouza/indicacoes/domain"
)

// MockImageStore implements domain.ImageStore interface for testing. Without overrides it
// keeps images in memory.
type MockImageStore struct {
	SaveFunc   func(ctx context.Context, name string, data []byte) (string, error)
	DeleteFunc func(ctx context.Context, ref string) error

	mu     sync.Mutex
	Images map[string][]byte
}

// NewMockImageStore creates a new MockImageStore with default behaviors
func NewMockImageStore() *MockImageStore {
	return &MockImageStore{Images: map[string][]byte{}}
}

// Save stores an image
func (m *MockImageStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, name, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Images[name] = data
	return name, nil
}

// Delete removes an image
func (m *MockImageStore) Delete(ctx context.Context, ref string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ref)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Images, ref)
	return nil
}

// Count returns how many images are held
func (m *MockImageStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Images)
}

// MockImageProcessor implements domain.ImageProcessor interface for testing
type MockImageProcessor struct {
	ProcessFunc func(filename string, data []byte) (string, []byte, error)
}

// NewMockImageProcessor creates a new MockImageProcessor with default behaviors
func NewMockImageProcessor() *MockImageProcessor {
	return &MockImageProcessor{}
}

// Process returns the upload unchanged under a fixed prefix
func (m *MockImageProcessor) Process(filename string, data []byte) (string, []byte, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(filename, data)
	}
	return "abcdefghij-" + filename, data, nil
}

// Compile-time interface compliance verification
var (
	_ domain.ImageStore     = (*MockImageStore)(nil)
	_ domain.ImageProcessor = (*MockImageProcessor)(nil)
)
