package mocks

import (
	"context"
	"sync"

	"github.com/fandressouza/indicacoes/domain"
)

// MockAuditLogger implements domain.AuditLogger and keeps every event
type MockAuditLogger struct {
	mu     sync.Mutex
	Events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records event
func (m *MockAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in order
func (m *MockAuditLogger) Types() []domain.AuditEventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEventType, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.EventType)
	}
	return out
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*MockAuditLogger)(nil)

// MockMetricsRecorder implements domain.MetricsRecorder and counts observations by label
type MockMetricsRecorder struct {
	mu          sync.Mutex
	Logins      map[string]int
	Submissions map[string]int
	Moderation  map[string]int
}

// NewMockMetricsRecorder creates a new MockMetricsRecorder
func NewMockMetricsRecorder() *MockMetricsRecorder {
	return &MockMetricsRecorder{
		Logins:      map[string]int{},
		Submissions: map[string]int{},
		Moderation:  map[string]int{},
	}
}

// ObserveLogin counts a login result
func (m *MockMetricsRecorder) ObserveLogin(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logins[result]++
}

// ObserveSubmission counts a submission result
func (m *MockMetricsRecorder) ObserveSubmission(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submissions[result]++
}

// ObserveModeration counts a moderation result under "action/result"
func (m *MockMetricsRecorder) ObserveModeration(action, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Moderation[action+"/"+result]++
}

// Compile-time interface compliance verification
var _ domain.MetricsRecorder = (*MockMetricsRecorder)(nil)
