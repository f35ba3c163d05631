package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/rurasogoodo/notes_app/internal/core/domain"
	portssvc "github.com/rurasogoodo/notes_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// testClock is a manually advanced clock shared by a service and its test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

// --- Mock PasswordHasher ---
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	args := m.Called(ctx, plaintext, digest)
	return args.Bool(0), args.Error(1)
}

var _ portssvc.PasswordHasher = (*MockPasswordHasher)(nil)
