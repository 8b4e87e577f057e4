package factory

import (
	"time"

	"github.com/lagcraft/statusboard/internal/dependencies/mocks"
	"github.com/lagcraft/statusboard/internal/storage/memory"
	"github.com/lagcraft/statusboard/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a memory store
// and a controllable clock
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := memory.New(mockClock)

	app := newWithDependencies(store, StorageTypeMemory, mockClock, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
