package factory

import (
	"context"
	"time"

	"github.com/mcoot/arenafc/internal/dependencies/mocks"
	"github.com/mcoot/arenafc/internal/storage"
	"github.com/mcoot/arenafc/internal/storage/memory"
	"github.com/mcoot/arenafc/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs
}

// NewTestApp creates an in-memory App with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates an App over store with mocked dependencies
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, mockClock, mockIDs, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDs:   mockIDs,
	}
}

// SeedPlayers creates one player per name/rating pair
func (t *TestApp) SeedPlayers(ratings map[string]float64) error {
	for name, r := range ratings {
		if _, err := t.PlayerService.Create(context.Background(), name, r); err != nil {
			return err
		}
	}
	return nil
}
