package factory

import (
	"time"

	"github.com/PauPin2013/Connect4/internal/dependencies/mocks"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/auth"
	"github.com/PauPin2013/Connect4/internal/storage/memory"
	"github.com/PauPin2013/Connect4/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), 0, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestVocabulary loads a small word bank for testing
func (t *TestApp) LoadTestVocabulary() error {
	words := []model.VocabularyWord{
		{Word: "perro", Translation: "dog"},
		{Word: "gato", Translation: "cat"},
		{Word: "casa", Translation: "house"},
		{Word: "agua", Translation: "water"},
		{Word: "libro", Translation: "book"},
		{Word: "rojo", Translation: "red"},
		{Word: "verde", Translation: "green"},
		{Word: "sol", Translation: "sun"},
	}
	return t.VocabularyService.LoadWords(words)
}
