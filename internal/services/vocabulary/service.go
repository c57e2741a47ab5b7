package vocabulary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/PauPin2013/Connect4/internal/dependencies/random"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage"
)

// Service provides the vocabulary bank that challenges are drawn from
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  []model.VocabularyWord
	loaded bool
}

// New creates a new vocabulary Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// LoadFromStorage loads the word bank from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetVocabularyWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads word/translation pairs from a file, one
// comma-separated pair per line. Blank lines and lines starting with #
// are skipped.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []model.VocabularyWord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, translation, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		word = strings.TrimSpace(word)
		translation = strings.TrimSpace(translation)
		if word == "" || translation == "" {
			continue
		}
		words = append(words, model.VocabularyWord{Word: word, Translation: translation})
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveVocabularyWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []model.VocabularyWord) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []model.VocabularyWord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make([]model.VocabularyWord, len(words))
	copy(s.words, words)
	s.loaded = true
	return nil
}

// Random draws one word uniformly at random from the bank.
// Returns ErrVocabularyNotLoaded when the bank is empty or unloaded;
// callers fall back to a challenge-free turn so the game is not blocked.
func (s *Service) Random(rnd random.Random) (model.VocabularyWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.words) == 0 {
		return model.VocabularyWord{}, model.ErrVocabularyNotLoaded
	}
	return s.words[rnd.Intn(len(s.words))], nil
}

// IsCorrect compares an answer attempt against the expected translation,
// ignoring case and surrounding whitespace
func IsCorrect(attempt, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(attempt), strings.TrimSpace(expected))
}

// IsLoaded returns whether the bank has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the bank
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
