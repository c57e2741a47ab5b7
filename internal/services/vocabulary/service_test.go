package vocabulary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/PauPin2013/Connect4/internal/dependencies/mocks"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	random  *mocks.MockRandom
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.random = mocks.NewMockRandom()
	s.ctx = context.Background()
}

func (s *ServiceSuite) writeWordFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

// LoadFromFile tests

func (s *ServiceSuite) TestLoadFromFileParsesPairs() {
	path := s.writeWordFile("perro,dog\ngato,cat\n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))
	s.True(s.service.IsLoaded())
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromFileSkipsCommentsAndBlanks() {
	path := s.writeWordFile("# spanish basics\n\nperro,dog\n  \ngato,cat\n# end\n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromFileSkipsMalformedLines() {
	path := s.writeWordFile("perro,dog\nnocomma\n,missingword\nmissingtranslation,\ngato,cat\n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))
	s.Equal(2, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromFileTrimsWhitespace() {
	path := s.writeWordFile("  perro , dog  \n")

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	word, err := s.service.Random(s.random)
	s.Require().NoError(err)
	s.Equal("perro", word.Word)
	s.Equal("dog", word.Translation)
}

func (s *ServiceSuite) TestLoadFromFilePersistsToStorage() {
	path := s.writeWordFile("perro,dog\n")
	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	words, err := s.storage.GetVocabularyWords(s.ctx)
	s.Require().NoError(err)
	s.Len(words, 1)
}

func (s *ServiceSuite) TestLoadFromFileFailsForMissingFile() {
	err := s.service.LoadFromFile(s.ctx, "/does/not/exist.txt")
	s.Error(err)
	s.False(s.service.IsLoaded())
}

// LoadFromStorage tests

func (s *ServiceSuite) TestLoadFromStorage() {
	words := []model.VocabularyWord{{Word: "perro", Translation: "dog"}}
	s.Require().NoError(s.storage.SaveVocabularyWords(s.ctx, words))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))
	s.Equal(1, s.service.WordCount())
}

func (s *ServiceSuite) TestLoadFromStorageFailsWhenUnseeded() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrVocabularyNotLoaded)
}

// Random tests

func (s *ServiceSuite) TestRandomUsesInjectedSource() {
	s.Require().NoError(s.service.LoadWords([]model.VocabularyWord{
		{Word: "perro", Translation: "dog"},
		{Word: "gato", Translation: "cat"},
		{Word: "casa", Translation: "house"},
	}))

	s.random.QueueIntn(2)
	word, err := s.service.Random(s.random)
	s.Require().NoError(err)
	s.Equal("casa", word.Word)
}

func (s *ServiceSuite) TestRandomFailsWhenUnloaded() {
	_, err := s.service.Random(s.random)
	s.ErrorIs(err, model.ErrVocabularyNotLoaded)
}

func (s *ServiceSuite) TestRandomFailsWhenEmpty() {
	s.Require().NoError(s.service.LoadWords(nil))

	_, err := s.service.Random(s.random)
	s.ErrorIs(err, model.ErrVocabularyNotLoaded)
}

// IsCorrect tests

func (s *ServiceSuite) TestIsCorrect() {
	s.True(IsCorrect("dog", "dog"))
	s.True(IsCorrect("DOG", "dog"))
	s.True(IsCorrect("  dog ", "dog"))
	s.False(IsCorrect("cat", "dog"))
	s.False(IsCorrect("", "dog"))
}
