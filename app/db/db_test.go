package db

import (
	"errors"
	"testing"
	"time"

	"github.com/rkaasik/sonavara/app/grammar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getWordRecord(id string, owner UserID) WordRecord {
	return WordRecord{
		ID:           id,
		Owner:        owner,
		PartOfSpeech: grammar.PartOfSpeechNoun,
		Tags:         []string{"basics"},
		Translations: []TranslationEntry{
			{
				Language: grammar.LanguageEN,
				Forms: []Form{
					{Field: "nominative", Value: "house"},
					{Field: "plural", Value: "houses"},
				},
			},
			{
				Language: grammar.LanguageES,
				Forms:    []Form{{Field: "nominativo", Value: "casa"}},
			},
		},
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func getExerciseItem() ExerciseItem {
	return ExerciseItem{
		SourceWordID:   "w1",
		PartOfSpeech:   grammar.PartOfSpeechNoun,
		Slot:           grammar.SlotNominative,
		PromptSlot:     grammar.SlotNominative,
		PromptLanguage: grammar.LanguageEN,
		PromptValue:    "house",
		AnswerLanguage: grammar.LanguageES,
		Expected:       "casa",
		Type:           ExerciseTypeTextInput,
		MultiLanguage:  true,
	}
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()
	assert.Len(t, first, 22)
	assert.NotEqual(t, first, second)
}

func TestWordRecordValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, getWordRecord("w1", 1).Validate())
	})
	t.Run("unknown part of speech", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.PartOfSpeech = "article"
		assert.Error(t, word.Validate())
	})
	t.Run("unknown language", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations[0].Language = "FR"
		assert.Error(t, word.Validate())
	})
	t.Run("duplicate language", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations[1].Language = grammar.LanguageEN
		assert.Error(t, word.Validate())
	})
	t.Run("duplicate field", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations[0].Forms = append(word.Translations[0].Forms,
			Form{Field: "nominative", Value: "home"})
		assert.Error(t, word.Validate())
	})
	t.Run("same field key in different languages", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations[1].Forms = append(word.Translations[1].Forms,
			Form{Field: "plural", Value: "casas"})
		assert.NoError(t, word.Validate())
	})
}

func TestWordRecordEligible(t *testing.T) {
	t.Run("two filled entries", func(t *testing.T) {
		assert.True(t, getWordRecord("w1", 1).Eligible())
	})
	t.Run("single entry", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations = word.Translations[:1]
		assert.False(t, word.Eligible())
	})
	t.Run("second entry has only blank values", func(t *testing.T) {
		word := getWordRecord("w1", 1)
		word.Translations[1].Forms = []Form{{Field: "nominativo", Value: "   "}}
		assert.False(t, word.Eligible())
	})
}

func TestWordRecordHasTag(t *testing.T) {
	word := getWordRecord("w1", 1)
	assert.True(t, word.HasTag("basics"))
	assert.False(t, word.HasTag("verbs"))
}

func TestEligibleWords(t *testing.T) {
	storage := NewInMemoryStorage()
	house := getWordRecord("w1", 1)
	verb := getWordRecord("w2", 1)
	verb.PartOfSpeech = grammar.PartOfSpeechVerb
	verb.Tags = []string{"verbs"}
	lonely := getWordRecord("w3", 1)
	lonely.Translations = lonely.Translations[:1]
	foreign := getWordRecord("w4", 2)
	for _, w := range []WordRecord{house, verb, lonely, foreign} {
		require.NoError(t, storage.SaveWord(w))
	}

	t.Run("no filter", func(t *testing.T) {
		words, err := EligibleWords(storage, 1, WordFilter{})
		require.NoError(t, err)
		assert.Len(t, words, 2)
	})
	t.Run("by tag", func(t *testing.T) {
		words, err := EligibleWords(storage, 1, WordFilter{Tag: "verbs"})
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "w2", words[0].ID)
	})
	t.Run("by part of speech", func(t *testing.T) {
		words, err := EligibleWords(storage, 1, WordFilter{PartOfSpeech: grammar.PartOfSpeechNoun})
		require.NoError(t, err)
		require.Len(t, words, 1)
		assert.Equal(t, "w1", words[0].ID)
	})
	t.Run("no matches", func(t *testing.T) {
		words, err := EligibleWords(storage, 1, WordFilter{Tag: "missing"})
		require.NoError(t, err)
		assert.Empty(t, words)
	})
	t.Run("storage error", func(t *testing.T) {
		_, err := EligibleWords(&errorStorage{}, 1, WordFilter{})
		assert.Error(t, err)
	})
}

func TestExerciseItemChoices(t *testing.T) {
	item := getExerciseItem()
	item.Distractors = []string{"perro", "pan"}
	assert.Equal(t, []string{"casa", "pan", "perro"}, item.Choices())
}

func TestSession(t *testing.T) {
	params := PracticeParams{
		Languages: []grammar.Language{grammar.LanguageEN, grammar.LanguageES},
		Amount:    3,
		Type:      ExerciseTypeTextInput,
		CardMode:  CardModeMulti,
	}
	items := []ExerciseItem{getExerciseItem(), getExerciseItem()}

	t.Run("new", func(t *testing.T) {
		session := NewSession(1, params, items, 2, 1)
		assert.NotEmpty(t, session.ID)
		assert.Equal(t, UserID(1), session.User)
		assert.Equal(t, 3, session.Requested)
		assert.Equal(t, 2, session.Distinct)
		assert.Equal(t, 1, session.Skipped)
		assert.Equal(t, 1, session.Shortfall())
		assert.False(t, session.Created.IsZero())
	})
	t.Run("record attempt", func(t *testing.T) {
		storage := NewInMemoryStorage()
		session := NewSession(1, params, items, 2, 0)
		attempt := Attempt{Index: 0, Submitted: "casa", Expected: "casa", Correct: true}
		require.NoError(t, session.RecordAttempt(attempt, storage))
		assert.True(t, session.Answered(0))
		assert.False(t, session.Answered(1))
		assert.False(t, session.Attempts[0].Answered.IsZero())

		saved, err := storage.GetSession(session.ID)
		require.NoError(t, err)
		assert.Len(t, saved.Attempts, 1)
	})
	t.Run("invalid index", func(t *testing.T) {
		storage := NewInMemoryStorage()
		session := NewSession(1, params, items, 2, 0)
		assert.Error(t, session.RecordAttempt(Attempt{Index: -1}, storage))
		assert.Error(t, session.RecordAttempt(Attempt{Index: 2}, storage))
		assert.Empty(t, session.Attempts)
	})
	t.Run("double answer", func(t *testing.T) {
		storage := NewInMemoryStorage()
		session := NewSession(1, params, items, 2, 0)
		require.NoError(t, session.RecordAttempt(Attempt{Index: 1}, storage))
		assert.Error(t, session.RecordAttempt(Attempt{Index: 1}, storage))
	})
	t.Run("save error", func(t *testing.T) {
		session := NewSession(1, params, items, 2, 0)
		assert.Error(t, session.RecordAttempt(Attempt{Index: 0}, &errorStorage{}))
	})
	t.Run("score", func(t *testing.T) {
		session := NewSession(1, params, items, 2, 0)
		session.Attempts = []Attempt{
			{Index: 0, Correct: true},
			{Index: 1, Correct: false},
		}
		assert.Equal(t, Summary{Total: 2, Correct: 1}, session.Score())
	})
}

// errorStorage fails every operation
type errorStorage struct{}

var errStorage = errors.New("storage failure")

func (e *errorStorage) GetWord(string) (WordRecord, error)   { return WordRecord{}, errStorage }
func (e *errorStorage) SaveWord(WordRecord) error            { return errStorage }
func (e *errorStorage) DeleteWord(string) error              { return errStorage }
func (e *errorStorage) UserWords(UserID) ([]WordRecord, error) { return nil, errStorage }
func (e *errorStorage) GetUser(UserID) (User, error)         { return User{}, errStorage }
func (e *errorStorage) SaveUser(User) error                  { return errStorage }
func (e *errorStorage) SaveSession(Session) error            { return errStorage }
func (e *errorStorage) GetSession(string) (Session, error)   { return Session{}, errStorage }
