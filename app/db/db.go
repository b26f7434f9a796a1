package db

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkaasik/sonavara/app/grammar"

	"github.com/google/uuid"
)

// UserID is a type for users ID
type UserID int64

// ErrNotFound is returned when object not found
var ErrNotFound error = errors.New("not found")

// GenerateID generates new uuid and encodes it to base64
func GenerateID() string {
	id := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(id[:])
}

// Storage defines method provided by database interfaces
type Storage interface {
	// GetWord returns word record by ID
	GetWord(id string) (WordRecord, error)
	// SaveWord saves word record to DB
	SaveWord(WordRecord) error
	// DeleteWord removes word record from DB
	DeleteWord(id string) error
	// UserWords returns all word records owned by user
	UserWords(UserID) ([]WordRecord, error)

	// GetUser returns user by ID
	GetUser(UserID) (User, error)
	// SaveUser saves user to DB
	SaveUser(User) error

	// SaveSession saves practice session to DB
	SaveSession(Session) error
	// GetSession returns practice session by ID
	GetSession(string) (Session, error)
}

// User holds user data
type User struct {
	ID       UserID
	IsAdmin  bool
	Username string
	Config   UserConfig
}

// UserConfig holds user practice preferences
type UserConfig struct {
	Languages    []grammar.Language
	ExerciseType *string
	CardMode     *string
	Amount       *int
}

// Form is one stored grammatical form of a translation entry
type Form struct {
	Field grammar.FieldKey
	Value string
}

// TranslationEntry is one language's contribution to a word: an ordered
// list of grammatical forms keyed by language-specific field names
type TranslationEntry struct {
	Language grammar.Language
	Forms    []Form
}

// Filled returns true if the entry has at least one non-empty form value
func (e TranslationEntry) Filled() bool {
	for _, f := range e.Forms {
		if strings.TrimSpace(f.Value) != "" {
			return true
		}
	}
	return false
}

// WordRecord holds a stored word with its per-language translations
type WordRecord struct {
	ID           string
	Owner        UserID
	PartOfSpeech grammar.PartOfSpeech
	Clue         string
	Tags         []string
	Translations []TranslationEntry
	Created      time.Time
}

// Validate checks structural invariants enforced at the store boundary:
// known language and part of speech, no duplicate language entries and
// no duplicate field keys within one entry.
func (w WordRecord) Validate() error {
	if !w.PartOfSpeech.Known() {
		return fmt.Errorf("unknown part of speech %q", w.PartOfSpeech)
	}
	seenLangs := make(map[grammar.Language]struct{}, len(w.Translations))
	for _, entry := range w.Translations {
		if !entry.Language.Known() {
			return fmt.Errorf("unknown language %q", entry.Language)
		}
		if _, ok := seenLangs[entry.Language]; ok {
			return fmt.Errorf("duplicate translation entry for %v", entry.Language)
		}
		seenLangs[entry.Language] = struct{}{}
		seenFields := make(map[grammar.FieldKey]struct{}, len(entry.Forms))
		for _, f := range entry.Forms {
			if _, ok := seenFields[f.Field]; ok {
				return fmt.Errorf("duplicate form %q for %v", f.Field, entry.Language)
			}
			seenFields[f.Field] = struct{}{}
		}
	}
	return nil
}

// Eligible returns true if the word can participate in exercise
// generation: at least two translation entries with a filled form each
func (w WordRecord) Eligible() bool {
	filled := 0
	for _, entry := range w.Translations {
		if entry.Filled() {
			filled++
		}
	}
	return filled >= 2
}

// HasTag returns true if the word carries the tag
func (w WordRecord) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WordFilter restricts a user's word pool for exercise generation
type WordFilter struct {
	Tag          string
	PartOfSpeech grammar.PartOfSpeech
}

// EligibleWords fetches the user's words and keeps only those matching
// the filter and fit for exercise generation
func EligibleWords(s Storage, owner UserID, f WordFilter) ([]WordRecord, error) {
	words, err := s.UserWords(owner)
	if err != nil {
		return nil, fmt.Errorf("fetching user words: %w", err)
	}
	eligible := make([]WordRecord, 0, len(words))
	for _, w := range words {
		if f.Tag != "" && !w.HasTag(f.Tag) {
			continue
		}
		if f.PartOfSpeech != "" && w.PartOfSpeech != f.PartOfSpeech {
			continue
		}
		if !w.Eligible() {
			continue
		}
		eligible = append(eligible, w)
	}
	return eligible, nil
}
