package db

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rkaasik/sonavara/app/grammar"
)

// exercise item types
const (
	ExerciseTypeMultipleChoice = "multipleChoice"
	ExerciseTypeTextInput      = "textInput"
	ExerciseTypeRandom         = "random"

	ExerciseTypeDefault = ExerciseTypeMultipleChoice
)

// card modes: prompt and answer in two languages or two forms of one
const (
	CardModeMulti  = "multiLanguage"
	CardModeSingle = "singleLanguage"
	CardModeRandom = "random"

	CardModeDefault = CardModeMulti
)

// PracticeParams holds user-chosen exercise set parameters
type PracticeParams struct {
	Languages     []grammar.Language
	PartsOfSpeech []grammar.PartOfSpeech
	Tag           string
	Amount        int
	Type          string
	CardMode      string
}

// ExerciseItem is one generated exercise: a prompt form and the form
// the user is expected to produce. Immutable once created. PromptSlot
// differs from Slot only on single-language cards.
type ExerciseItem struct {
	SourceWordID   string
	PartOfSpeech   grammar.PartOfSpeech
	Slot           grammar.Slot
	PromptSlot     grammar.Slot
	PromptLanguage grammar.Language
	PromptValue    string
	AnswerLanguage grammar.Language
	Expected       string
	Type           string
	Distractors    []string
	MultiLanguage  bool
}

// Choices merges distractors with the expected value, sorted so the
// correct option's position gives nothing away
func (i ExerciseItem) Choices() []string {
	choices := make([]string, 0, len(i.Distractors)+1)
	choices = append(choices, i.Distractors...)
	choices = append(choices, i.Expected)
	sort.Strings(choices)
	return choices
}

// Attempt holds the evaluated answer for one exercise item
type Attempt struct {
	Index     int
	Submitted string
	Expected  string
	Correct   bool
	Answered  time.Time
}

// Summary is the aggregate tally for a completed exercise set
type Summary struct {
	Total   int
	Correct int
}

// Session holds one generated exercise set awaiting or holding answers
type Session struct {
	ID        string
	User      UserID
	Params    PracticeParams
	Items     []ExerciseItem
	Requested int
	Distinct  int
	Skipped   int
	Created   time.Time
	Attempts  []Attempt
}

// NewSession creates new practice session
func NewSession(user UserID, params PracticeParams, items []ExerciseItem, distinct, skipped int) Session {
	return Session{
		ID:        GenerateID(),
		User:      user,
		Params:    params,
		Items:     items,
		Requested: params.Amount,
		Distinct:  distinct,
		Skipped:   skipped,
		Created:   time.Now().UTC(),
	}
}

// Shortfall returns how many requested items could not be generated
func (s Session) Shortfall() int {
	return s.Requested - len(s.Items)
}

// Answered returns true if the item at index already has an attempt
func (s Session) Answered(index int) bool {
	for _, a := range s.Attempts {
		if a.Index == index {
			return true
		}
	}
	return false
}

// RecordAttempt appends an evaluated answer and saves the session
func (s *Session) RecordAttempt(a Attempt, storage Storage) error {
	if a.Index < 0 || a.Index >= len(s.Items) {
		return errors.New("invalid item index")
	}
	if s.Answered(a.Index) {
		return errors.New("result already set")
	}
	a.Answered = time.Now().UTC()
	s.Attempts = append(s.Attempts, a)
	if err := storage.SaveSession(*s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Score reduces the recorded attempts to a pass/fail tally
func (s Session) Score() Summary {
	sum := Summary{Total: len(s.Attempts)}
	for _, a := range s.Attempts {
		if a.Correct {
			sum.Correct++
		}
	}
	return sum
}
