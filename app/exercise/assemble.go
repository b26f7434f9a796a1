package exercise

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"
)

const maxDistractors = 3

// ErrNoEligiblePair is returned when the requested languages yield no
// word with two comparable forms. Distinct from an empty success so
// callers can show a specific message.
var ErrNoEligiblePair = errors.New("no words with an eligible language pair")

// ParamError reports malformed exercise parameters, rejected before
// any pool scan
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// InsufficientPoolError signals that fewer distinct words were
// available than requested. The returned set is still usable.
type InsufficientPoolError struct {
	Requested int
	Distinct  int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("pool holds %d distinct words, %d exercises requested", e.Distinct, e.Requested)
}

// Set is the output of one assembler call
type Set struct {
	Items     []db.ExerciseItem
	Requested int
	// Distinct counts eligible words, Skipped the words dropped for
	// unknown field keys
	Distinct int
	Skipped  int
}

func validateParams(p db.PracticeParams) error {
	if p.Amount <= 0 {
		return &ParamError{Field: "amount", Reason: "must be positive"}
	}
	if len(p.Languages) < 2 {
		return &ParamError{Field: "languages", Reason: "at least two required"}
	}
	seen := make(map[grammar.Language]struct{}, len(p.Languages))
	for _, lang := range p.Languages {
		if !lang.Known() {
			return &ParamError{Field: "languages", Reason: fmt.Sprintf("unknown language %q", lang)}
		}
		if _, ok := seen[lang]; ok {
			return &ParamError{Field: "languages", Reason: fmt.Sprintf("duplicate language %q", lang)}
		}
		seen[lang] = struct{}{}
	}
	if len(p.PartsOfSpeech) == 0 {
		return &ParamError{Field: "partsOfSpeech", Reason: "at least one required"}
	}
	for _, pos := range p.PartsOfSpeech {
		if !pos.Known() {
			return &ParamError{Field: "partsOfSpeech", Reason: fmt.Sprintf("unknown part of speech %q", pos)}
		}
	}
	switch p.Type {
	case db.ExerciseTypeMultipleChoice, db.ExerciseTypeTextInput, db.ExerciseTypeRandom:
	default:
		return &ParamError{Field: "type", Reason: fmt.Sprintf("unknown exercise type %q", p.Type)}
	}
	switch p.CardMode {
	case db.CardModeMulti, db.CardModeSingle, db.CardModeRandom:
	default:
		return &ParamError{Field: "cardMode", Reason: fmt.Sprintf("unknown card mode %q", p.CardMode)}
	}
	return nil
}

// candidate is an eligible word with its normalized form and the slot
// chosen by the selection policy
type candidate struct {
	word db.WordRecord
	norm NormalizedWord
	slot grammar.Slot
}

// BuildExerciseSet assembles an exercise set from the word pool.
//
// All randomness (shuffle, direction and type coin-flips, distractor
// picks) flows through rng so a fixed seed reproduces the set. When
// fewer distinct words exist than requested the set is returned
// together with an InsufficientPoolError.
func BuildExerciseSet(table *grammar.Table, pool []db.WordRecord, params db.PracticeParams, rng *rand.Rand) (Set, error) {
	if err := validateParams(params); err != nil {
		return Set{}, err
	}
	set := Set{Requested: params.Amount}

	wanted := make(map[grammar.PartOfSpeech]struct{}, len(params.PartsOfSpeech))
	for _, pos := range params.PartsOfSpeech {
		wanted[pos] = struct{}{}
	}
	var candidates []candidate
	var unknown *UnknownFieldError
	for _, word := range pool {
		if _, ok := wanted[word.PartOfSpeech]; !ok {
			continue
		}
		norm, err := Normalize(table, word)
		if err != nil {
			if errors.As(err, &unknown) {
				set.Skipped++
				continue
			}
			return Set{}, err
		}
		slot, ok := SelectSlot(norm, params.Languages)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{word: word, norm: norm, slot: slot})
	}
	set.Distinct = len(candidates)
	if len(candidates) == 0 {
		return set, ErrNoEligiblePair
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	// wrap around when the pool is short, still never putting the same
	// word in two consecutive items
	count := params.Amount
	if len(candidates) == 1 && count > 1 {
		count = 1
	}
	for i := 0; i < count; i++ {
		c := candidates[i%len(candidates)]
		item := buildItem(c, candidates, params, rng)
		set.Items = append(set.Items, item)
	}

	if set.Distinct < params.Amount {
		return set, &InsufficientPoolError{Requested: params.Amount, Distinct: set.Distinct}
	}
	return set, nil
}

// buildItem constructs one exercise item for the candidate's slot
func buildItem(c candidate, pool []candidate, params db.PracticeParams, rng *rand.Rand) db.ExerciseItem {
	itemType := params.Type
	if itemType == db.ExerciseTypeRandom {
		if rng.Intn(2) == 0 {
			itemType = db.ExerciseTypeMultipleChoice
		} else {
			itemType = db.ExerciseTypeTextInput
		}
	}
	cardMode := params.CardMode
	if cardMode == db.CardModeRandom {
		if rng.Intn(2) == 0 {
			cardMode = db.CardModeMulti
		} else {
			cardMode = db.CardModeSingle
		}
	}

	item := db.ExerciseItem{
		SourceWordID: c.word.ID,
		PartOfSpeech: c.word.PartOfSpeech,
		Slot:         c.slot,
		PromptSlot:   c.slot,
		Type:         itemType,
	}

	single := false
	if cardMode == db.CardModeSingle {
		single = fillSingleLanguage(&item, c, params.Languages)
	}
	if !single {
		fillMultiLanguage(&item, c, params.Languages, rng)
	}

	if item.Type == db.ExerciseTypeMultipleChoice {
		item.Distractors = pickDistractors(c, pool, item, rng)
		// a choice exercise needs at least one wrong option
		if len(item.Distractors) == 0 {
			item.Type = db.ExerciseTypeTextInput
		}
	}
	return item
}

// fillSingleLanguage tries the same-language self-test: prompt one
// form, expect another form of the same family in the earliest scope
// language holding both. Returns false when no such form exists and
// the item must fall back to a multi-language card.
func fillSingleLanguage(item *db.ExerciseItem, c candidate, scope []grammar.Language) bool {
	for _, lang := range scope {
		expected, ok := c.norm.Value(c.slot, lang)
		if !ok {
			continue
		}
		for _, other := range c.norm.Slots {
			if other == c.slot || other.Family() != c.slot.Family() {
				continue
			}
			prompt, ok := c.norm.Value(other, lang)
			if !ok {
				continue
			}
			item.PromptSlot = other
			item.PromptLanguage = lang
			item.PromptValue = prompt
			item.AnswerLanguage = lang
			item.Expected = expected
			item.MultiLanguage = false
			return true
		}
	}
	return false
}

// fillMultiLanguage picks two languages holding the slot and coin-flips
// the prompt direction
func fillMultiLanguage(item *db.ExerciseItem, c candidate, scope []grammar.Language, rng *rand.Rand) {
	langs := languagesAt(c.norm, c.slot, scope)
	prompt := langs[0]
	answer := langs[1]
	if len(langs) > 2 {
		picks := rng.Perm(len(langs))
		prompt = langs[picks[0]]
		answer = langs[picks[1]]
	}
	if rng.Intn(2) == 1 {
		prompt, answer = answer, prompt
	}
	promptValue, _ := c.norm.Value(c.slot, prompt)
	expected, _ := c.norm.Value(c.slot, answer)
	item.PromptLanguage = prompt
	item.PromptValue = promptValue
	item.AnswerLanguage = answer
	item.Expected = expected
	item.MultiLanguage = true
}

// pickDistractors gathers up to three sibling values for the item's
// slot and answer language from other words in the pool. Values equal
// to the expected answer after normalization are never offered.
func pickDistractors(c candidate, pool []candidate, item db.ExerciseItem, rng *rand.Rand) []string {
	expected := normalizeAnswer(item.Expected)
	seen := make(map[string]struct{})
	var values []string
	for _, other := range pool {
		if other.word.ID == c.word.ID {
			continue
		}
		value, ok := other.norm.Value(item.Slot, item.AnswerLanguage)
		if !ok {
			continue
		}
		key := normalizeAnswer(value)
		if key == expected {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, value)
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
	if len(values) > maxDistractors {
		values = values[:maxDistractors]
	}
	return values
}
