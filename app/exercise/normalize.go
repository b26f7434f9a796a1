package exercise

import (
	"fmt"
	"strings"

	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"
)

// UnknownFieldError is returned when a stored form references a field
// key the grammatical table does not recognize for the word's part of
// speech. The word is excluded from generation; the batch continues.
type UnknownFieldError struct {
	WordID   string
	Language grammar.Language
	Field    grammar.FieldKey
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("word %s: unknown field %q for language %v", e.WordID, e.Field, e.Language)
}

// NormalizedWord is a word record reshaped into slot -> language -> form.
// Slots holds only populated slots, in the table's canonical order, so
// iteration is deterministic regardless of map layout.
type NormalizedWord struct {
	WordID       string
	PartOfSpeech grammar.PartOfSpeech
	Slots        []grammar.Slot
	Values       map[grammar.Slot]map[grammar.Language]string
}

// Value returns the form stored for slot in lang, if any
func (n NormalizedWord) Value(slot grammar.Slot, lang grammar.Language) (string, bool) {
	v, ok := n.Values[slot][lang]
	return v, ok
}

// Normalize reshapes a word record by reverse-resolving each stored
// field key to its abstract slot. Empty form values are dropped.
func Normalize(table *grammar.Table, word db.WordRecord) (NormalizedWord, error) {
	n := NormalizedWord{
		WordID:       word.ID,
		PartOfSpeech: word.PartOfSpeech,
		Values:       make(map[grammar.Slot]map[grammar.Language]string),
	}
	for _, entry := range word.Translations {
		for _, form := range entry.Forms {
			value := strings.TrimSpace(form.Value)
			if value == "" {
				continue
			}
			slot, ok := table.SlotForField(word.PartOfSpeech, entry.Language, form.Field)
			if !ok {
				return NormalizedWord{}, &UnknownFieldError{
					WordID:   word.ID,
					Language: entry.Language,
					Field:    form.Field,
				}
			}
			langs, ok := n.Values[slot]
			if !ok {
				langs = make(map[grammar.Language]string)
				n.Values[slot] = langs
			}
			langs[entry.Language] = value
		}
	}
	for _, slot := range table.AllSlots(word.PartOfSpeech) {
		if _, ok := n.Values[slot]; ok {
			n.Slots = append(n.Slots, slot)
		}
	}
	return n, nil
}
