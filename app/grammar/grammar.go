package grammar

import (
	"fmt"
	"strings"
)

// Language is a supported language code
type Language string

// supported languages
const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageDE Language = "DE"
	LanguageEE Language = "EE"
)

// Languages lists all supported languages
var Languages = []Language{LanguageEN, LanguageES, LanguageDE, LanguageEE}

// Known returns true if l is a supported language
func (l Language) Known() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// PartOfSpeech determines which grammatical slot set applies to a word
type PartOfSpeech string

// supported parts of speech
const (
	PartOfSpeechNoun      PartOfSpeech = "noun"
	PartOfSpeechVerb      PartOfSpeech = "verb"
	PartOfSpeechAdjective PartOfSpeech = "adjective"
)

// PartsOfSpeech lists all supported parts of speech
var PartsOfSpeech = []PartOfSpeech{PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective}

// Known returns true if p is a supported part of speech
func (p PartOfSpeech) Known() bool {
	for _, known := range PartsOfSpeech {
		if p == known {
			return true
		}
	}
	return false
}

// Slot is a language-independent grammatical role identifier in
// "family.distinction" form, e.g. "present.firstSingular" or "case.genitive"
type Slot string

// Family returns the part-of-speech family level of the slot
func (s Slot) Family() string {
	if idx := strings.IndexByte(string(s), '.'); idx >= 0 {
		return string(s)[:idx]
	}
	return string(s)
}

// FieldKey is a language-specific form key as stored on a word record
type FieldKey string

// SlotMapping binds one abstract slot to its per-language field keys.
// Languages without a realization for the slot are simply absent.
type SlotMapping struct {
	Slot   Slot
	Fields map[Language]FieldKey
}

// Table is an immutable cross-language grammatical category lookup.
// Construct it once and pass it explicitly to consumers.
type Table struct {
	slots map[PartOfSpeech][]SlotMapping
	index map[PartOfSpeech]map[Language]map[FieldKey]Slot
}

// NewTable builds a Table and its inverse field index from mappings.
// Field keys must be unique within one part of speech and language.
func NewTable(mappings map[PartOfSpeech][]SlotMapping) (*Table, error) {
	t := &Table{
		slots: make(map[PartOfSpeech][]SlotMapping, len(mappings)),
		index: make(map[PartOfSpeech]map[Language]map[FieldKey]Slot, len(mappings)),
	}
	for pos, slots := range mappings {
		t.slots[pos] = slots
		langIndex := make(map[Language]map[FieldKey]Slot)
		seen := make(map[Slot]struct{}, len(slots))
		for _, m := range slots {
			if _, ok := seen[m.Slot]; ok {
				return nil, fmt.Errorf("duplicate slot %q for %v", m.Slot, pos)
			}
			seen[m.Slot] = struct{}{}
			for lang, field := range m.Fields {
				fields, ok := langIndex[lang]
				if !ok {
					fields = make(map[FieldKey]Slot)
					langIndex[lang] = fields
				}
				if _, ok := fields[field]; ok {
					return nil, fmt.Errorf("duplicate field %q for %v/%v", field, pos, lang)
				}
				fields[field] = m.Slot
			}
		}
		t.index[pos] = langIndex
	}
	return t, nil
}

// MustNewTable builds a table and panics on invalid mappings
func MustNewTable(mappings map[PartOfSpeech][]SlotMapping) *Table {
	t, err := NewTable(mappings)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the concrete field key realizing slot in lang.
// ok is false when the language has no realization for the slot, which
// is an expected case, not an error.
func (t *Table) Resolve(pos PartOfSpeech, slot Slot, lang Language) (FieldKey, bool) {
	for _, m := range t.slots[pos] {
		if m.Slot == slot {
			field, ok := m.Fields[lang]
			return field, ok
		}
	}
	return "", false
}

// AllSlots returns the slots for a part of speech in canonical table order
func (t *Table) AllSlots(pos PartOfSpeech) []Slot {
	mappings := t.slots[pos]
	slots := make([]Slot, 0, len(mappings))
	for _, m := range mappings {
		slots = append(slots, m.Slot)
	}
	return slots
}

// SlotForField reverse-resolves a stored field key to its abstract slot
func (t *Table) SlotForField(pos PartOfSpeech, lang Language, field FieldKey) (Slot, bool) {
	slot, ok := t.index[pos][lang][field]
	return slot, ok
}
