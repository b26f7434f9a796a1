package exercise

import (
	"github.com/rkaasik/sonavara/app/grammar"
)

// EquivalencePair is two languages' concrete values for the same
// abstract slot of the same word. Both values are non-empty.
type EquivalencePair struct {
	Slot      grammar.Slot
	LanguageA grammar.Language
	ValueA    string
	LanguageB grammar.Language
	ValueB    string
}

// languagesAt returns the scope languages holding a value at slot,
// preserving scope order
func languagesAt(n NormalizedWord, slot grammar.Slot, scope []grammar.Language) []grammar.Language {
	langs := make([]grammar.Language, 0, len(scope))
	for _, lang := range scope {
		if _, ok := n.Value(slot, lang); ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

// GeneratePairs emits every comparable language pair of the word within
// scope, slot by slot in canonical order. Slots with fewer than two
// populated scope languages yield nothing.
func GeneratePairs(n NormalizedWord, scope []grammar.Language) []EquivalencePair {
	var pairs []EquivalencePair
	for _, slot := range n.Slots {
		langs := languagesAt(n, slot, scope)
		if len(langs) < 2 {
			continue
		}
		for i := 0; i < len(langs); i++ {
			for j := i + 1; j < len(langs); j++ {
				valueA, _ := n.Value(slot, langs[i])
				valueB, _ := n.Value(slot, langs[j])
				pairs = append(pairs, EquivalencePair{
					Slot:      slot,
					LanguageA: langs[i],
					ValueA:    valueA,
					LanguageB: langs[j],
					ValueB:    valueB,
				})
			}
		}
	}
	return pairs
}

// SelectSlot picks the slot to exercise when only one pair per word is
// needed: the slot with the most scope languages filled, canonical
// order breaking ties. ok is false when no slot has two languages.
func SelectSlot(n NormalizedWord, scope []grammar.Language) (grammar.Slot, bool) {
	var best grammar.Slot
	bestCount := 0
	for _, slot := range n.Slots {
		count := len(languagesAt(n, slot, scope))
		if count > bestCount {
			best = slot
			bestCount = count
		}
	}
	if bestCount < 2 {
		return "", false
	}
	return best, true
}
