package grammar

// noun case and number slots
const (
	SlotNominative Slot = "case.nominative"
	SlotGenitive   Slot = "case.genitive"
	SlotDative     Slot = "case.dative"
	SlotAccusative Slot = "case.accusative"
	SlotPartitive  Slot = "case.partitive"
	SlotPlural     Slot = "number.plural"
)

// verb slots, tense by person
const (
	SlotInfinitive      Slot = "base.infinitive"
	SlotPresentFirstSg  Slot = "present.firstSingular"
	SlotPresentSecondSg Slot = "present.secondSingular"
	SlotPresentThirdSg  Slot = "present.thirdSingular"
	SlotPresentFirstPl  Slot = "present.firstPlural"
	SlotPresentThirdPl  Slot = "present.thirdPlural"
	SlotPastFirstSg     Slot = "past.firstSingular"
	SlotPastSecondSg    Slot = "past.secondSingular"
	SlotPastThirdSg     Slot = "past.thirdSingular"
	SlotPastFirstPl     Slot = "past.firstPlural"
	SlotPastThirdPl     Slot = "past.thirdPlural"
	SlotFutureFirstSg   Slot = "future.firstSingular"
	SlotFutureSecondSg  Slot = "future.secondSingular"
	SlotFutureThirdSg   Slot = "future.thirdSingular"
	SlotFutureFirstPl   Slot = "future.firstPlural"
	SlotFutureThirdPl   Slot = "future.thirdPlural"
)

// adjective comparison slots
const (
	SlotPositive    Slot = "degree.positive"
	SlotComparative Slot = "degree.comparative"
	SlotSuperlative Slot = "degree.superlative"
)

// defaultTable maps abstract slots to stored per-language field keys.
// A language absent at a slot has no realization there: Spanish nouns
// carry no case besides the citation form, Estonian verbs no future.
var defaultTable = MustNewTable(map[PartOfSpeech][]SlotMapping{
	PartOfSpeechNoun: {
		{Slot: SlotNominative, Fields: map[Language]FieldKey{
			LanguageEN: "nominative", LanguageES: "nominativo",
			LanguageDE: "nominativ", LanguageEE: "nimetav",
		}},
		{Slot: SlotGenitive, Fields: map[Language]FieldKey{
			LanguageEN: "genitive", LanguageDE: "genitiv", LanguageEE: "omastav",
		}},
		{Slot: SlotDative, Fields: map[Language]FieldKey{
			LanguageDE: "dativ",
		}},
		{Slot: SlotAccusative, Fields: map[Language]FieldKey{
			LanguageDE: "akkusativ",
		}},
		{Slot: SlotPartitive, Fields: map[Language]FieldKey{
			LanguageEE: "osastav",
		}},
		{Slot: SlotPlural, Fields: map[Language]FieldKey{
			LanguageEN: "plural", LanguageES: "plural",
			LanguageDE: "plural", LanguageEE: "mitmus",
		}},
	},
	PartOfSpeechVerb: {
		{Slot: SlotInfinitive, Fields: map[Language]FieldKey{
			LanguageEN: "infinitive", LanguageES: "infinitivo",
			LanguageDE: "infinitiv", LanguageEE: "da_infinitiiv",
		}},
		{Slot: SlotPresentFirstSg, Fields: map[Language]FieldKey{
			LanguageEN: "present_i", LanguageES: "presente_yo",
			LanguageDE: "praesens_ich", LanguageEE: "olevik_mina",
		}},
		{Slot: SlotPresentSecondSg, Fields: map[Language]FieldKey{
			LanguageEN: "present_you", LanguageES: "presente_tu",
			LanguageDE: "praesens_du", LanguageEE: "olevik_sina",
		}},
		{Slot: SlotPresentThirdSg, Fields: map[Language]FieldKey{
			LanguageEN: "present_he", LanguageES: "presente_el",
			LanguageDE: "praesens_er", LanguageEE: "olevik_tema",
		}},
		{Slot: SlotPresentFirstPl, Fields: map[Language]FieldKey{
			LanguageEN: "present_we", LanguageES: "presente_nosotros",
			LanguageDE: "praesens_wir", LanguageEE: "olevik_meie",
		}},
		{Slot: SlotPresentThirdPl, Fields: map[Language]FieldKey{
			LanguageEN: "present_they", LanguageES: "presente_ellos",
			LanguageDE: "praesens_sie", LanguageEE: "olevik_nemad",
		}},
		{Slot: SlotPastFirstSg, Fields: map[Language]FieldKey{
			LanguageEN: "past_i", LanguageES: "preterito_yo",
			LanguageDE: "praeteritum_ich", LanguageEE: "minevik_mina",
		}},
		{Slot: SlotPastSecondSg, Fields: map[Language]FieldKey{
			LanguageEN: "past_you", LanguageES: "preterito_tu",
			LanguageDE: "praeteritum_du", LanguageEE: "minevik_sina",
		}},
		{Slot: SlotPastThirdSg, Fields: map[Language]FieldKey{
			LanguageEN: "past_he", LanguageES: "preterito_el",
			LanguageDE: "praeteritum_er", LanguageEE: "minevik_tema",
		}},
		{Slot: SlotPastFirstPl, Fields: map[Language]FieldKey{
			LanguageEN: "past_we", LanguageES: "preterito_nosotros",
			LanguageDE: "praeteritum_wir", LanguageEE: "minevik_meie",
		}},
		{Slot: SlotPastThirdPl, Fields: map[Language]FieldKey{
			LanguageEN: "past_they", LanguageES: "preterito_ellos",
			LanguageDE: "praeteritum_sie", LanguageEE: "minevik_nemad",
		}},
		{Slot: SlotFutureFirstSg, Fields: map[Language]FieldKey{
			LanguageEN: "future_i", LanguageES: "futuro_yo", LanguageDE: "futur_ich",
		}},
		{Slot: SlotFutureSecondSg, Fields: map[Language]FieldKey{
			LanguageEN: "future_you", LanguageES: "futuro_tu", LanguageDE: "futur_du",
		}},
		{Slot: SlotFutureThirdSg, Fields: map[Language]FieldKey{
			LanguageEN: "future_he", LanguageES: "futuro_el", LanguageDE: "futur_er",
		}},
		{Slot: SlotFutureFirstPl, Fields: map[Language]FieldKey{
			LanguageEN: "future_we", LanguageES: "futuro_nosotros", LanguageDE: "futur_wir",
		}},
		{Slot: SlotFutureThirdPl, Fields: map[Language]FieldKey{
			LanguageEN: "future_they", LanguageES: "futuro_ellos", LanguageDE: "futur_sie",
		}},
	},
	PartOfSpeechAdjective: {
		{Slot: SlotPositive, Fields: map[Language]FieldKey{
			LanguageEN: "positive", LanguageES: "positivo",
			LanguageDE: "positiv", LanguageEE: "algvorre",
		}},
		{Slot: SlotComparative, Fields: map[Language]FieldKey{
			LanguageEN: "comparative", LanguageES: "comparativo",
			LanguageDE: "komparativ", LanguageEE: "keskvorre",
		}},
		{Slot: SlotSuperlative, Fields: map[Language]FieldKey{
			LanguageEN: "superlative", LanguageES: "superlativo",
			LanguageDE: "superlativ", LanguageEE: "ulivorre",
		}},
	},
})

// Default returns the built-in grammatical category table
func Default() *Table {
	return defaultTable
}
