package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rkaasik/sonavara/app/clients/translate"
	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// langCodes maps languages to mymemory API codes
var langCodes = map[grammar.Language]string{
	grammar.LanguageEN: "en",
	grammar.LanguageES: "es",
	grammar.LanguageDE: "de",
	grammar.LanguageEE: "et",
}

// baseSlots holds the citation-form slot per part of speech
var baseSlots = map[grammar.PartOfSpeech]grammar.Slot{
	grammar.PartOfSpeechNoun:      grammar.SlotNominative,
	grammar.PartOfSpeechVerb:      grammar.SlotInfinitive,
	grammar.PartOfSpeechAdjective: grammar.SlotPositive,
}

// WordHandler stores words sent as plain text messages, e.g.
// "noun EN=house ES=casa" or "verb EN.present_i=go DE.praesens_ich=gehe"
type WordHandler struct {
	table     *grammar.Table
	suggester *translate.Client
	neverPassthrough
}

// NewWordHandler creates new word handler; suggester may be nil
func NewWordHandler(table *grammar.Table, suggester *translate.Client) WordHandler {
	return WordHandler{table: table, suggester: suggester}
}

// Match returns true if message is a text
func (h WordHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Text != "" && !u.Message.IsCommand()
}

// Handle parses the message into a word record and saves it
func (h WordHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	word, err := h.parseWord(u.Message.Text)
	if err != nil {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.From.ID,
			fmt.Sprintf("Can't read that: %v\nFormat: noun EN=house ES=casa", err)))
		return
	}
	word.ID = db.GenerateID()
	word.Owner = user.ID
	word.Created = time.Now().UTC()
	if len(word.Translations) == 1 {
		h.suggestTranslations(ctx, &word, user)
	}
	if err := word.Validate(); err != nil {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.From.ID, fmt.Sprintf("Invalid word: %v", err)))
		return
	}
	if err := b.DB().SaveWord(word); err != nil {
		log.Error().Err(err).Str("word", word.ID).Int64("user", int64(user.ID)).Msg("failed to save word")
		return
	}
	text, err := GetWordMessageText(word)
	if err != nil {
		log.Error().Err(err).Str("word", word.ID).Msg("failed to get text for message")
		return
	}
	msg := tgbotapi.NewMessage(u.Message.From.ID, "Saved!\n"+text)
	msg.ParseMode = "html"
	_, _ = b.Send(msg)
}

// parseWord reads "pos LANG=value ..." or "pos LANG.field=value ..."
func (h WordHandler) parseWord(text string) (db.WordRecord, error) {
	tokens := strings.Fields(text)
	if len(tokens) < 2 {
		return db.WordRecord{}, errors.New("expected a part of speech and at least one form")
	}
	pos := grammar.PartOfSpeech(strings.ToLower(tokens[0]))
	if !pos.Known() {
		return db.WordRecord{}, fmt.Errorf("unknown part of speech %q", tokens[0])
	}
	word := db.WordRecord{PartOfSpeech: pos}
	entries := make(map[grammar.Language]int)
	for _, token := range tokens[1:] {
		parts := strings.SplitN(token, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			return db.WordRecord{}, fmt.Errorf("bad form %q", token)
		}
		langPart := parts[0]
		var field grammar.FieldKey
		if dot := strings.IndexByte(langPart, '.'); dot >= 0 {
			field = grammar.FieldKey(langPart[dot+1:])
			langPart = langPart[:dot]
		}
		lang := grammar.Language(strings.ToUpper(langPart))
		if !lang.Known() {
			return db.WordRecord{}, fmt.Errorf("unknown language %q", langPart)
		}
		if field == "" {
			baseField, ok := h.table.Resolve(pos, baseSlots[pos], lang)
			if !ok {
				return db.WordRecord{}, fmt.Errorf("no base form for %v %v", lang, pos)
			}
			field = baseField
		} else if _, ok := h.table.SlotForField(pos, lang, field); !ok {
			return db.WordRecord{}, fmt.Errorf("unknown field %q for %v %v", field, lang, pos)
		}
		idx, ok := entries[lang]
		if !ok {
			word.Translations = append(word.Translations, db.TranslationEntry{Language: lang})
			idx = len(word.Translations) - 1
			entries[lang] = idx
		}
		word.Translations[idx].Forms = append(word.Translations[idx].Forms, db.Form{Field: field, Value: parts[1]})
	}
	return word, nil
}

// suggestTranslations prefills base forms for the user's other practice
// languages. Failures only cost the suggestion.
func (h WordHandler) suggestTranslations(ctx context.Context, word *db.WordRecord, user db.User) {
	if h.suggester == nil {
		return
	}
	source := word.Translations[0]
	if len(source.Forms) == 0 {
		return
	}
	query := source.Forms[0].Value
	for _, lang := range user.Config.Languages {
		if lang == source.Language {
			continue
		}
		baseField, ok := h.table.Resolve(word.PartOfSpeech, baseSlots[word.PartOfSpeech], lang)
		if !ok {
			continue
		}
		resp, err := h.suggester.Translate(ctx, query, langCodes[source.Language], langCodes[lang])
		if err != nil {
			if !errors.Is(err, translate.ErrUnknown) {
				log.Warn().Err(err).Str("query", query).Msg("failed to get translation suggestion")
			}
			continue
		}
		word.Translations = append(word.Translations, db.TranslationEntry{
			Language: lang,
			Forms:    []db.Form{{Field: baseField, Value: resp.Result.Text}},
		})
	}
}
