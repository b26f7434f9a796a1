package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

const (
	settingCardMode  = "card_mode"
	settingLanguages = "languages"
)

// ListSettingsHandler handles /settings command
type ListSettingsHandler struct {
	neverPassthrough
}

// Match returns true if update is /settings command
func (h ListSettingsHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "settings"
}

// Handle sends settings list keyboard
func (h ListSettingsHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	msg := tgbotapi.NewMessage(u.Message.From.ID, "Choose what do you want to change:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Card mode", fmt.Sprintf("%v|%v", callbackIDSettings, settingCardMode)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Languages", fmt.Sprintf("%v|%v", callbackIDSettings, settingLanguages)),
		),
	)
	_, _ = b.Send(msg)
}

// SendCardModesHandler sends available card modes
type SendCardModesHandler struct {
	neverPassthrough
}

// Match returns true if update is card mode settings callback
func (h SendCardModesHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		u.CallbackQuery.Data == fmt.Sprintf("%v|%v", callbackIDSettings, settingCardMode)
}

// Handle sends card mode list keyboard
func (h SendCardModesHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	cardMode := db.CardModeDefault
	if user.Config.CardMode != nil {
		cardMode = *user.Config.CardMode
	}
	var cardModeText string
	switch cardMode {
	case db.CardModeMulti:
		cardModeText = "Between languages"
	case db.CardModeSingle:
		cardModeText = "Within one language"
	case db.CardModeRandom:
		cardModeText = "Random"
	}
	msg := tgbotapi.NewMessage(u.CallbackQuery.From.ID, fmt.Sprintf("Current mode: %v\nPick card mode:", cardModeText))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"Between languages", fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingCardMode, db.CardModeMulti),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"Within one language", fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingCardMode, db.CardModeSingle),
			),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"Random", fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingCardMode, db.CardModeRandom),
			),
		),
	)
	_, _ = b.Send(msg)
}

// SetCardModeHandler saves card mode to user config
type SetCardModeHandler struct {
	neverPassthrough
}

// Match returns true if update is card mode settings callback with picked mode
func (h SetCardModeHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		strings.HasPrefix(u.CallbackQuery.Data, fmt.Sprintf("%v|%v|", callbackIDSettings, settingCardMode))
}

// Handle saves card mode to user config
func (h SetCardModeHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	cardMode := strings.Split(u.CallbackQuery.Data, "|")[2]
	switch cardMode {
	case db.CardModeMulti, db.CardModeSingle, db.CardModeRandom:
	default:
		log.Error().Str("mode", cardMode).Msg("invalid card mode")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown mode"))
		return
	}
	user.Config.CardMode = &cardMode
	if err := b.DB().SaveUser(user); err != nil {
		log.Error().Err(err).Msg("failed to save user")
		return
	}
	_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Card mode set"))
}

// SendLanguagesHandler sends language toggle keyboard
type SendLanguagesHandler struct {
	neverPassthrough
}

// Match returns true if update is languages settings callback
func (h SendLanguagesHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		u.CallbackQuery.Data == fmt.Sprintf("%v|%v", callbackIDSettings, settingLanguages)
}

// Handle sends a keyboard toggling practice languages
func (h SendLanguagesHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(grammar.Languages))
	for _, lang := range grammar.Languages {
		label := string(lang)
		if hasLanguage(user.Config.Languages, lang) {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				label, fmt.Sprintf("%v|%v|%v", callbackIDSettings, settingLanguages, lang),
			),
		))
	}
	msg := tgbotapi.NewMessage(u.CallbackQuery.From.ID, "Toggle practice languages (at least two):")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	_, _ = b.Send(msg)
}

// ToggleLanguageHandler flips one language in user config
type ToggleLanguageHandler struct {
	neverPassthrough
}

// Match returns true if update is languages settings callback with a language
func (h ToggleLanguageHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		strings.HasPrefix(u.CallbackQuery.Data, fmt.Sprintf("%v|%v|", callbackIDSettings, settingLanguages))
}

// Handle toggles the language and saves user config
func (h ToggleLanguageHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	lang := grammar.Language(strings.Split(u.CallbackQuery.Data, "|")[2])
	if !lang.Known() {
		log.Error().Str("language", string(lang)).Msg("invalid language")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown language"))
		return
	}
	if hasLanguage(user.Config.Languages, lang) {
		langs := make([]grammar.Language, 0, len(user.Config.Languages))
		for _, l := range user.Config.Languages {
			if l != lang {
				langs = append(langs, l)
			}
		}
		user.Config.Languages = langs
	} else {
		user.Config.Languages = append(user.Config.Languages, lang)
	}
	if err := b.DB().SaveUser(user); err != nil {
		log.Error().Err(err).Msg("failed to save user")
		return
	}
	_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Languages updated"))
}

func hasLanguage(langs []grammar.Language, lang grammar.Language) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}
