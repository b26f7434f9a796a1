package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/exercise"
	"github.com/rkaasik/sonavara/app/grammar"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// defaultPracticeLanguages is used until the user picks a language set
var defaultPracticeLanguages = []grammar.Language{grammar.LanguageEN, grammar.LanguageES}

// PracticeHandler handles practice command
type PracticeHandler struct {
	table *grammar.Table
	neverPassthrough
}

// NewPracticeHandler creates new practice handler
func NewPracticeHandler(table *grammar.Table) PracticeHandler {
	return PracticeHandler{table: table}
}

// Match returns true if update is /practice command
func (h PracticeHandler) Match(u tgbotapi.Update) bool {
	return u.Message != nil && u.Message.Command() == "practice"
}

// Handle generates a one-item exercise session and sends it to user
func (h PracticeHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	user, ok := ctx.Value(ctxUserKey).(db.User)
	if !ok {
		log.Error().Msg("invalid user in context")
		return
	}
	params := practiceParams(user)
	pool, err := db.EligibleWords(b.DB(), user.ID, db.WordFilter{})
	if err != nil {
		log.Error().Err(err).Int64("user", int64(user.ID)).Msg("failed to fetch eligible words")
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	set, err := exercise.BuildExerciseSet(h.table, pool, params, rng)
	if err != nil && errors.Is(err, exercise.ErrNoEligiblePair) {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID,
			"You need more words with matching forms in your practice languages"))
		return
	}
	var poolErr *exercise.InsufficientPoolError
	if err != nil && !errors.As(err, &poolErr) {
		log.Error().Err(err).Int64("user", int64(user.ID)).Msg("failed to build exercise set")
		return
	}

	// the assembler degrades to text input when no distractor exists;
	// the bot has no typed-answer flow, so ask for more words instead
	if set.Items[0].Type != db.ExerciseTypeMultipleChoice {
		_, _ = b.Send(tgbotapi.NewMessage(u.Message.Chat.ID, "Add more words to your dictionary"))
		return
	}

	session := db.NewSession(user.ID, params, set.Items, set.Distinct, set.Skipped)
	if err := b.DB().SaveSession(session); err != nil {
		log.Error().Err(err).Int64("user", int64(user.ID)).Msg("failed to save session")
		return
	}
	text, err := GetPracticeMessageText(session, 0)
	if err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to get text for message")
		return
	}
	message := tgbotapi.NewMessage(u.Message.Chat.ID, text)
	message.ParseMode = "html"
	message.ReplyMarkup = h.getMessageKeyboard(session, 0)
	_, _ = b.Send(message)
}

// practiceParams derives one-item exercise parameters from user config.
// The bot only serves multiple-choice cards, typed answers belong to
// the API clients.
func practiceParams(user db.User) db.PracticeParams {
	params := db.PracticeParams{
		Languages: user.Config.Languages,
		Amount:    1,
		Type:      db.ExerciseTypeMultipleChoice,
		CardMode:  db.CardModeDefault,
	}
	if len(params.Languages) < 2 {
		params.Languages = defaultPracticeLanguages
	}
	if user.Config.CardMode != nil {
		params.CardMode = *user.Config.CardMode
	}
	params.PartsOfSpeech = grammar.PartsOfSpeech
	return params
}

// getMessageKeyboard returns keyboard with exercise choices
func (h PracticeHandler) getMessageKeyboard(session db.Session, index int) tgbotapi.InlineKeyboardMarkup {
	choices := session.Items[index].Choices()
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for idx := range choices {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", idx+1),
			fmt.Sprintf("%v|%v|%d|%d", callbackIDPracticeReply, session.ID, index, idx)),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
}

// PracticeReplyHandler handles exercise reply callback
type PracticeReplyHandler struct {
	neverPassthrough
}

// Match returns true if update is practice reply callback
func (h PracticeReplyHandler) Match(u tgbotapi.Update) bool {
	return u.CallbackQuery != nil &&
		strings.HasPrefix(u.CallbackQuery.Data, callbackIDPracticeReply+"|")
}

// Handle evaluates the picked choice and records the attempt
func (h PracticeReplyHandler) Handle(ctx context.Context, b Bot, u tgbotapi.Update) {
	sessionID, index, choice, err := h.parseQuery(u)
	if err != nil {
		log.Error().Err(err).Str("query", u.CallbackQuery.Data).Msg("failed to parse callback query")
		return
	}
	session, err := b.DB().GetSession(sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to get session")
		return
	}
	if session.User != db.UserID(u.CallbackQuery.From.ID) {
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown session"))
		return
	}
	if index < 0 || index >= len(session.Items) {
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown exercise"))
		return
	}
	item := session.Items[index]
	choices := item.Choices()
	if choice < 0 || choice >= len(choices) {
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Unknown choice"))
		return
	}
	attempt := exercise.Evaluate(item, index, choices[choice])
	if err := session.RecordAttempt(attempt, b.DB()); err != nil {
		log.Error().Err(err).Str("session", session.ID).Int("choice", choice).
			Msg("failed to record attempt")
		_, _ = b.SendCallback(tgbotapi.NewCallback(u.CallbackQuery.ID, "Error happened"))
		return
	}
	if attempt.Correct {
		_, _ = b.Send(tgbotapi.NewMessage(u.CallbackQuery.From.ID, "Correct!"))
	} else {
		_, _ = b.Send(tgbotapi.NewMessage(u.CallbackQuery.From.ID,
			fmt.Sprintf("Wrong! The answer was: %s", item.Expected)))
	}
	text, err := GetPracticeMessageText(session, index)
	if err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to get practice message text")
		return
	}
	edit := tgbotapi.NewEditMessageText(
		u.CallbackQuery.From.ID,
		u.CallbackQuery.Message.MessageID,
		text)
	edit.ReplyMarkup = nil
	edit.ParseMode = "html"
	_, _ = b.Send(edit)
}

func (h PracticeReplyHandler) parseQuery(u tgbotapi.Update) (id string, index int, choice int, err error) {
	parts := strings.Split(u.CallbackQuery.Data, "|")
	if len(parts) != 4 {
		return "", 0, 0, errors.New("invalid callback query data")
	}
	id = parts[1]
	index, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, fmt.Errorf("parsing index: %w", err)
	}
	choice, err = strconv.Atoi(parts[3])
	if err != nil {
		return "", 0, 0, fmt.Errorf("parsing choice: %w", err)
	}
	return id, index, choice, nil
}
