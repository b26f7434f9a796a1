package bot

import (
	"context"
	"errors"
	"time"

	"github.com/rkaasik/sonavara/app/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Handler interface {
	Handle(ctx context.Context, b Bot, u tgbotapi.Update)
	Passthrough(tgbotapi.Update) bool
	Match(u tgbotapi.Update) bool
}

// TelegramBot handles Telegram API integration and updates handling
type TelegramBot struct {
	UserName string
	api      *tgbotapi.BotAPI
	db       db.Storage
	handlers []Handler
}

// updateUser loads the sender's user record, creating it on first contact
func (b *TelegramBot) updateUser(u tgbotapi.Update) (db.User, error) {
	from := u.SentFrom()
	if from == nil {
		return db.User{}, errors.New("update without sender")
	}
	user, err := b.db.GetUser(db.UserID(from.ID))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return db.User{}, err
	}
	user = db.User{ID: db.UserID(from.ID), Username: from.UserName}
	if err := b.db.SaveUser(user); err != nil {
		return db.User{}, err
	}
	return user, nil
}

func (b *TelegramBot) processUpdate(u tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(context.TODO(), 5*time.Second)
	defer cancel()

	user, err := b.updateUser(u)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve update user")
		return
	}
	ctx = context.WithValue(ctx, ctxUserKey, user)
	for _, handler := range b.handlers {
		if handler.Match(u) {
			handler.Handle(ctx, b, u)
			if !handler.Passthrough(u) {
				break
			}
		}
	}
}

func (b *TelegramBot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	for u := range updates {
		b.processUpdate(u)
	}
}

func (b *TelegramBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	message, err := b.api.Send(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send")
	}
	return message, err
}

func (b *TelegramBot) SendCallback(c tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error) {
	response, err := b.api.Request(c)
	if err != nil {
		log.Error().Err(err).Msg("failed to send callback")
	}
	return response, err
}

func (b *TelegramBot) DB() db.Storage {
	return b.db
}

func NewTelegramBot(token string, db db.Storage, handlers []Handler) (*TelegramBot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to initialize bot")
	}
	log.Info().Str("username", botAPI.Self.UserName).Msg("telegram bot initialized")
	return &TelegramBot{
		UserName: botAPI.Self.UserName,
		api:      botAPI,
		db:       db,
		handlers: handlers,
	}, nil
}
