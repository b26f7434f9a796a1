package bot

import (
	"github.com/rkaasik/sonavara/app/db"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackIDPracticeReply = "pr"
	callbackIDSettings      = "st"
)

type ctxKey string

const ctxUserKey ctxKey = "user"

// Bot describes bot for handlers
type Bot interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	SendCallback(tgbotapi.CallbackConfig) (*tgbotapi.APIResponse, error)
	DB() db.Storage
}

// neverPassthrough implements Passthrough with always false
type neverPassthrough struct{}

// Passthrough always returns false
func (h neverPassthrough) Passthrough(u tgbotapi.Update) bool {
	return false
}
