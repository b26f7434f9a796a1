package main

import (
	"os"

	"github.com/rkaasik/sonavara/app/api"
	"github.com/rkaasik/sonavara/app/bot"
	"github.com/rkaasik/sonavara/app/clients/translate"
	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"

	"github.com/jessevdk/go-flags"
	log "github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

type Opts struct {
	BotToken      string  `long:"bot-token" env:"BOT_TOKEN" required:"true" description:"Telegram bot token"`
	BoltDB        string  `long:"boltdb" env:"BOLTDB" default:"./sonavara.data" description:"Path to BoltDB"`
	RedisURL      string  `long:"redis" env:"REDIS_URL" description:"Redis database URL"`
	MyMemoryToken *string `long:"mymemory-token" env:"MYMEMORY_TOKEN" description:"MyMemory API token for translation suggestions"`
	JWTSecret     string  `long:"jwt" env:"JWT_SECRET" required:"true" description:"JWT secret"`
	Port          int     `long:"port" env:"PORT" default:"8080" description:"Port to listen on"`
}

func main() {
	var opts Opts
	_, err := flags.ParseArgs(&opts, os.Args)
	if err != nil {
		return
	}

	storage, closeStorage := getStorage(opts)
	defer closeStorage()
	table := grammar.Default()

	// Start API
	go func() {
		api := api.NewServer(storage, table, opts.BotToken, opts.JWTSecret)
		if err := api.Run(opts.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to run API server")
		}
	}()

	suggester := translate.NewClient(opts.MyMemoryToken)

	// initialize Telegram bot
	b, err := bot.NewTelegramBot(opts.BotToken, storage, []bot.Handler{
		bot.StartHandler{},
		// Settings
		bot.ListSettingsHandler{},
		bot.SendCardModesHandler{},
		bot.SetCardModeHandler{},
		bot.SendLanguagesHandler{},
		bot.ToggleLanguageHandler{},
		// Practice
		bot.NewPracticeHandler(table),
		bot.PracticeReplyHandler{},
		// Words
		bot.NewWordHandler(table, &suggester),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	b.Start()

}

func getStorage(opts Opts) (db.Storage, func()) {
	if opts.RedisURL != "" {
		redisStorage, err := db.NewRedisStorage(opts.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis client")
		}
		return redisStorage, func() {}

	} else {
		boltDB, err := bolt.Open(opts.BoltDB, 0600, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create boltDB database")
		}
		boltStorage, err := db.NewBoltStorage(boltDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to bolt storage")
		}
		return boltStorage, func() {
			err := boltDB.Close()
			if err != nil {
				log.Error().Err(err).Msg("failed to close boltDB database")
			}
		}
	}
}
