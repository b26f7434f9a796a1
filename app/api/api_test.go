package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"
)

const (
	testTGToken   = "123123213:1231231312"
	testJWTSecret = "tokentokentokentoken"
	testUserID    = 1
)

// emptyHandler is a dummy handler for testing.
type emptyHandler struct{}

func (h *emptyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {}

// ErrorStorage is a dummy storage for testing storage error handling.
type ErrorStorage struct {
	*db.InMemoryStorage
}

func (d ErrorStorage) GetWord(string) (db.WordRecord, error) {
	return db.WordRecord{}, errors.New("test")
}

func (d ErrorStorage) SaveWord(db.WordRecord) error {
	return errors.New("test")
}

func (d ErrorStorage) UserWords(db.UserID) ([]db.WordRecord, error) {
	return nil, errors.New("test")
}

func (d ErrorStorage) SaveSession(db.Session) error {
	return errors.New("test")
}

func (d ErrorStorage) GetSession(string) (db.Session, error) {
	return db.Session{}, errors.New("test")
}

// getTestServer returns a test server.
func getTestServer(storage db.Storage) (*httptest.Server, func()) {
	if storage == nil {
		storage = db.NewInMemoryStorage()
	}

	server := NewServer(storage, grammar.Default(), testTGToken, testJWTSecret)
	srv := httptest.NewServer(server.router)
	return srv, srv.Close
}

// getTestJWT returns a test JWT signed with testJWTSecret
func getTestJWT() string {
	token, _ := (&authService{telegramToken: testTGToken, jwtSecret: []byte(testJWTSecret)}).createToken(testUserID)
	return "Bearer " + token
}

// getTestWord returns a stored word owned by the test user
func getTestWord(id string, owner db.UserID) db.WordRecord {
	return db.WordRecord{
		ID:           id,
		Owner:        owner,
		PartOfSpeech: grammar.PartOfSpeechNoun,
		Tags:         []string{"basics"},
		Translations: []db.TranslationEntry{
			{
				Language: grammar.LanguageEN,
				Forms:    []db.Form{{Field: "nominative", Value: "house"}},
			},
			{
				Language: grammar.LanguageES,
				Forms:    []db.Form{{Field: "nominativo", Value: "casa"}},
			},
		},
		Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
