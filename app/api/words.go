package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rkaasik/sonavara/app/db"
	"github.com/rs/zerolog/log"
)

// wordService implements methods for the word store API
type wordService struct {
	storage db.Storage
}

func userFromCtx(r *http.Request) (db.UserID, bool) {
	userID, ok := r.Context().Value(ctxUserIDKey).(db.UserID)
	return userID, ok
}

// ListWords returns all words owned by the authenticated user
func (s wordService) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(r)
	if !ok {
		log.Error().Interface("user", r.Context().Value(ctxUserIDKey)).Msg("invalid user id in context")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	words, err := s.storage.UserWords(userID)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to get user words")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if words == nil {
		words = []db.WordRecord{}
	}
	response, jerr := json.Marshal(words)
	if jerr != nil {
		log.Error().Err(jerr).Int64("user", int64(userID)).Msg("failed to marshal words")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// CreateWord validates and stores a new word record
func (s wordService) CreateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var word db.WordRecord
	if err := json.NewDecoder(r.Body).Decode(&word); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid JSON")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	word.ID = db.GenerateID()
	word.Owner = userID
	word.Created = time.Now().UTC()
	if err := word.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte(err.Error())); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	if err := s.storage.SaveWord(word); err != nil {
		log.Error().Err(err).Str("word", word.ID).Msg("failed to save word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(word); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// getOwnedWord fetches a word and checks it belongs to the requester
func (s wordService) getOwnedWord(w http.ResponseWriter, r *http.Request) (db.WordRecord, bool) {
	userID, ok := userFromCtx(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return db.WordRecord{}, false
	}
	id := chi.URLParam(r, "word")
	word, err := s.storage.GetWord(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte("word not found")); err != nil {
				log.Warn().Err(err).Msg("failed to write response")
			}
			return db.WordRecord{}, false
		}
		log.Error().Err(err).Str("word", id).Msg("failed to get word")
		w.WriteHeader(http.StatusInternalServerError)
		return db.WordRecord{}, false
	}
	if word.Owner != userID {
		w.WriteHeader(http.StatusForbidden)
		if _, err := w.Write([]byte("forbidden")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return db.WordRecord{}, false
	}
	return word, true
}

// GetWord returns single word record
func (s wordService) GetWord(w http.ResponseWriter, r *http.Request) {
	word, ok := s.getOwnedWord(w, r)
	if !ok {
		return
	}
	if err := json.NewEncoder(w).Encode(word); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// UpdateWord replaces a stored word record
func (s wordService) UpdateWord(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.getOwnedWord(w, r)
	if !ok {
		return
	}
	var word db.WordRecord
	if err := json.NewDecoder(r.Body).Decode(&word); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid JSON")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	word.ID = existing.ID
	word.Owner = existing.Owner
	word.Created = existing.Created
	if err := word.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte(err.Error())); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	if err := s.storage.SaveWord(word); err != nil {
		log.Error().Err(err).Str("word", word.ID).Msg("failed to save word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// DeleteWord removes a stored word record
func (s wordService) DeleteWord(w http.ResponseWriter, r *http.Request) {
	word, ok := s.getOwnedWord(w, r)
	if !ok {
		return
	}
	if err := s.storage.DeleteWord(word.ID); err != nil {
		log.Error().Err(err).Str("word", word.ID).Msg("failed to delete word")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
