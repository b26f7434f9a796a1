package api

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/exercise"
	"github.com/rkaasik/sonavara/app/grammar"
	"github.com/rs/zerolog/log"
)

// practiceService implements methods for the exercise API
type practiceService struct {
	storage db.Storage
	table   *grammar.Table
}

// StartPracticeRequest holds user parameters for a new exercise set
type StartPracticeRequest struct {
	Languages     []grammar.Language     `json:"languages"`
	PartsOfSpeech []grammar.PartOfSpeech `json:"partsOfSpeech"`
	Tag           string                 `json:"tag"`
	Amount        int                    `json:"amount"`
	Type          string                 `json:"type"`
	CardMode      string                 `json:"cardMode"`
}

// ItemView is an exercise item as presented to the client: the expected
// value stays server-side, multiple-choice items carry shuffled-in
// choices instead
type ItemView struct {
	Index          int                  `json:"index"`
	SourceWordID   string               `json:"sourceWordId"`
	PartOfSpeech   grammar.PartOfSpeech `json:"partOfSpeech"`
	Slot           grammar.Slot         `json:"slot"`
	PromptSlot     grammar.Slot         `json:"promptSlot"`
	PromptLanguage grammar.Language     `json:"promptLanguage"`
	PromptValue    string               `json:"promptValue"`
	AnswerLanguage grammar.Language     `json:"answerLanguage"`
	Type           string               `json:"type"`
	Choices        []string             `json:"choices,omitempty"`
	MultiLanguage  bool                 `json:"multiLanguage"`
}

// SessionResponse is the reply to a started practice session
type SessionResponse struct {
	ID        string     `json:"id"`
	Items     []ItemView `json:"items"`
	Requested int        `json:"requested"`
	Distinct  int        `json:"distinct"`
	Skipped   int        `json:"skipped"`
	Shortfall int        `json:"shortfall"`
}

func sessionResponse(s db.Session) SessionResponse {
	resp := SessionResponse{
		ID:        s.ID,
		Items:     make([]ItemView, 0, len(s.Items)),
		Requested: s.Requested,
		Distinct:  s.Distinct,
		Skipped:   s.Skipped,
		Shortfall: s.Shortfall(),
	}
	for i, item := range s.Items {
		view := ItemView{
			Index:          i,
			SourceWordID:   item.SourceWordID,
			PartOfSpeech:   item.PartOfSpeech,
			Slot:           item.Slot,
			PromptSlot:     item.PromptSlot,
			PromptLanguage: item.PromptLanguage,
			PromptValue:    item.PromptValue,
			AnswerLanguage: item.AnswerLanguage,
			Type:           item.Type,
			MultiLanguage:  item.MultiLanguage,
		}
		if item.Type == db.ExerciseTypeMultipleChoice {
			view.Choices = item.Choices()
		}
		resp.Items = append(resp.Items, view)
	}
	return resp
}

// StartSession builds an exercise set from the user's words and saves
// it as a practice session
func (s practiceService) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := userFromCtx(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	var req StartPracticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid JSON")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	params := s.fillDefaults(userID, req)

	pool, err := db.EligibleWords(s.storage, userID, db.WordFilter{Tag: req.Tag})
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to fetch eligible words")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	set, err := exercise.BuildExerciseSet(s.table, pool, params, rng)
	var paramErr *exercise.ParamError
	var poolErr *exercise.InsufficientPoolError
	switch {
	case errors.As(err, &paramErr):
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte(paramErr.Error())); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	case errors.Is(err, exercise.ErrNoEligiblePair):
		w.WriteHeader(http.StatusNotFound)
		if _, err := w.Write([]byte("no words match those parameters")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	case errors.As(err, &poolErr):
		// degraded set, still served
		log.Info().Int("requested", poolErr.Requested).Int("distinct", poolErr.Distinct).
			Int64("user", int64(userID)).Msg("exercise pool smaller than requested")
	case err != nil:
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to build exercise set")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	session := db.NewSession(userID, params, set.Items, set.Distinct, set.Skipped)
	if err := s.storage.SaveSession(session); err != nil {
		log.Error().Err(err).Str("session", session.ID).Msg("failed to save session")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(sessionResponse(session)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// fillDefaults layers the request over the user's saved preferences
func (s practiceService) fillDefaults(userID db.UserID, req StartPracticeRequest) db.PracticeParams {
	params := db.PracticeParams{
		Languages:     req.Languages,
		PartsOfSpeech: req.PartsOfSpeech,
		Tag:           req.Tag,
		Amount:        req.Amount,
		Type:          req.Type,
		CardMode:      req.CardMode,
	}
	user, err := s.storage.GetUser(userID)
	if err == nil {
		if len(params.Languages) == 0 {
			params.Languages = user.Config.Languages
		}
		if params.Type == "" && user.Config.ExerciseType != nil {
			params.Type = *user.Config.ExerciseType
		}
		if params.CardMode == "" && user.Config.CardMode != nil {
			params.CardMode = *user.Config.CardMode
		}
		if params.Amount == 0 && user.Config.Amount != nil {
			params.Amount = *user.Config.Amount
		}
	}
	if len(params.PartsOfSpeech) == 0 {
		params.PartsOfSpeech = grammar.PartsOfSpeech
	}
	if params.Type == "" {
		params.Type = db.ExerciseTypeDefault
	}
	if params.CardMode == "" {
		params.CardMode = db.CardModeDefault
	}
	return params
}

// getOwnedSession fetches a session and checks it belongs to the requester
func (s practiceService) getOwnedSession(w http.ResponseWriter, r *http.Request) (db.Session, bool) {
	userID, ok := userFromCtx(r)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return db.Session{}, false
	}
	id := chi.URLParam(r, "session")
	session, err := s.storage.GetSession(id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte("session not found")); err != nil {
				log.Warn().Err(err).Msg("failed to write response")
			}
			return db.Session{}, false
		}
		log.Error().Err(err).Str("session", id).Msg("failed to get session")
		w.WriteHeader(http.StatusInternalServerError)
		return db.Session{}, false
	}
	if session.User != userID {
		w.WriteHeader(http.StatusForbidden)
		if _, err := w.Write([]byte("forbidden")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return db.Session{}, false
	}
	return session, true
}

// GetSession returns the full session for review, answers included
func (s practiceService) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getOwnedSession(w, r)
	if !ok {
		return
	}
	if err := json.NewEncoder(w).Encode(session); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// SubmittedAnswer is one answer in a SubmitAnswers request
type SubmittedAnswer struct {
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

// AnswersResponse reports per-item verdicts and the set tally
type AnswersResponse struct {
	Results []db.Attempt `json:"results"`
	Summary db.Summary   `json:"summary"`
}

// SubmitAnswers evaluates submitted answers and records the attempts
func (s practiceService) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	session, ok := s.getOwnedSession(w, r)
	if !ok {
		return
	}
	var answers []SubmittedAnswer
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("invalid JSON")); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	results := make([]db.Attempt, 0, len(answers))
	for _, answer := range answers {
		if answer.Index < 0 || answer.Index >= len(session.Items) {
			w.WriteHeader(http.StatusBadRequest)
			if _, err := w.Write([]byte("invalid item index")); err != nil {
				log.Warn().Err(err).Msg("failed to write response")
			}
			return
		}
		attempt := exercise.Evaluate(session.Items[answer.Index], answer.Index, answer.Answer)
		if err := session.RecordAttempt(attempt, s.storage); err != nil {
			log.Error().Err(err).Str("session", session.ID).Int("index", answer.Index).
				Msg("failed to record attempt")
			w.WriteHeader(http.StatusBadRequest)
			if _, err := w.Write([]byte(err.Error())); err != nil {
				log.Warn().Err(err).Msg("failed to write response")
			}
			return
		}
		results = append(results, session.Attempts[len(session.Attempts)-1])
	}
	resp := AnswersResponse{Results: results, Summary: session.Score()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
