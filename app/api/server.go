package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rkaasik/sonavara/app/db"
	"github.com/rkaasik/sonavara/app/grammar"
)

type Server struct {
	storage db.Storage
	router  chi.Router
}

func (s *Server) Run(port int) error {
	return http.ListenAndServe(fmt.Sprintf(":%d", port), s.router)
}

func (s *Server) setJsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func NewServer(storage db.Storage, table *grammar.Table, tgToken string, jwtSecret string) *Server {
	s := &Server{storage: storage}
	words := wordService{storage: storage}
	practice := practiceService{storage: storage, table: table}
	auth := authService{storage: storage, telegramToken: tgToken, jwtSecret: []byte(jwtSecret)}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.setJsonContentType)
		r.Route("/auth", func(r chi.Router) {
			r.Get("/telegram", auth.TelegramRedirectHandler)
		})
		r.Route("/words", func(r chi.Router) {
			r.Use(auth.UserCtx)
			r.Get("/", words.ListWords)
			r.Post("/", words.CreateWord)
			r.Get("/{word}", words.GetWord)
			r.Put("/{word}", words.UpdateWord)
			r.Delete("/{word}", words.DeleteWord)
		})
		r.Route("/practice", func(r chi.Router) {
			r.Use(auth.UserCtx)
			r.Post("/", practice.StartSession)
			r.Get("/{session}", practice.GetSession)
			r.Post("/{session}/answers", practice.SubmitAnswers)
		})
	})

	s.router = r
	return s
}
