package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"blogspend/m/internal/store"
	"blogspend/m/internal/token"
)

type ctxKey string

// ctxUserID is the single context key for the authenticated user id,
// shared by every protected route group.
const ctxUserID ctxKey = "userID"

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	tokens *token.Service
}

// New constructs a Handler.
func New(st *store.Store, tokens *token.Service) *Handler {
	return &Handler{store: st, tokens: tokens}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", h.signup)
			r.Post("/signin", h.signin)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Route("/blog", func(r chi.Router) {
				r.Post("/", h.createBlog)
				r.Put("/", h.updateBlog)
				r.Get("/bulk", h.listBlogs)
				r.Get("/{id}", h.getBlog)
			})

			pr.Route("/expenses", func(r chi.Router) {
				r.Post("/", h.createExpense)
				r.Put("/", h.updateExpense)
				r.Get("/bulk", h.listExpenses)
				r.Get("/category-spending", h.categorySpending)
				r.Get("/{id}", h.getExpense)
			})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		userID, err := h.tokens.Verify(tokenString)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(ctxUserID).(int64)
	return id
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
