package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizladder/internal/quiz"
)

// TopicLister is implemented by content stores that can enumerate topics.
type TopicLister interface {
	Topics(ctx context.Context) ([]TopicInfo, error)
}

var (
	_ TopicLister = (*FSStore)(nil)
	_ TopicLister = (*HTTPStore)(nil)
)

// TopicInfo describes one catalog topic in the GET /topics listing.
type TopicInfo struct {
	ID        string `json:"id"`
	Domain    Domain `json:"domain"`
	Available bool   `json:"available"`
}

// ServerOptions configures the content server.
type ServerOptions struct {
	// AllowedOrigins lists CORS origins; empty disables CORS headers.
	AllowedOrigins []string

	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

// NewServer returns an HTTP handler serving the bundles of store:
//
//	GET /topics            catalog with availability
//	GET /topics/{topicID}  bundle JSON
//	GET /healthz
func NewServer(store *FSStore, opts ServerOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	if opts.RequestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Timeout(30 * time.Second))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/topics", listTopicsHandler(store))
	r.Get("/topics/{topicID}", getTopicHandler(store))
	return r
}

func listTopicsHandler(store *FSStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := store.Topics(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, topics)
	}
}

func getTopicHandler(store *FSStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID, err := url.PathUnescape(chi.URLParam(r, "topicID"))
		if err != nil {
			http.Error(w, "bad topic id", http.StatusBadRequest)
			return
		}

		bundle, err := store.Get(r.Context(), topicID)
		switch {
		case errors.Is(err, quiz.ErrNotFound):
			http.Error(w, "content coming soon", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, bundle)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
