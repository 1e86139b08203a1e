package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/soaringjerry/Quiz/internal/middleware"
	"github.com/soaringjerry/Quiz/internal/services"
)

//go:embed openapi.json
var openAPIDoc []byte

const (
	msgInvalidPayload   = "Invalid JSON payload."
	msgBodyTooLarge     = "Request body too large."
	msgNotFound         = "Not found."
	msgMethodNotAllowed = "Method not allowed."
	msgInternal         = "Internal server error."
	msgNoScore          = "No score recorded for user."

	defaultMaxBodyBytes = 1 << 20
)

// routePrefixes mounts every route at the root and under /api.
var routePrefixes = []string{"", "/api"}

var errTrailingData = errors.New("unexpected data after JSON document")

// Options carries build metadata and request limits for the router.
type Options struct {
	Commit       string
	BuildTime    string
	MaxBodyBytes int64
}

type Router struct {
	quiz *services.QuizService
	log  *zap.Logger
	opts Options
}

func NewRouter(store Store, log *zap.Logger, opts Options) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Router{
		quiz: services.NewQuizService(newQuizStoreAdapter(store)),
		log:  log,
		opts: opts,
	}
}

func (rt *Router) Register(r *mux.Router) {
	routes := []struct {
		path    string
		method  string
		handler http.HandlerFunc
	}{
		{"/health", http.MethodGet, rt.handleHealth},
		{"/questions", http.MethodGet, rt.handleQuestions},
		{"/submit", http.MethodPost, rt.handleSubmit},
		{"/score", http.MethodGet, rt.handleScore},
		{"/version", http.MethodGet, rt.handleVersion},
		{"/docs/openapi.json", http.MethodGet, rt.handleOpenAPI},
	}
	// Each route also answers with a trailing slash, without a redirect.
	for _, p := range routePrefixes {
		for _, route := range routes {
			r.HandleFunc(p+route.path, route.handler).Methods(route.method)
			r.HandleFunc(p+route.path+"/", route.handler).Methods(route.method)
		}
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})
}

// Handler builds the routed handler wrapped in the standard middleware chain.
func (rt *Router) Handler() http.Handler {
	r := mux.NewRouter()
	rt.Register(r)
	var h http.Handler = r
	h = middleware.CORS(h)
	h = middleware.APIHeaders(h)
	h = middleware.Logging(rt.log)(h)
	h = middleware.Recover(rt.log)(h)
	h = middleware.RequestID(h)
	return h
}

// GET /health
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /version
func (rt *Router) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"commit":     rt.opts.Commit,
		"build_time": rt.opts.BuildTime,
	})
}

// GET /docs/openapi.json
func (rt *Router) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDoc)
}

// GET /questions, answers stripped
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := rt.quiz.ListQuestions()
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, qs)
}

// POST /submit
// { userId?: string, answers: [{questionId, optionIndex}] }
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, rt.opts.MaxBodyBytes)
	payload, err := decodePayload(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	res, err := rt.quiz.Submit(payload)
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type scoreResponse struct {
	UserID string `json:"userId"`
	Score  int    `json:"score"`
	Total  int    `json:"total"`
}

type noScoreResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
	Score   int    `json:"score"`
}

// GET /score?userId=...
func (rt *Router) handleScore(w http.ResponseWriter, r *http.Request) {
	res, err := rt.quiz.LookupScore(r.URL.Query().Get("userId"))
	if err != nil {
		rt.writeServiceError(w, r, err)
		return
	}
	if !res.Found {
		writeJSON(w, http.StatusOK, noScoreResponse{Message: msgNoScore, UserID: res.UserID, Score: 0})
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{UserID: res.UserID, Score: res.Score, Total: res.Total})
}

// decodePayload decodes exactly one JSON document, keeping numbers as
// json.Number so integer checks stay exact.
func decodePayload(body io.Reader) (any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errTrailingData
	}
	return v, nil
}

func (rt *Router) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if se, ok := services.AsServiceError(err); ok && se.Code == services.ErrorInvalid {
		writeError(w, http.StatusBadRequest, se.Message)
		return
	}
	rt.log.Error("request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
