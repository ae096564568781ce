package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/matchpredict/matchpredict/internal/config"
	"github.com/matchpredict/matchpredict/internal/logging"
	"github.com/matchpredict/matchpredict/internal/metrics"
	"github.com/matchpredict/matchpredict/internal/models"
)

// Options carries everything NewRouter needs. Metrics may be nil.
type Options struct {
	Predictor Predictor
	Metrics   *metrics.HTTPCollector
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Logger    *slog.Logger
}

// Route describes one public endpoint, used for the startup announcement.
type Route struct {
	Method      string
	Path        string
	Description string
}

// Routes lists the public API in registration order.
var Routes = []Route{
	{Method: http.MethodGet, Path: "/api/health", Description: "Check API health"},
	{Method: http.MethodGet, Path: "/api/leagues", Description: "Get all leagues"},
	{Method: http.MethodGet, Path: "/api/teams?league=PL", Description: "Get teams for a league"},
	{Method: http.MethodGet, Path: "/api/upcoming", Description: "Get upcoming matches"},
	{Method: http.MethodGet, Path: "/api/history", Description: "Get prediction history"},
	{Method: http.MethodPost, Path: "/api/predict", Description: "Predict a single match"},
	{Method: http.MethodPost, Path: "/api/batch-predict", Description: "Predict multiple matches"},
}

// NewRouter builds the full HTTP handler: API routes behind panic recovery,
// request logging, metrics, optional rate limiting and CORS.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var observer PredictionObserver
	if opts.Metrics != nil {
		observer = opts.Metrics
	}
	handler := NewHandler(opts.Predictor, observer, logger)

	router := mux.NewRouter()
	router.NotFoundHandler = jsonStatus(logger, http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonStatus(logger, http.StatusMethodNotAllowed, "Method not allowed")

	if opts.Metrics != nil {
		router.Use(opts.Metrics.InstrumentHandler)
		router.Handle("/metrics", opts.Metrics.Handler()).Methods(http.MethodGet)
	}
	router.Use(logging.Middleware(logger))
	router.Use(Recoverer(logger))
	if opts.RateLimit.RPS > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RateLimit.RPS), opts.RateLimit.Burst)
		router.Use(RateLimit(limiter, logger))
	}

	SetupRoutes(router, handler, logger)

	return newCORS(opts.CORS).Handler(router)
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *mux.Router, h *Handler, logger *slog.Logger) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handle(logger, h.Health)).Methods(http.MethodGet)
	api.HandleFunc("/predict", handle(logger, h.Predict)).Methods(http.MethodPost)
	api.HandleFunc("/leagues", handle(logger, h.Leagues)).Methods(http.MethodGet)
	api.HandleFunc("/teams", handle(logger, h.Teams)).Methods(http.MethodGet)
	api.HandleFunc("/upcoming", handle(logger, h.Upcoming)).Methods(http.MethodGet)
	api.HandleFunc("/history", handle(logger, h.History)).Methods(http.MethodGet)
	api.HandleFunc("/batch-predict", handle(logger, h.BatchPredict)).Methods(http.MethodPost)
}

func newCORS(cfg config.CORSConfig) *cors.Cors {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	headers := cfg.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: headers,
		MaxAge:         600,
	})
}

func jsonStatus(logger *slog.Logger, status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, logger, status, models.ErrorResponse{Error: message})
	})
}
