package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/internal/config"
)

// MaxSilhouetteIndex is the largest frame index accepted for silhouettes.
const MaxSilhouetteIndex = config.MaxSilhouetteIndex

type server struct {
	cfg         *config.Config
	logger      *slog.Logger
	deriver     *assetforge.Deriver
	watermarker *assetforge.Watermarker
}

// NewRouter wires the HTTP routes. wm may be nil, in which case the
// watermark route answers with an error.
func NewRouter(cfg *config.Config, logger *slog.Logger, wm *assetforge.Watermarker) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "api")
	deriver := cfg.Deriver()
	deriver.Logger = logger
	if wm != nil {
		wm.Logger = logger
	}
	s := &server{cfg: cfg, logger: logger, deriver: deriver, watermarker: wm}

	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.Methods(http.MethodGet).Path("/healthz").HandlerFunc(s.handleHealth)
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(s.limitBody)
	v1.Methods(http.MethodPost).Path("/colorize").HandlerFunc(s.handleColorize)
	v1.Methods(http.MethodPost).Path("/collectibles").HandlerFunc(s.handleCollectibles)
	v1.Methods(http.MethodPost).Path("/watermark").HandlerFunc(s.handleWatermark)
	return r
}

func (s *server) maxUpload() int64 {
	return int64(s.cfg.Server.MaxUploadMB) << 20
}

func (s *server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
