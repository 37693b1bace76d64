package httpserver

import (
	"net/http"
	"time"

	"aeskit/internal/auth"
	"aeskit/internal/httpserver/handlers"
	"aeskit/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret      []byte
	JWTTTL         time.Duration
	CipherParallel bool
}

// NewRouter mounts the public cipher API and, when db is non-nil, the
// authenticated /v1 routes.
func NewRouter(db *gorm.DB, lg *zap.SugaredLogger, o Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger, cors)

	r.Post("/api/cipher", handlers.Cipher(db, lg.Named("cipher"), o.CipherParallel))
	r.Get("/api/health", handlers.Health())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", metrics.Handler())

	if db == nil {
		return r
	}
	r.Post("/v1/auth/login", handlers.Login(db, lg.Named("auth"), o.JWTSecret, o.JWTTTL))
	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db, o.JWTSecret))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(db, lg.Named("auth")))
		protected.Post("/v1/vectors/generate", handlers.GenerateVectors(db, lg.Named("vectors")))
		protected.Post("/v1/vectors/validate", handlers.ValidateVectors(db, lg.Named("vectors")))
		protected.Get("/v1/vectors", handlers.ListVectors(db, lg.Named("vectors")))
		protected.Get("/v1/logs", handlers.MyLogs(db, lg))
	})
	return r
}

// cors sets the headers the browser front end needs and answers preflight
// requests directly.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
