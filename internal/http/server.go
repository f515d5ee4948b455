package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"budgeteer/internal/advisor"
	"budgeteer/internal/cache"
	"budgeteer/internal/core"
	"budgeteer/internal/middleware/ratelimit"
	"budgeteer/internal/storage"
)

// BudgetStore is the service surface the server depends on. The budget
// service implements it; tests substitute fakes.
type BudgetStore interface {
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	GetTransactionsByMonth(ctx context.Context, month string) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	UpsertGoal(ctx context.Context, goal core.BudgetGoal) error
	ListGoals(ctx context.Context, month string) ([]core.BudgetGoal, error)
	DeleteGoal(ctx context.Context, category, month string) error
	CopyGoalsToNextMonth(ctx context.Context, now time.Time) (int, error)

	RequestReport(ctx context.Context, month string) error
	GetReport(ctx context.Context, month string) (storage.Report, error)
}

// Options tune caching, rate limiting, and enrichment timeouts. The zero
// value gets sensible defaults from NewServer.
type Options struct {
	ChatRateLimit  int
	ChatRateWindow time.Duration
	CacheSize      int
	CacheTTL       time.Duration
	EnrichTimeout  time.Duration
}

type Server struct {
	http.Server
	store    BudgetStore
	enricher advisor.Enricher

	chatLimiter   *ratelimit.Limiter
	enrichedCache *cache.LRU[enrichedAnalysisResponse]
	enrichTimeout time.Duration

	stopCacheSweep chan struct{}
	shutdownOnce   sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. enricher may be nil; AI endpoints then degrade to local
// analysis (enriched) or 503 (chat).
func NewServer(addr string, store BudgetStore, enricher advisor.Enricher, opts Options) *Server {
	if opts.ChatRateLimit <= 0 {
		opts.ChatRateLimit = 5
	}
	if opts.ChatRateWindow <= 0 {
		opts.ChatRateWindow = time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 200
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.EnrichTimeout <= 0 {
		opts.EnrichTimeout = 20 * time.Second
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:    store,
		enricher: enricher,
		chatLimiter: ratelimit.NewLimiter(ratelimit.Config{
			Limit:           opts.ChatRateLimit,
			Window:          opts.ChatRateWindow,
			CleanupInterval: 5 * time.Minute,
		}),
		enrichedCache:  cache.NewLRU[enrichedAnalysisResponse](opts.CacheSize, opts.CacheTTL),
		enrichTimeout:  opts.EnrichTimeout,
		stopCacheSweep: make(chan struct{}),
	}

	go s.startCacheSweep()

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/api/analysis", s.withSecurityHeaders(s.handleAnalysis))
	mux.HandleFunc("/api/analysis/enriched", s.withSecurityHeaders(s.handleEnrichedAnalysis))
	mux.HandleFunc("/api/progress", s.withSecurityHeaders(s.handleProgress))

	mux.HandleFunc("/api/transactions", s.withSecurityHeaders(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withSecurityHeaders(s.handleTransactionByID))

	mux.HandleFunc("/api/goals", s.withSecurityHeaders(s.handleGoals))
	mux.HandleFunc("/api/goals/copy", s.withSecurityHeaders(s.handleCopyGoals))

	mux.HandleFunc("/api/reports/", s.withSecurityHeaders(s.handleReports))

	chat := s.chatLimiter.Middleware(extractSession, onChatLimit)
	mux.Handle("/api/chat", chat(http.HandlerFunc(s.withSecurityHeaders(s.handleChat))))

	return s
}

// startCacheSweep periodically drops expired enriched-analysis entries.
func (s *Server) startCacheSweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.enrichedCache.Sweep(); n > 0 {
				slog.Debug("Cache sweep completed", "entries_removed", n)
			}
		case <-s.stopCacheSweep:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheSweep != nil {
			close(s.stopCacheSweep)
		}
		if s.chatLimiter != nil {
			s.chatLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := clientAddress(r)

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// clientAddress extracts the client IP, considering proxies.
func clientAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// extractSession identifies a chat session for rate limiting. Clients send
// X-Session-ID; without one the client address is the session.
func extractSession(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Session-ID")); id != "" {
		return id
	}
	return clientAddress(r)
}

func onChatLimit(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "Chat rate limit exceeded",
		"session", extractSession(r), "url", r.URL.Path)
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{
		"cache": map[string]any{
			"enriched_entries": s.enrichedCache.Size(),
			"status":           "ok",
		},
		"rate_limiter": map[string]any{
			"active_sessions": s.chatLimiter.ActiveSessions(),
			"status":          "ok",
		},
	}

	if s.store == nil {
		checks["store"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store"] = "ok"
	}

	if s.enricher == nil {
		checks["enricher"] = "not_configured"
	} else {
		checks["enricher"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
