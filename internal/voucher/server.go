package voucher

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bizbook-labs/ledgerscan/internal/renewal"
)

// Server handles HTTP requests for drafts and renewal notifications
type Server struct {
	service   *Service
	settings  renewal.SettingsStore
	basicAuth BasicAuth
	mux       *http.ServeMux
}

// BasicAuth holds basic authentication credentials
type BasicAuth struct {
	Username string
	Password string
}

// NewServer creates a new Server with default mux
func NewServer(service *Service, settings renewal.SettingsStore, basicAuth BasicAuth) *Server {
	return NewServerWithMux(service, settings, basicAuth, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing
func NewServerWithMux(service *Service, settings renewal.SettingsStore, basicAuth BasicAuth, mux *http.ServeMux) *Server {
	s := &Server{
		service:   service,
		settings:  settings,
		basicAuth: basicAuth,
		mux:       mux,
	}
	s.registerRoutes()
	return s
}

// authenticate checks basic auth credentials
func (s *Server) authenticate(r *http.Request) bool {
	if s.basicAuth.Username == "" && s.basicAuth.Password == "" {
		return true // No auth required if not configured
	}

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Basic ") {
		return false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
	if err != nil {
		return false
	}

	credentials := strings.SplitN(string(decoded), ":", 2)
	if len(credentials) != 2 {
		return false
	}

	return credentials[0] == s.basicAuth.Username && credentials[1] == s.basicAuth.Password
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)

		// Handle preflight OPTIONS requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// requireAuth middleware
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authenticate(r) {
			// Ensure CORS headers are set before error response
			setCORSHeaders(w)
			w.Header().Set("WWW-Authenticate", `Basic realm="ledgerscan"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux
// Routes must be registered from most specific to least specific to avoid conflicts
func (s *Server) registerRoutes() {
	// Documents and extraction
	s.mux.HandleFunc("POST /api/documents", s.requireAuth(s.handleUploadDocument))
	s.mux.HandleFunc("POST /api/extract", s.requireAuth(s.handleExtractText))

	// Drafts (most specific paths first)
	s.mux.HandleFunc("GET /api/drafts/{id}/file", s.requireAuth(s.handleGetDraftFile))
	s.mux.HandleFunc("GET /api/drafts/{id}", s.requireAuth(s.handleGetDraft))
	s.mux.HandleFunc("DELETE /api/drafts/{id}", s.requireAuth(s.handleDeleteDraft))
	s.mux.HandleFunc("GET /api/drafts", s.requireAuth(s.handleListDrafts))

	// Renewal notification surface
	s.mux.HandleFunc("GET /api/renewal/notification", s.requireAuth(s.handleGetNotification))
	s.mux.HandleFunc("POST /api/renewal/notification/upgrade", s.requireAuth(s.handleUpgradeNotification))
	s.mux.HandleFunc("POST /api/renewal/notification/dismiss", s.requireAuth(s.handleDismissNotification))
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	// Wrap the mux with CORS middleware to handle all requests including OPTIONS
	return http.ListenAndServe(addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.corsMiddleware(func(w http.ResponseWriter, r *http.Request) {
			s.mux.ServeHTTP(w, r)
		})(w, r)
	}))
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
