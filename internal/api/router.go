// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every endpoint onto mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Auth
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/logout", h.requireAuth(h.logout))
	mux.HandleFunc("GET /auth/me", h.requireAuth(h.me))

	// Study sets
	mux.HandleFunc("GET /sets", h.requireAuth(h.listSets))
	mux.HandleFunc("GET /sets/{setID}/session", h.requireAuth(h.getSetSession))

	// Study sessions
	mux.HandleFunc("POST /study/sessions", h.requireAuth(h.startSession))
	mux.HandleFunc("GET /study/sessions/{sessionID}", h.requireAuth(h.getSession))
	mux.HandleFunc("POST /study/sessions/{sessionID}/submit", h.requireAuth(h.submitAnswer))
	mux.HandleFunc("POST /study/sessions/{sessionID}/advance", h.requireAuth(h.advanceSession))
	mux.HandleFunc("POST /study/sessions/{sessionID}/restart", h.requireAuth(h.restartSession))
	mux.HandleFunc("POST /study/sessions/{sessionID}/reset-stats", h.requireAuth(h.resetSessionStats))

	// Progress
	mux.HandleFunc("POST /progress", h.requireAuth(h.recordProgress))
	mux.HandleFunc("GET /progress", h.requireAuth(h.getProgress))
	mux.HandleFunc("GET /progress/cache", h.requireAuth(h.getCachedProgress))
	mux.HandleFunc("POST /progress/reset", h.requireAuth(h.resetProgress))

	// Admin
	mux.HandleFunc("POST /admin/questions/upload", h.requireAdmin(h.uploadQuestions))
}
