// internal/api/handler.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studycards/backend/internal/auth"
	practicesession "github.com/studycards/backend/internal/domain/practice_session"
	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/domain/studyset"
	"github.com/studycards/backend/internal/service"
	"github.com/studycards/backend/internal/store"
)

// SetStore is the question repository the handlers read and write.
type SetStore interface {
	ListStudySets(ctx context.Context) ([]*studyset.StudySet, error)
	GetStudySet(ctx context.Context, id string) (*studyset.StudySet, error)
	GetStudySession(ctx context.Context, setID string) (*studyset.StudySet, error)
	UpsertStudySet(ctx context.Context, set *studyset.StudySet) (*store.UpsertResult, error)
}

// ProgressReader reads server-side history.
type ProgressReader interface {
	ListProgress(ctx context.Context, userID, setID string) ([]progress.UserProgress, error)
}

// ProgressCache is the in-memory history the progress endpoints expose.
type ProgressCache interface {
	practicesession.Recorder
	SetProgress(userID, setID string) []progress.UserProgress
}

// Deps groups everything the handlers need.
type Deps struct {
	Sets     SetStore
	Progress ProgressReader
	Study    *service.StudyService
	Recorder practicesession.Recorder
	Cache    ProgressCache
	Auth     *auth.Service
	Logger   *slog.Logger
}

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	sets     SetStore
	progress ProgressReader
	study    *service.StudyService
	recorder practicesession.Recorder
	cache    ProgressCache
	auth     *auth.Service
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(d Deps) *Handler {
	return &Handler{
		sets:     d.Sets,
		progress: d.Progress,
		study:    d.Study,
		recorder: d.Recorder,
		cache:    d.Cache,
		auth:     d.Auth,
		logger:   d.Logger,
	}
}

// Validator is implemented by request bodies that check themselves.
type Validator interface {
	Validate() error
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. Returns false after writing a
// 400 when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, v Validator) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := v.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// handleStoreError checks for common store errors and writes the appropriate
// HTTP response. Returns true if an error was handled (caller should return).
func (h *Handler) handleStoreError(w http.ResponseWriter, err error, entity string) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, entity+" already exists")
	default:
		h.logger.Error("store error", "error", err, "entity", entity)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}

// handleStudyError maps session and service errors. Returns true if an
// error was handled.
func (h *Handler) handleStudyError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "study session not found")
	case errors.Is(err, practicesession.ErrInvalidSubmission):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, practicesession.ErrNoQuestions):
		respondError(w, http.StatusBadRequest, "study set has no questions")
	case errors.Is(err, practicesession.ErrNotIdle), errors.Is(err, practicesession.ErrNotAnswered):
		respondError(w, http.StatusConflict, err.Error())
	default:
		return h.handleStoreError(w, err, "study set")
	}
	return true
}

// userID returns the authenticated caller. Routes behind requireAuth always
// have one.
func userID(r *http.Request) string {
	return auth.SubjectFromContext(r.Context())
}
