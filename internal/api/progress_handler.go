package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/studycards/backend/internal/domain/progress"
	"github.com/studycards/backend/internal/id"
	"github.com/studycards/backend/internal/store"
)

// ── Request / Response types ────────────────────────────────────────────────

type RecordProgressRequest struct {
	SubmissionID string `json:"submission_id,omitempty"`
	SetID        string `json:"set_id" example:"set_demo"`
	QuestionID   string `json:"question_id" example:"q_primes"`
	Result       string `json:"result" example:"correct"`
}

func (r *RecordProgressRequest) Validate() error {
	if r.SetID == "" || r.QuestionID == "" {
		return errors.New("set_id and question_id are required")
	}
	if _, err := progress.ParseResult(r.Result); err != nil {
		return err
	}
	return nil
}

type ResetProgressRequest struct {
	SetID string `json:"set_id" example:"set_demo"`
}

func (r *ResetProgressRequest) Validate() error {
	if r.SetID == "" {
		return errors.New("set_id is required")
	}
	return nil
}

type ProgressRowResponse struct {
	SetID        string    `json:"set_id"`
	QuestionID   string    `json:"question_id"`
	CorrectCount int       `json:"correct_count"`
	WrongCount   int       `json:"wrong_count"`
	LastResult   string    `json:"last_result"`
	LastSeen     time.Time `json:"last_seen"`
	Streak       int       `json:"streak"`
	Mastery      int       `json:"mastery"`
}

type ProgressResponse struct {
	Summary progress.SetSummary   `json:"summary"`
	Rows    []ProgressRowResponse `json:"rows"`
}

func (h *Handler) progressResponse(w http.ResponseWriter, r *http.Request, rows []progress.UserProgress) {
	setID := r.URL.Query().Get("set_id")
	total := len(rows)
	if setID != "" {
		set, err := h.sets.GetStudySet(r.Context(), setID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			h.handleStoreError(w, err, "study set")
			return
		}
		if set != nil {
			total = set.QuestionCount
		}
	}

	resp := ProgressResponse{
		Summary: progress.Summarize(rows, total),
		Rows:    make([]ProgressRowResponse, len(rows)),
	}
	for i, p := range rows {
		resp.Rows[i] = ProgressRowResponse{
			SetID:        p.SetID,
			QuestionID:   p.QuestionID,
			CorrectCount: p.CorrectCount,
			WrongCount:   p.WrongCount,
			LastResult:   string(p.LastResult),
			LastSeen:     p.LastSeen,
			Streak:       p.Streak,
			Mastery:      p.Mastery(),
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// ── Handlers ────────────────────────────────────────────────────────────────

// recordProgress records one result for the caller outside a study session.
// @Summary      Record a result
// @Tags         Progress
// @Accept       json
// @Param        body  body  RecordProgressRequest  true  "Result"
// @Success      202
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /progress [post]
func (h *Handler) recordProgress(w http.ResponseWriter, r *http.Request) {
	var req RecordProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	result, _ := progress.ParseResult(req.Result)

	submissionID := req.SubmissionID
	if submissionID == "" {
		submissionID = "manual:" + id.GenerateID()
	}
	ev := progress.Event{
		SubmissionID: submissionID,
		UserID:       userID(r),
		SetID:        req.SetID,
		QuestionID:   req.QuestionID,
		Result:       result,
		At:           time.Now().UTC(),
	}
	h.recorder.Record(ev)
	h.cache.Record(ev)

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted", "submission_id": submissionID})
}

// @Summary      Server-side history
// @Tags         Progress
// @Produce      json
// @Param        set_id  query     string  false  "Restrict to one set"
// @Success      200     {object}  ProgressResponse
// @Security     BearerAuth
// @Router       /progress [get]
func (h *Handler) getProgress(w http.ResponseWriter, r *http.Request) {
	rows, err := h.progress.ListProgress(r.Context(), userID(r), r.URL.Query().Get("set_id"))
	if h.handleStoreError(w, err, "progress") {
		return
	}
	h.progressResponse(w, r, rows)
}

// @Summary      Cached history
// @Tags         Progress
// @Produce      json
// @Param        set_id  query     string  false  "Restrict to one set"
// @Success      200     {object}  ProgressResponse
// @Security     BearerAuth
// @Router       /progress/cache [get]
func (h *Handler) getCachedProgress(w http.ResponseWriter, r *http.Request) {
	rows := h.cache.SetProgress(userID(r), r.URL.Query().Get("set_id"))
	h.progressResponse(w, r, rows)
}

// resetProgress wipes the caller's history for one set.
// @Summary      Reset history
// @Tags         Progress
// @Accept       json
// @Param        body  body  ResetProgressRequest  true  "Set to reset"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string  "server wipe failed"
// @Security     BearerAuth
// @Router       /progress/reset [post]
func (h *Handler) resetProgress(w http.ResponseWriter, r *http.Request) {
	var req ResetProgressRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := h.study.ResetStats(r.Context(), userID(r), req.SetID, ""); err != nil {
		h.logger.Error("reset progress", "error", err, "set_id", req.SetID)
		respondError(w, http.StatusInternalServerError, "failed to reset progress")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
