package api

import (
	"errors"
	"net/http"

	practicesession "github.com/studycards/backend/internal/domain/practice_session"
	"github.com/studycards/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartSessionRequest struct {
	SetID string `json:"set_id" example:"set_demo"`
}

func (r *StartSessionRequest) Validate() error {
	if r.SetID == "" {
		return errors.New("set_id is required")
	}
	return nil
}

type SubmitAnswerRequest struct {
	OptionIDs []string `json:"option_ids" example:"o2"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if len(r.OptionIDs) == 0 {
		return errors.New("option_ids is required")
	}
	return nil
}

type StatsResponse struct {
	Total    int `json:"total" example:"2"`
	Answered int `json:"answered" example:"1"`
	Correct  int `json:"correct" example:"1"`
	Wrong    int `json:"wrong" example:"0"`
	Pct      int `json:"pct" example:"50"`
	Accuracy int `json:"accuracy" example:"100"`
}

type FeedbackResponse struct {
	QuestionID       string   `json:"question_id"`
	Result           string   `json:"result" example:"correct"`
	CorrectOptionIDs []string `json:"correct_option_ids"`
	Explanation      string   `json:"explanation"`
}

type SessionResponse struct {
	ID        string            `json:"id" example:"k3j4h5g6f7d8s9a0"`
	SetID     string            `json:"set_id" example:"set_demo"`
	State     string            `json:"state" example:"idle"`
	Current   *QuestionResponse `json:"current,omitempty"`
	Feedback  *FeedbackResponse `json:"feedback,omitempty"`
	Stats     StatsResponse     `json:"stats"`
	Remaining int               `json:"remaining" example:"2"`
}

type SubmitAnswerResponse struct {
	Feedback FeedbackResponse `json:"feedback"`
	Session  SessionResponse  `json:"session"`
}

func toFeedbackResponse(fb practicesession.Feedback) FeedbackResponse {
	return FeedbackResponse{
		QuestionID:       fb.QuestionID,
		Result:           string(fb.Result),
		CorrectOptionIDs: fb.CorrectIDs,
		Explanation:      fb.Explanation,
	}
}

func toSessionResponse(s practicesession.Snapshot) SessionResponse {
	resp := SessionResponse{
		ID:    s.Context.SessionID,
		SetID: s.Context.SetID,
		State: string(s.State),
		Stats: StatsResponse{
			Total:    s.Stats.Total,
			Answered: s.Stats.Answered,
			Correct:  s.Stats.Correct,
			Wrong:    s.Stats.Wrong,
			Pct:      s.Stats.Pct(),
			Accuracy: s.Stats.Accuracy(),
		},
		Remaining: s.Remaining,
	}
	if s.Current != nil {
		q := toQuestionResponse(s.Current)
		resp.Current = &q
	}
	if s.Feedback != nil {
		fb := toFeedbackResponse(*s.Feedback)
		resp.Feedback = &fb
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startSession opens a practice session over a study set.
// @Summary      Start a study session
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        body  body      StartSessionRequest  true  "Set to study"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /study/sessions [post]
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	snap, err := h.study.Start(r.Context(), userID(r), req.SetID)
	if h.handleStudyError(w, err) {
		return
	}
	respondJSON(w, http.StatusCreated, toSessionResponse(snap))
}

// @Summary      Get a study session
// @Tags         Study
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Security     BearerAuth
// @Router       /study/sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.study.Get(userID(r), r.PathValue("sessionID"))
	if h.handleStudyError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// submitAnswer grades the marked options for the current question.
// @Summary      Submit an answer
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Marked options"
// @Success      200        {object}  SubmitAnswerResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "feedback already shown"
// @Security     BearerAuth
// @Router       /study/sessions/{sessionID}/submit [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fb, snap, err := h.study.Submit(userID(r), r.PathValue("sessionID"), req.OptionIDs)
	if h.handleStudyError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		Feedback: toFeedbackResponse(fb),
		Session:  toSessionResponse(snap),
	})
}

// @Summary      Advance to the next question
// @Tags         Study
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "no answered question"
// @Security     BearerAuth
// @Router       /study/sessions/{sessionID}/advance [post]
func (h *Handler) advanceSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.study.Advance(userID(r), r.PathValue("sessionID"))
	if h.handleStudyError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// restartSession studies the whole set again. History is kept.
// @Summary      Study again
// @Tags         Study
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Security     BearerAuth
// @Router       /study/sessions/{sessionID}/restart [post]
func (h *Handler) restartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.study.Restart(userID(r), r.PathValue("sessionID"))
	if h.handleStudyError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(snap))
}

// resetSessionStats wipes the history of the session's set and restarts it.
// @Summary      Reset stats
// @Tags         Study
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      500        {object}  map[string]string  "server wipe failed"
// @Security     BearerAuth
// @Router       /study/sessions/{sessionID}/reset-stats [post]
func (h *Handler) resetSessionStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.study.ResetStats(r.Context(), userID(r), "", r.PathValue("sessionID"))
	if errors.Is(err, service.ErrSessionNotFound) {
		respondError(w, http.StatusNotFound, "study session not found")
		return
	}
	if err != nil {
		h.logger.Error("reset stats", "error", err, "session_id", r.PathValue("sessionID"))
		respondError(w, http.StatusInternalServerError, "failed to reset stats")
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(*snap))
}
